package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
	"portops/internal/handler"
	"portops/internal/service"
	"portops/mocks"
)

func newContainerHandler() (*handler.ContainerHandler, *mocks.MockContainerService) {
	mockSvc := new(mocks.MockContainerService)
	return handler.NewContainerHandler(mockSvc), mockSvc
}

// --- List ---

func TestContainerHandler_List_ParsesFilter(t *testing.T) {
	h, mockSvc := newContainerHandler()

	vesselID := uuid.New()
	expectedFilter := service.ContainerListFilter{
		VesselID:     &vesselID,
		BusinessType: domain.BusinessTypeImport,
		Unit:         "40",
		Status:       domain.ContainerStatusMismatch,
	}
	views := []domain.ContainerView{{
		Container:       domain.Container{ContainerNo: "TCNU1234567"},
		EffectiveStatus: domain.ContainerStatusMismatch,
		Detention:       domain.DetentionSafe,
	}}
	mockSvc.On("List", mock.Anything, expectedFilter).Return(views, nil)

	c, w := newTestContext(http.MethodGet,
		"/api/v1/containers?vessel_id="+vesselID.String()+"&business_type=import&unit=40&status=mismatch", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestContainerHandler_List_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad vessel id", "?vessel_id=nope"},
		{"bad business type", "?business_type=TRANSIT"},
		{"bad status", "?status=LOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newContainerHandler()

			c, w := newTestContext(http.MethodGet, "/api/v1/containers"+tt.query, nil)

			h.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
			mockSvc.AssertNotCalled(t, "List")
		})
	}
}

func TestContainerHandler_List_ServiceError(t *testing.T) {
	h, mockSvc := newContainerHandler()

	mockSvc.On("List", mock.Anything, service.ContainerListFilter{}).Return(nil, errors.New("db down"))

	c, w := newTestContext(http.MethodGet, "/api/v1/containers", nil)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Warnings ---

func TestContainerHandler_Warnings(t *testing.T) {
	h, mockSvc := newContainerHandler()

	warnings := &domain.DeclarationWarnings{
		Mismatches:          []domain.Container{{ContainerNo: "AAAU1111111"}},
		PendingDeclarations: []domain.Container{{ContainerNo: "BBBU2222222"}},
	}
	mockSvc.On("Warnings", mock.Anything, service.ContainerListFilter{BusinessType: domain.BusinessTypeExport}).
		Return(warnings, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/containers/warnings?business_type=EXPORT", nil)

	h.Warnings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

// --- Mismatches ---

func TestContainerHandler_Mismatches(t *testing.T) {
	h, mockSvc := newContainerHandler()

	mockSvc.On("MismatchedDeclarations", mock.Anything).Return([]string{"500", "501"}, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/containers/mismatches", nil)

	h.Mismatches(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Declarations []string `json:"declarations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"500", "501"}, body.Data.Declarations)
}

// --- CompleteTally ---

func TestContainerHandler_CompleteTally(t *testing.T) {
	h, mockSvc := newContainerHandler()

	id := uuid.New()
	mockSvc.On("CompleteTally", mock.Anything, id).
		Return(&domain.Container{ID: id, Status: domain.ContainerStatusCompleted, TallyApproved: true}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/containers/"+id.String()+"/complete", nil)
	withID(c, id.String())

	h.CompleteTally(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestContainerHandler_CompleteTally_NotFound(t *testing.T) {
	h, mockSvc := newContainerHandler()

	id := uuid.New()
	mockSvc.On("CompleteTally", mock.Anything, id).Return(nil, domain.ErrContainerNotFound)

	c, w := newTestContext(http.MethodPost, "/api/v1/containers/"+id.String()+"/complete", nil)
	withID(c, id.String())

	h.CompleteTally(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CONTAINER_NOT_FOUND", decode(t, w).Error.Code)
}

// --- Urge ---

func TestContainerHandler_Urge_InvalidID(t *testing.T) {
	h, mockSvc := newContainerHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/containers/x/urge", nil)
	withID(c, "x")

	h.Urge(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Urge")
}

func TestContainerHandler_Urge(t *testing.T) {
	h, mockSvc := newContainerHandler()

	id := uuid.New()
	mockSvc.On("Urge", mock.Anything, id).Return(&domain.Container{ID: id, Remarks: "urged"}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/containers/"+id.String()+"/urge", nil)
	withID(c, id.String())

	h.Urge(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

// --- ClassifyDetention ---

func TestContainerHandler_ClassifyDetention(t *testing.T) {
	h, mockSvc := newContainerHandler()

	mockSvc.On("ClassifyDetention", "2025-04-11").Return(domain.DetentionUrgent)

	c, w := newTestContext(http.MethodGet, "/api/v1/detention/classify?expiry=2025-04-11", nil)

	h.ClassifyDetention(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Expiry string `json:"expiry"`
			Tier   string `json:"tier"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-04-11", body.Data.Expiry)
	assert.Equal(t, "urgent", body.Data.Tier)
}

func TestContainerHandler_ClassifyDetention_MissingExpiry(t *testing.T) {
	h, mockSvc := newContainerHandler()

	c, w := newTestContext(http.MethodGet, "/api/v1/detention/classify", nil)

	h.ClassifyDetention(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ClassifyDetention")
}
