package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
	"portops/internal/handler"
	"portops/internal/reconcile"
	"portops/internal/service"
	"portops/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context for a request with an optional JSON body.
func newTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, reader)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func withID(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newVesselHandler() (*handler.VesselHandler, *mocks.MockVesselService) {
	mockSvc := new(mocks.MockVesselService)
	return handler.NewVesselHandler(mockSvc), mockSvc
}

// --- Create ---

func TestVesselHandler_Create_Success(t *testing.T) {
	h, mockSvc := newVesselHandler()

	expected := &domain.Vessel{ID: uuid.New(), VesselName: "WAN HAI 272"}
	mockSvc.On("Create", mock.Anything, service.CreateVesselInput{VesselName: "WAN HAI 272", VoyageNo: "S30"}).
		Return(expected, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/vessels", map[string]string{
		"vesselName": "WAN HAI 272",
		"voyageNo":   "S30",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestVesselHandler_Create_MissingName(t *testing.T) {
	h, mockSvc := newVesselHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/vessels", map[string]string{"voyageNo": "S30"})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

// --- List ---

func TestVesselHandler_List_Pagination(t *testing.T) {
	h, mockSvc := newVesselHandler()

	vessels := []domain.Vessel{{ID: uuid.New(), VesselName: "A"}, {ID: uuid.New(), VesselName: "B"}}
	mockSvc.On("List", mock.Anything, 10, 20).Return(vessels, 12, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/vessels?offset=10&limit=500", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 12, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.Equal(t, 20, resp.Meta.Limit)
	mockSvc.AssertExpectations(t)
}

// --- GetByID ---

func TestVesselHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newVesselHandler()

	c, w := newTestContext(http.MethodGet, "/api/v1/vessels/abc", nil)
	withID(c, "abc")

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestVesselHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrVesselNotFound)

	c, w := newTestContext(http.MethodGet, "/api/v1/vessels/"+id.String(), nil)
	withID(c, id.String())

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "VESSEL_NOT_FOUND", decode(t, w).Error.Code)
}

// --- Update ---

func TestVesselHandler_Update_PartialBody(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateVesselInput) bool {
		return in.VoyageNo != nil && *in.VoyageNo == "S31" && in.VesselName == nil
	})).Return(&domain.Vessel{ID: id, VoyageNo: "S31"}, nil)

	c, w := newTestContext(http.MethodPut, "/api/v1/vessels/"+id.String(), map[string]string{"voyageNo": "S31"})
	withID(c, id.String())

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestVesselHandler_Update_InvalidDebitStatus(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.Anything).
		Return(nil, errors.Join(domain.ErrInvalidInput, errors.New("invalid debit status")))

	c, w := newTestContext(http.MethodPut, "/api/v1/vessels/"+id.String(), map[string]string{"debitStatus": "PAID"})
	withID(c, id.String())

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
}

// --- Delete ---

func TestVesselHandler_Delete_Success(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	c, w := newTestContext(http.MethodDelete, "/api/v1/vessels/"+id.String(), nil)
	withID(c, id.String())

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

// --- Import ---

func TestVesselHandler_Import_Success(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	result := &reconcile.ImportResult{
		Summary: domain.ImportSummary{TotalContainers: 1, TotalPkgs: 10, TotalWeight: 5.5},
	}
	mockSvc.On("ImportManifest", mock.Anything, id, mock.MatchedBy(func(in service.ImportManifestInput) bool {
		return len(in.Rows) == 2 && in.Rows[0]["containerNo"] == "TCNU1234567"
	})).Return(result, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/vessels/"+id.String()+"/import", map[string]interface{}{
		"rows": []map[string]interface{}{
			{"containerNo": "TCNU1234567", "pkgs": 10, "weight": 5.5},
			{"remarks": "no container number"},
		},
	})
	withID(c, id.String())

	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestVesselHandler_Import_MissingRows(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	c, w := newTestContext(http.MethodPost, "/api/v1/vessels/"+id.String()+"/import", map[string]interface{}{})
	withID(c, id.String())

	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ImportManifest")
}

func TestVesselHandler_Import_ServiceError(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("ImportManifest", mock.Anything, id, mock.Anything).Return(nil, errors.New("db down"))

	c, w := newTestContext(http.MethodPost, "/api/v1/vessels/"+id.String()+"/import", map[string]interface{}{
		"rows": []map[string]interface{}{{"containerNo": "X"}},
	})
	withID(c, id.String())

	h.Import(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}

// --- NotifyExportPlan ---

func TestVesselHandler_NotifyExportPlan_Success(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	mockSvc.On("NotifyExportPlan", mock.Anything, id, service.ExportPlanInput{
		ArrivalTime:   "2025-04-12 08:00",
		OperationTime: "2025-04-12 13:00",
		PlannedWeight: 120,
		Departments:   []string{"Transport"},
	}).Return(&domain.Vessel{ID: id, ExportPlanActive: true}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/vessels/"+id.String()+"/export-plan", map[string]interface{}{
		"arrivalTime":   "2025-04-12 08:00",
		"operationTime": "2025-04-12 13:00",
		"plannedWeight": 120,
		"departments":   []string{"Transport"},
	})
	withID(c, id.String())

	h.NotifyExportPlan(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestVesselHandler_NotifyExportPlan_NoDepartments(t *testing.T) {
	h, mockSvc := newVesselHandler()

	id := uuid.New()
	c, w := newTestContext(http.MethodPost, "/api/v1/vessels/"+id.String()+"/export-plan", map[string]interface{}{
		"arrivalTime":   "2025-04-12 08:00",
		"operationTime": "2025-04-12 13:00",
		"departments":   []string{},
	})
	withID(c, id.String())

	h.NotifyExportPlan(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "NotifyExportPlan")
}
