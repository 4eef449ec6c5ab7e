package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portops/internal/domain"
	"portops/internal/handler"
	"portops/internal/service"
	"portops/mocks"
)

func newTariffHandler() (*handler.TariffHandler, *mocks.MockTariffService) {
	mockSvc := new(mocks.MockTariffService)
	return handler.NewTariffHandler(mockSvc), mockSvc
}

func TestTariffHandler_List(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("List", mock.Anything).Return([]domain.ServicePrice{
		{ID: "lift-on", Name: "Nâng hạ", Price: 500000, Category: domain.PriceCategoryUnit},
	}, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/tariffs", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTariffHandler_BulkUpsert_Success(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(in []service.TariffInput) bool {
		return len(in) == 1 && in[0].ID == "weight-factor" && in[0].Price == 2.0
	})).Return([]domain.ServicePrice{{ID: "weight-factor", Price: 2.0}}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs", []map[string]interface{}{
		{"id": "weight-factor", "name": "Hệ số quy đổi", "price": 2.0, "category": "WEIGHT"},
	})

	h.BulkUpsert(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTariffHandler_BulkUpsert_InvalidCategory(t *testing.T) {
	h, mockSvc := newTariffHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs", []map[string]interface{}{
		{"id": "x", "name": "X", "price": 1, "category": "VOLUME"},
	})

	h.BulkUpsert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "BulkUpsert")
}

func TestTariffHandler_BulkUpsert_Duplicate(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("BulkUpsert", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: lift-on", domain.ErrDuplicateTariff))

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs", []map[string]interface{}{
		{"id": "lift-on", "name": "A", "category": "UNIT"},
		{"id": "lift-on", "name": "B", "category": "UNIT"},
	})

	h.BulkUpsert(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_TARIFF", decode(t, w).Error.Code)
}

func TestTariffHandler_Update_NotFound(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, domain.ErrTariffNotFound)

	c, w := newTestContext(http.MethodPut, "/api/v1/tariffs/missing", map[string]interface{}{"price": 10})
	withID(c, "missing")

	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TARIFF_NOT_FOUND", decode(t, w).Error.Code)
}

func TestTariffHandler_Delete(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("Delete", mock.Anything, "lift-on").Return(nil)

	c, w := newTestContext(http.MethodDelete, "/api/v1/tariffs/lift-on", nil)
	withID(c, "lift-on")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTariffHandler_BatchAdjust(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("BatchAdjust", mock.Anything, service.BatchAdjustInput{
		IDs:   []string{"lift-on"},
		Type:  domain.AdjustmentPercent,
		Value: 10,
	}).Return([]domain.ServicePrice{{ID: "lift-on", Price: 550000}}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs/batch-adjust", map[string]interface{}{
		"ids":   []string{"lift-on"},
		"type":  "PERCENT",
		"value": 10,
	})

	h.BatchAdjust(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTariffHandler_BatchAdjust_Negative(t *testing.T) {
	h, mockSvc := newTariffHandler()

	mockSvc.On("BatchAdjust", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: lift-on would drop below zero", domain.ErrInvalidAdjustment))

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs/batch-adjust", map[string]interface{}{
		"ids":   []string{"lift-on"},
		"type":  "FIXED",
		"value": -1000000,
	})

	h.BatchAdjust(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ADJUSTMENT", decode(t, w).Error.Code)
}

func TestTariffHandler_BatchAdjust_MissingIDs(t *testing.T) {
	h, mockSvc := newTariffHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/tariffs/batch-adjust", map[string]interface{}{
		"type":  "PERCENT",
		"value": 10,
	})

	h.BatchAdjust(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "BatchAdjust")
}
