package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portops/internal/domain"
	"portops/internal/handler"
	"portops/mocks"
)

func TestStatsHandler_GetStats(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)

	expected := &domain.OperationsStats{
		Vessels: 2, Total: 3, Pending: 1, Ready: 1, Completed: 1, Mismatched: 2, UrgentDetention: 1,
	}
	mockSvc.On("GetStats", mock.Anything).Return(expected, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/stats", nil)

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    domain.OperationsStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, *expected, body.Data)
	mockSvc.AssertExpectations(t)
}

func TestStatsHandler_GetStats_Error(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)

	mockSvc.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))

	c, w := newTestContext(http.MethodGet, "/api/v1/stats", nil)

	h.GetStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}
