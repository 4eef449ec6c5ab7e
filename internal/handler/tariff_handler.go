package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portops/internal/service"
)

// TariffHandler handles tariff endpoints.
type TariffHandler struct {
	tariffService service.TariffService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(tariffService service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

// List handles GET /api/v1/tariffs
func (h *TariffHandler) List(c *gin.Context) {
	prices, err := h.tariffService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, prices)
}

// BulkUpsert handles POST /api/v1/tariffs
// @Summary Create or replace tariffs by id
// @Tags tariffs
// @Accept json
// @Produce json
// @Param body body []service.TariffInput true "Tariff rows"
// @Success 200 {object} APIResponse{data=[]domain.ServicePrice}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /tariffs [post]
func (h *TariffHandler) BulkUpsert(c *gin.Context) {
	var req []service.TariffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "expected an array of tariffs with id, name and category")
		return
	}

	prices, err := h.tariffService.BulkUpsert(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, prices)
}

// Update handles PUT /api/v1/tariffs/:id
func (h *TariffHandler) Update(c *gin.Context) {
	var req service.UpdateTariffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	price, err := h.tariffService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, price)
}

// Delete handles DELETE /api/v1/tariffs/:id
func (h *TariffHandler) Delete(c *gin.Context) {
	if err := h.tariffService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tariff deleted"})
}

// BatchAdjust handles POST /api/v1/tariffs/batch-adjust
func (h *TariffHandler) BatchAdjust(c *gin.Context) {
	var req service.BatchAdjustInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ids and a type of PERCENT or FIXED are required")
		return
	}

	prices, err := h.tariffService.BatchAdjust(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, prices)
}
