package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portops/internal/service"
)

// VesselHandler handles vessel call endpoints.
type VesselHandler struct {
	vesselService service.VesselService
}

// NewVesselHandler creates a new VesselHandler.
func NewVesselHandler(vesselService service.VesselService) *VesselHandler {
	return &VesselHandler{vesselService: vesselService}
}

// Create handles POST /api/v1/vessels
// @Summary Register a vessel call
// @Tags vessels
// @Accept json
// @Produce json
// @Param body body service.CreateVesselInput true "Vessel details"
// @Success 201 {object} APIResponse{data=domain.Vessel}
// @Failure 400 {object} APIResponse
// @Router /vessels [post]
func (h *VesselHandler) Create(c *gin.Context) {
	var req service.CreateVesselInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "vesselName is required")
		return
	}

	vessel, err := h.vesselService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, vessel)
}

// List handles GET /api/v1/vessels
func (h *VesselHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	vessels, total, err := h.vesselService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vessels, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/vessels/:id
func (h *VesselHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}

	vessel, err := h.vesselService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vessel)
}

// Update handles PUT /api/v1/vessels/:id
func (h *VesselHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}

	var req service.UpdateVesselInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	vessel, err := h.vesselService.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vessel)
}

// Delete handles DELETE /api/v1/vessels/:id
func (h *VesselHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}

	if err := h.vesselService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "vessel deleted"})
}

// Import handles POST /api/v1/vessels/:id/import
// @Summary Reconcile manifest rows into a vessel's containers
// @Description Merges raw manifest rows into the stored containers of the vessel and replaces its container set atomically. Rows without containerNo are skipped.
// @Tags vessels
// @Accept json
// @Produce json
// @Param id path string true "Vessel ID"
// @Param body body service.ImportManifestInput true "Raw rows"
// @Success 200 {object} APIResponse{data=reconcile.ImportResult}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /vessels/{id}/import [post]
func (h *VesselHandler) Import(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}

	var req service.ImportManifestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rows are required")
		return
	}

	result, err := h.vesselService.ImportManifest(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// NotifyExportPlan handles POST /api/v1/vessels/:id/export-plan
func (h *VesselHandler) NotifyExportPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}

	var req service.ExportPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"arrivalTime, operationTime and at least one department are required")
		return
	}

	vessel, err := h.vesselService.NotifyExportPlan(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vessel)
}
