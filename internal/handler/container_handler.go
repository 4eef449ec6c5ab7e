package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portops/internal/domain"
	"portops/internal/service"
)

// ContainerHandler handles the operations board endpoints.
type ContainerHandler struct {
	containerService service.ContainerService
}

// NewContainerHandler creates a new ContainerHandler.
func NewContainerHandler(containerService service.ContainerService) *ContainerHandler {
	return &ContainerHandler{containerService: containerService}
}

// parseContainerFilter reads vessel_id, business_type, unit and status query params.
func parseContainerFilter(c *gin.Context) (service.ContainerListFilter, bool) {
	var filter service.ContainerListFilter

	if s := c.Query("vessel_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'vessel_id': must be a valid UUID")
			return filter, false
		}
		filter.VesselID = &id
	}

	switch bt := domain.BusinessType(strings.ToUpper(c.Query("business_type"))); bt {
	case "", domain.BusinessTypeImport, domain.BusinessTypeExport:
		filter.BusinessType = bt
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'business_type': must be IMPORT or EXPORT")
		return filter, false
	}

	filter.Unit = c.Query("unit")

	if s := c.Query("status"); s != "" {
		status := domain.ContainerStatus(strings.ToUpper(s))
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'status'")
			return filter, false
		}
		filter.Status = status
	}

	return filter, true
}

// List handles GET /api/v1/containers
// @Summary List containers with effective status
// @Description Lists containers newest first. Each item carries its effective status (MISMATCH overlays the stored status for every member of a mismatched declaration) and detention tier.
// @Tags containers
// @Produce json
// @Param vessel_id query string false "Vessel UUID"
// @Param business_type query string false "IMPORT or EXPORT"
// @Param unit query string false "XE for vehicles, otherwise a size substring"
// @Param status query string false "Effective status"
// @Success 200 {object} APIResponse{data=[]domain.ContainerView}
// @Failure 400 {object} APIResponse
// @Router /containers [get]
func (h *ContainerHandler) List(c *gin.Context) {
	filter, ok := parseContainerFilter(c)
	if !ok {
		return
	}

	views, err := h.containerService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, views)
}

// Warnings handles GET /api/v1/containers/warnings
func (h *ContainerHandler) Warnings(c *gin.Context) {
	filter, ok := parseContainerFilter(c)
	if !ok {
		return
	}

	warnings, err := h.containerService.Warnings(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, warnings)
}

// Mismatches handles GET /api/v1/containers/mismatches
func (h *ContainerHandler) Mismatches(c *gin.Context) {
	declarations, err := h.containerService.MismatchedDeclarations(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"declarations": declarations})
}

// CompleteTally handles POST /api/v1/containers/:id/complete
func (h *ContainerHandler) CompleteTally(c *gin.Context) {
	id, ok := parseIDParam(c, "container")
	if !ok {
		return
	}

	container, err := h.containerService.CompleteTally(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, container)
}

// Urge handles POST /api/v1/containers/:id/urge
func (h *ContainerHandler) Urge(c *gin.Context) {
	id, ok := parseIDParam(c, "container")
	if !ok {
		return
	}

	container, err := h.containerService.Urge(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, container)
}

// ClassifyDetention handles GET /api/v1/detention/classify
func (h *ContainerHandler) ClassifyDetention(c *gin.Context) {
	expiry := c.Query("expiry")
	if expiry == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "'expiry' is required")
		return
	}

	RespondOK(c, gin.H{
		"expiry": expiry,
		"tier":   h.containerService.ClassifyDetention(expiry),
	})
}
