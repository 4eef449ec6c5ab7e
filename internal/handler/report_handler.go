package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portops/internal/csvexport"
	"portops/internal/service"
	"portops/internal/xlsxreport"
)

// ReportHandler handles inventory and debit note endpoints.
type ReportHandler struct {
	reportService service.ReportService
	now           service.Clock
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, clock service.Clock) *ReportHandler {
	if clock == nil {
		clock = service.SystemClock
	}
	return &ReportHandler{reportService: reportService, now: clock}
}

// Inventory handles GET /api/v1/vessels/:id/inventory
// @Summary      Monthly inventory rollup
// @Description  Opening, inbound, outbound and closing balances of a vessel for one month. Month and year default to the current month.
// @Tags         reports
// @Produce      json
// @Param        id path string true "Vessel ID"
// @Param        month query int false "Month (1-12)"
// @Param        year query int false "Year"
// @Success      200 {object} APIResponse{data=domain.InventoryReport}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /vessels/{id}/inventory [get]
func (h *ReportHandler) Inventory(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.reportService.Inventory(c.Request.Context(), id, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ExportInventory handles GET /api/v1/vessels/:id/inventory/export
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Render to a buffer first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	report, err := h.reportService.RenderInventory(c.Request.Context(), id, month, year, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := xlsxreport.InventoryFilename(report.Vessel.VesselName, report.Rollup.Month, report.Rollup.Year)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxreport.ContentType, buf.Bytes())
}

// ArchiveInventory handles POST /api/v1/vessels/:id/inventory/archive
func (h *ReportHandler) ArchiveInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	archived, err := h.reportService.ArchiveInventory(c.Request.Context(), id, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, archived)
}

// DebitNote handles GET /api/v1/vessels/:id/debit
// @Summary      Debit note for a vessel call
// @Description  Prices the six fixed service lines against the current tariffs with VAT. Month and year name the storage line and default to the current month.
// @Tags         reports
// @Produce      json
// @Param        id path string true "Vessel ID"
// @Param        month query int false "Billing month (1-12)"
// @Param        year query int false "Billing year"
// @Success      200 {object} APIResponse{data=domain.DebitNote}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /vessels/{id}/debit [get]
func (h *ReportHandler) DebitNote(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	note, err := h.reportService.DebitNote(c.Request.Context(), id, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// ExportDebitNote handles GET /api/v1/vessels/:id/debit/export
func (h *ReportHandler) ExportDebitNote(c *gin.Context) {
	id, ok := parseIDParam(c, "vessel")
	if !ok {
		return
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	note, err := h.reportService.DebitNote(c.Request.Context(), id, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csvexport.WriteDebitNote(&buf, note); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(note.VesselName, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, csvexport.ContentType, buf.Bytes())
}
