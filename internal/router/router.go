package router

import (
	"github.com/gin-gonic/gin"

	"portops/internal/handler"
	"portops/internal/middleware"
)

// Handlers bundles the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Vessel    *handler.VesselHandler
	Container *handler.ContainerHandler
	Tariff    *handler.TariffHandler
	Report    *handler.ReportHandler
	Stats     *handler.StatsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Vessel calls
	vessels := v1.Group("/vessels")
	vessels.POST("", h.Vessel.Create)
	vessels.GET("", h.Vessel.List)
	vessels.GET("/:id", h.Vessel.GetByID)
	vessels.PUT("/:id", h.Vessel.Update)
	vessels.DELETE("/:id", h.Vessel.Delete)
	vessels.POST("/:id/import", h.Vessel.Import)
	vessels.POST("/:id/export-plan", h.Vessel.NotifyExportPlan)

	// Reports
	vessels.GET("/:id/inventory", h.Report.Inventory)
	vessels.GET("/:id/inventory/export", h.Report.ExportInventory)
	vessels.POST("/:id/inventory/archive", h.Report.ArchiveInventory)
	vessels.GET("/:id/debit", h.Report.DebitNote)
	vessels.GET("/:id/debit/export", h.Report.ExportDebitNote)

	// Operations board
	containers := v1.Group("/containers")
	containers.GET("", h.Container.List)
	containers.GET("/warnings", h.Container.Warnings)
	containers.GET("/mismatches", h.Container.Mismatches)
	containers.POST("/:id/complete", h.Container.CompleteTally)
	containers.POST("/:id/urge", h.Container.Urge)

	v1.GET("/detention/classify", h.Container.ClassifyDetention)

	// Tariffs
	tariffs := v1.Group("/tariffs")
	tariffs.GET("", h.Tariff.List)
	tariffs.POST("", h.Tariff.BulkUpsert)
	tariffs.POST("/batch-adjust", h.Tariff.BatchAdjust)
	tariffs.PUT("/:id", h.Tariff.Update)
	tariffs.DELETE("/:id", h.Tariff.Delete)

	// Stats
	v1.GET("/stats", h.Stats.GetStats)

	return r
}
