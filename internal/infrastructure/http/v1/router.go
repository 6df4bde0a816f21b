// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"fieldbook/internal/domain/comparison"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/entities"
	"fieldbook/internal/domain/fields"
	"fieldbook/internal/domain/integrity"
	"fieldbook/internal/domain/kpi"
	"fieldbook/internal/domain/records"
	"fieldbook/internal/domain/reports"
	"fieldbook/internal/domain/settings"
	"fieldbook/internal/domain/transfer"
	"fieldbook/internal/infrastructure/http/v1/handlers"
	"fieldbook/internal/infrastructure/http/v1/middleware"
	"fieldbook/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Store  dataset.Store
	Logger *logger.Logger

	Entities   *entities.Service
	Fields     *fields.Service
	Records    *records.Service
	Settings   *settings.Service
	Reports    *reports.Service
	Comparison *comparison.Service
	KPI        *kpi.Service
	Transfer   *transfer.Service
	Integrity  *integrity.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Store)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	entitiesHandler := handlers.NewEntitiesHandler(base, cfg.Entities)
	fieldsHandler := handlers.NewFieldsHandler(base, cfg.Fields)
	recordsHandler := handlers.NewRecordsHandler(base, cfg.Records)
	settingsHandler := handlers.NewSettingsHandler(base, cfg.Settings)
	reportsHandler := handlers.NewReportsHandler(base, cfg.Reports, cfg.Comparison, cfg.KPI)
	transferHandler := handlers.NewTransferHandler(base, cfg.Transfer)
	integrityHandler := handlers.NewIntegrityHandler(base, cfg.Integrity)

	v1 := router.Group("/api/v1")
	{
		ent := v1.Group("/entities")
		{
			ent.GET("", entitiesHandler.List)
			ent.POST("", entitiesHandler.Create)
			ent.GET("/:id", entitiesHandler.Get)
			ent.PUT("/:id", entitiesHandler.Rename)
			ent.DELETE("/:id", entitiesHandler.Delete)
			ent.PUT("/:id/fields", entitiesHandler.AssignFields)
		}

		v1.GET("/entity-groups", entitiesHandler.Groups)
		v1.PUT("/entity-groups/:name", settingsHandler.SetEntityGroup)

		fld := v1.Group("/fields")
		{
			fld.GET("", fieldsHandler.List)
			fld.POST("", fieldsHandler.Create)
			fld.POST("/lookup", fieldsHandler.GetMany)
			fld.GET("/:id", fieldsHandler.Get)
			fld.PUT("/:id", fieldsHandler.Update)
			fld.DELETE("/:id", fieldsHandler.Delete)
		}

		v1.GET("/shared-numeric-fields", fieldsHandler.SharedNumeric)

		rec := v1.Group("/records")
		{
			rec.GET("", recordsHandler.List)
			rec.POST("", recordsHandler.Create)
			rec.GET("/recent", recordsHandler.Recent)
			rec.GET("/:id", recordsHandler.Get)
			rec.PUT("/:id", recordsHandler.Update)
			rec.DELETE("/:id", recordsHandler.Delete)
			rec.PUT("/:id/date", recordsHandler.UpdateDate)
		}

		v1.POST("/filter", recordsHandler.Filter)

		rep := v1.Group("/reports")
		{
			rep.POST("/aggregate", reportsHandler.Aggregate)
			rep.POST("/compare", reportsHandler.Compare)
			rep.POST("/kpi", reportsHandler.KPI)
		}

		v1.GET("/settings", settingsHandler.Get)
		v1.PUT("/settings", settingsHandler.Update)

		v1.GET("/export", transferHandler.Export)
		v1.POST("/import", transferHandler.Import)

		v1.GET("/integrity", integrityHandler.Check)
	}

	return router
}
