package router

import (
	"github.com/gin-gonic/gin"

	"kakeibo/internal/handler"
	"kakeibo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	ocrH *handler.OCRHandler,
	entryH *handler.EntryHandler,
	trainingH *handler.TrainingHandler,
	flagH *handler.FlagHandler,
	dictH *handler.DictHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// OCR pipelines
	v1.POST("/ocr", ocrH.RunSingle)
	v1.POST("/ocr/multi", ocrH.RunMulti)

	// Entries and corrections
	entries := v1.Group("/entries")
	entries.GET("", entryH.List)
	entries.GET("/:id", entryH.Get)
	entries.PUT("/:id", entryH.Save)
	entries.POST("/:id/confirm", entryH.Confirm)
	entries.DELETE("/:id", entryH.Delete)
	entries.GET("/:id/edits", entryH.EditHistory)

	// Edit log analytics
	edits := v1.Group("/edits")
	edits.GET("/stats", entryH.EditStats)
	edits.GET("/improvement-candidates", entryH.ImprovementCandidates)

	// Training data export
	training := v1.Group("/training")
	training.GET("/export", trainingH.Export)
	training.POST("/mark-synced", trainingH.MarkSynced)

	// Per-user opt-in flags
	flags := v1.Group("/flags")
	flags.GET("", flagH.Get)
	flags.PUT("", flagH.Update)

	// Auto-correction dictionary
	dict := v1.Group("/dict")
	dict.GET("", dictH.List)
	dict.POST("/regenerate", dictH.Regenerate)

	// Observability
	stats := v1.Group("/stats")
	stats.GET("/resolver-logs", statsH.ResolverLogs)
	v1.GET("/resolver/model/latest", statsH.ResolverModel)

	return r
}
