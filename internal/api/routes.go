package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(engine *gin.Engine, h *Handlers, tp *telemetry.Provider) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
	if tp != nil {
		engine.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/extract", h.Extract)
		v1.POST("/extract/file", h.ExtractFile)
		v1.POST("/extract/batch", h.ExtractBatch)
		v1.GET("/records", h.Records)
		v1.GET("/records/export", h.ExportRecords)
		v1.GET("/rules/offences", h.Rules)
	}
}
