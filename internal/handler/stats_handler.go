package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/port"
)

// StatsHandler exposes conflict-resolution observability data.
type StatsHandler struct {
	resolverLogRepo port.ResolverLogRepository
	modelVersion    string
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(resolverLogRepo port.ResolverLogRepository, modelVersion string) *StatsHandler {
	return &StatsHandler{resolverLogRepo: resolverLogRepo, modelVersion: modelVersion}
}

// ResolverModel handles GET /api/v1/resolver/model/latest
func (h *StatsHandler) ResolverModel(c *gin.Context) {
	RespondOK(c, gin.H{"model_version": h.modelVersion})
}

// ResolverLogs handles GET /api/v1/stats/resolver-logs
func (h *StatsHandler) ResolverLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	logs, err := h.resolverLogRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, logs)
}
