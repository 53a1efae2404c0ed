package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kakeibo/internal/service"
)

var exportContentTypes = map[service.ExportFormat]string{
	service.ExportJSON: "application/json",
	service.ExportCSV:  "text/csv",
	service.ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// TrainingHandler handles training data export endpoints.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// Export handles GET /api/v1/training/export
// Query: format (json|csv|xlsx, default json), limit.
func (h *TrainingHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "json"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var buf bytes.Buffer
	if _, err := h.trainingService.Export(c.Request.Context(), &buf, format, limit); err != nil {
		RespondDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("training_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exportContentTypes[format], buf.Bytes())
}

type markSyncedRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// MarkSynced handles POST /api/v1/training/mark-synced
func (h *TrainingHandler) MarkSynced(c *gin.Context) {
	var req markSyncedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := h.trainingService.MarkExported(c.Request.Context(), req.IDs); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"synced": len(req.IDs)})
}
