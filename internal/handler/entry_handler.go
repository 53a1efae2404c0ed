package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kakeibo/internal/service"
)

// EntryHandler handles receipt entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// List handles GET /api/v1/entries
func (h *EntryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.entryService.List(c.Request.Context(), offset, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, entry)
}

type saveEntryRequest struct {
	CorrectedText *string `json:"corrected_text"`
	StoreName     *string `json:"store_name"`
	PurchaseDate  *string `json:"purchase_date"`
	TotalAmount   *int    `json:"total_amount"`
	ClearAmount   bool    `json:"clear_amount"`
}

// Save handles PUT /api/v1/entries/:id
func (h *EntryHandler) Save(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req saveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	entry, diffs, err := h.entryService.Save(c.Request.Context(), &service.SaveEntryInput{
		EntryID:       id,
		UserID:        c.GetHeader("X-User-ID"),
		CorrectedText: req.CorrectedText,
		StoreName:     req.StoreName,
		PurchaseDate:  req.PurchaseDate,
		TotalAmount:   req.TotalAmount,
		ClearAmount:   req.ClearAmount,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"entry": entry, "edits": diffs})
}

// Confirm handles POST /api/v1/entries/:id/confirm
func (h *EntryHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sample, err := h.entryService.Confirm(c.Request.Context(), id, c.GetHeader("X-User-ID"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, sample)
}

// Delete handles DELETE /api/v1/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// EditHistory handles GET /api/v1/entries/:id/edits
func (h *EntryHandler) EditHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	edits, err := h.entryService.EditHistory(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, edits)
}

// EditStats handles GET /api/v1/edits/stats
func (h *EntryHandler) EditStats(c *gin.Context) {
	stats, err := h.entryService.EditStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, stats)
}

// ImprovementCandidates handles GET /api/v1/edits/improvement-candidates
func (h *EntryHandler) ImprovementCandidates(c *gin.Context) {
	minCount, _ := strconv.Atoi(c.DefaultQuery("min_count", "2"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	candidates, err := h.entryService.ImprovementCandidates(c.Request.Context(), minCount, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, candidates)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry id")
		return uuid.Nil, false
	}
	return id, true
}
