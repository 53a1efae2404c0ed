package handler

import (
	"github.com/gin-gonic/gin"

	"kakeibo/internal/service"
)

// DictHandler handles auto-correction dictionary endpoints.
type DictHandler struct {
	dictService service.DictService
}

// NewDictHandler creates a new DictHandler.
func NewDictHandler(dictService service.DictService) *DictHandler {
	return &DictHandler{dictService: dictService}
}

// List handles GET /api/v1/dict
func (h *DictHandler) List(c *gin.Context) {
	entries, err := h.dictService.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, entries)
}

// Regenerate handles POST /api/v1/dict/regenerate
func (h *DictHandler) Regenerate(c *gin.Context) {
	entries, err := h.dictService.Regenerate(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"rules": len(entries), "dict": entries})
}
