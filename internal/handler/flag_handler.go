package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/service"
)

// FlagHandler handles per-user opt-in flag endpoints. The caller identifies
// itself with the X-User-ID header.
type FlagHandler struct {
	flagService service.FlagService
}

// NewFlagHandler creates a new FlagHandler.
func NewFlagHandler(flagService service.FlagService) *FlagHandler {
	return &FlagHandler{flagService: flagService}
}

// Get handles GET /api/v1/flags
func (h *FlagHandler) Get(c *gin.Context) {
	flags, err := h.flagService.Get(c.Request.Context(), c.GetHeader("X-User-ID"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, flags)
}

type updateFlagsRequest struct {
	ProvideTrainingData  *bool `json:"provide_training_data"`
	LocalTrainingEnabled *bool `json:"local_training_enabled"`
}

// Update handles PUT /api/v1/flags
func (h *FlagHandler) Update(c *gin.Context) {
	var req updateFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	flags, err := h.flagService.Update(c.Request.Context(), &service.UpdateFlagsInput{
		UserID:               c.GetHeader("X-User-ID"),
		ProvideTrainingData:  req.ProvideTrainingData,
		LocalTrainingEnabled: req.LocalTrainingEnabled,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, flags)
}
