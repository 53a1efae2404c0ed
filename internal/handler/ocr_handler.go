package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/domain"
	"kakeibo/internal/service"
)

// OCRHandler handles receipt image OCR endpoints.
type OCRHandler struct {
	ocrService service.OCRService
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(ocrService service.OCRService) *OCRHandler {
	return &OCRHandler{ocrService: ocrService}
}

// RunSingle handles POST /api/v1/ocr
// Form fields: image (file), engine (optional engine name).
func (h *OCRHandler) RunSingle(c *gin.Context) {
	input, ok := h.readImage(c)
	if !ok {
		return
	}
	if engine := c.PostForm("engine"); engine != "" {
		input.Engines = []domain.EngineName{domain.EngineName(engine)}
	}

	out, err := h.ocrService.RunSingle(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, out)
}

// RunMulti handles POST /api/v1/ocr/multi
// Form fields: image (file), engines (optional comma-separated engine names),
// use_llm ("1" to resolve conflicts; otherwise majority winners stand).
func (h *OCRHandler) RunMulti(c *gin.Context) {
	input, ok := h.readImage(c)
	if !ok {
		return
	}
	if engines := c.PostForm("engines"); engines != "" {
		for _, name := range strings.Split(engines, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				input.Engines = append(input.Engines, domain.EngineName(name))
			}
		}
	}
	input.UseResolver = c.PostForm("use_llm") == "1"

	out, err := h.ocrService.RunMulti(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, out)
}

func (h *OCRHandler) readImage(c *gin.Context) (*service.OCRInput, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image file is required")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_IMAGE", "cannot open uploaded image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_IMAGE", "cannot read uploaded image")
		return nil, false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	return &service.OCRInput{Image: data, ContentType: contentType}, true
}
