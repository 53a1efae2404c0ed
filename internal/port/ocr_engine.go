package port

import (
	"context"

	"kakeibo/internal/domain"
)

// OCREngine abstracts one OCR backend. Recognize returns the raw text read
// from the image; an empty string is a valid result for a blank image.
type OCREngine interface {
	Name() domain.EngineName
	Recognize(ctx context.Context, image []byte) (string, error)
}
