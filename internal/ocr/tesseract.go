package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"kakeibo/internal/domain"
)

// TesseractEngine runs OCR in-process through the tesseract C library. A
// fresh client per call keeps the engine safe for concurrent use.
type TesseractEngine struct {
	lang          string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine creates a tesseract engine for the given language
// (e.g. "jpn"). An empty language keeps the library default.
func NewTesseractEngine(lang string) *TesseractEngine {
	return &TesseractEngine{lang: lang, clientFactory: gosseract.NewClient}
}

func (e *TesseractEngine) Name() domain.EngineName { return domain.EngineTesseract }

func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := e.clientFactory()
	defer func() { _ = client.Close() }()

	if e.lang != "" {
		if err := client.SetLanguage(e.lang); err != nil {
			return "", fmt.Errorf("tesseract: set language %q: %w", e.lang, err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("tesseract: set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: recognize: %w", err)
	}
	return text, nil
}
