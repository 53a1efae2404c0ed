// Package preprocess optionally crops and deskews receipt photos through an
// external service before OCR. Preprocessing is best effort: any failure
// returns the original image untouched.
package preprocess

import (
	"bytes"
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client calls the crop service. A nil Client, or one built with an empty
// URL, passes images through unchanged.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a preprocess client. An empty url disables preprocessing.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		return nil
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Process sends the image for cropping and returns the cropped bytes. On any
// error it logs and returns the input unchanged.
func (c *Client) Process(ctx context.Context, image []byte) []byte {
	if c == nil {
		return image
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "receipt.jpg")
	if err != nil {
		log.Printf("preprocess: building upload: %v", err)
		return image
	}
	if _, err := part.Write(image); err != nil {
		log.Printf("preprocess: building upload: %v", err)
		return image
	}
	if err := mw.Close(); err != nil {
		log.Printf("preprocess: building upload: %v", err)
		return image
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/crop", &body)
	if err != nil {
		log.Printf("preprocess: creating request: %v", err)
		return image
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("preprocess: crop service unreachable, using original image: %v", err)
		return image
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("preprocess: crop service returned status %d, using original image", resp.StatusCode)
		return image
	}

	cropped, err := io.ReadAll(resp.Body)
	if err != nil || len(cropped) == 0 {
		log.Printf("preprocess: reading cropped image failed, using original: %v", err)
		return image
	}
	return cropped
}
