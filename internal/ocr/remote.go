package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"kakeibo/internal/domain"
)

// RemoteEngine calls an OCR microservice over HTTP. The service accepts a
// multipart upload on POST {base}/ocr and answers {"text": "..."}.
type RemoteEngine struct {
	name    domain.EngineName
	baseURL string
	client  *http.Client
}

// NewRemoteEngine creates an HTTP-backed engine with the given name.
func NewRemoteEngine(name domain.EngineName, baseURL string, timeout time.Duration) *RemoteEngine {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RemoteEngine{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *RemoteEngine) Name() domain.EngineName { return e.name }

func (e *RemoteEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "receipt.jpg")
	if err != nil {
		return "", fmt.Errorf("%s: building upload: %w", e.name, err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("%s: building upload: %w", e.name, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: building upload: %w", e.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/ocr", &body)
	if err != nil {
		return "", fmt.Errorf("%s: creating request: %w", e.name, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: calling engine: %w", e.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: reading response: %w", e.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: engine error (status %d)", e.name, resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s: unmarshaling response: %w", e.name, err)
	}
	return parsed.Text, nil
}
