package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/ocr"
)

// conflictPayload is one conflict as sent to the resolution service, with one
// line of merged context on each side when in range.
type conflictPayload struct {
	LineIndex     int      `json:"lineIndex"`
	Candidates    []string `json:"candidates"`
	ContextBefore []string `json:"contextBefore"`
	ContextAfter  []string `json:"contextAfter"`
}

// HTTPBackend resolves conflicts through a structured JSON service exposing
// POST {base}/resolve_conflicts. The whole batch goes out in one request.
type HTTPBackend struct {
	baseURL      string
	modelVersion string
	client       *http.Client
}

// NewHTTPBackend creates an HTTPBackend from the resolver config.
func NewHTTPBackend(cfg *config.ResolverConfig) (*HTTPBackend, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("resolver: api_url is required for the httpapi backend")
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPBackend{
		baseURL:      strings.TrimRight(cfg.APIURL, "/"),
		modelVersion: cfg.ModelVersion,
		client:       &http.Client{Timeout: timeout},
	}, nil
}

func (b *HTTPBackend) Name() string { return "httpapi" }

func (b *HTTPBackend) Resolve(ctx context.Context, agg ocr.AggregationResult) ([]Resolution, error) {
	payload := make([]conflictPayload, 0, len(agg.Conflicts))
	for _, cf := range agg.Conflicts {
		before, after := conflictContext(agg, cf.LineIndex)
		payload = append(payload, conflictPayload{
			LineIndex:     cf.LineIndex,
			Candidates:    cf.Candidates,
			ContextBefore: before,
			ContextAfter:  after,
		})
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"conflicts":     payload,
		"task":          "conflict",
		"model_version": b.modelVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling conflict batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/resolve_conflicts", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling resolver service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolver service error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed struct {
		Resolutions []struct {
			LineIndex *int   `json:"lineIndex"`
			Resolved  string `json:"resolved"`
		} `json:"resolutions"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if parsed.Resolutions == nil {
		return nil, fmt.Errorf("invalid resolver response: missing resolutions")
	}

	candidatesByIndex := make(map[int][]string, len(agg.Conflicts))
	for _, cf := range agg.Conflicts {
		candidatesByIndex[cf.LineIndex] = cf.Candidates
	}

	resolutions := make([]Resolution, 0, len(parsed.Resolutions))
	for _, r := range parsed.Resolutions {
		if r.LineIndex == nil {
			return nil, fmt.Errorf("invalid resolver response: resolution missing lineIndex")
		}
		resolutions = append(resolutions, Resolution{
			LineIndex:  *r.LineIndex,
			Resolved:   r.Resolved,
			Candidates: candidatesByIndex[*r.LineIndex],
		})
	}
	return resolutions, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
