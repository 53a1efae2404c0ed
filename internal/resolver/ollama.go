package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/ocr"
)

const defaultOllamaURL = "http://localhost:11434"

// indexMarker matches the [n] choice markers the model is asked to emit.
var indexMarker = regexp.MustCompile(`\[(\d+)\]`)

// OllamaBackend resolves conflicts by prompting a local generative model.
// All conflicts go into one prompt; the response is scanned for [n] markers
// matched to conflicts in emission order.
type OllamaBackend struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaBackend creates an OllamaBackend from the resolver config.
func NewOllamaBackend(cfg *config.ResolverConfig) (*OllamaBackend, error) {
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = "llama3"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OllamaBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (b *OllamaBackend) Name() string { return "ollama" }

func (b *OllamaBackend) Resolve(ctx context.Context, agg ocr.AggregationResult) ([]Resolution, error) {
	prompt := buildConflictPrompt(agg)

	reqBody, err := json.Marshal(map[string]interface{}{
		"model":  b.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	return matchMarkersToConflicts(parsed.Response, agg.Conflicts), nil
}

// buildConflictPrompt enumerates every conflict with indexed candidates and
// asks the model to pick one index per conflict.
func buildConflictPrompt(agg ocr.AggregationResult) string {
	var sb strings.Builder
	for i, cf := range agg.Conflicts {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "CONFLICT line=%d\nCANDIDATES:\n", cf.LineIndex)
		for j, c := range cf.Candidates {
			fmt.Fprintf(&sb, "[%d] %s\n", j, c)
		}
		sb.WriteString("Pick best index.")
	}
	return sb.String()
}

// matchMarkersToConflicts pairs [n] markers with conflicts in emission order.
// An out-of-range index falls back to the first candidate; conflicts with no
// marker at all are settled by the longest-candidate heuristic and tagged as
// per-line fallbacks.
func matchMarkersToConflicts(response string, conflicts []ocr.ConflictRecord) []Resolution {
	resolutions := make([]Resolution, 0, len(conflicts))
	markers := indexMarker.FindAllStringSubmatch(response, -1)

	ci := 0
	for _, m := range markers {
		if ci >= len(conflicts) {
			break
		}
		cf := conflicts[ci]
		idx, err := strconv.Atoi(m[1])
		chosen := cf.Candidates[0]
		if err == nil && idx >= 0 && idx < len(cf.Candidates) {
			chosen = cf.Candidates[idx]
		}
		resolutions = append(resolutions, Resolution{
			LineIndex:  cf.LineIndex,
			Resolved:   chosen,
			Candidates: cf.Candidates,
		})
		ci++
	}

	for ; ci < len(conflicts); ci++ {
		cf := conflicts[ci]
		resolutions = append(resolutions, Resolution{
			LineIndex:  cf.LineIndex,
			Resolved:   longestCandidate(cf.Candidates),
			Candidates: cf.Candidates,
			Fallback:   true,
		})
	}
	return resolutions
}
