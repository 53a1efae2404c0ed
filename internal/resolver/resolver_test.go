package resolver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/config"
	"kakeibo/internal/ocr"
	"kakeibo/internal/resolver"
)

func conflictedAggregation() ocr.AggregationResult {
	return ocr.AggregationResult{
		MergedLines: []string{"セブンイレブン", "合計 120円", "ありがとうございました"},
		Conflicts: []ocr.ConflictRecord{
			{LineIndex: 1, Candidates: []string{"合計 120円", "合計 l20円", "会計 120円"}},
		},
		Engines: []string{"tesseract", "paddle", "trocr"},
	}
}

func TestStubResolvesWithLongestCandidate(t *testing.T) {
	r := resolver.New(nil)

	agg := ocr.AggregationResult{
		MergedLines: []string{"牛乳", "198"},
		Conflicts: []ocr.ConflictRecord{
			{LineIndex: 0, Candidates: []string{"牛乳", "牛乳パック", "牛列"}},
		},
	}
	res := r.Resolve(context.Background(), agg)

	assert.True(t, res.Fallback)
	require.Len(t, res.Resolutions, 1)
	assert.Equal(t, "牛乳パック", res.Resolutions[0].Resolved)
	assert.True(t, res.Resolutions[0].Fallback)
	assert.Empty(t, res.Resolutions[0].Error)
	assert.Equal(t, "牛乳パック\n198", res.Text)
}

func TestStubLongestTieKeepsFirst(t *testing.T) {
	r := resolver.New(nil)

	agg := ocr.AggregationResult{
		MergedLines: []string{"あい"},
		Conflicts: []ocr.ConflictRecord{
			{LineIndex: 0, Candidates: []string{"あい", "かき"}},
		},
	}
	res := r.Resolve(context.Background(), agg)
	assert.Equal(t, "あい", res.Resolutions[0].Resolved)
}

func TestNoConflictsReturnsMergedText(t *testing.T) {
	r := resolver.New(nil)

	agg := ocr.AggregationResult{MergedLines: []string{"a", "b"}}
	res := r.Resolve(context.Background(), agg)

	assert.Equal(t, "a\nb", res.Text)
	assert.Empty(t, res.Resolutions)
}

func TestHTTPBackendResolvesBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/resolve_conflicts", r.URL.Path)

		var req struct {
			Conflicts []struct {
				LineIndex     int      `json:"lineIndex"`
				Candidates    []string `json:"candidates"`
				ContextBefore []string `json:"contextBefore"`
				ContextAfter  []string `json:"contextAfter"`
			} `json:"conflicts"`
			Task         string `json:"task"`
			ModelVersion string `json:"model_version"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "conflict", req.Task)
		assert.Equal(t, "jp_v2", req.ModelVersion)
		require.Len(t, req.Conflicts, 1)
		assert.Equal(t, 1, req.Conflicts[0].LineIndex)
		assert.Equal(t, []string{"セブンイレブン"}, req.Conflicts[0].ContextBefore)
		assert.Equal(t, []string{"ありがとうございました"}, req.Conflicts[0].ContextAfter)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"resolutions": []map[string]interface{}{
				{"lineIndex": 1, "resolved": "合計 120円"},
			},
		})
	}))
	defer srv.Close()

	backend, err := resolver.NewHTTPBackend(&config.ResolverConfig{
		APIURL: srv.URL, ModelVersion: "jp_v2", TimeoutSecs: 5,
	})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), conflictedAggregation())

	assert.False(t, res.Fallback)
	require.Len(t, res.Resolutions, 1)
	assert.Equal(t, "合計 120円", res.Resolutions[0].Resolved)
	assert.False(t, res.Resolutions[0].Fallback)
	assert.Equal(t, "セブンイレブン\n合計 120円\nありがとうございました", res.Text)
}

func TestHTTPBackendErrorFallsBackWholeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	backend, err := resolver.NewHTTPBackend(&config.ResolverConfig{APIURL: srv.URL, TimeoutSecs: 5})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), conflictedAggregation())

	assert.True(t, res.Fallback)
	require.Len(t, res.Resolutions, 1)
	assert.True(t, res.Resolutions[0].Fallback)
	assert.NotEmpty(t, res.Resolutions[0].Error)
	// longest candidate wins on fallback
	assert.Equal(t, "合計 l20円", res.Resolutions[0].Resolved)
}

func TestHTTPBackendMissingResolutionsIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	backend, err := resolver.NewHTTPBackend(&config.ResolverConfig{APIURL: srv.URL, TimeoutSecs: 5})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), conflictedAggregation())
	assert.True(t, res.Fallback)
}

func TestHTTPBackendRequiresURL(t *testing.T) {
	_, err := resolver.NewHTTPBackend(&config.ResolverConfig{})
	assert.Error(t, err)
}

func TestOllamaBackendPicksMarkedCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "CONFLICT line=1")
		assert.Contains(t, req.Prompt, "[2] 会計 120円")

		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "The best choice is [2] because it reads naturally.",
		})
	}))
	defer srv.Close()

	backend, err := resolver.NewOllamaBackend(&config.ResolverConfig{APIURL: srv.URL, TimeoutSecs: 5})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), conflictedAggregation())

	assert.False(t, res.Fallback)
	require.Len(t, res.Resolutions, 1)
	assert.Equal(t, "会計 120円", res.Resolutions[0].Resolved)
}

func TestOllamaOutOfRangeMarkerFallsBackToFirstCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "[9]"})
	}))
	defer srv.Close()

	backend, err := resolver.NewOllamaBackend(&config.ResolverConfig{APIURL: srv.URL, TimeoutSecs: 5})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), conflictedAggregation())
	require.Len(t, res.Resolutions, 1)
	assert.Equal(t, "合計 120円", res.Resolutions[0].Resolved)
}

func TestOllamaUnansweredConflictsUseHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// answers only the first conflict
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "[0]"})
	}))
	defer srv.Close()

	agg := ocr.AggregationResult{
		MergedLines: []string{"a", "b"},
		Conflicts: []ocr.ConflictRecord{
			{LineIndex: 0, Candidates: []string{"a", "aa"}},
			{LineIndex: 1, Candidates: []string{"b", "bbb"}},
		},
	}

	backend, err := resolver.NewOllamaBackend(&config.ResolverConfig{APIURL: srv.URL, TimeoutSecs: 5})
	require.NoError(t, err)

	res := resolver.New(backend).Resolve(context.Background(), agg)
	require.Len(t, res.Resolutions, 2)
	assert.Equal(t, "a", res.Resolutions[0].Resolved)
	assert.False(t, res.Resolutions[0].Fallback)
	assert.Equal(t, "bbb", res.Resolutions[1].Resolved)
	assert.True(t, res.Resolutions[1].Fallback)
}

func TestNewFromConfig(t *testing.T) {
	r, err := resolver.NewFromConfig(&config.ResolverConfig{Backend: "stub"})
	require.NoError(t, err)
	assert.NotNil(t, r)

	r, err = resolver.NewFromConfig(nil)
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = resolver.NewFromConfig(&config.ResolverConfig{Backend: "httpapi", APIURL: "http://localhost:9000"})
	require.NoError(t, err)

	_, err = resolver.NewFromConfig(&config.ResolverConfig{Backend: "ollama"})
	require.NoError(t, err)

	_, err = resolver.NewFromConfig(&config.ResolverConfig{Backend: "nope"})
	assert.Error(t, err)
}
