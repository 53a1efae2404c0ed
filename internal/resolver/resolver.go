// Package resolver picks a winning value for each conflicted line of an
// aggregation. Backends are pluggable; every variant shares one fallback
// path, the length-biased heuristic, which is also the terminal safety net
// when a backend misbehaves.
package resolver

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"kakeibo/internal/ocr"
)

// Resolution records how one conflicted line was settled. Fallback marks
// lines settled by the local heuristic rather than the backend; Error carries
// the backend failure that forced the fallback, if any.
type Resolution struct {
	LineIndex  int      `json:"lineIndex"`
	Resolved   string   `json:"resolved"`
	Candidates []string `json:"candidates"`
	Fallback   bool     `json:"fallback"`
	Error      string   `json:"error,omitempty"`
}

// Result is the outcome of resolving one aggregation's conflict batch.
// Fallback reports whether the primary backend was bypassed for the whole
// call; individual resolutions may still carry their own fallback flag when
// the backend answered only part of the batch.
type Result struct {
	Text        string       `json:"text"`
	Resolutions []Resolution `json:"resolutions"`
	LatencyMS   int64        `json:"latency_ms"`
	Fallback    bool         `json:"fallback"`
}

// Backend resolves a full conflict batch in one round trip. Implementations
// must not partially fail: either they return resolutions for the batch or an
// error, in which case the caller falls back for every conflict.
type Backend interface {
	Name() string
	Resolve(ctx context.Context, agg ocr.AggregationResult) ([]Resolution, error)
}

// Resolver dispatches a conflict batch to its backend and owns the shared
// fallback path. A nil backend is the stub: always heuristic.
type Resolver struct {
	backend Backend
}

// New creates a Resolver over the given backend. Pass nil for the stub.
func New(backend Backend) *Resolver {
	return &Resolver{backend: backend}
}

// Resolve settles every conflict in agg and returns the final merged text.
// It never returns an error: backend failures degrade to the heuristic for
// the entire batch within the same call.
func (r *Resolver) Resolve(ctx context.Context, agg ocr.AggregationResult) Result {
	start := time.Now()

	if r.backend == nil || len(agg.Conflicts) == 0 {
		return r.fallbackResult(agg, start, "")
	}

	resolutions, err := r.backend.Resolve(ctx, agg)
	if err != nil {
		log.Printf("resolver: backend %s failed, using heuristic: %v", r.backend.Name(), err)
		return r.fallbackResult(agg, start, err.Error())
	}

	lines := append([]string(nil), agg.MergedLines...)
	for _, res := range resolutions {
		if res.Resolved != "" && res.LineIndex >= 0 && res.LineIndex < len(lines) {
			lines[res.LineIndex] = res.Resolved
		}
	}

	return Result{
		Text:        strings.Join(lines, "\n"),
		Resolutions: resolutions,
		LatencyMS:   time.Since(start).Milliseconds(),
		Fallback:    false,
	}
}

// fallbackResult resolves the whole batch with the longest-candidate
// heuristic, tagging each resolution with the triggering error.
func (r *Resolver) fallbackResult(agg ocr.AggregationResult, start time.Time, errMsg string) Result {
	lines := append([]string(nil), agg.MergedLines...)
	resolutions := make([]Resolution, 0, len(agg.Conflicts))
	for _, cf := range agg.Conflicts {
		chosen := longestCandidate(cf.Candidates)
		if cf.LineIndex >= 0 && cf.LineIndex < len(lines) {
			lines[cf.LineIndex] = chosen
		}
		resolutions = append(resolutions, Resolution{
			LineIndex:  cf.LineIndex,
			Resolved:   chosen,
			Candidates: cf.Candidates,
			Fallback:   true,
			Error:      errMsg,
		})
	}
	return Result{
		Text:        strings.Join(lines, "\n"),
		Resolutions: resolutions,
		LatencyMS:   time.Since(start).Milliseconds(),
		Fallback:    true,
	}
}

// longestCandidate picks the candidate with the most runes; ties keep the
// earliest, so the choice is stable under engine order.
func longestCandidate(candidates []string) string {
	best := ""
	bestLen := -1
	for _, c := range candidates {
		if n := utf8.RuneCountInString(c); n > bestLen {
			best, bestLen = c, n
		}
	}
	return best
}

// conflictContext returns up to one merged line before and after the given
// index, used as disambiguation context for external backends.
func conflictContext(agg ocr.AggregationResult, lineIndex int) (before, after []string) {
	if lineIndex > 0 && lineIndex-1 < len(agg.MergedLines) {
		before = append(before, agg.MergedLines[lineIndex-1])
	}
	if lineIndex+1 < len(agg.MergedLines) {
		after = append(after, agg.MergedLines[lineIndex+1])
	}
	return before, after
}
