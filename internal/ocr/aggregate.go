// Package ocr aggregates the line-split outputs of multiple OCR engines into
// a single merged text, flagging line positions where the engines could not
// reach majority agreement.
package ocr

import (
	"strings"

	"kakeibo/internal/textnorm"
)

// EngineResult is the raw output of one OCR engine invocation. A failed
// engine is represented by an empty Text, never by an absent result.
type EngineResult struct {
	Engine string `json:"engine"`
	Text   string `json:"text"`
}

// ConflictRecord marks a merged line where no candidate reached a majority.
// Candidates are the non-empty lines contributed at that position, in engine
// order.
type ConflictRecord struct {
	LineIndex  int      `json:"lineIndex"`
	Candidates []string `json:"candidates"`
}

// AggregationResult is the merged view over all engines. Conflict line
// indexes point into MergedLines.
type AggregationResult struct {
	AggregatedText string           `json:"aggregatedText"`
	MergedLines    []string         `json:"mergedLines"`
	Conflicts      []ConflictRecord `json:"conflicts"`
	Engines        []string         `json:"engines"`
}

// AlignedRow is one line position with the candidates each engine
// contributed there. Rows where no engine produced a non-empty line are
// omitted.
type AlignedRow struct {
	Candidates []string // non-empty, in engine order
}

// Aligner maps per-engine line sequences onto shared line positions.
// Positional (index-based) alignment is the only implementation today; the
// seam exists so a sequence-alignment strategy can be swapped in without
// changing the aggregation contract.
type Aligner interface {
	Align(engineLines [][]string) []AlignedRow
}

// positionalAligner lines engines up by raw line index. This assumes engines
// segment a receipt into comparable line counts, which is an approximation:
// merged or split lines shift everything after them.
type positionalAligner struct{}

func (positionalAligner) Align(engineLines [][]string) []AlignedRow {
	maxLen := 0
	for _, lines := range engineLines {
		if len(lines) > maxLen {
			maxLen = len(lines)
		}
	}

	rows := make([]AlignedRow, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		var candidates []string
		for _, lines := range engineLines {
			if i < len(lines) && lines[i] != "" {
				candidates = append(candidates, lines[i])
			}
		}
		if len(candidates) == 0 {
			continue
		}
		rows = append(rows, AlignedRow{Candidates: candidates})
	}
	return rows
}

// Aggregate merges engine outputs with positional alignment and per-line
// majority voting.
func Aggregate(results []EngineResult) AggregationResult {
	return AggregateWith(positionalAligner{}, results)
}

// AggregateWith merges engine outputs using the given alignment strategy.
// For each aligned row the most frequent candidate wins, ties broken by
// first-encountered order. A row is a conflict iff the winner's count is
// below 2 and at least two distinct candidates exist; a single-engine run can
// therefore never conflict.
func AggregateWith(aligner Aligner, results []EngineResult) AggregationResult {
	engines := make([]string, len(results))
	engineLines := make([][]string, len(results))
	for i, r := range results {
		engines[i] = r.Engine
		engineLines[i] = textnorm.SplitLines(textnorm.NormalizeNumerals(r.Text))
	}

	var merged []string
	var conflicts []ConflictRecord

	for _, row := range aligner.Align(engineLines) {
		winner, winnerCount, distinct := majorityVote(row.Candidates)
		lineIndex := len(merged)
		merged = append(merged, winner)
		if winnerCount < 2 && distinct >= 2 {
			conflicts = append(conflicts, ConflictRecord{
				LineIndex:  lineIndex,
				Candidates: row.Candidates,
			})
		}
	}

	return AggregationResult{
		AggregatedText: strings.Join(merged, "\n"),
		MergedLines:    merged,
		Conflicts:      conflicts,
		Engines:        engines,
	}
}

// majorityVote returns the most frequent candidate, its count, and the number
// of distinct values. Ties go to the candidate encountered first, keeping the
// result stable under a fixed engine order.
func majorityVote(candidates []string) (winner string, count, distinct int) {
	freq := make(map[string]int, len(candidates))
	for _, c := range candidates {
		freq[c]++
		if freq[c] > count {
			// Strict greater-than: an earlier candidate at the same
			// count keeps the win.
			winner, count = c, freq[c]
		}
	}
	return winner, count, len(freq)
}
