// Package autodict implements the auto-correction dictionary: literal
// find/replace rules mined from historical human corrections, applied to raw
// OCR text before aggregation and extraction.
package autodict

import (
	"log"
	"regexp"

	"kakeibo/internal/domain"
)

// Dict is an immutable snapshot of correction rules. It is loaded at startup
// and replaced wholesale when the miner regenerates it; request processing
// only ever reads it.
type Dict []domain.AutoDictEntry

// Apply runs every rule against text in order. Rules compose: later rules see
// the output of earlier ones. A rule that fails to compile is skipped so one
// bad entry cannot block the rest of the dictionary.
func (d Dict) Apply(text string) string {
	if text == "" || len(d) == 0 {
		return text
	}
	out := text
	for _, e := range d {
		if e.From == "" || e.To == "" {
			continue
		}
		re, err := regexp.Compile(regexp.QuoteMeta(e.From))
		if err != nil {
			log.Printf("autodict: skipping rule %q: %v", e.From, err)
			continue
		}
		out = re.ReplaceAllLiteralString(out, e.To)
	}
	return out
}
