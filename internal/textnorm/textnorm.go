// Package textnorm holds the text normalization primitives shared by the
// aggregation and extraction layers. Receipt OCR output mixes full-width and
// half-width numerals freely, so every numeric comparison goes through
// NormalizeNumerals first.
package textnorm

import "strings"

// NormalizeNumerals converts full-width digits (U+FF10..U+FF19) to their
// ASCII equivalents. All other runes pass through unchanged.
func NormalizeNumerals(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '０' && r <= '９' {
			r = r - '０' + '0'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitLines strips carriage returns, splits on runs of newlines, trims each
// segment, and drops empty segments. Line order is preserved; the aggregator
// relies on it for positional alignment.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r", "")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
