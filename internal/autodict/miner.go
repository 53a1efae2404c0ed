package autodict

import (
	"sort"

	"kakeibo/internal/domain"
)

// MinerOptions bound the mined dictionary. Zero values fall back to the
// defaults used by the nightly regeneration job.
type MinerOptions struct {
	MinFrequency int // minimum occurrences of a (old, new) pair
	MaxLen       int // maximum rune length of either side of a pair
	Limit        int // cap on the emitted dictionary size
}

const (
	defaultMinFrequency = 3
	defaultMaxLen       = 40
	defaultLimit        = 500
)

func (o MinerOptions) withDefaults() MinerOptions {
	if o.MinFrequency <= 0 {
		o.MinFrequency = defaultMinFrequency
	}
	if o.MaxLen <= 0 {
		o.MaxLen = defaultMaxLen
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	return o
}

// Mine aggregates replace-type diffs into frequency-ranked find/replace
// pairs. The result fully replaces the previous dictionary snapshot; there is
// no incremental merge.
func Mine(diffs []domain.EditLogEntry, opts MinerOptions) []domain.AutoDictEntry {
	opts = opts.withDefaults()

	type pair struct{ from, to string }
	counts := make(map[pair]int)
	order := make([]pair, 0)

	for _, d := range diffs {
		if d.EditType != domain.EditTypeReplace || d.OldValue == nil || d.NewValue == nil {
			continue
		}
		from, to := *d.OldValue, *d.NewValue
		if from == "" || to == "" {
			continue
		}
		if len([]rune(from)) > opts.MaxLen || len([]rune(to)) > opts.MaxLen {
			continue
		}
		p := pair{from, to}
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	entries := make([]domain.AutoDictEntry, 0, len(order))
	for _, p := range order {
		if counts[p] < opts.MinFrequency {
			continue
		}
		entries = append(entries, domain.AutoDictEntry{From: p.from, To: p.to, Freq: counts[p]})
	}

	// Rank by frequency, first-seen order breaking ties for determinism.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Freq > entries[j].Freq
	})

	if len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries
}
