// Package editlog computes field-level diffs between receipt revisions and
// anonymizes the editing actor before anything is persisted.
package editlog

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	"kakeibo/internal/domain"
)

// FieldDiff is one detected change between two revisions of an entry's fields.
type FieldDiff struct {
	FieldName string
	OldValue  *string
	NewValue  *string
	EditType  domain.EditType
}

// DiffFields compares two field maps and returns one diff per changed field,
// ordered by field name. A nil pointer and an empty string both count as
// "unset", so flipping between them produces no diff.
func DiffFields(before, after map[string]*string) []FieldDiff {
	names := make([]string, 0, len(before)+len(after))
	seen := make(map[string]bool, len(before)+len(after))
	for name := range before {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range after {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var diffs []FieldDiff
	for _, name := range names {
		oldVal, newVal := before[name], after[name]
		oldSet, newSet := isSet(oldVal), isSet(newVal)

		switch {
		case !oldSet && newSet:
			diffs = append(diffs, FieldDiff{name, nil, newVal, domain.EditTypeAdd})
		case oldSet && !newSet:
			diffs = append(diffs, FieldDiff{name, oldVal, nil, domain.EditTypeDelete})
		case oldSet && newSet && *oldVal != *newVal:
			diffs = append(diffs, FieldDiff{name, oldVal, newVal, domain.EditTypeReplace})
		}
	}
	return diffs
}

// EntryFields projects the user-editable fields of an entry into the map form
// DiffFields consumes. The total amount is rendered in decimal.
func EntryFields(e *domain.Entry) map[string]*string {
	fields := map[string]*string{
		"corrected_text": e.CorrectedText,
		"store_name":     e.StoreName,
		"purchase_date":  e.PurchaseDate,
	}
	if e.TotalAmount != nil {
		s := strconv.Itoa(*e.TotalAmount)
		fields["total_amount"] = &s
	} else {
		fields["total_amount"] = nil
	}
	return fields
}

// AnonymizeUser maps a raw user identifier to a short stable hash. The raw
// identifier never reaches storage. Empty input yields nil, meaning the edit
// was made anonymously.
func AnonymizeUser(userID string) *string {
	if userID == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(userID))
	h := hex.EncodeToString(sum[:])[:16]
	return &h
}

func isSet(v *string) bool {
	return v != nil && *v != ""
}
