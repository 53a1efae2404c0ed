package editlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/domain"
	"kakeibo/internal/editlog"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestDiffFieldsAdd(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"store_name": nil},
		map[string]*string{"store_name": strPtr("セブンイレブン")},
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, "store_name", diffs[0].FieldName)
	assert.Equal(t, domain.EditTypeAdd, diffs[0].EditType)
	assert.Nil(t, diffs[0].OldValue)
	assert.Equal(t, "セブンイレブン", *diffs[0].NewValue)
}

func TestDiffFieldsReplace(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"total_amount": strPtr("1200")},
		map[string]*string{"total_amount": strPtr("1280")},
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, domain.EditTypeReplace, diffs[0].EditType)
	assert.Equal(t, "1200", *diffs[0].OldValue)
	assert.Equal(t, "1280", *diffs[0].NewValue)
}

func TestDiffFieldsDelete(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"purchase_date": strPtr("2026-01-15")},
		map[string]*string{"purchase_date": nil},
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, domain.EditTypeDelete, diffs[0].EditType)
	assert.Nil(t, diffs[0].NewValue)
}

func TestDiffFieldsEmptyStringCountsAsUnset(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"store_name": strPtr("")},
		map[string]*string{"store_name": nil},
	)
	assert.Empty(t, diffs)

	diffs = editlog.DiffFields(
		map[string]*string{"store_name": strPtr("")},
		map[string]*string{"store_name": strPtr("ローソン")},
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, domain.EditTypeAdd, diffs[0].EditType)
}

func TestDiffFieldsUnchangedProducesNothing(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"store_name": strPtr("ローソン")},
		map[string]*string{"store_name": strPtr("ローソン")},
	)
	assert.Empty(t, diffs)
}

func TestDiffFieldsUnionAndOrder(t *testing.T) {
	diffs := editlog.DiffFields(
		map[string]*string{"store_name": strPtr("ロ一ソン")},
		map[string]*string{
			"store_name":    strPtr("ローソン"),
			"purchase_date": strPtr("2026-02-01"),
		},
	)
	require.Len(t, diffs, 2)
	assert.Equal(t, "purchase_date", diffs[0].FieldName)
	assert.Equal(t, domain.EditTypeAdd, diffs[0].EditType)
	assert.Equal(t, "store_name", diffs[1].FieldName)
	assert.Equal(t, domain.EditTypeReplace, diffs[1].EditType)
}

func TestEntryFields(t *testing.T) {
	e := &domain.Entry{
		CorrectedText: strPtr("text"),
		StoreName:     strPtr("イオン"),
		TotalAmount:   intPtr(980),
	}
	fields := editlog.EntryFields(e)

	assert.Equal(t, "text", *fields["corrected_text"])
	assert.Equal(t, "イオン", *fields["store_name"])
	assert.Nil(t, fields["purchase_date"])
	assert.Equal(t, "980", *fields["total_amount"])
}

func TestAnonymizeUser(t *testing.T) {
	h := editlog.AnonymizeUser("user-123")
	require.NotNil(t, h)
	assert.Len(t, *h, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", *h)

	h2 := editlog.AnonymizeUser("user-123")
	assert.Equal(t, *h, *h2)

	other := editlog.AnonymizeUser("user-456")
	assert.NotEqual(t, *h, *other)

	assert.Nil(t, editlog.AnonymizeUser(""))
}
