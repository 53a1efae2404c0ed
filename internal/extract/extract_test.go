package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/extract"
)

func TestParse_Empty(t *testing.T) {
	got := extract.Parse("")
	assert.Nil(t, got.StoreName)
	assert.Nil(t, got.PurchaseDate)
	assert.Nil(t, got.TotalAmount)
}

func TestParse_TypicalReceipt(t *testing.T) {
	text := "領収書\nスーパーマルエツ 渋谷店\n2025年3月5日\n小計 1,145円\n税 89円\n合計 1,234円"
	got := extract.Parse(text)

	require.NotNil(t, got.StoreName)
	assert.Equal(t, "スーパーマルエツ 渋谷店", *got.StoreName)
	require.NotNil(t, got.PurchaseDate)
	assert.Equal(t, "2025-03-05", *got.PurchaseDate)
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, 1234, *got.TotalAmount)
}

func TestParse_StoreName_SkipsBoilerplate(t *testing.T) {
	text := "領収書\nTEL 03-1234-5678\nhttp://example.jp\n123-456\n肉のハナマサ"
	got := extract.Parse(text)
	require.NotNil(t, got.StoreName)
	assert.Equal(t, "肉のハナマサ", *got.StoreName)
}

func TestParse_StoreName_OnlyFirstTenLinesScanned(t *testing.T) {
	text := "¥1\n¥2\n¥3\n¥4\n¥5\n¥6\n¥7\n¥8\n¥9\n¥10\nコンビニ田中"
	got := extract.Parse(text)
	assert.Nil(t, got.StoreName)
}

func TestParse_StoreName_Truncated(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "あ"
	}
	got := extract.Parse(long)
	require.NotNil(t, got.StoreName)
	assert.Len(t, []rune(*got.StoreName), 80)
}

func TestParse_Date_FullWidthAndKanjiSeparators(t *testing.T) {
	got := extract.Parse("お店\n2025年３月５日")
	require.NotNil(t, got.PurchaseDate)
	assert.Equal(t, "2025-03-05", *got.PurchaseDate)
}

func TestParse_Date_SlashSeparators(t *testing.T) {
	got := extract.Parse("2024/12/31")
	require.NotNil(t, got.PurchaseDate)
	assert.Equal(t, "2024-12-31", *got.PurchaseDate)
}

func TestParse_Date_FirstMatchWins(t *testing.T) {
	got := extract.Parse("2024-01-02\n2025-03-04")
	require.NotNil(t, got.PurchaseDate)
	assert.Equal(t, "2024-01-02", *got.PurchaseDate)
}

func TestParse_Amount_TotalKeyword(t *testing.T) {
	got := extract.Parse("合計 1,234円")
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, 1234, *got.TotalAmount)
}

func TestParse_Amount_MaximumCandidateWins(t *testing.T) {
	got := extract.Parse("小計 900\n¥120\n合計 1,020円")
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, 1020, *got.TotalAmount)
}

func TestParse_Amount_GarbageFiltered(t *testing.T) {
	// Values at or above 1,000,000 are rejected as OCR noise.
	got := extract.Parse("合計 99999999円\n¥450")
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, 450, *got.TotalAmount)
}

func TestParse_Amount_FullWidthDigits(t *testing.T) {
	got := extract.Parse("合計 １２３４円")
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, 1234, *got.TotalAmount)
}

func TestParse_Amount_SingleDigitRejected(t *testing.T) {
	got := extract.Parse("¥5")
	assert.Nil(t, got.TotalAmount)
}

func TestParse_NoFields(t *testing.T) {
	got := extract.Parse("¥¥¥\n12345678901234")
	assert.Nil(t, got.StoreName)
	assert.Nil(t, got.PurchaseDate)
	assert.Nil(t, got.TotalAmount)
}
