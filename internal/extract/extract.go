// Package extract turns normalized receipt text into structured fields using
// regex heuristics. Parse is a pure function: it never fails and carries no
// state, so the same text always yields the same fields.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"kakeibo/internal/domain"
	"kakeibo/internal/textnorm"
)

const (
	storeNameScanLines = 10
	storeNameMaxRunes  = 80

	// Candidates outside this open range are treated as OCR garbage.
	amountMin = 0
	amountMax = 1000000
)

// skipPattern matches receipt boilerplate that can never be a store name:
// totals, tax, phone numbers, URLs, membership and point lines.
var skipPattern = regexp.MustCompile(`領収書|合計|計|¥|￥|税|小計|TEL|電話|〒|http|https|会員|ポイント|有効期限`)

// numericOnlyLine matches lines made of digits, currency symbols, and
// punctuation only.
var numericOnlyLine = regexp.MustCompile(`^[0-9¥￥,.\-\s]+$`)

// datePattern matches a receipt date: 4-digit year, then month and day in
// half- or full-width digits, with /, -, or kanji separators.
var datePattern = regexp.MustCompile(`(20[0-9]{2})[/\-年]\s*([0-9０-９]{1,2})[/\-月]\s*([0-9０-９]{1,2})日?`)

var (
	totalLinePattern  = regexp.MustCompile(`(?:合計|総計|計)[^\n]{0,20}?([0-9０-９¥￥,. ]{2,})`)
	standaloneYen     = regexp.MustCompile(`[¥￥]\s*([0-9０-９][0-9０-９, ]{1,})`)
	subtotalPattern   = regexp.MustCompile(`小計[^\n]{0,20}?([0-9０-９, ]{2,})`)
	pureDigits        = regexp.MustCompile(`^[0-9]{2,}$`)
	currencyStripping = strings.NewReplacer("¥", "", "￥", "", ",", "", " ", "")
)

// Parse extracts {store name, purchase date, total amount} from OCR text.
// Missing fields come back nil; the function is total over any input.
func Parse(text string) domain.ExtractedFields {
	var result domain.ExtractedFields
	if text == "" {
		return result
	}

	norm := strings.ReplaceAll(text, "\r", "")
	result.StoreName = parseStoreName(norm)
	result.PurchaseDate = parsePurchaseDate(norm)
	result.TotalAmount = parseTotalAmount(norm)
	return result
}

// parseStoreName scans the first few non-empty lines for one that is neither
// boilerplate nor purely numeric, and takes it as the store name.
func parseStoreName(norm string) *string {
	lines := textnorm.SplitLines(norm)
	limit := storeNameScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if skipPattern.MatchString(line) {
			continue
		}
		if numericOnlyLine.MatchString(line) {
			continue
		}
		name := truncateRunes(line, storeNameMaxRunes)
		return &name
	}
	return nil
}

// parsePurchaseDate takes the first date match in the text and emits it as
// YYYY-MM-DD with zero-padded month and day.
func parsePurchaseDate(norm string) *string {
	m := datePattern.FindStringSubmatch(norm)
	if m == nil {
		return nil
	}
	year := m[1]
	month := zeroPad(textnorm.NormalizeNumerals(m[2]))
	day := zeroPad(textnorm.NormalizeNumerals(m[3]))
	date := year + "-" + month + "-" + day
	return &date
}

// parseTotalAmount gathers numeric candidates from total-keyword lines,
// standalone currency amounts, and subtotal lines, then picks the maximum
// surviving value. Largest-plausible wins: tax and subtotal lines are
// normally smaller than the grand total.
func parseTotalAmount(norm string) *int {
	var candidates []int
	for _, pattern := range []*regexp.Regexp{totalLinePattern, standaloneYen, subtotalPattern} {
		for _, m := range pattern.FindAllStringSubmatch(norm, -1) {
			raw := currencyStripping.Replace(textnorm.NormalizeNumerals(m[1]))
			if !pureDigits.MatchString(raw) {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			candidates = append(candidates, v)
		}
	}

	best := -1
	for _, v := range candidates {
		if v > amountMin && v < amountMax && v > best {
			best = v
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
