package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	rowStartPattern    = regexp.MustCompile(`^(\d{1,3})[._\-\s|]+`)
	numberPattern      = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	pureNumericRow     = regexp.MustCompile(`^[\d\s.,|()x=+]+$`)
	upperHeaderRow     = regexp.MustCompile(`^[A-Z\s]+[\d\s=x]+$`)
	compactDatePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	spacedDatePattern  = regexp.MustCompile(`\d{1,2}\s*[/-]\s*\d{1,2}\s*[/-]\s*\d{2,4}`)
	priceLikePattern   = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?`)
	standaloneNumber   = regexp.MustCompile(`\b\d{4,}\b`)
	leadingSeqPattern  = regexp.MustCompile(`^\d+\s+`)
	headerTailPattern  = regexp.MustCompile(`^(?:[A-C]\s)+[\d\s=x]+`)
	numericLeadPattern = regexp.MustCompile(`^[\d\s=x+]+(\s|$)`)
	columnTailPattern  = regexp.MustCompile(`\s+[\-+]\s*[\d\s=x+\-]+$`)
	trailingNumPattern = regexp.MustCompile(`(\S+)\s+(\d+[\s.,\d]*)$`)
	latinLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	dateWordPattern    = regexp.MustCompile(`(?i)(ngày|từ|đến|tháng|năm)`)
	digitsOnlyRow      = regexp.MustCompile(`^[\d\s]+$`)
	numericJunkRow     = regexp.MustCompile(`^[\d\s=x+\-.,()\[\]]+$`)
	diacriticPattern   = regexp.MustCompile(`(?i)[àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ]`)
)

// mergeStopKeywords end a backward or forward description merge: the
// neighboring line is a totals/summary row, not wrapped description text.
var mergeStopKeywords = []string{"cộng tiền", "tổng cộng", "thuế", "thành tiền"}

// trailingKeepWords are words that legitimately precede a number at the
// end of a description ("mệnh giá 20.000", "phòng 204"), so the number is
// part of the name rather than a stray column value.
var trailingKeepWords = map[string]bool{
	"giá": true, "gia": true, "mệnh": true, "số": true,
	"phòng": true, "room": true, "no": true, "no.": true,
}

// ItemParser finds goods/services rows in raw invoice text and resolves
// each into a description plus quantity, unit price, and amount. Rows that
// fail minimum plausibility are dropped silently.
type ItemParser struct {
	units     map[string]struct{}
	surcharge []string
	junk      *JunkClassifier
}

// NewItemParser builds a parser over the config's unit vocabulary and
// surcharge keywords.
func NewItemParser(cfg *Config, junk *JunkClassifier) *ItemParser {
	return &ItemParser{
		units:     cfg.unitSet(),
		surcharge: cfg.SurchargeKeywords,
		junk:      junk,
	}
}

// Parse scans the full joined document text for row-like lines and returns
// the line items it can resolve, in document order.
func (p *ItemParser) Parse(text string) []LineItem {
	var items []LineItem
	lines := strings.Split(text, "\n")

	for idx := range lines {
		line := strings.TrimSpace(lines[idx])
		if line == "" {
			continue
		}
		item, ok := p.parseRow(lines, idx, line)
		if ok {
			items = append(items, item)
		}
	}
	return items
}

// parseRow attempts to interpret the line at idx as an item row, using
// neighboring lines for wrapped descriptions.
func (p *ItemParser) parseRow(lines []string, idx int, line string) (LineItem, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || !isDigits(tokens[0]) {
		return LineItem{}, false
	}

	// Column-header rows like "1 2 3 4 5" or "A B C 1 2=3" also start
	// with a digit sequence.
	if pureNumericRow.MatchString(line) || upperHeaderRow.MatchString(line) {
		return LineItem{}, false
	}

	start := rowStartPattern.FindStringSubmatch(line)
	if start == nil {
		return LineItem{}, false
	}
	seq := start[1]
	seqEnd := len(start[0])

	allNums := numberPattern.FindAllStringIndex(line, -1)
	if len(allNums) < 3 {
		// Surcharge rows may carry only the sequence number and an amount.
		if !(p.isSurcharge(line) && len(allNums) == 2) {
			return LineItem{}, false
		}
	}

	name, nums, ok := p.splitRow(line, tokens, seqEnd, allNums)
	if !ok {
		return LineItem{}, false
	}

	if len(nums) < 2 {
		if p.isSurcharge(name) && len(nums) == 1 {
			// Single amount: quantity 1, price equals amount.
			nums = []string{"1", nums[0], nums[0]}
		} else {
			return LineItem{}, false
		}
	}

	name = p.stripUnits(name)
	name = strings.TrimSpace(strings.TrimPrefix(name, seq))
	name = p.mergeBack(lines, idx, name)
	name = p.mergeForward(lines, idx, name)
	name = p.cleanDescription(name)

	if !p.plausibleDescription(name) {
		return LineItem{}, false
	}

	qty, price, amount, ok := resolveColumns(nums)
	if !ok {
		return LineItem{}, false
	}
	qty, price, amount = fixRateColumnSwap(qty, price, amount)

	return LineItem{
		Description: name,
		Quantity:    normalizeNumber(qty),
		UnitPrice:   normalizeNumber(price),
		Amount:      normalizeNumber(amount),
	}, true
}

// splitRow locates the boundary between the description and the numeric
// columns. Preferred anchor: the last unit-of-measure token that still has
// numbers after it (unit words also occur inside descriptions, so the last
// one wins). Without a unit, the boundary is the first number that looks
// like a price.
func (p *ItemParser) splitRow(line string, tokens []string, seqEnd int, allNums [][]int) (string, []string, bool) {
	unitIdx := -1
	for i := len(tokens) - 1; i >= 0; i-- {
		upper := strings.ToUpper(tokens[i])
		if upper == "THANH" {
			// Collides with words like "Thanh long"; never a unit anchor.
			continue
		}
		if _, isUnit := p.units[upper]; !isUnit {
			continue
		}
		rest := strings.Join(tokens[i+1:], " ")
		if numberPattern.MatchString(rest) {
			unitIdx = i
			break
		}
	}

	if unitIdx == -1 {
		nameEnd := len(line)
		var nums []string
		for _, span := range allNums {
			if span[0] <= seqEnd {
				continue
			}
			numStr := line[span[0]:span[1]]
			if nameEnd == len(line) && looksLikePrice(numStr) {
				nameEnd = span[0]
			}
			nums = append(nums, numStr)
		}
		if nameEnd <= seqEnd {
			return "", nil, false
		}
		return strings.TrimSpace(line[seqEnd:nameEnd]), nums, true
	}

	name := strings.Join(tokens[:unitIdx], " ")
	rest := strings.Join(tokens[unitIdx+1:], " ")
	nums := numberPattern.FindAllString(rest, -1)
	if len(nums) < 2 {
		if !(p.isSurcharge(name) && len(nums) == 1) {
			return "", nil, false
		}
	}
	return name, nums, true
}

// looksLikePrice reports whether a numeric capture is plausibly a price:
// it carries a separator or has at least four digits.
func looksLikePrice(numStr string) bool {
	if strings.ContainsAny(numStr, ".,") {
		return true
	}
	return len(numStr) >= 4
}

// stripUnits removes unit-of-measure tokens from both ends of a
// description. "THANH" is exempt at the front: it opens ordinary words
// like "Thanh long".
func (p *ItemParser) stripUnits(name string) string {
	tokens := strings.Fields(name)
	for len(tokens) > 0 {
		if _, ok := p.units[strings.ToUpper(tokens[len(tokens)-1])]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	for len(tokens) > 0 {
		upper := strings.ToUpper(tokens[0])
		if upper == "THANH" {
			break
		}
		if _, ok := p.units[upper]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	if len(tokens) > 0 {
		// Residue of a split unit column: "）Nấm" or ")Nấm".
		first := tokens[0]
		if strings.HasPrefix(first, "）") {
			tokens[0] = strings.TrimSpace(strings.TrimPrefix(first, "）"))
		} else if strings.HasPrefix(first, ")") {
			tokens[0] = strings.TrimSpace(strings.TrimPrefix(first, ")"))
		}
		last := tokens[len(tokens)-1]
		for unit := range p.units {
			if len([]rune(unit)) < 3 {
				continue
			}
			upperLast := strings.ToUpper(last)
			if strings.HasSuffix(upperLast, unit) && len([]rune(last)) > len([]rune(unit)) {
				trimmed := []rune(last)
				trimmed = trimmed[:len(trimmed)-len([]rune(unit))]
				tokens[len(tokens)-1] = strings.TrimRight(string(trimmed), "（(")
				break
			}
		}
	}
	return strings.Join(tokens, " ")
}

// mergeBack prepends up to two preceding lines when the description looks
// like the tail of a wrapped name: very short, starting lowercase, or
// opening with a stray parenthesis.
func (p *ItemParser) mergeBack(lines []string, idx int, name string) string {
	check := strings.TrimSpace(leadingSeqPattern.ReplaceAllString(name, ""))
	runes := []rune(check)
	var first rune
	if len(runes) > 0 {
		first = runes[0]
	}
	head := runes
	if len(head) > 10 {
		head = head[:10]
	}
	needsPrev := len(runes) < 5 ||
		unicode.IsLower(first) ||
		first == '(' || first == ')' ||
		strings.ContainsRune(string(head), ')')
	if !needsPrev {
		return name
	}

	var collected []string
	for offset := 1; offset <= 2; offset++ {
		if idx-offset < 0 {
			break
		}
		prev := strings.TrimSpace(lines[idx-offset])
		if len(prev) < 2 {
			break
		}
		if m := rowStartPattern.FindStringSubmatch(prev); m != nil {
			rest := strings.TrimSpace(prev[len(m[0]):])
			// A prior row with its own numbers is a separate item.
			if strings.ContainsAny(rest, "0123456789") {
				break
			}
			prev = rest
		}
		if p.junk.IsJunk(prev) {
			break
		}
		// Dates are fine in wrapped text; only price-like numbers mean
		// this is a prior row's tail.
		stripped := compactDatePattern.ReplaceAllString(prev, "")
		if priceLikePattern.MatchString(stripped) || len(standaloneNumber.FindAllString(stripped, -1)) > 1 {
			break
		}
		if containsAnyFold(prev, mergeStopKeywords) {
			break
		}
		if isItemTail(prev) {
			break
		}
		if len(collected) > 0 && stopsAtEnglishParen(collected[0], prev) {
			break
		}
		collected = append([]string{prev}, collected...)
	}

	if len(collected) == 0 {
		return name
	}
	return strings.Join(collected, " ") + " " + name
}

// isItemTail reports whether a line reads like the closing fragment of a
// previous item's description: ends with a closing paren it never opened.
func isItemTail(line string) bool {
	if !strings.HasSuffix(line, ")") && !strings.HasSuffix(line, "）") {
		return false
	}
	if !latinLetterPattern.MatchString(line) {
		return false
	}
	return !strings.Contains(line, "(") && !strings.Contains(line, "（")
}

// stopsAtEnglishParen stops a backward walk when an English parenthetical
// line sits above a Vietnamese line: the parenthetical belongs to the item
// above, not this one.
func stopsAtEnglishParen(below, above string) bool {
	belowRunes := []rune(below)
	if len(belowRunes) == 0 {
		return false
	}
	vietnameseBelow := unicode.IsUpper(belowRunes[0]) && !strings.HasPrefix(below, "(")
	englishParenAbove := strings.HasPrefix(above, "(") && latinLetterPattern.MatchString(above)
	return vietnameseBelow && englishParenAbove
}

// mergeForward appends up to three following lines when the description
// has an unclosed parenthesis or the next line is a parenthetical suffix.
func (p *ItemParser) mergeForward(lines []string, idx int, name string) string {
	runes := []rune(name)
	var last rune
	if len(runes) > 0 {
		last = runes[len(runes)-1]
	}

	unclosed := strings.Count(name, "(") > strings.Count(name, ")") ||
		strings.Count(name, "（") > strings.Count(name, "）")

	suffixNext := false
	if idx+1 < len(lines) {
		peek := strings.TrimSpace(lines[idx+1])
		if strings.HasPrefix(peek, "(") &&
			(latinLetterPattern.MatchString(peek) || dateWordPattern.MatchString(peek)) {
			suffixNext = true
		}
	}

	trimmed := strings.TrimRight(name, " ")
	needsNext := last == '(' || last == '-' || last == '（' ||
		strings.HasSuffix(trimmed, "(") || strings.HasSuffix(trimmed, "（") ||
		unclosed || suffixNext
	if !needsNext {
		return name
	}

	var collected []string
	for offset := 1; offset <= 3; offset++ {
		if idx+offset >= len(lines) {
			break
		}
		next := strings.TrimSpace(lines[idx+offset])
		if len(next) < 2 {
			break
		}
		if rowStartPattern.MatchString(next) {
			break
		}
		if p.junk.IsJunk(next) {
			break
		}
		stripped := spacedDatePattern.ReplaceAllString(next, "")
		if len(numberPattern.FindAllString(stripped, -1)) > 1 {
			break
		}
		if containsAnyFold(next, mergeStopKeywords) {
			break
		}
		if startsNewItem(next, unclosed) {
			break
		}
		collected = append(collected, next)
	}

	if len(collected) == 0 {
		return name
	}
	return name + " " + strings.Join(collected, " ")
}

// startsNewItem reports whether a forward-merge candidate begins a fresh
// Vietnamese description instead of continuing the current one.
func startsNewItem(line string, unclosed bool) bool {
	runes := []rune(line)
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsUpper(runes[0]) || runes[0] == '(' {
		return false
	}
	if unclosed && (strings.Contains(line, ")") || strings.Contains(line, "）")) {
		return false
	}
	return diacriticPattern.MatchString(line)
}

// descriptionPrefixes are header fragments that leak into a merged
// description and must be shaved off the front.
var descriptionPrefixes = []string{
	"GTGT", "VAT) rate)", "VAT rate", "Rate)", "A B C", "khấu", "KHẤU",
	"Phần）", "Phần)", "PHẦN）", "PHẦN)", "ĐVT:", "ĐVT",
}

// cleanDescription strips residual column data from a merged description:
// header fragments, leading sequence numbers, trailing numeric tails.
func (p *ItemParser) cleanDescription(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range descriptionPrefixes {
		name = strings.TrimSpace(strings.TrimPrefix(name, prefix+" "))
		name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
	}
	name = headerTailPattern.ReplaceAllString(name, "")
	name = numericLeadPattern.ReplaceAllString(name, "")
	name = columnTailPattern.ReplaceAllString(name, "")

	if m := trailingNumPattern.FindStringSubmatchIndex(name); m != nil {
		wordBefore := strings.ToLower(name[m[2]:m[3]])
		numText := strings.Fields(strings.TrimSpace(name[m[4]:m[5]]))
		numPart := ""
		if len(numText) > 0 {
			numPart = numText[0]
		}
		keep := len(numPart) == 4 && isDigits(numPart) // a year like 2025
		if trailingKeepWords[wordBefore] {
			keep = true
		}
		if !keep {
			name = strings.TrimSpace(name[:m[4]])
		}
	}

	return strings.TrimSpace(p.stripUnits(name))
}

// plausibleDescription filters descriptions that survived merging but are
// still structural noise.
func (p *ItemParser) plausibleDescription(name string) bool {
	if len([]rune(name)) < 3 {
		return false
	}
	if p.junk.IsJunk(name) {
		return false
	}
	if digitsOnlyRow.MatchString(name) || numericJunkRow.MatchString(name) {
		return false
	}
	return true
}

// resolveColumns maps the raw numeric captures of a row onto quantity,
// unit price, and amount. With five or more numbers the row may carry a
// discount column between price and amount; the amount candidate closest
// to quantity×price wins when the earlier candidate is implausibly small.
func resolveColumns(nums []string) (qty, price, amount string, ok bool) {
	switch {
	case len(nums) >= 5:
		qty = nums[0]
		price = nums[1]
		amount = pickAmount(qty, price, nums)
		return qty, price, amount, true
	case len(nums) >= 3:
		return nums[0], nums[1], nums[2], true
	case len(nums) == 2:
		return nums[0], nums[1], nums[1], true
	default:
		return "", "", "", false
	}
}

// pickAmount disambiguates the amount column for rows with a possible
// discount column (quantity, price, discount, amount, rate, VAT, ...).
func pickAmount(qty, price string, nums []string) string {
	stripped := strings.Trim(strings.NewReplacer(".", "", ",", "").Replace(nums[2]), "0")
	zeroDiscount := stripped == ""

	q := parseDecimal(qty)
	p := parseDecimal(price)
	if p < 100 && strings.Contains(price, ".") {
		p = parseDecimal(strings.ReplaceAll(price, ".", ""))
	}
	expected := q * p
	if expected == 0 && q == 0 {
		expected = p
	}

	v2 := parseDecimal(nums[2])
	v3 := parseDecimal(nums[3])
	diff2 := abs(v2 - expected)
	diff3 := abs(v3 - expected)

	if diff3 < diff2 && v2 < 0.5*expected {
		return nums[3]
	}
	if zeroDiscount {
		return nums[3]
	}
	return nums[2]
}

// fixRateColumnSwap repairs rows where a tax-rate percentage was picked up
// as the amount: an amount of at most 100 next to a four-digit unit price
// is a rate, not money. Can misfire on genuinely tiny invoices; accepted.
func fixRateColumnSwap(qty, price, amount string) (string, string, string) {
	aStr := strings.NewReplacer(".", "", ",", "").Replace(amount)
	pStr := strings.NewReplacer(".", "", ",", "").Replace(price)
	if !isDigits(aStr) || !isDigits(pStr) {
		return qty, price, amount
	}
	a := parseDecimal(aStr)
	p := parseDecimal(pStr)
	if a <= 100 && p > 1000 {
		amount = price
		if qty == "0" || qty == "" {
			qty = "1"
		}
	}
	return qty, price, amount
}

func (p *ItemParser) isSurcharge(text string) bool {
	return containsAnyFold(text, p.surcharge)
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
