package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// decimalCommaPattern matches a trailing Vietnamese decimal part: a comma
// followed by exactly two digits ("17.592,59"). A comma followed by three
// digits is a thousands separator ("79,600").
var decimalCommaPattern = regexp.MustCompile(`,(\d{2})$`)

// ParseMoney parses a Vietnamese-locale money string into whole đồng.
// Trailing ",dd" is treated as a decimal part and rounded to the nearest
// integer; otherwise dots and commas are stripped as separators. The
// second return is false when the input has no parseable number; callers
// must distinguish that from a genuine zero.
func ParseMoney(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := decimalCommaPattern.FindStringSubmatch(s); m != nil {
		intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:len(s)-3])
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, false
		}
		frac, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		if frac >= 50 {
			n++
		}
		return n, true
	}

	clean := strings.NewReplacer(".", "", ",", "").Replace(s)
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatMoney renders whole đồng with comma thousands separators.
func FormatMoney(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// normalizeNumber reformats a raw numeric capture ("10.000", "2", "1,5")
// into the comma-separated canonical form, keeping the raw text when it
// does not parse.
func normalizeNumber(raw string) string {
	if raw == "" {
		return ""
	}
	n, ok := ParseMoney(raw)
	if !ok {
		return raw
	}
	return FormatMoney(n)
}

// parseDecimal parses a Vietnamese number (dot thousands, comma decimal)
// into a float for heuristic comparisons. Returns 0 when unparseable.
func parseDecimal(s string) float64 {
	if s == "" {
		return 0
	}
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return f
}
