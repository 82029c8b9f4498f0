package extract

import (
	"regexp"
	"strings"
)

var (
	letterHeaderPattern = regexp.MustCompile(`^([A-Z]\s+)+[A-Z]$`)
	numericNoisePattern = regexp.MustCompile(`^[\d\s()=x+]+$`)
)

// JunkClassifier decides whether a physical line is structural boilerplate
// (column headers, legal text, summary labels) rather than invoice content.
// It is deliberately conservative: downstream parsing filters implausible
// survivors on its own.
type JunkClassifier struct {
	keywords []string
}

// NewJunkClassifier builds a classifier over the config's junk keyword list.
func NewJunkClassifier(cfg *Config) *JunkClassifier {
	return &JunkClassifier{keywords: cfg.JunkKeywords}
}

// IsJunk reports whether line should be skipped as boilerplate. Length
// thresholds count runes, not bytes: diacritic-heavy Vietnamese lines are
// two to three bytes per character.
func (j *JunkClassifier) IsJunk(line string) bool {
	if len([]rune(line)) < 2 {
		return true
	}
	if letterHeaderPattern.MatchString(line) {
		return true
	}
	if numericNoisePattern.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range j.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if len([]rune(lower)) > 50 && strings.Count(lower, "(")+strings.Count(lower, ")") > 4 {
		return true
	}
	return false
}
