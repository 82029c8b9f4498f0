package extract

import "strings"

// Classifier assigns a spending category to an invoice by counting keyword
// hits in the concatenated line-item descriptions. Pure and stateless over
// the injected category table.
type Classifier struct {
	categories []Category
	fallback   string
}

// NewClassifier builds a classifier over the config's category table.
func NewClassifier(cfg *Config) *Classifier {
	return &Classifier{categories: cfg.Categories, fallback: cfg.FallbackCategory}
}

// Classify scores each category by case-insensitive substring hits in
// text and returns the highest-scoring non-zero category. Ties resolve to
// the category declared first; no hits returns the fallback category.
func (c *Classifier) Classify(text string) string {
	if strings.TrimSpace(text) == "" {
		return c.fallback
	}
	lower := strings.ToLower(text)

	best := c.fallback
	bestScore := 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = cat.Name
		}
	}
	return best
}
