package feature

import (
	"regexp"
	"strings"
)

// nonAlpha matches every run of non-alphabetic characters.
var nonAlpha = regexp.MustCompile(`[^a-z]+`)

// NormalizeCategory maps a raw product-type string to its canonical key:
// lowercase, every run of non-alphabetic characters collapsed to a single
// space, trimmed. The result contains only lowercase letters and single spaces.
func NormalizeCategory(raw string) string {
	s := strings.ToLower(raw)
	s = nonAlpha.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalizer resolves usage-intensity multipliers for canonical categories.
type Normalizer struct {
	intensities []UsageIntensityEntry
}

// NewNormalizer creates a Normalizer over the given intensity table.
func NewNormalizer(intensities []UsageIntensityEntry) *Normalizer {
	return &Normalizer{intensities: intensities}
}

// UsageIntensity returns the usage multiplier for a category. Lookup is by
// substring containment; the first table entry (in declaration order) whose
// key appears in the category wins. Unmatched categories default to 1.0.
func (n *Normalizer) UsageIntensity(category string) float64 {
	c := strings.ToLower(category)
	for _, entry := range n.intensities {
		if strings.Contains(c, entry.Key) {
			return entry.Multiplier
		}
	}
	return 1.0
}
