// Package feature turns free-text material descriptions and raw product-type
// strings into the scalar features consumed by label synthesis.
package feature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tanya972/ThreadLife/internal/model"
)

const (
	baselineScore = 0.65
	scoreFloor    = 0.40
	scoreCeiling  = 1.20
	blendBonus    = 0.05
	weightCenter  = 0.60
)

// shareRegex captures "<integer>% <word>" pairs like "60% wool 40% poly".
var shareRegex = regexp.MustCompile(`(\d{1,3})\s*%\s*([a-z]+)`)

// Extractor derives material features from description text. The pattern table
// is injected at construction so tests can substitute synthetic tables.
type Extractor struct {
	patterns []MaterialPattern
	compiled []*regexp.Regexp
}

// NewExtractor compiles the given material pattern table into an Extractor.
func NewExtractor(patterns []MaterialPattern) (*Extractor, error) {
	e := &Extractor{
		patterns: patterns,
		compiled: make([]*regexp.Regexp, len(patterns)),
	}
	for i, p := range patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid material pattern %q: %w", p.Name, err)
		}
		e.compiled[i] = re
	}
	return e, nil
}

// Score returns a durability score in [0.40, 1.20] for the description.
// Every pattern that matches contributes additively; an empty description
// yields exactly the 0.65 baseline. If nothing matches but the text mentions
// a blend, a small fixed bonus applies.
func (e *Extractor) Score(desc string) float64 {
	if desc == "" {
		return baselineScore
	}
	s := strings.ToLower(desc)

	score := baselineScore
	hits := 0
	for i, p := range e.patterns {
		if e.compiled[i].MatchString(s) {
			score += p.Weight - weightCenter
			hits++
		}
	}
	if hits == 0 && strings.Contains(s, "blend") {
		score += blendBonus
	}

	return clip(score, scoreFloor, scoreCeiling)
}

// Extract returns the full feature record for one description.
func (e *Extractor) Extract(desc string) model.MaterialFeatures {
	shares := extractShares(desc)
	return model.MaterialFeatures{
		DurabilityScore: e.Score(desc),
		CottonPct:       shares.cotton,
		PolyPct:         shares.poly,
		WoolPct:         shares.wool,
		ElastanePct:     shares.elastane,
		PrimaryMaterial: PrimaryMaterial(desc),
	}
}

type compositionShares struct {
	cotton   *float64
	poly     *float64
	wool     *float64
	elastane *float64
}

// extractShares accumulates integer percentages per material family in text
// order and converts them to fractions. Distinct words in the same family
// ("polyamide", "polyester") add up to one share. Unrecognized materials are
// ignored; when no percentage pairs exist at all, every share stays unknown.
func extractShares(desc string) compositionShares {
	var out compositionShares
	if desc == "" {
		return out
	}
	s := strings.ToLower(desc)

	accum := make(map[string]int)
	for _, m := range shareRegex.FindAllStringSubmatch(s, -1) {
		pct, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		family := shareFamily(m[2])
		if family == "" {
			continue
		}
		accum[family] += pct
	}

	if pct, ok := accum["cotton"]; ok {
		out.cotton = ptr(float64(pct) / 100.0)
	}
	if pct, ok := accum["poly"]; ok {
		out.poly = ptr(float64(pct) / 100.0)
	}
	if pct, ok := accum["wool"]; ok {
		out.wool = ptr(float64(pct) / 100.0)
	}
	if pct, ok := accum["elastane"]; ok {
		out.elastane = ptr(float64(pct) / 100.0)
	}
	return out
}

// shareFamily maps a matched material word onto its composition-share family,
// or "" when the word belongs to no tracked family.
func shareFamily(word string) string {
	switch {
	case strings.Contains(word, "cotton"):
		return "cotton"
	case strings.Contains(word, "poly"):
		return "poly"
	case strings.Contains(word, "wool"):
		return "wool"
	case strings.Contains(word, "elastane"), strings.Contains(word, "spandex"):
		return "elastane"
	}
	return ""
}

// materialPriority is the first-match-wins scan order for resolving an item's
// primary material, most specific names first.
var materialPriority = []string{
	"organic_cotton", "recycled_polyester", "tencel",
	"cotton", "polyester", "wool", "linen", "hemp",
	"viscose", "nylon", "elastane", "silk", "leather",
}

// PrimaryMaterial resolves the dominant material named in a description.
// Returns "cotton" when nothing in the priority list matches.
func PrimaryMaterial(desc string) string {
	if desc == "" {
		return "cotton"
	}
	s := strings.ToLower(desc)
	for _, mat := range materialPriority {
		spaced := strings.ReplaceAll(mat, "_", " ")
		if strings.Contains(s, spaced) || strings.Contains(s, mat) {
			return mat
		}
	}
	return "cotton"
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ptr(f float64) *float64 { return &f }
