package feature

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"hyphenated", "T-shirt", "t shirt"},
		{"surrounding noise", "  Jeans!!  ", "jeans"},
		{"parentheses collapse", "Vest top (Solid)", "vest top solid"},
		{"digits removed", "Bikini 2-pack", "bikini pack"},
		{"already canonical", "sweater", "sweater"},
		{"empty", "", ""},
		{"only symbols", "#@! 42", ""},
	}

	canonical := regexp.MustCompile(`^([a-z]+( [a-z]+)*)?$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategory(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, canonical, got, "canonical keys contain only lowercase letters and single spaces")
		})
	}
}

func TestNormalizer_UsageIntensity(t *testing.T) {
	n := NewNormalizer(DefaultUsageIntensities())

	tests := []struct {
		name     string
		category string
		want     float64
	}{
		{"socks wear daily", "sock", 3.0},
		{"t shirt", "t shirt", 2.5},
		{"vest top wins over bare top", "vest top", 2.5},
		{"jewelry barely wears", "jewelry ring", 0.2},
		{"dress matches before ring substring", "spring dress", 1.2},
		{"coat", "coat", 0.7},
		{"unmatched defaults to one", "gadget", 1.0},
		{"empty defaults to one", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, n.UsageIntensity(tt.category), 1e-9)
		})
	}
}

func TestNormalizer_TableInjection(t *testing.T) {
	n := NewNormalizer([]UsageIntensityEntry{{Key: "widget", Multiplier: 9.9}})
	assert.InDelta(t, 9.9, n.UsageIntensity("widget holder"), 1e-9)
	assert.InDelta(t, 1.0, n.UsageIntensity("sock"), 1e-9)
}
