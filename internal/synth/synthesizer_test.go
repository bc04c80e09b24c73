package synth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/feature"
	"github.com/tanya972/ThreadLife/internal/model"
)

func newTestSynthesizer(t *testing.T, config Config) *Synthesizer {
	t.Helper()
	extractor, err := feature.NewExtractor(feature.DefaultMaterialPatterns())
	require.NoError(t, err)
	normalizer := feature.NewNormalizer(feature.DefaultUsageIntensities())
	return New(extractor, normalizer, DefaultCategoryNudges(), config)
}

func noiselessConfig() Config {
	return Config{Seed: 42, NoiseStdDev: 0, Workers: 2}
}

func TestSynthesize_CottonTeeScenario(t *testing.T) {
	s := newTestSynthesizer(t, noiselessConfig())

	price := 9.99
	item := model.CatalogItem{
		ID:          "tee-1",
		Category:    "t shirt",
		Description: "100% cotton jersey tee",
		Price:       &price,
	}

	// No transaction history: gap and decay both fall back.
	label := s.Synthesize(item, Inputs{
		GapStats:          map[string]model.CategoryGapStats{},
		PriceDecay:        map[string]float64{},
		FallbackGapMonths: 8.0,
	})

	assert.GreaterOrEqual(t, label.LifespanMonths, 6.0)
	assert.LessOrEqual(t, label.LifespanMonths, 120.0)
	assert.InDelta(t, 26.6, label.LifespanMonths, 10.0)

	assert.InDelta(t, 2.5, label.UsageIntensity, 1e-9)
	assert.InDelta(t, -6, label.CategoryNudge, 1e-9)
	assert.InDelta(t, 8.0, label.GapMonths, 1e-9)
	assert.False(t, label.GapObserved)
	assert.InDelta(t, 0.2, label.PriceDecay, 1e-9)
	assert.Zero(t, label.Noise)
}

func TestSynthesize_BoundsUnderExtremes(t *testing.T) {
	s := newTestSynthesizer(t, noiselessConfig())

	tests := []struct {
		name   string
		item   model.CatalogItem
		inputs Inputs
	}{
		{
			name: "maximum everything pushes toward ceiling",
			item: model.CatalogItem{ID: "a", Category: "jewelry", Description: "cotton wool cashmere linen hemp silk leather denim"},
			inputs: Inputs{
				GapStats:          map[string]model.CategoryGapStats{"jewelry": {Category: "jewelry", MedianGapDays: 1095}},
				PriceDecay:        map[string]float64{"a": 0},
				FallbackGapMonths: 8,
			},
		},
		{
			name: "minimum everything pushes toward floor",
			item: model.CatalogItem{ID: "b", Category: "sock", Description: "polyester nylon viscose"},
			inputs: Inputs{
				GapStats:          map[string]model.CategoryGapStats{"sock": {Category: "sock", MedianGapDays: 0}},
				PriceDecay:        map[string]float64{"b": 1.0},
				FallbackGapMonths: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := s.Synthesize(tt.item, tt.inputs)
			assert.GreaterOrEqual(t, label.LifespanMonths, 6.0)
			assert.LessOrEqual(t, label.LifespanMonths, 120.0)
		})
	}
}

func TestSynthesize_ObservedGapUsed(t *testing.T) {
	s := newTestSynthesizer(t, noiselessConfig())

	item := model.CatalogItem{ID: "j-1", Category: "jeans", Description: "denim jeans"}
	label := s.Synthesize(item, Inputs{
		GapStats: map[string]model.CategoryGapStats{
			"jeans": {Category: "jeans", MedianGapDays: 304, Count: 25},
		},
		PriceDecay:        map[string]float64{},
		FallbackGapMonths: 8.0,
	})

	assert.True(t, label.GapObserved)
	assert.InDelta(t, 10.0, label.GapMonths, 1e-9)
}

func TestSynthesizeAll_ReproducibleWithSeed(t *testing.T) {
	ctx := context.Background()
	items := []model.CatalogItem{
		{ID: "a", Category: "t shirt", Description: "100% cotton tee"},
		{ID: "b", Category: "jeans", Description: "denim 98% cotton 2% elastane"},
		{ID: "c", Category: "jacket", Description: "recycled polyester shell"},
	}
	inputs := Inputs{
		GapStats:          map[string]model.CategoryGapStats{},
		PriceDecay:        map[string]float64{},
		FallbackGapMonths: 8.0,
	}

	first := newTestSynthesizer(t, Config{Seed: 7, NoiseStdDev: 3.0, Workers: 3})
	second := newTestSynthesizer(t, Config{Seed: 7, NoiseStdDev: 3.0, Workers: 1})

	got1, err := first.SynthesizeAll(ctx, items, inputs)
	require.NoError(t, err)
	got2, err := second.SynthesizeAll(ctx, items, inputs)
	require.NoError(t, err)

	assert.Equal(t, got1, got2, "same seed must reproduce labels regardless of worker count")

	different := newTestSynthesizer(t, Config{Seed: 8, NoiseStdDev: 3.0, Workers: 1})
	got3, err := different.SynthesizeAll(ctx, items, inputs)
	require.NoError(t, err)
	assert.NotEqual(t, got1[0].Noise, got3[0].Noise, "different seed should draw different noise")
}

func TestSynthesizeAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSynthesizer(t, noiselessConfig())
	items := make([]model.CatalogItem, 100)
	for i := range items {
		items[i] = model.CatalogItem{ID: string(rune('a' + i%26)), Category: "t shirt"}
	}

	_, err := s.SynthesizeAll(ctx, items, Inputs{FallbackGapMonths: 8})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategoryNudge_Ordering(t *testing.T) {
	s := newTestSynthesizer(t, noiselessConfig())

	tests := []struct {
		category string
		want     float64
	}{
		{"t shirt", -6},
		{"sock", -12},
		{"coat", 12},
		{"spring dress", 2}, // "dress" must win over the "ring" substring
		{"earring", 20},
		{"unknown thing", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.categoryNudge(tt.category), 1e-9, "category %q", tt.category)
	}
}

func TestFallbackGap(t *testing.T) {
	items := []model.CatalogItem{
		{ID: "a", Category: "t shirt"},
		{ID: "b", Category: "jeans"},
		{ID: "c", Category: "unknown"},
	}
	stats := map[string]model.CategoryGapStats{
		"t shirt": {MedianGapDays: 152},
		"jeans":   {MedianGapDays: 304},
	}

	// (5 + 10) / 2 months
	assert.InDelta(t, 7.5, FallbackGap(items, stats), 1e-9)
	assert.InDelta(t, 8.0, FallbackGap(items, nil), 1e-9)
}
