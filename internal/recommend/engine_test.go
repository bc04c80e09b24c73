package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/service"
)

type stubPredictor struct {
	result  float64
	err     error
	calls   int
	lastRow service.FeatureRow
}

func (s *stubPredictor) Predict(_ context.Context, row service.FeatureRow) (float64, error) {
	s.calls++
	s.lastRow = row
	return s.result, s.err
}

func newTestEngine(predictor service.LifespanPredictor) *Engine {
	return NewEngine(DefaultEnvironmentalProfiles(), DefaultSubstitutions(), predictor)
}

func polyesterTee() (model.CatalogItem, model.SyntheticLabel) {
	item := model.CatalogItem{
		ID:          "0100001",
		Category:    "t shirt",
		Description: "100% polyester jersey tee",
	}
	label := model.SyntheticLabel{
		ItemID:          item.ID,
		LifespanMonths:  18,
		DurabilityScore: 0.45,
		PriceDecay:      0.1,
	}
	return item, label
}

func TestRecommend_ExcludesCurrentMaterial(t *testing.T) {
	e := newTestEngine(nil)
	item, label := polyesterTee()

	recs, current, err := e.Recommend(context.Background(), item, label, 10)
	require.NoError(t, err)
	assert.Equal(t, "polyester", current)
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.NotEqual(t, current, rec.Material)
	}
}

func TestRecommend_RankedByCombinedScore(t *testing.T) {
	e := newTestEngine(nil)
	item, label := polyesterTee()

	recs, _, err := e.Recommend(context.Background(), item, label, 3)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].CombinedScore, recs[i].CombinedScore)
	}
}

func TestRecommend_TopNTruncation(t *testing.T) {
	e := newTestEngine(nil)
	item, label := polyesterTee()

	recs, _, err := e.Recommend(context.Background(), item, label, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), 2)

	// zero falls back to the default of three
	recs, _, err = e.Recommend(context.Background(), item, label, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), DefaultTopN)
}

func TestRecommend_PredictorPath(t *testing.T) {
	predictor := &stubPredictor{result: 30}
	e := newTestEngine(predictor)
	item, label := polyesterTee()

	recs, _, err := e.Recommend(context.Background(), item, label, 3)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Positive(t, predictor.calls)
	for _, rec := range recs {
		assert.InDelta(t, 30.0, rec.PredictedLifespan, 1e-9)
		// (30 - 18) / 18 * 100
		assert.InDelta(t, 66.667, rec.LifespanGainPct, 0.01)
	}
	// the feature row must carry the candidate's durability, not the item's
	assert.NotEqual(t, label.DurabilityScore, predictor.lastRow.DurabilityScore)
}

func TestRecommend_RatioFallbackOnPredictorError(t *testing.T) {
	predictor := &stubPredictor{err: errors.New("model offline")}
	e := newTestEngine(predictor)
	item, label := polyesterTee()

	recs, _, err := e.Recommend(context.Background(), item, label, 10)
	require.NoError(t, err, "prediction failures must not abort recommendations")
	require.NotEmpty(t, recs)

	profiles := DefaultEnvironmentalProfiles()
	for _, rec := range recs {
		want := label.LifespanMonths * profiles[rec.Material].DurabilityBase / label.DurabilityScore
		assert.InDelta(t, want, rec.PredictedLifespan, 1e-9)
	}
}

func TestRecommend_ZeroDurabilityUsesBaseline(t *testing.T) {
	e := newTestEngine(nil)
	item, label := polyesterTee()
	label.DurabilityScore = 0

	recs, _, err := e.Recommend(context.Background(), item, label, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	profiles := DefaultEnvironmentalProfiles()
	want := label.LifespanMonths * profiles[recs[0].Material].DurabilityBase / 0.65
	assert.InDelta(t, want, recs[0].PredictedLifespan, 1e-9)
}

func TestRecommend_CategorySpecificAlternatives(t *testing.T) {
	e := newTestEngine(nil)

	item := model.CatalogItem{
		ID:          "0200001",
		Category:    "activewear",
		Description: "polyester running top",
	}
	label := model.SyntheticLabel{ItemID: item.ID, LifespanMonths: 12, DurabilityScore: 0.5}

	recs, _, err := e.Recommend(context.Background(), item, label, 10)
	require.NoError(t, err)

	got := make(map[string]bool)
	for _, rec := range recs {
		got[rec.Material] = true
	}
	assert.True(t, got["recycled_polyester"])
	assert.True(t, got["tencel"])
	assert.True(t, got["hemp"])
	assert.False(t, got["organic_cotton"], "default row must not apply when a category matches")
}

func TestRecommend_UnknownMaterialUsesGeneralAlternatives(t *testing.T) {
	e := newTestEngine(nil)

	item := model.CatalogItem{
		ID:          "0300001",
		Category:    "dress",
		Description: "pure silk evening gown",
	}
	label := model.SyntheticLabel{ItemID: item.ID, LifespanMonths: 40, DurabilityScore: 0.8}

	recs, current, err := e.Recommend(context.Background(), item, label, 10)
	require.NoError(t, err)
	assert.Equal(t, "silk", current)

	got := make(map[string]bool)
	for _, rec := range recs {
		got[rec.Material] = true
	}
	for _, alt := range generalAlternatives {
		assert.True(t, got[alt], "expected general alternative %q", alt)
	}
}

func TestEnvironmentalScore(t *testing.T) {
	e := newTestEngine(nil)

	// hemp beats polyester on every axis
	assert.Greater(t, e.EnvironmentalScore("hemp"), e.EnvironmentalScore("polyester"))
	// recycled polyester beats virgin polyester
	assert.Greater(t, e.EnvironmentalScore("recycled_polyester"), e.EnvironmentalScore("polyester"))
	// unknown materials score like cotton
	assert.InDelta(t, e.EnvironmentalScore("cotton"), e.EnvironmentalScore("mithril"), 1e-9)

	// hand-checked composite for hemp:
	// carbon (20-1.8)/20*100*0.30 + water (20000-2500)/20000*100*0.25
	//   + 0.9*100*0.20 + 100*0.15 + 100*0.10
	want := 27.3 + 21.875 + 18.0 + 15.0 + 10.0
	assert.InDelta(t, want, e.EnvironmentalScore("hemp"), 1e-9)
}
