package model

import "time"

// CategoryGapStats holds per-category repurchase-gap statistics. Recomputed in
// full on every pipeline run; categories with fewer than the minimum number of
// supporting gaps are never stored.
type CategoryGapStats struct {
	Category      string
	MedianGapDays float64
	MeanGapDays   float64
	Count         int
}

// SyntheticLabel is the synthesized lifespan for one item, together with every
// intermediate feature that went into it so a run can be audited after the fact.
type SyntheticLabel struct {
	CreatedAt       time.Time
	ItemID          string
	LifespanMonths  float64 // clipped to [6, 120]
	DurabilityScore float64
	CottonPct       *float64
	PolyPct         *float64
	WoolPct         *float64
	ElastanePct     *float64
	GapMonths       float64
	GapObserved     bool // false when the fallback gap was substituted
	PriceDecay      float64
	UsageIntensity  float64
	CategoryNudge   float64
	Noise           float64
}
