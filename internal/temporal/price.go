package temporal

import (
	"math"

	"github.com/tanya972/ThreadLife/internal/model"
)

// PriceMode selects how the price-decay proxy is derived. Only one mode is
// active per pipeline configuration; the two are never combined.
type PriceMode string

const (
	// ModeVolatility derives decay from the coefficient of variation of
	// observed transaction prices. Used when no reference MSRP exists.
	ModeVolatility PriceMode = "volatility"
	// ModeMSRP derives decay from the discount of the median transacted price
	// against the catalog reference price.
	ModeMSRP PriceMode = "msrp"
)

// PriceEstimator computes a per-item decay fraction in [0, 1].
type PriceEstimator struct {
	Mode PriceMode
}

// NewPriceEstimator creates an estimator for the given mode.
func NewPriceEstimator(mode PriceMode) *PriceEstimator {
	return &PriceEstimator{Mode: mode}
}

// Estimate returns the decay proxy per item id. Items with no transaction
// price observations (and, in MSRP mode, no catalog price) are absent from the
// result; the synthesizer substitutes its own fallback for those.
func (p *PriceEstimator) Estimate(events []model.TransactionEvent, items []model.CatalogItem) map[string]float64 {
	pricesByItem := make(map[string][]float64)
	for _, e := range events {
		pricesByItem[e.ItemID] = append(pricesByItem[e.ItemID], e.Price)
	}

	decay := make(map[string]float64, len(pricesByItem))

	switch p.Mode {
	case ModeMSRP:
		msrp := make(map[string]float64, len(items))
		for _, item := range items {
			if item.Price != nil && *item.Price > 0 {
				msrp[item.ID] = *item.Price
			}
		}
		for itemID, prices := range pricesByItem {
			reference, ok := msrp[itemID]
			if !ok {
				continue
			}
			d := (reference - median(prices)) / reference
			decay[itemID] = clip01(d)
		}
	default:
		for itemID, prices := range pricesByItem {
			if len(prices) < 2 {
				// coefficient of variation is undefined below 2 observations
				decay[itemID] = 0
				continue
			}
			m := mean(prices)
			if m == 0 {
				decay[itemID] = 0
				continue
			}
			decay[itemID] = clip01(sampleStdDev(prices, m) / m)
		}
	}

	return decay
}

// sampleStdDev computes the sample standard deviation (n-1 denominator).
func sampleStdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func clip01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Median is exported for callers that need the same median convention as the
// aggregator (average of the two middle values on even counts).
func Median(values []float64) float64 {
	return median(values)
}
