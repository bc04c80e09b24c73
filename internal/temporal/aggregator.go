// Package temporal computes the whole-corpus reductions over transaction
// history: per-category repurchase-gap statistics and per-item price decay.
// Both must complete before any item-level synthesis begins.
package temporal

import (
	"log/slog"
	"sort"

	"github.com/tanya972/ThreadLife/internal/model"
)

const (
	// DefaultMaxGapDays caps a believable repurchase gap. Anything longer is
	// treated as an unrelated repeat rather than a true repurchase.
	DefaultMaxGapDays = 1095
	// DefaultMinSupport is the minimum number of observed gaps a category
	// needs before its statistics count as supported.
	DefaultMinSupport = 10
	// minSpanDays is the shortest usable transaction window. Gap statistics
	// over anything shorter carry a low-confidence flag.
	minSpanDays = 30
)

// Aggregator computes CategoryGapStats from the transaction corpus.
type Aggregator struct {
	MaxGapDays int
	MinSupport int
}

// NewAggregator returns an Aggregator with the default gap cap and support
// threshold.
func NewAggregator() *Aggregator {
	return &Aggregator{
		MaxGapDays: DefaultMaxGapDays,
		MinSupport: DefaultMinSupport,
	}
}

// Result holds the aggregated gap statistics plus corpus-level signals that
// downstream validation must surface.
type Result struct {
	Stats         map[string]model.CategoryGapStats
	SpanDays      int
	TotalGaps     int
	LowConfidence bool
}

// Aggregate joins each transaction to its item's canonical category, computes
// day gaps between consecutive purchases within each (customer, category)
// group, and aggregates the surviving gaps per category. Transactions whose
// item has no resolvable category are dropped. Gaps longer than MaxGapDays are
// discarded, and categories with fewer than MinSupport gaps are not reported.
func (a *Aggregator) Aggregate(events []model.TransactionEvent, categoryByItem map[string]string) Result {
	type keyed struct {
		event    model.TransactionEvent
		category string
	}

	usable := make([]keyed, 0, len(events))
	dropped := 0
	for _, e := range events {
		category, ok := categoryByItem[e.ItemID]
		if !ok || category == "" {
			dropped++
			continue
		}
		usable = append(usable, keyed{event: e, category: category})
	}
	if dropped > 0 {
		slog.Debug("Dropped transactions without resolvable category", "count", dropped)
	}

	result := Result{Stats: make(map[string]model.CategoryGapStats)}
	if len(usable) == 0 {
		result.LowConfidence = true
		return result
	}

	sort.Slice(usable, func(i, j int) bool {
		if usable[i].event.CustomerID != usable[j].event.CustomerID {
			return usable[i].event.CustomerID < usable[j].event.CustomerID
		}
		if usable[i].category != usable[j].category {
			return usable[i].category < usable[j].category
		}
		return usable[i].event.Date.Before(usable[j].event.Date)
	})

	minDate, maxDate := usable[0].event.Date, usable[0].event.Date
	for _, k := range usable[1:] {
		if k.event.Date.Before(minDate) {
			minDate = k.event.Date
		}
		if k.event.Date.After(maxDate) {
			maxDate = k.event.Date
		}
	}
	result.SpanDays = int(maxDate.Sub(minDate).Hours() / 24)
	result.LowConfidence = result.SpanDays < minSpanDays

	gapsByCategory := make(map[string][]float64)
	for i := 1; i < len(usable); i++ {
		prev, cur := usable[i-1], usable[i]
		if prev.event.CustomerID != cur.event.CustomerID || prev.category != cur.category {
			continue // first purchase in a group has no gap
		}
		gapDays := int(cur.event.Date.Sub(prev.event.Date).Hours() / 24)
		if gapDays > a.MaxGapDays {
			continue
		}
		gapsByCategory[cur.category] = append(gapsByCategory[cur.category], float64(gapDays))
	}

	for category, gaps := range gapsByCategory {
		if len(gaps) < a.MinSupport {
			continue
		}
		result.Stats[category] = model.CategoryGapStats{
			Category:      category,
			MedianGapDays: median(gaps),
			MeanGapDays:   mean(gaps),
			Count:         len(gaps),
		}
		result.TotalGaps += len(gaps)
	}

	if result.LowConfidence {
		slog.Warn("Transaction window too short for reliable gap statistics",
			"span_days", result.SpanDays, "min_days", minSpanDays)
	}

	return result
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
