// Package validate checks synthesized labels against independent behavioral
// and market signals. Its output is advisory: a report for a human or an
// external gate, never an input back into synthesis.
package validate

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tanya972/ThreadLife/internal/model"
)

const (
	// minNonZeroGaps is the smallest number of labeled items with a non-zero
	// category gap for the repurchase test to be meaningful.
	minNonZeroGaps = 100
	// minCategoryItems excludes thin categories from the sanity ranking.
	minCategoryItems = 20
	// rankWindow is how deep the sanity check looks at each end of the ranking.
	rankWindow = 20
	// verdictThreshold is the |r| the repurchase correlation must clear.
	verdictThreshold = 0.3

	daysPerMonth = 30.4
)

// Expected rank positions for the sanity check: common-sense durable and
// fragile category keywords.
var (
	expectedDurable = []string{"jacket", "coat", "jeans", "denim", "leather", "boot", "shoe"}
	expectedFragile = []string{"t-shirt", "tee", "tank", "underwear", "sock", "tights"}

	minDurableMatches = 4
	minFragileMatches = 3
)

// Engine runs the three validation tests over a full label set.
type Engine struct{}

// NewEngine creates a validation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Validate produces a ValidationReport. Labels are read, never mutated.
// lowConfidence carries the aggregator's short-window flag through to the
// report so sparse history is surfaced rather than hidden behind spurious
// correlations.
func (e *Engine) Validate(labels []model.SyntheticLabel, items []model.CatalogItem, gapStats map[string]model.CategoryGapStats, lowConfidence bool) *model.ValidationReport {
	itemsByID := make(map[string]model.CatalogItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	report := &model.ValidationReport{
		CreatedAt:     time.Now(),
		LowConfidence: lowConfidence,
	}

	report.Repurchase = e.repurchaseCorrelation(labels, itemsByID, gapStats)
	report.Price = e.priceCorrelation(labels, itemsByID)
	report.Sanity = e.sanityCheck(labels, itemsByID)

	if math.Abs(report.Repurchase.Coefficient) > verdictThreshold && report.Sanity.Passed {
		report.Verdict = model.VerdictValidated
	} else {
		report.Verdict = model.VerdictNeedsImprovement
	}

	slog.Info("Validation complete",
		"repurchase_r", report.Repurchase.Coefficient,
		"repurchase_p", report.Repurchase.PValue,
		"price_r", report.Price.Coefficient,
		"sanity_passed", report.Sanity.Passed,
		"verdict", report.Verdict)

	return report
}

// repurchaseCorrelation joins labels to their category gap statistics and
// correlates lifespan with gap months. With fewer than minNonZeroGaps items
// showing a non-zero gap, the test is skipped and reports (0, 1) instead of a
// misleading coefficient.
func (e *Engine) repurchaseCorrelation(labels []model.SyntheticLabel, itemsByID map[string]model.CatalogItem, gapStats map[string]model.CategoryGapStats) model.CorrelationResult {
	var lifespans, gaps []float64
	nonZero := 0
	for _, label := range labels {
		item, ok := itemsByID[label.ItemID]
		if !ok {
			continue
		}
		stats, ok := gapStats[item.Category]
		if !ok {
			continue
		}
		gapMonths := stats.MedianGapDays / daysPerMonth
		lifespans = append(lifespans, label.LifespanMonths)
		gaps = append(gaps, gapMonths)
		if gapMonths > 0 {
			nonZero++
		}
	}

	if nonZero < minNonZeroGaps {
		slog.Warn("Skipping repurchase correlation: insufficient non-zero gaps",
			"non_zero", nonZero, "required", minNonZeroGaps)
		return model.CorrelationResult{Coefficient: 0, PValue: 1, SampleSize: len(lifespans), Skipped: true}
	}

	r, p := Pearson(lifespans, gaps)
	return model.CorrelationResult{Coefficient: r, PValue: p, SampleSize: len(lifespans)}
}

// priceCorrelation correlates lifespan with raw catalog price over items that
// have one.
func (e *Engine) priceCorrelation(labels []model.SyntheticLabel, itemsByID map[string]model.CatalogItem) model.CorrelationResult {
	var lifespans, prices []float64
	for _, label := range labels {
		item, ok := itemsByID[label.ItemID]
		if !ok || item.Price == nil {
			continue
		}
		lifespans = append(lifespans, label.LifespanMonths)
		prices = append(prices, *item.Price)
	}

	if len(lifespans) < 3 {
		return model.CorrelationResult{Coefficient: 0, PValue: 1, SampleSize: len(lifespans), Skipped: true}
	}

	r, p := Pearson(lifespans, prices)
	return model.CorrelationResult{Coefficient: r, PValue: p, SampleSize: len(lifespans)}
}

// sanityCheck ranks categories by mean label and verifies that enough
// expected-durable keywords land in the top of the ranking and enough
// expected-fragile keywords land in the bottom.
func (e *Engine) sanityCheck(labels []model.SyntheticLabel, itemsByID map[string]model.CatalogItem) model.SanityCheckResult {
	type accum struct {
		sum   float64
		count int
	}
	byCategory := make(map[string]*accum)
	for _, label := range labels {
		item, ok := itemsByID[label.ItemID]
		if !ok || item.Category == "" {
			continue
		}
		a := byCategory[item.Category]
		if a == nil {
			a = &accum{}
			byCategory[item.Category] = a
		}
		a.sum += label.LifespanMonths
		a.count++
	}

	rankings := make([]model.CategoryRanking, 0, len(byCategory))
	for category, a := range byCategory {
		if a.count < minCategoryItems {
			continue
		}
		rankings = append(rankings, model.CategoryRanking{
			Category:   category,
			MeanMonths: a.sum / float64(a.count),
			Count:      a.count,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].MeanMonths != rankings[j].MeanMonths {
			return rankings[i].MeanMonths > rankings[j].MeanMonths
		}
		return rankings[i].Category < rankings[j].Category
	})

	top := rankings
	if len(top) > rankWindow {
		top = rankings[:rankWindow]
	}
	bottom := rankings
	if len(bottom) > rankWindow {
		bottom = rankings[len(rankings)-rankWindow:]
	}

	result := model.SanityCheckResult{
		Top:    top,
		Bottom: bottom,
	}
	result.DurableMatches = countKeywordHits(expectedDurable, top)
	result.FragileMatches = countKeywordHits(expectedFragile, bottom)
	result.Passed = result.DurableMatches >= minDurableMatches && result.FragileMatches >= minFragileMatches

	return result
}

// countKeywordHits counts how many expected keywords appear as substrings of
// at least one ranked category. Hyphens in keywords are relaxed so "t-shirt"
// also hits the canonical "t shirt" key.
func countKeywordHits(keywords []string, rankings []model.CategoryRanking) int {
	hits := 0
	for _, keyword := range keywords {
		relaxed := strings.ReplaceAll(keyword, "-", " ")
		for _, ranking := range rankings {
			c := strings.ToLower(ranking.Category)
			if strings.Contains(c, keyword) || strings.Contains(c, relaxed) {
				hits++
				break
			}
		}
	}
	return hits
}
