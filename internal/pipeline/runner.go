// Package pipeline orchestrates a full label-synthesis run: features and
// whole-corpus aggregates first, per-item synthesis second, one atomic persist
// at the end.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/service"
	"github.com/tanya972/ThreadLife/internal/synth"
	"github.com/tanya972/ThreadLife/internal/temporal"
)

// chunkSize is how many items go to the synthesizer between progress updates.
const chunkSize = 500

// Runner wires storage, the temporal reductions, and the synthesizer into one
// pipeline run.
type Runner struct {
	store       service.Storage
	synthesizer *synth.Synthesizer
	aggregator  *temporal.Aggregator
	estimator   *temporal.PriceEstimator
	progress    io.Writer // nil disables the progress bar
}

// NewRunner creates a pipeline runner. progress may be nil for quiet runs.
func NewRunner(store service.Storage, synthesizer *synth.Synthesizer, aggregator *temporal.Aggregator, estimator *temporal.PriceEstimator, progress io.Writer) *Runner {
	return &Runner{
		store:       store,
		synthesizer: synthesizer,
		aggregator:  aggregator,
		estimator:   estimator,
		progress:    progress,
	}
}

// RunResult summarizes one completed pipeline run.
type RunResult struct {
	Labels        []model.SyntheticLabel
	GapStats      []model.CategoryGapStats
	SpanDays      int
	TotalGaps     int
	LowConfidence bool
	FallbackGap   float64
}

// Run executes the full pipeline. The aggregation phase must finish before any
// synthesis starts: the fallback gap and every per-category statistic are
// whole-corpus reductions. Labels and gap stats are only persisted when the
// entire label set synthesized successfully.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	items, err := r.store.GetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, common.ErrNoItems
	}

	events, err := r.store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// phase one: whole-corpus reductions
	categoryByItem := make(map[string]string, len(items))
	for _, item := range items {
		categoryByItem[item.ID] = item.Category
	}
	aggregated := r.aggregator.Aggregate(events, categoryByItem)
	decay := r.estimator.Estimate(events, items)
	fallbackGap := synth.FallbackGap(items, aggregated.Stats)

	slog.Info("Aggregation complete",
		"categories", len(aggregated.Stats),
		"total_gaps", aggregated.TotalGaps,
		"span_days", aggregated.SpanDays,
		"fallback_gap_months", fallbackGap,
		"priced_items", len(decay))

	// phase two: per-item synthesis
	inputs := synth.Inputs{
		GapStats:          aggregated.Stats,
		PriceDecay:        decay,
		FallbackGapMonths: fallbackGap,
	}

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(items),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("Synthesizing labels..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	labels := make([]model.SyntheticLabel, 0, len(items))
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		chunk, err := r.synthesizer.SynthesizeAll(ctx, items[start:end], inputs)
		if err != nil {
			return nil, fmt.Errorf("synthesis failed: %w", err)
		}
		labels = append(labels, chunk...)
		if bar != nil {
			_ = bar.Add(end - start)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	stats := make([]model.CategoryGapStats, 0, len(aggregated.Stats))
	for _, stat := range aggregated.Stats {
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })

	if err := r.store.ReplaceGapStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to persist gap stats: %w", err)
	}
	if err := r.store.ReplaceLabels(ctx, labels); err != nil {
		return nil, fmt.Errorf("failed to persist labels: %w", err)
	}

	slog.Info("Pipeline run complete", "labels", len(labels))

	return &RunResult{
		Labels:        labels,
		GapStats:      stats,
		SpanDays:      aggregated.SpanDays,
		TotalGaps:     aggregated.TotalGaps,
		LowConfidence: aggregated.LowConfidence,
		FallbackGap:   fallbackGap,
	}, nil
}
