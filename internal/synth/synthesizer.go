// Package synth combines material features, repurchase-gap statistics, and
// price decay into a single clipped lifespan label per item.
package synth

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"runtime"
	"strings"
	"sync"

	"github.com/tanya972/ThreadLife/internal/feature"
	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/temporal"
)

const (
	lifespanFloor   = 6
	lifespanCeiling = 120
	daysPerMonth    = 30.4

	// fallbackGapMonths applies when the corpus produced no gaps at all.
	fallbackGapMonths = 8.0
	// fallbackDecay applies to items with no price observations.
	fallbackDecay = 0.2
	// maxDecay caps the decay before inversion so pdx never drops below 0.2.
	maxDecay = 0.8
)

// Config holds the tunable parameters of label synthesis. The seed must be
// fixed for a run to be reproducible; NoiseStdDev zero disables noise.
type Config struct {
	Seed        int64
	NoiseStdDev float64
	Workers     int
}

// DefaultConfig returns the default synthesis configuration.
func DefaultConfig() Config {
	return Config{
		Seed:        42,
		NoiseStdDev: 3.0,
		Workers:     runtime.NumCPU(),
	}
}

// Inputs bundles the whole-corpus aggregates that must be complete before any
// per-item synthesis starts. All fields are read-only during synthesis.
type Inputs struct {
	GapStats          map[string]model.CategoryGapStats
	PriceDecay        map[string]float64
	FallbackGapMonths float64
}

// Synthesizer derives lifespan labels. It holds no mutable state, so one
// instance may score items from any number of goroutines.
type Synthesizer struct {
	extractor  *feature.Extractor
	normalizer *feature.Normalizer
	nudges     []NudgeEntry
	config     Config
}

// New creates a Synthesizer with the given dependencies and configuration.
func New(extractor *feature.Extractor, normalizer *feature.Normalizer, nudges []NudgeEntry, config Config) *Synthesizer {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Synthesizer{
		extractor:  extractor,
		normalizer: normalizer,
		nudges:     nudges,
		config:     config,
	}
}

// FallbackGap computes the corpus-wide median gap in months over items whose
// category has supported gap statistics, or 8.0 when no gaps exist at all.
func FallbackGap(items []model.CatalogItem, stats map[string]model.CategoryGapStats) float64 {
	var observed []float64
	for _, item := range items {
		if s, ok := stats[item.Category]; ok {
			observed = append(observed, s.MedianGapDays/daysPerMonth)
		}
	}
	if len(observed) == 0 {
		return fallbackGapMonths
	}
	return temporal.Median(observed)
}

// SynthesizeAll labels every item, fanning out across the configured worker
// count. Output order matches input order regardless of scheduling, and the
// per-item noise stream depends only on (seed, item id), so retries with the
// same seed reproduce labels record for record.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, items []model.CatalogItem, inputs Inputs) ([]model.SyntheticLabel, error) {
	labels := make([]model.SyntheticLabel, len(items))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				labels[i] = s.Synthesize(items[i], inputs)
			}
		}()
	}

	var err error
feed:
	for i := range items {
		if ctx.Err() != nil {
			err = ctx.Err()
			break feed
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		// a canceled run must not be mistaken for a complete label set
		return nil, err
	}
	return labels, nil
}

// Synthesize derives the label for a single item. Pure apart from the noise
// term, which is drawn from a stream seeded by (config seed, item id).
func (s *Synthesizer) Synthesize(item model.CatalogItem, inputs Inputs) model.SyntheticLabel {
	features := s.extractor.Extract(item.Description)

	usage := s.normalizer.UsageIntensity(item.Category)
	if usage <= 0 || math.IsNaN(usage) {
		usage = 1.0
	}

	base := (30 + features.DurabilityScore*36) / usage

	gapMonths := inputs.FallbackGapMonths
	gapObserved := false
	if stats, ok := inputs.GapStats[item.Category]; ok {
		gapMonths = stats.MedianGapDays / daysPerMonth
		gapObserved = true
	}
	gapComponent := 0.6 * gapMonths

	decay, ok := inputs.PriceDecay[item.ID]
	if !ok {
		decay = fallbackDecay
	}
	if decay > maxDecay {
		decay = maxDecay
	}
	priceComponent := 8 * ((1 - decay) - 0.6)

	nudge := s.categoryNudge(item.Category)
	noise := s.noise(item.ID)

	lifespan := base + gapComponent + priceComponent + nudge + noise
	if math.IsNaN(lifespan) || math.IsInf(lifespan, 0) {
		lifespan = lifespanFloor
	}
	if lifespan < lifespanFloor {
		lifespan = lifespanFloor
	}
	if lifespan > lifespanCeiling {
		lifespan = lifespanCeiling
	}

	return model.SyntheticLabel{
		ItemID:          item.ID,
		LifespanMonths:  lifespan,
		DurabilityScore: features.DurabilityScore,
		CottonPct:       features.CottonPct,
		PolyPct:         features.PolyPct,
		WoolPct:         features.WoolPct,
		ElastanePct:     features.ElastanePct,
		GapMonths:       gapMonths,
		GapObserved:     gapObserved,
		PriceDecay:      decay,
		UsageIntensity:  usage,
		CategoryNudge:   nudge,
		Noise:           noise,
	}
}

// categoryNudge returns the first matching nudge in table-declaration order.
func (s *Synthesizer) categoryNudge(category string) float64 {
	c := strings.ToLower(category)
	for _, entry := range s.nudges {
		if strings.Contains(c, entry.Key) {
			return entry.Nudge
		}
	}
	return 0
}

// noise draws the item's noise term from a stream derived from the run seed
// and the item id, making labels independent of worker scheduling and item
// order.
func (s *Synthesizer) noise(itemID string) float64 {
	if s.config.NoiseStdDev == 0 {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(itemID))
	rng := rand.New(rand.NewSource(s.config.Seed ^ int64(h.Sum64())))
	return rng.NormFloat64() * s.config.NoiseStdDev
}
