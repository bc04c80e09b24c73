package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/tanya972/ThreadLife/internal/config"
	"github.com/tanya972/ThreadLife/internal/feature"
	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/pipeline"
	"github.com/tanya972/ThreadLife/internal/service"
	"github.com/tanya972/ThreadLife/internal/storage"
	"github.com/tanya972/ThreadLife/internal/synth"
	"github.com/tanya972/ThreadLife/internal/temporal"
)

// openStorage opens the configured database and brings its schema up to date.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// synthConfig resolves the synthesis configuration from viper.
func synthConfig() synth.Config {
	cfg := synth.DefaultConfig()
	if viper.IsSet("synth.seed") {
		cfg.Seed = viper.GetInt64("synth.seed")
	}
	if viper.IsSet("synth.noise_stddev") {
		cfg.NoiseStdDev = viper.GetFloat64("synth.noise_stddev")
	}
	if workers := viper.GetInt("synth.workers"); workers > 0 {
		cfg.Workers = workers
	}
	return cfg
}

// priceMode resolves the configured price-decay mode, defaulting to volatility.
func priceMode() (temporal.PriceMode, error) {
	mode := viper.GetString("price.mode")
	switch mode {
	case "", string(temporal.ModeVolatility):
		return temporal.ModeVolatility, nil
	case string(temporal.ModeMSRP):
		return temporal.ModeMSRP, nil
	default:
		return "", fmt.Errorf("invalid price.mode %q (want volatility or msrp)", mode)
	}
}

// buildRunner assembles the synthesis pipeline from configuration.
func buildRunner(store service.Storage, progress io.Writer) (*pipeline.Runner, error) {
	extractor, err := feature.NewExtractor(feature.DefaultMaterialPatterns())
	if err != nil {
		return nil, fmt.Errorf("failed to compile material patterns: %w", err)
	}
	normalizer := feature.NewNormalizer(feature.DefaultUsageIntensities())
	synthesizer := synth.New(extractor, normalizer, synth.DefaultCategoryNudges(), synthConfig())

	mode, err := priceMode()
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(store, synthesizer, temporal.NewAggregator(),
		temporal.NewPriceEstimator(mode), progress), nil
}

// aggregateFromStore recomputes the gap statistics directly from the stored
// transaction corpus. Validation uses this rather than the persisted stats so
// the signal it correlates against stays independent of the synthesis run.
func aggregateFromStore(ctx context.Context, store service.Storage, items []model.CatalogItem) (temporal.Result, error) {
	events, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return temporal.Result{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	categoryByItem := make(map[string]string, len(items))
	for _, item := range items {
		categoryByItem[item.ID] = item.Category
	}
	return temporal.NewAggregator().Aggregate(events, categoryByItem), nil
}
