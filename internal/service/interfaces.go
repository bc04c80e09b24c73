// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/tanya972/ThreadLife/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ItemID    string
	Limit     int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Catalog operations
	SaveItems(ctx context.Context, items []model.CatalogItem) error
	GetItems(ctx context.Context) ([]model.CatalogItem, error)
	GetItemByID(ctx context.Context, id string) (*model.CatalogItem, error)
	CountItems(ctx context.Context) (int, error)

	// Transaction operations
	SaveTransactions(ctx context.Context, events []model.TransactionEvent) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.TransactionEvent, error)
	CountTransactions(ctx context.Context) (int, error)

	// Gap statistics (rewritten wholesale on each pipeline run)
	ReplaceGapStats(ctx context.Context, stats []model.CategoryGapStats) error
	GetGapStats(ctx context.Context) ([]model.CategoryGapStats, error)

	// Label operations (rewritten wholesale on each pipeline run)
	ReplaceLabels(ctx context.Context, labels []model.SyntheticLabel) error
	GetLabels(ctx context.Context) ([]model.SyntheticLabel, error)
	GetLabelByItemID(ctx context.Context, itemID string) (*model.SyntheticLabel, error)

	// Validation reports (append-only history)
	SaveValidationReport(ctx context.Context, report *model.ValidationReport) error
	GetLatestValidationReport(ctx context.Context) (*model.ValidationReport, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// FeatureRow is the named-feature input handed to an external lifespan model.
// Unset optional features stay nil so the model can apply its own imputation.
type FeatureRow struct {
	Category        string
	ProductGroup    string
	Appearance      string
	ColourGroup     string
	IndexGroup      string
	Price           *float64
	DurabilityScore float64
	PriceDecay      float64
}

// LifespanPredictor is the contract for the external regression model consulted
// during recommendation. Implementations may be slow or remote; callers must
// treat failures as recoverable and fall back deterministically.
type LifespanPredictor interface {
	Predict(ctx context.Context, row FeatureRow) (float64, error)
}

// RetryOptions configures retry behavior for fallible external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
