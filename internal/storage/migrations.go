package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS items (
					id TEXT PRIMARY KEY,
					category TEXT NOT NULL,
					raw_category TEXT,
					description TEXT,
					product_group TEXT,
					appearance TEXT,
					colour_group TEXT,
					index_group TEXT,
					price REAL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_items_category ON items(category)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					hash TEXT PRIMARY KEY,
					date DATETIME NOT NULL,
					customer_id TEXT NOT NULL,
					item_id TEXT NOT NULL,
					price REAL NOT NULL,
					channel TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_item ON transactions(item_id)`,
				`CREATE INDEX idx_transactions_customer_date ON transactions(customer_id, date)`,

				`CREATE TABLE IF NOT EXISTS gap_stats (
					category TEXT PRIMARY KEY,
					median_gap_days REAL NOT NULL,
					mean_gap_days REAL NOT NULL,
					gap_count INTEGER NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS labels (
					item_id TEXT PRIMARY KEY,
					lifespan_months REAL NOT NULL,
					durability_score REAL NOT NULL,
					cotton_pct REAL,
					poly_pct REAL,
					wool_pct REAL,
					elastane_pct REAL,
					gap_months REAL NOT NULL,
					gap_observed INTEGER NOT NULL DEFAULT 0,
					price_decay REAL NOT NULL,
					usage_intensity REAL NOT NULL,
					category_nudge REAL NOT NULL,
					noise REAL NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS validation_reports (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					created_at DATETIME NOT NULL,
					repurchase_r REAL NOT NULL,
					repurchase_p REAL NOT NULL,
					repurchase_n INTEGER NOT NULL,
					repurchase_skipped INTEGER NOT NULL DEFAULT 0,
					price_r REAL NOT NULL,
					price_p REAL NOT NULL,
					price_n INTEGER NOT NULL,
					price_skipped INTEGER NOT NULL DEFAULT 0,
					sanity TEXT NOT NULL,
					low_confidence INTEGER NOT NULL DEFAULT 0,
					verdict TEXT NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index labels by lifespan for ranking queries",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_labels_lifespan ON labels(lifespan_months)`)
			return err
		},
	},
}

// Migrate applies all pending migrations and verifies the final version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
