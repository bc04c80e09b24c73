package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/model"
)

// ReplaceGapStats rewrites the gap statistics table in one transaction. The
// pipeline recomputes aggregates in full on every run; there is no merge path.
func (s *SQLiteStorage) ReplaceGapStats(ctx context.Context, stats []model.CategoryGapStats) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM gap_stats"); err != nil {
		return fmt.Errorf("failed to clear gap stats: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO gap_stats (category, median_gap_days, mean_gap_days, gap_count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, stat := range stats {
		_, err = stmt.ExecContext(ctx,
			stat.Category, stat.MedianGapDays, stat.MeanGapDays, stat.Count)
		if err != nil {
			return fmt.Errorf("failed to save gap stats for %s: %w", stat.Category, err)
		}
	}

	return tx.Commit()
}

// GetGapStats returns the stored per-category gap statistics.
func (s *SQLiteStorage) GetGapStats(ctx context.Context) ([]model.CategoryGapStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, median_gap_days, mean_gap_days, gap_count
		FROM gap_stats
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query gap stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []model.CategoryGapStats
	for rows.Next() {
		var stat model.CategoryGapStats
		err := rows.Scan(&stat.Category, &stat.MedianGapDays, &stat.MeanGapDays, &stat.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gap stats: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// ReplaceLabels rewrites the label table in one transaction so a run either
// lands completely or not at all; readers never see a partial label set.
func (s *SQLiteStorage) ReplaceLabels(ctx context.Context, labels []model.SyntheticLabel) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLabels(labels); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM labels"); err != nil {
		return fmt.Errorf("failed to clear labels: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO labels (
			item_id, lifespan_months, durability_score,
			cotton_pct, poly_pct, wool_pct, elastane_pct,
			gap_months, gap_observed, price_decay,
			usage_intensity, category_nudge, noise, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, label := range labels {
		createdAt := label.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err = stmt.ExecContext(ctx,
			label.ItemID, label.LifespanMonths, label.DurabilityScore,
			label.CottonPct, label.PolyPct, label.WoolPct, label.ElastanePct,
			label.GapMonths, label.GapObserved, label.PriceDecay,
			label.UsageIntensity, label.CategoryNudge, label.Noise, createdAt)
		if err != nil {
			return fmt.Errorf("failed to save label for %s: %w", label.ItemID, err)
		}
	}

	return tx.Commit()
}

// GetLabels returns all stored labels ordered by item id.
func (s *SQLiteStorage) GetLabels(ctx context.Context) ([]model.SyntheticLabel, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, labelSelect+" ORDER BY item_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var labels []model.SyntheticLabel
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// GetLabelByItemID returns one label, or common.ErrNotFound.
func (s *SQLiteStorage) GetLabelByItemID(ctx context.Context, itemID string) (*model.SyntheticLabel, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, labelSelect+" WHERE item_id = ?", itemID)
	label, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label for item %s: %w", itemID, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &label, nil
}

const labelSelect = `
	SELECT item_id, lifespan_months, durability_score,
	       cotton_pct, poly_pct, wool_pct, elastane_pct,
	       gap_months, gap_observed, price_decay,
	       usage_intensity, category_nudge, noise, created_at
	FROM labels`

func scanLabel(row rowScanner) (model.SyntheticLabel, error) {
	var label model.SyntheticLabel
	var cotton, poly, wool, elastane sql.NullFloat64

	err := row.Scan(&label.ItemID, &label.LifespanMonths, &label.DurabilityScore,
		&cotton, &poly, &wool, &elastane,
		&label.GapMonths, &label.GapObserved, &label.PriceDecay,
		&label.UsageIntensity, &label.CategoryNudge, &label.Noise, &label.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return label, err
		}
		return label, fmt.Errorf("failed to scan label: %w", err)
	}

	if cotton.Valid {
		label.CottonPct = &cotton.Float64
	}
	if poly.Valid {
		label.PolyPct = &poly.Float64
	}
	if wool.Valid {
		label.WoolPct = &wool.Float64
	}
	if elastane.Valid {
		label.ElastanePct = &elastane.Float64
	}
	return label, nil
}
