package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/model"
)

// SaveValidationReport appends a validation report. Reports are history, never
// rewritten; each pipeline run adds one.
func (s *SQLiteStorage) SaveValidationReport(ctx context.Context, report *model.ValidationReport) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if report.Verdict == "" {
		return fmt.Errorf("%w: missing verdict", ErrInvalidReport)
	}

	sanityJSON, err := json.Marshal(report.Sanity)
	if err != nil {
		return fmt.Errorf("failed to marshal sanity check: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO validation_reports (
			created_at,
			repurchase_r, repurchase_p, repurchase_n, repurchase_skipped,
			price_r, price_p, price_n, price_skipped,
			sanity, low_confidence, verdict
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.CreatedAt,
		report.Repurchase.Coefficient, report.Repurchase.PValue,
		report.Repurchase.SampleSize, report.Repurchase.Skipped,
		report.Price.Coefficient, report.Price.PValue,
		report.Price.SampleSize, report.Price.Skipped,
		string(sanityJSON), report.LowConfidence, report.Verdict)
	if err != nil {
		return fmt.Errorf("failed to save validation report: %w", err)
	}
	return nil
}

// GetLatestValidationReport returns the most recent report, or common.ErrNotFound.
func (s *SQLiteStorage) GetLatestValidationReport(ctx context.Context) (*model.ValidationReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT created_at,
		       repurchase_r, repurchase_p, repurchase_n, repurchase_skipped,
		       price_r, price_p, price_n, price_skipped,
		       sanity, low_confidence, verdict
		FROM validation_reports
		ORDER BY id DESC
		LIMIT 1
	`)

	var report model.ValidationReport
	var sanityJSON string
	err := row.Scan(&report.CreatedAt,
		&report.Repurchase.Coefficient, &report.Repurchase.PValue,
		&report.Repurchase.SampleSize, &report.Repurchase.Skipped,
		&report.Price.Coefficient, &report.Price.PValue,
		&report.Price.SampleSize, &report.Price.Skipped,
		&sanityJSON, &report.LowConfidence, &report.Verdict)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("validation report: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan validation report: %w", err)
	}

	if err := json.Unmarshal([]byte(sanityJSON), &report.Sanity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sanity check: %w", err)
	}
	return &report, nil
}
