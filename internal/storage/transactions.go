package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/service"
)

// SaveTransactions appends transaction events, silently skipping duplicates by
// content hash so a CSV can be re-ingested without doubling the corpus.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, events []model.TransactionEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvents(events); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (hash, date, customer_id, item_id, price, channel)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, event := range events {
		if event.Hash == "" {
			event.Hash = event.GenerateHash()
		}
		_, err = stmt.ExecContext(ctx,
			event.Hash, event.Date, event.CustomerID, event.ItemID,
			event.Price, event.Channel)
		if err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns events matching the filter, ordered by customer then
// date, which is the order the temporal aggregator consumes.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.TransactionEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT hash, date, customer_id, item_id, price, channel
		FROM transactions
	`
	var conditions []string
	var args []any
	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.ItemID != "" {
		conditions = append(conditions, "item_id = ?")
		args = append(args, filter.ItemID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY customer_id, date"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.TransactionEvent
	for rows.Next() {
		var event model.TransactionEvent
		err := rows.Scan(&event.Hash, &event.Date, &event.CustomerID,
			&event.ItemID, &event.Price, &event.Channel)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CountTransactions returns the number of stored transaction events.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
