package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/model"
)

// SaveItems upserts catalog items. Re-ingesting the same catalog replaces rows
// in place; items are source records and carry no derived state to preserve.
func (s *SQLiteStorage) SaveItems(ctx context.Context, items []model.CatalogItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO items (
			id, category, raw_category, description,
			product_group, appearance, colour_group, index_group, price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		_, err = stmt.ExecContext(ctx,
			item.ID, item.Category, item.RawCategory, item.Description,
			item.ProductGroup, item.Appearance, item.ColourGroup, item.IndexGroup,
			item.Price)
		if err != nil {
			return fmt.Errorf("failed to save item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// GetItems returns the full catalog ordered by item id.
func (s *SQLiteStorage) GetItems(ctx context.Context) ([]model.CatalogItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, raw_category, description,
		       product_group, appearance, colour_group, index_group, price
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItemByID returns one catalog item, or common.ErrNotFound.
func (s *SQLiteStorage) GetItemByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, raw_category, description,
		       product_group, appearance, colour_group, index_group, price
		FROM items
		WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CountItems returns the number of catalog items.
func (s *SQLiteStorage) CountItems(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (model.CatalogItem, error) {
	var item model.CatalogItem
	var rawCategory, description, productGroup, appearance, colourGroup, indexGroup sql.NullString
	var price sql.NullFloat64

	err := row.Scan(&item.ID, &item.Category, &rawCategory, &description,
		&productGroup, &appearance, &colourGroup, &indexGroup, &price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("failed to scan item: %w", err)
	}

	item.RawCategory = rawCategory.String
	item.Description = description.String
	item.ProductGroup = productGroup.String
	item.Appearance = appearance.String
	item.ColourGroup = colourGroup.String
	item.IndexGroup = indexGroup.String
	if price.Valid {
		item.Price = &price.Float64
	}
	return item, nil
}
