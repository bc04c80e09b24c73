// Package ingest reads the catalog and transaction CSV exports into domain
// records. Schema problems are fatal; bad rows inside a valid schema are
// dropped and counted.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/feature"
	"github.com/tanya972/ThreadLife/internal/model"
)

// Catalog column names, matching the upstream export.
const (
	colArticleID    = "article_id"
	colProductType  = "product_type_name"
	colDetailDesc   = "detail_desc"
	colProductGroup = "product_group_name"
	colAppearance   = "graphical_appearance_name"
	colColourGroup  = "colour_group_name"
	colIndexGroup   = "index_group_name"
	colPrice        = "price"
)

var requiredCatalogColumns = []string{colArticleID, colProductType, colDetailDesc}

// ReadCatalogFile reads a catalog CSV from disk.
func ReadCatalogFile(path string) ([]model.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close catalog file", "path", path, "error", cerr)
		}
	}()
	return ReadCatalog(f)
}

// ReadCatalog parses catalog rows. The article id, product type, and material
// description columns are required; the remaining categorical columns and the
// price are optional and default to empty/nil. Categories are canonicalized at
// ingestion so every downstream consumer sees one spelling.
func ReadCatalog(r io.Reader) ([]model.CatalogItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	cols, err := indexColumns("catalog", header, requiredCatalogColumns)
	if err != nil {
		return nil, err
	}

	var items []model.CatalogItem
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row %d: %w", line, err)
		}

		rawCategory := cols.get(record, colProductType)
		item := model.CatalogItem{
			ID:           cols.get(record, colArticleID),
			Category:     feature.NormalizeCategory(rawCategory),
			RawCategory:  rawCategory,
			Description:  cols.get(record, colDetailDesc),
			ProductGroup: cols.get(record, colProductGroup),
			Appearance:   cols.get(record, colAppearance),
			ColourGroup:  cols.get(record, colColourGroup),
			IndexGroup:   cols.get(record, colIndexGroup),
		}
		if item.ID == "" {
			slog.Warn("Dropping catalog row without article id", "line", line)
			continue
		}
		if raw := cols.get(record, colPrice); raw != "" {
			price, perr := strconv.ParseFloat(raw, 64)
			if perr == nil {
				item.Price = &price
			} else {
				slog.Warn("Ignoring unparseable catalog price", "line", line, "value", raw)
			}
		}
		items = append(items, item)
	}

	slog.Info("Catalog ingested", "items", len(items))
	return items, nil
}

// columnIndex maps lowercase column names to record positions.
type columnIndex map[string]int

// indexColumns validates the required columns exist and builds the lookup.
// A missing required column is a fatal SchemaError, never a silent default.
func indexColumns(table string, header, required []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	available := make([]string, 0, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		cols[key] = i
		available = append(available, key)
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, common.NewSchemaError(table, name, available)
		}
	}
	return cols, nil
}

// get returns the trimmed cell for a column, or "" if the column is absent or
// the row is short.
func (c columnIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
