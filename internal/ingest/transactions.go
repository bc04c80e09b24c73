package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tanya972/ThreadLife/internal/model"
)

// Transaction column names, matching the upstream export.
const (
	colDate       = "t_dat"
	colCustomerID = "customer_id"
	colTxArticle  = "article_id"
	colTxPrice    = "price"
	colChannel    = "sales_channel_id"
)

var requiredTransactionColumns = []string{colDate, colCustomerID, colTxArticle, colTxPrice}

// dateLayouts are tried in order when parsing transaction dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// TransactionResult is the outcome of a transaction ingestion pass.
type TransactionResult struct {
	Events        []model.TransactionEvent
	DroppedDates  int
	DroppedPrices int
}

// TransactionOptions tunes a transaction ingestion pass.
type TransactionOptions struct {
	// Progress, when non-nil, receives an indeterminate progress bar. The
	// transaction corpus is orders of magnitude larger than the catalog.
	Progress io.Writer
}

// ReadTransactionsFile reads a transaction CSV from disk.
func ReadTransactionsFile(path string, opts TransactionOptions) (*TransactionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close transactions file", "path", path, "error", cerr)
		}
	}()
	return ReadTransactions(f, opts)
}

// ReadTransactions parses transaction rows. Rows with unparseable dates or
// prices are dropped and counted, never included as null-gap contributors.
// Each event carries a content hash for duplicate detection on re-ingestion.
func ReadTransactions(r io.Reader, opts TransactionOptions) (*TransactionResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions header: %w", err)
	}
	cols, err := indexColumns("transactions", header, requiredTransactionColumns)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Ingesting transactions..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
		)
	}

	result := &TransactionResult{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read transaction row %d: %w", line, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}

		date, ok := parseDate(cols.get(record, colDate))
		if !ok {
			result.DroppedDates++
			continue
		}
		price, perr := strconv.ParseFloat(cols.get(record, colTxPrice), 64)
		if perr != nil {
			result.DroppedPrices++
			continue
		}

		event := model.TransactionEvent{
			Date:       date,
			CustomerID: cols.get(record, colCustomerID),
			ItemID:     cols.get(record, colTxArticle),
			Price:      price,
			Channel:    cols.get(record, colChannel),
		}
		event.Hash = event.GenerateHash()
		result.Events = append(result.Events, event)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if result.DroppedDates > 0 {
		slog.Warn("Dropped transactions with unparseable dates", "count", result.DroppedDates)
	}
	if result.DroppedPrices > 0 {
		slog.Warn("Dropped transactions with unparseable prices", "count", result.DroppedPrices)
	}
	slog.Info("Transactions ingested",
		"events", len(result.Events),
		"dropped_dates", result.DroppedDates,
		"dropped_prices", result.DroppedPrices)

	return result, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
