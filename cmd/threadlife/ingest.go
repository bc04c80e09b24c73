package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tanya972/ThreadLife/internal/cli"
	"github.com/tanya972/ThreadLife/internal/ingest"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load catalog and transaction CSVs into the database",
		Long: `Read the catalog and transaction CSV exports and load them into SQLite.

Schema problems (missing required columns) abort the run. Rows with
unparseable dates or prices are dropped and counted. Re-ingesting the
same transaction file is safe; duplicates are skipped by content hash.`,
		RunE: runIngest,
	}

	cmd.Flags().String("catalog", "", "path to the catalog CSV")
	cmd.Flags().String("transactions", "", "path to the transactions CSV")
	_ = viper.BindPFlag("data.catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("data.transactions", cmd.Flags().Lookup("transactions"))

	return cmd
}

func runIngest(cmd *cobra.Command, _ []string) error {
	catalogPath := viper.GetString("data.catalog")
	transactionsPath := viper.GetString("data.transactions")
	if catalogPath == "" && transactionsPath == "" {
		return fmt.Errorf("nothing to ingest: pass --catalog and/or --transactions")
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if catalogPath != "" {
		items, err := ingest.ReadCatalogFile(catalogPath)
		if err != nil {
			return fmt.Errorf("catalog ingestion failed: %w", err)
		}
		if err := store.SaveItems(ctx, items); err != nil {
			return fmt.Errorf("failed to store catalog: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Ingested %d catalog items", len(items))))
	}

	if transactionsPath != "" {
		result, err := ingest.ReadTransactionsFile(transactionsPath, ingest.TransactionOptions{Progress: os.Stderr})
		if err != nil {
			return fmt.Errorf("transaction ingestion failed: %w", err)
		}
		if err := store.SaveTransactions(ctx, result.Events); err != nil {
			return fmt.Errorf("failed to store transactions: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Ingested %d transactions", len(result.Events))))
		if result.DroppedDates > 0 || result.DroppedPrices > 0 {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("Dropped %d rows with bad dates, %d with bad prices",
				result.DroppedDates, result.DroppedPrices)))
		}
	}

	return nil
}
