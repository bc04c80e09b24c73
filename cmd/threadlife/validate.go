package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanya972/ThreadLife/internal/cli"
	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate stored labels against independent signals",
		Long: `Run the three validation tests over the stored label set:

  - Pearson correlation between labels and category repurchase gaps
  - Pearson correlation between labels and catalog prices
  - a common-sense ranking check (outerwear should outlast underwear)

The verdict is advisory; it never feeds back into the labels.`,
		RunE: runValidate,
	}

	cmd.Flags().String("json", "", "also write the report as JSON to this path")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	jsonPath, _ := cmd.Flags().GetString("json")

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	labels, err := store.GetLabels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	if len(labels) == 0 {
		return common.ErrNoLabels
	}
	items, err := store.GetItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// the gap signal is recomputed from raw transactions, not read back from
	// the synthesis run, so the test stays independent
	aggregated, err := aggregateFromStore(ctx, store, items)
	if err != nil {
		return err
	}

	report := validate.NewEngine().Validate(labels, items, aggregated.Stats, aggregated.LowConfidence)

	if err := store.SaveValidationReport(ctx, report); err != nil {
		return fmt.Errorf("failed to save validation report: %w", err)
	}

	fmt.Println(cli.RenderValidationReport(report))

	if jsonPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Wrote JSON report to " + jsonPath))
	}

	return nil
}
