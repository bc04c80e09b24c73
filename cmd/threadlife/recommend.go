package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tanya972/ThreadLife/internal/cli"
	"github.com/tanya972/ThreadLife/internal/common"
	"github.com/tanya972/ThreadLife/internal/recommend"
	"github.com/tanya972/ThreadLife/internal/service"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [item-id]",
		Short: "Rank sustainable material substitutions",
		Long: `Rank alternative materials for an item by trading off predicted
lifespan gain against environmental impact. Requires synthesized labels;
run 'threadlife synthesize' first.

With --all, print the best substitution for every labeled item instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().Int("top", 3, "number of alternatives to show")
	cmd.Flags().Bool("all", false, "summarize the best substitution for the whole catalog")
	_ = viper.BindPFlag("recommend.top_n", cmd.Flags().Lookup("top"))

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	topN := viper.GetInt("recommend.top_n")

	if !all && len(args) == 0 {
		return fmt.Errorf("pass an item id, or --all for a catalog summary")
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// no external lifespan model is wired in; the engine falls back to the
	// deterministic durability-ratio estimate
	engine := recommend.NewEngine(recommend.DefaultEnvironmentalProfiles(),
		recommend.DefaultSubstitutions(), nil)

	if all {
		return recommendAll(cmd, store, engine, topN)
	}

	itemID := args[0]
	item, err := store.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	label, err := store.GetLabelByItemID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%w (run 'threadlife synthesize' first)", err)
	}

	recs, currentMaterial, err := engine.Recommend(ctx, *item, *label, topN)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderRecommendations(item, currentMaterial, recs))
	return nil
}

func recommendAll(cmd *cobra.Command, store service.Storage, engine *recommend.Engine, topN int) error {
	ctx := cmd.Context()

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
	itemsByID := make(map[string]int, len(items))
	for i, item := range items {
		itemsByID[item.ID] = i
	}

	fmt.Println(cli.FormatTitle("Best substitution per item"))
	improved := 0
	for _, label := range labels {
		idx, ok := itemsByID[label.ItemID]
		if !ok {
			continue
		}
		item := items[idx]
		recs, currentMaterial, err := engine.Recommend(ctx, item, label, topN)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			continue
		}
		best := recs[0]
		if best.CombinedScore <= 0 {
			continue
		}
		improved++
		fmt.Printf("%-12s %-20s %s → %s  (lifespan %+.1f%%, env %+.1f, score %.1f)\n",
			item.ID, item.Category, currentMaterial, best.Material,
			best.LifespanGainPct, best.EnvScoreGain, best.CombinedScore)
	}
	fmt.Println(cli.FormatInfo(fmt.Sprintf("%d of %d items have a beneficial substitution", improved, len(labels))))
	return nil
}
