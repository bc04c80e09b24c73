package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tanya972/ThreadLife/internal/model"
)

// exportHeader is the audit CSV layout: every intermediate feature alongside
// the final label so a run can be inspected or fed to model training.
var exportHeader = []string{
	"article_id", "category", "product_group", "appearance", "colour_group",
	"index_group", "price", "durability_score", "cotton_pct", "poly_pct",
	"wool_pct", "elastane_pct", "gap_months", "gap_observed", "price_decay",
	"usage_intensity", "category_nudge", "noise", "lifespan_months",
	"detail_desc",
}

// ExportCSV writes the audit CSV for a label set. Items without a label are
// skipped; the label set is authoritative for what the run covered.
func ExportCSV(w io.Writer, items []model.CatalogItem, labels []model.SyntheticLabel) error {
	labelsByItem := make(map[string]model.SyntheticLabel, len(labels))
	for _, label := range labels {
		labelsByItem[label.ItemID] = label
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, item := range items {
		label, ok := labelsByItem[item.ID]
		if !ok {
			continue
		}
		record := []string{
			item.ID,
			item.Category,
			item.ProductGroup,
			item.Appearance,
			item.ColourGroup,
			item.IndexGroup,
			formatOptional(item.Price),
			formatFloat(label.DurabilityScore),
			formatOptional(label.CottonPct),
			formatOptional(label.PolyPct),
			formatOptional(label.WoolPct),
			formatOptional(label.ElastanePct),
			formatFloat(label.GapMonths),
			strconv.FormatBool(label.GapObserved),
			formatFloat(label.PriceDecay),
			formatFloat(label.UsageIntensity),
			formatFloat(label.CategoryNudge),
			formatFloat(label.Noise),
			formatFloat(label.LifespanMonths),
			item.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write export row for %s: %w", item.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
