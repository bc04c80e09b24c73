package cli

import (
	"fmt"
	"strings"

	"github.com/tanya972/ThreadLife/internal/model"
)

// RenderValidationReport renders a validation report for the terminal.
func RenderValidationReport(report *model.ValidationReport) string {
	var b strings.Builder

	b.WriteString(renderCorrelation("Repurchase-gap correlation", report.Repurchase))
	b.WriteString("\n")
	b.WriteString(renderCorrelation("Price correlation", report.Price))
	b.WriteString("\n")
	b.WriteString(renderSanity(report.Sanity))

	if report.LowConfidence {
		b.WriteString("\n")
		b.WriteString(FormatWarning("Transaction window under 30 days; gap statistics are low confidence"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if report.Verdict == model.VerdictValidated {
		b.WriteString(FormatSuccess("Verdict: " + report.Verdict))
	} else {
		b.WriteString(FormatWarning("Verdict: " + report.Verdict))
	}
	b.WriteString("\n")

	return RenderBox(ChartIcon+" Label Validation", b.String())
}

func renderCorrelation(name string, result model.CorrelationResult) string {
	if result.Skipped {
		return fmt.Sprintf("%s: %s\n", BoldStyle.Render(name),
			SubtleStyle.Render(fmt.Sprintf("skipped (n=%d, insufficient signal)", result.SampleSize)))
	}

	line := fmt.Sprintf("r=%+.3f  p=%.4f  n=%d", result.Coefficient, result.PValue, result.SampleSize)
	if result.Significant() {
		line += "  " + SuccessStyle.Render("significant")
	} else {
		line += "  " + SubtleStyle.Render("not significant")
	}
	return fmt.Sprintf("%s: %s\n", BoldStyle.Render(name), line)
}

func renderSanity(sanity model.SanityCheckResult) string {
	var b strings.Builder

	status := FormatSuccess("passed")
	if !sanity.Passed {
		status = FormatError("failed")
	}
	fmt.Fprintf(&b, "%s: %s (durable %d, fragile %d)\n",
		BoldStyle.Render("Category sanity check"), status,
		sanity.DurableMatches, sanity.FragileMatches)

	if len(sanity.Top) > 0 {
		b.WriteString(SubtleStyle.Render("Longest-lived categories:") + "\n")
		for i, ranking := range sanity.Top {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %d. %-24s %6.1f mo  (n=%d)\n",
				i+1, ranking.Category, ranking.MeanMonths, ranking.Count)
		}
	}
	if len(sanity.Bottom) > 0 {
		b.WriteString(SubtleStyle.Render("Shortest-lived categories:") + "\n")
		start := len(sanity.Bottom) - 5
		if start < 0 {
			start = 0
		}
		for i := start; i < len(sanity.Bottom); i++ {
			ranking := sanity.Bottom[i]
			fmt.Fprintf(&b, "  %d. %-24s %6.1f mo  (n=%d)\n",
				i+1, ranking.Category, ranking.MeanMonths, ranking.Count)
		}
	}

	return b.String()
}

// RenderRecommendations renders ranked material substitutions for one item.
func RenderRecommendations(item *model.CatalogItem, currentMaterial string, recs []model.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Item:"), item.ID)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Category:"), item.Category)
	fmt.Fprintf(&b, "%s %s\n\n", BoldStyle.Render("Current material:"), currentMaterial)

	if len(recs) == 0 {
		b.WriteString(SubtleStyle.Render("No viable substitutions found.") + "\n")
		return RenderBox(ShirtIcon+" Material Substitutions", b.String())
	}

	for i, rec := range recs {
		fmt.Fprintf(&b, "%s %s\n",
			TitleStyle.UnsetMargins().Render(fmt.Sprintf("%d.", i+1)),
			BoldStyle.Render(rec.Material))
		fmt.Fprintf(&b, "   lifespan  %.1f → %.1f months (%+.1f%%)\n",
			rec.CurrentLifespan, rec.PredictedLifespan, rec.LifespanGainPct)
		fmt.Fprintf(&b, "   carbon    %.1f kg CO2/kg (%+.0f%%)   water %.0f L/kg (%+.0f%%)\n",
			rec.CarbonKgCO2, -rec.CarbonDeltaPct, rec.WaterLiters, -rec.WaterDeltaPct)
		fmt.Fprintf(&b, "   env score %.1f (%+.1f)   combined %.1f\n",
			rec.EnvScore, rec.EnvScoreGain, rec.CombinedScore)
		if i < len(recs)-1 {
			b.WriteString("\n")
		}
	}

	return RenderBox(ShirtIcon+" Material Substitutions", b.String())
}
