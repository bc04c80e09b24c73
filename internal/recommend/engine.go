// Package recommend ranks sustainable material substitutions for catalog
// items, trading off predicted durability against environmental impact.
package recommend

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/tanya972/ThreadLife/internal/feature"
	"github.com/tanya972/ThreadLife/internal/model"
	"github.com/tanya972/ThreadLife/internal/service"
)

// Environmental composite weights and normalization ceilings. The composite is
// a 0-100 score; higher is better.
const (
	carbonCeiling = 20.0    // kg CO2 per kg of fiber
	waterCeiling  = 20000.0 // liters per kg of fiber

	carbonWeight       = 0.30
	waterWeight        = 0.25
	recycleWeight      = 0.20
	biodegradeWeight   = 0.15
	microplasticWeight = 0.10

	// Combined ranking: 40% durability gain, 60% environmental gain.
	lifespanShare = 0.40
	envShare      = 0.60

	// defaultDurability substitutes when an item carries no durability score.
	defaultDurability = 0.65

	// DefaultTopN is how many alternatives a recommendation returns.
	DefaultTopN = 3
)

// Engine scores material substitutions. The profile and substitution tables
// are injected at construction and shared read-only across goroutines.
type Engine struct {
	profiles      map[string]model.EnvironmentalProfile
	substitutions []SubstitutionRule
	predictor     service.LifespanPredictor
}

// NewEngine creates a recommendation engine. predictor may be nil, in which
// case every candidate uses the deterministic ratio fallback.
func NewEngine(profiles map[string]model.EnvironmentalProfile, substitutions []SubstitutionRule, predictor service.LifespanPredictor) *Engine {
	return &Engine{
		profiles:      profiles,
		substitutions: substitutions,
		predictor:     predictor,
	}
}

// Recommend returns the top-N alternative materials for an item, ranked by the
// combined durability/environment score, plus the resolved current material.
// The current material never appears among its own alternatives.
func (e *Engine) Recommend(ctx context.Context, item model.CatalogItem, label model.SyntheticLabel, topN int) ([]model.Recommendation, string, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	currentMaterial := feature.PrimaryMaterial(item.Description)
	currentEnv := e.EnvironmentalScore(currentMaterial)

	candidates := e.alternatives(currentMaterial, item.Category)

	recommendations := make([]model.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == currentMaterial {
			continue
		}
		profile, ok := e.profiles[candidate]
		if !ok {
			slog.Warn("Substitution candidate has no environmental profile", "material", candidate)
			continue
		}

		predicted := e.predictLifespan(ctx, item, label, profile)
		candidateEnv := e.EnvironmentalScore(candidate)

		gainPct := 0.0
		if label.LifespanMonths != 0 {
			gainPct = (predicted - label.LifespanMonths) / label.LifespanMonths * 100
		}
		envGain := candidateEnv - currentEnv

		rec := model.Recommendation{
			Material:          candidate,
			CurrentLifespan:   label.LifespanMonths,
			PredictedLifespan: predicted,
			LifespanGainPct:   gainPct,
			CarbonKgCO2:       profile.CarbonKgCO2,
			WaterLiters:       profile.WaterLiters,
			Recyclability:     profile.Recyclability,
			Biodegradable:     profile.Biodegradable,
			MicroplasticFree:  !profile.MicroplasticShedding,
			EnvScore:          candidateEnv,
			EnvScoreGain:      envGain,
			CombinedScore:     lifespanShare*gainPct + envShare*envGain,
		}
		if current, ok := e.profiles[currentMaterial]; ok {
			if current.CarbonKgCO2 != 0 {
				rec.CarbonDeltaPct = (current.CarbonKgCO2 - profile.CarbonKgCO2) / current.CarbonKgCO2 * 100
			}
			if current.WaterLiters != 0 {
				rec.WaterDeltaPct = (current.WaterLiters - profile.WaterLiters) / current.WaterLiters * 100
			}
		}
		recommendations = append(recommendations, rec)
	}

	// Stable sort preserves substitution-table order between tied scores.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].CombinedScore > recommendations[j].CombinedScore
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations, currentMaterial, nil
}

// alternatives resolves the candidate list for a material and category from
// the substitution catalog: first matching category key in rule order, then
// the material's default row, then the general sustainable set.
func (e *Engine) alternatives(material, category string) []string {
	c := strings.ToLower(category)
	for _, rule := range e.substitutions {
		if rule.Material != material {
			continue
		}
		var fallback []string
		for _, option := range rule.Options {
			if option.Category == "default" {
				fallback = option.Alternatives
				continue
			}
			if strings.Contains(c, option.Category) {
				return option.Alternatives
			}
		}
		return fallback
	}
	return generalAlternatives
}

// predictLifespan consults the external model with a feature row modified for
// the candidate material, falling back to a durability-ratio adjustment when
// the model fails or is absent. A prediction failure never aborts the batch.
func (e *Engine) predictLifespan(ctx context.Context, item model.CatalogItem, label model.SyntheticLabel, profile model.EnvironmentalProfile) float64 {
	if e.predictor != nil {
		row := service.FeatureRow{
			Category:        item.Category,
			ProductGroup:    item.ProductGroup,
			Appearance:      item.Appearance,
			ColourGroup:     item.ColourGroup,
			IndexGroup:      item.IndexGroup,
			Price:           item.Price,
			DurabilityScore: profile.DurabilityBase,
			PriceDecay:      label.PriceDecay,
		}
		predicted, err := e.predictor.Predict(ctx, row)
		if err == nil {
			return predicted
		}
		slog.Warn("Lifespan prediction failed, using ratio fallback",
			"item", item.ID, "error", err)
	}

	current := label.DurabilityScore
	if current == 0 {
		current = defaultDurability
	}
	return label.LifespanMonths * profile.DurabilityBase / current
}

// EnvironmentalScore computes the 0-100 composite sustainability score for a
// material: normalized inverted carbon and water footprints, recyclability,
// biodegradability, and microplastic-free status, weighted 30/25/20/15/10.
func (e *Engine) EnvironmentalScore(material string) float64 {
	profile, ok := e.profiles[material]
	if !ok {
		// unknown materials score as plain cotton
		profile, ok = e.profiles["cotton"]
		if !ok {
			return 0
		}
	}

	carbonScore := (carbonCeiling - profile.CarbonKgCO2) / carbonCeiling * 100
	if carbonScore < 0 {
		carbonScore = 0
	}
	waterScore := (waterCeiling - profile.WaterLiters) / waterCeiling * 100
	if waterScore < 0 {
		waterScore = 0
	}
	recycleScore := profile.Recyclability * 100
	biodegradeScore := 0.0
	if profile.Biodegradable {
		biodegradeScore = 100
	}
	microplasticScore := 0.0
	if !profile.MicroplasticShedding {
		microplasticScore = 100
	}

	return carbonWeight*carbonScore +
		waterWeight*waterScore +
		recycleWeight*recycleScore +
		biodegradeWeight*biodegradeScore +
		microplasticWeight*microplasticScore
}
