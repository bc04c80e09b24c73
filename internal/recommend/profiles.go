package recommend

import "github.com/tanya972/ThreadLife/internal/model"

// DefaultEnvironmentalProfiles returns the static material impact table:
// carbon in kg CO2 per kg of fiber, water in liters per kg, recyclability as
// a fraction, plus the base durability factor used for substitution scoring.
func DefaultEnvironmentalProfiles() map[string]model.EnvironmentalProfile {
	return map[string]model.EnvironmentalProfile{
		"cotton": {
			CarbonKgCO2: 5.9, WaterLiters: 10000, Recyclability: 0.8,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.70,
		},
		"organic_cotton": {
			CarbonKgCO2: 3.5, WaterLiters: 7000, Recyclability: 0.9,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.75,
		},
		"polyester": {
			CarbonKgCO2: 7.1, WaterLiters: 2000, Recyclability: 0.3,
			Biodegradable: false, MicroplasticShedding: true, DurabilityBase: 0.50,
		},
		"recycled_polyester": {
			CarbonKgCO2: 3.2, WaterLiters: 500, Recyclability: 0.6,
			Biodegradable: false, MicroplasticShedding: true, DurabilityBase: 0.55,
		},
		"wool": {
			CarbonKgCO2: 6.0, WaterLiters: 8000, Recyclability: 0.7,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.85,
		},
		"linen": {
			CarbonKgCO2: 2.0, WaterLiters: 3000, Recyclability: 0.9,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.80,
		},
		"hemp": {
			CarbonKgCO2: 1.8, WaterLiters: 2500, Recyclability: 0.9,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.80,
		},
		"viscose": {
			CarbonKgCO2: 4.5, WaterLiters: 6000, Recyclability: 0.4,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.55,
		},
		// lyocell, the sustainable viscose alternative
		"tencel": {
			CarbonKgCO2: 3.0, WaterLiters: 1500, Recyclability: 0.8,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.65,
		},
		"nylon": {
			CarbonKgCO2: 7.6, WaterLiters: 2500, Recyclability: 0.3,
			Biodegradable: false, MicroplasticShedding: true, DurabilityBase: 0.60,
		},
		"elastane": {
			CarbonKgCO2: 8.0, WaterLiters: 3000, Recyclability: 0.1,
			Biodegradable: false, MicroplasticShedding: true, DurabilityBase: 0.60,
		},
		"silk": {
			CarbonKgCO2: 5.5, WaterLiters: 7000, Recyclability: 0.7,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.75,
		},
		"leather": {
			CarbonKgCO2: 17.0, WaterLiters: 15000, Recyclability: 0.5,
			Biodegradable: true, MicroplasticShedding: false, DurabilityBase: 0.90,
		},
	}
}

// SubstitutionOption lists the viable alternatives for one category keyword.
// The key "default" is the per-material fallback when no category matches.
type SubstitutionOption struct {
	Category     string
	Alternatives []string
}

// SubstitutionRule holds the ordered category options for one source material.
// Option order is significant: the first category key contained in the item's
// category wins.
type SubstitutionRule struct {
	Material string
	Options  []SubstitutionOption
}

// DefaultSubstitutions returns the static substitution catalog: which
// materials can replace which, by product category.
func DefaultSubstitutions() []SubstitutionRule {
	return []SubstitutionRule{
		{
			Material: "polyester",
			Options: []SubstitutionOption{
				{Category: "activewear", Alternatives: []string{"recycled_polyester", "tencel", "hemp"}},
				{Category: "dress", Alternatives: []string{"tencel", "viscose", "organic_cotton"}},
				{Category: "jacket", Alternatives: []string{"recycled_polyester", "wool"}},
				{Category: "blouse", Alternatives: []string{"tencel", "organic_cotton", "silk"}},
				{Category: "t shirt", Alternatives: []string{"organic_cotton", "hemp", "tencel"}},
				{Category: "default", Alternatives: []string{"recycled_polyester", "tencel", "organic_cotton"}},
			},
		},
		{
			Material: "cotton",
			Options: []SubstitutionOption{
				{Category: "t shirt", Alternatives: []string{"organic_cotton", "hemp", "tencel"}},
				{Category: "jeans", Alternatives: []string{"organic_cotton", "hemp"}},
				{Category: "dress", Alternatives: []string{"linen", "tencel", "organic_cotton"}},
				{Category: "blouse", Alternatives: []string{"organic_cotton", "linen", "tencel"}},
				{Category: "sweater", Alternatives: []string{"organic_cotton", "wool"}},
				{Category: "default", Alternatives: []string{"organic_cotton", "linen", "hemp"}},
			},
		},
		{
			Material: "viscose",
			Options: []SubstitutionOption{
				{Category: "dress", Alternatives: []string{"tencel", "linen", "organic_cotton"}},
				{Category: "blouse", Alternatives: []string{"tencel", "organic_cotton", "silk"}},
				{Category: "skirt", Alternatives: []string{"tencel", "linen"}},
				{Category: "default", Alternatives: []string{"tencel", "organic_cotton"}},
			},
		},
		{
			Material: "nylon",
			Options: []SubstitutionOption{
				{Category: "activewear", Alternatives: []string{"recycled_polyester", "tencel"}},
				{Category: "underwear", Alternatives: []string{"organic_cotton", "tencel"}},
				{Category: "tights", Alternatives: []string{"recycled_polyester"}},
				{Category: "jacket", Alternatives: []string{"recycled_polyester", "wool"}},
				{Category: "default", Alternatives: []string{"recycled_polyester", "tencel"}},
			},
		},
	}
}

// generalAlternatives is suggested when a material has no substitution rule.
var generalAlternatives = []string{"organic_cotton", "tencel", "hemp", "linen"}
