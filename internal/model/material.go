package model

// EnvironmentalProfile is static reference data for one material: footprint,
// end-of-life characteristics, and the base durability factor used when
// re-scoring an item under a hypothetical substitution.
type EnvironmentalProfile struct {
	CarbonKgCO2          float64
	WaterLiters          float64
	Recyclability        float64 // fraction in [0, 1]
	Biodegradable        bool
	MicroplasticShedding bool
	DurabilityBase       float64
}

// Recommendation is one ranked material substitution for an item. Ephemeral:
// recomputed per request, never persisted.
type Recommendation struct {
	Material          string
	CurrentLifespan   float64
	PredictedLifespan float64
	LifespanGainPct   float64
	CarbonKgCO2       float64
	CarbonDeltaPct    float64
	WaterLiters       float64
	WaterDeltaPct     float64
	Recyclability     float64
	Biodegradable     bool
	MicroplasticFree  bool
	EnvScore          float64
	EnvScoreGain      float64
	CombinedScore     float64
}
