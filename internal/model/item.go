// Package model defines the domain records shared across the pipeline.
package model

// CatalogItem is one immutable row of the ingested catalog. The opaque
// categorical columns (product group, appearance, colour, index group) are
// carried through for the audit export but never interpreted.
type CatalogItem struct {
	ID           string
	Category     string // canonical key, see feature.NormalizeCategory
	RawCategory  string // product type as ingested
	Description  string // free-text material description
	ProductGroup string
	Appearance   string
	ColourGroup  string
	IndexGroup   string
	Price        *float64 // nil when the catalog has no price
}

// MaterialFeatures is derived deterministically from one item's description.
// Composition shares are nil when the description carries no percentage pairs.
type MaterialFeatures struct {
	DurabilityScore float64 // clipped to [0.40, 1.20]
	CottonPct       *float64
	PolyPct         *float64
	WoolPct         *float64
	ElastanePct     *float64
	PrimaryMaterial string
}
