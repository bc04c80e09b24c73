package feature

// MaterialPattern maps a material keyword pattern to its durability weight.
// Declaration order matters for specificity: "recycled polyester" must be
// listed before bare "polyester" so the more specific pattern is evaluated
// first. Matching is cumulative, not first-match-wins: every pattern that
// matches contributes its centered weight (weight - 0.60) to the score.
type MaterialPattern struct {
	Name   string
	Regex  string
	Weight float64
}

// DefaultMaterialPatterns returns the default keyword-to-weight table.
func DefaultMaterialPatterns() []MaterialPattern {
	return []MaterialPattern{
		{Name: "cotton", Regex: `100\s*%\s*cotton|cotton`, Weight: 1.0},
		{Name: "recycled polyester", Regex: `recycled polyester`, Weight: 0.50},
		{Name: "polyester", Regex: `polyester|poly\b`, Weight: 0.45},
		{Name: "wool", Regex: `wool`, Weight: 0.85},
		{Name: "cashmere", Regex: `cashmere`, Weight: 0.90},
		{Name: "linen", Regex: `linen`, Weight: 0.80},
		{Name: "hemp", Regex: `hemp`, Weight: 0.80},
		{Name: "nylon", Regex: `nylon|polyamide`, Weight: 0.50},
		{Name: "viscose", Regex: `viscose|rayon`, Weight: 0.55},
		{Name: "elastane", Regex: `elastane|spandex`, Weight: 0.60},
		{Name: "silk", Regex: `silk`, Weight: 0.75},
		{Name: "leather", Regex: `leather`, Weight: 0.90},
		{Name: "denim", Regex: `denim`, Weight: 0.80},
	}
}

// UsageIntensityEntry maps a category keyword to how frequently items of that
// kind are worn. Higher means more frequent use and a shorter expected life.
type UsageIntensityEntry struct {
	Key        string
	Multiplier float64
}

// DefaultUsageIntensities returns the usage-intensity table. Lookup is by
// substring containment in declaration order; the ordering from ~0.2 (jewelry)
// to 3.0 (socks, underwear) is domain knowledge and must be preserved.
func DefaultUsageIntensities() []UsageIntensityEntry {
	return []UsageIntensityEntry{
		// Very high usage (worn daily)
		{Key: "sock", Multiplier: 3.0},
		{Key: "underwear", Multiplier: 3.0},
		{Key: "bra", Multiplier: 2.8},
		{Key: "tights", Multiplier: 2.8},
		{Key: "brief", Multiplier: 3.0},

		// High usage (worn multiple times per week)
		{Key: "t shirt", Multiplier: 2.5},
		{Key: "tshirt", Multiplier: 2.5},
		{Key: "vest top", Multiplier: 2.5},
		{Key: "vest", Multiplier: 2.5},
		{Key: "tank", Multiplier: 2.5},
		{Key: "top", Multiplier: 2.0},
		{Key: "leggings", Multiplier: 2.3},

		// Medium usage (worn weekly)
		{Key: "jeans", Multiplier: 1.5},
		{Key: "trousers", Multiplier: 1.5},
		{Key: "shorts", Multiplier: 1.8},
		{Key: "skirt", Multiplier: 1.6},
		{Key: "blouse", Multiplier: 1.7},
		{Key: "shirt", Multiplier: 1.6},
		{Key: "sweater", Multiplier: 1.4},
		{Key: "cardigan", Multiplier: 1.4},
		{Key: "dress", Multiplier: 1.2},

		// Low usage (occasional wear)
		{Key: "jacket", Multiplier: 0.8},
		{Key: "coat", Multiplier: 0.7},
		{Key: "blazer", Multiplier: 0.8},
		{Key: "suit", Multiplier: 0.6},
		{Key: "outdoor", Multiplier: 0.9},

		// Very low usage (rarely worn out from use)
		{Key: "jewelry", Multiplier: 0.2},
		{Key: "earring", Multiplier: 0.2},
		{Key: "necklace", Multiplier: 0.2},
		{Key: "ring", Multiplier: 0.2},
		{Key: "bracelet", Multiplier: 0.2},
		{Key: "accessory", Multiplier: 0.3},
		{Key: "belt", Multiplier: 0.5},
		{Key: "bag", Multiplier: 0.6},
		{Key: "scarf", Multiplier: 0.5},
		{Key: "sunglasses", Multiplier: 0.4},

		// Special cases (wear out from specific use)
		{Key: "swimwear", Multiplier: 1.5},
		{Key: "bikini", Multiplier: 1.5},
		{Key: "activewear", Multiplier: 2.0},
		{Key: "sportswear", Multiplier: 2.0},
	}
}
