package synth

// NudgeEntry maps a category keyword to a fixed additive lifespan adjustment
// in months. Lookup is by substring containment in declaration order, so the
// ordering below is load-bearing ("dress" must match before "ring").
type NudgeEntry struct {
	Key   string
	Nudge float64
}

// DefaultCategoryNudges returns the default category nudge table.
func DefaultCategoryNudges() []NudgeEntry {
	return []NudgeEntry{
		// Fast fashion / high wear items
		{Key: "t shirt", Nudge: -6},
		{Key: "tshirt", Nudge: -6},
		{Key: "vest", Nudge: -6},
		{Key: "tank", Nudge: -6},
		{Key: "sock", Nudge: -12},
		{Key: "underwear", Nudge: -10},
		{Key: "tights", Nudge: -10},

		// Durable items
		{Key: "jeans", Nudge: 8},
		{Key: "denim", Nudge: 8},
		{Key: "sweater", Nudge: 6},
		{Key: "cardigan", Nudge: 5},
		{Key: "jacket", Nudge: 10},
		{Key: "coat", Nudge: 12},
		{Key: "blazer", Nudge: 8},

		// Medium durability
		{Key: "dress", Nudge: 2},
		{Key: "skirt", Nudge: 3},
		{Key: "trousers", Nudge: 5},
		{Key: "shorts", Nudge: 2},

		// Low wear items that rarely wear out from use
		{Key: "jewelry", Nudge: 20},
		{Key: "earring", Nudge: 20},
		{Key: "necklace", Nudge: 20},
		{Key: "ring", Nudge: 20},
		{Key: "belt", Nudge: 12},
		{Key: "bag", Nudge: 10},
		{Key: "sunglasses", Nudge: 8},

		// Special cases
		{Key: "swimwear", Nudge: -5},
		{Key: "bikini", Nudge: -5},
		{Key: "activewear", Nudge: -4},
	}
}
