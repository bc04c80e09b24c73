package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/model"
)

func priced(item string, prices ...float64) []model.TransactionEvent {
	events := make([]model.TransactionEvent, len(prices))
	for i, p := range prices {
		events[i] = model.TransactionEvent{
			CustomerID: "C1",
			ItemID:     item,
			Date:       day("2020-09-01").AddDate(0, 0, i),
			Price:      p,
		}
	}
	return events
}

func TestPriceEstimator_Volatility(t *testing.T) {
	e := NewPriceEstimator(ModeVolatility)

	t.Run("stable prices give zero decay", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 10, 10, 10), nil)
		require.Contains(t, decay, "item-1")
		assert.InDelta(t, 0, decay["item-1"], 1e-9)
	})

	t.Run("dispersed prices give positive decay", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 10, 20, 30), nil)
		// mean 20, sample std 10 -> cv 0.5
		assert.InDelta(t, 0.5, decay["item-1"], 1e-9)
	})

	t.Run("single observation falls back to zero", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 42), nil)
		require.Contains(t, decay, "item-1")
		assert.InDelta(t, 0, decay["item-1"], 1e-9)
	})

	t.Run("no observations means absent", func(t *testing.T) {
		decay := e.Estimate(nil, nil)
		assert.NotContains(t, decay, "item-1")
	})

	t.Run("extreme dispersion clips at one", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 0.01, 100, 0.01, 100), nil)
		assert.LessOrEqual(t, decay["item-1"], 1.0)
		assert.GreaterOrEqual(t, decay["item-1"], 0.0)
	})
}

func TestPriceEstimator_MSRP(t *testing.T) {
	e := NewPriceEstimator(ModeMSRP)
	msrp := 40.0
	items := []model.CatalogItem{{ID: "item-1", Price: &msrp}}

	t.Run("discounted median against reference", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 28, 30, 32), items)
		// (40 - 30) / 40
		assert.InDelta(t, 0.25, decay["item-1"], 1e-9)
	})

	t.Run("transacted above reference clips at zero", func(t *testing.T) {
		decay := e.Estimate(priced("item-1", 50, 52), items)
		assert.InDelta(t, 0, decay["item-1"], 1e-9)
	})

	t.Run("item without catalog price is absent", func(t *testing.T) {
		decay := e.Estimate(priced("item-2", 10, 12), items)
		assert.NotContains(t, decay, "item-2")
	})
}
