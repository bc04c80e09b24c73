package temporal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func event(customer, item, date string) model.TransactionEvent {
	return model.TransactionEvent{
		CustomerID: customer,
		ItemID:     item,
		Date:       day(date),
		Price:      10,
	}
}

// repeatPurchases builds n+1 purchases of the same item by distinct customers,
// each pair gapDays apart, producing n observed gaps.
func repeatPurchases(item string, n, gapDays int) []model.TransactionEvent {
	events := make([]model.TransactionEvent, 0, 2*n)
	start := day("2020-01-01")
	for i := 0; i < n; i++ {
		customer := fmt.Sprintf("C%d", i)
		first := start.AddDate(0, 0, i)
		events = append(events,
			model.TransactionEvent{CustomerID: customer, ItemID: item, Date: first, Price: 10},
			model.TransactionEvent{CustomerID: customer, ItemID: item, Date: first.AddDate(0, 0, gapDays), Price: 10},
		)
	}
	return events
}

func TestAggregator_BasicGaps(t *testing.T) {
	a := NewAggregator()
	a.MinSupport = 1

	events := []model.TransactionEvent{
		event("C1", "tee-1", "2020-09-01"),
		event("C1", "tee-1", "2020-10-01"), // 30 day gap
		event("C1", "tee-1", "2020-11-15"), // 45 day gap
		event("C2", "jeans-1", "2020-09-10"),
	}
	categories := map[string]string{"tee-1": "t shirt", "jeans-1": "jeans"}

	result := a.Aggregate(events, categories)

	require.Contains(t, result.Stats, "t shirt")
	stats := result.Stats["t shirt"]
	assert.InDelta(t, 37.5, stats.MedianGapDays, 1e-9)
	assert.InDelta(t, 37.5, stats.MeanGapDays, 1e-9)
	assert.Equal(t, 2, stats.Count)

	// single purchase contributes no gap
	assert.NotContains(t, result.Stats, "jeans")
}

func TestAggregator_ExcludesLongGaps(t *testing.T) {
	a := NewAggregator()
	a.MinSupport = 1

	events := []model.TransactionEvent{
		event("C1", "coat-1", "2020-01-01"),
		event("C1", "coat-1", "2023-04-15"), // 1200 days, unrelated repeat
	}
	categories := map[string]string{"coat-1": "coat"}

	result := a.Aggregate(events, categories)
	assert.NotContains(t, result.Stats, "coat", "gaps over 1095 days must be dropped")

	// a gap of exactly the cap survives
	events[1].Date = events[0].Date.AddDate(0, 0, 1095)
	result = a.Aggregate(events, categories)
	require.Contains(t, result.Stats, "coat")
	assert.InDelta(t, 1095, result.Stats["coat"].MedianGapDays, 1e-9)
}

func TestAggregator_MinSupport(t *testing.T) {
	a := NewAggregator()

	events := repeatPurchases("sock-1", 9, 14) // only 9 gaps
	categories := map[string]string{"sock-1": "sock"}
	result := a.Aggregate(events, categories)
	assert.NotContains(t, result.Stats, "sock", "9 gaps is below the support threshold")

	events = repeatPurchases("sock-1", 10, 14)
	result = a.Aggregate(events, categories)
	require.Contains(t, result.Stats, "sock")
	assert.Equal(t, 10, result.Stats["sock"].Count)
	assert.Equal(t, 10, result.TotalGaps)
}

func TestAggregator_DropsUnresolvableCategories(t *testing.T) {
	a := NewAggregator()
	a.MinSupport = 1

	events := []model.TransactionEvent{
		event("C1", "ghost-1", "2020-09-01"),
		event("C1", "ghost-1", "2020-10-01"),
	}

	result := a.Aggregate(events, map[string]string{})
	assert.Empty(t, result.Stats)
}

func TestAggregator_LowConfidenceWindow(t *testing.T) {
	a := NewAggregator()
	a.MinSupport = 1

	events := []model.TransactionEvent{
		event("C1", "tee-1", "2020-09-01"),
		event("C1", "tee-1", "2020-09-15"),
	}
	categories := map[string]string{"tee-1": "t shirt"}

	result := a.Aggregate(events, categories)
	assert.True(t, result.LowConfidence, "14-day window is below the 30-day minimum")
	assert.Equal(t, 14, result.SpanDays)

	events = append(events, event("C2", "tee-1", "2020-12-01"))
	result = a.Aggregate(events, categories)
	assert.False(t, result.LowConfidence)
}

func TestAggregator_GapsGroupedPerCustomer(t *testing.T) {
	a := NewAggregator()
	a.MinSupport = 1

	// Different customers buying the same category must not produce a gap
	// between each other's purchases.
	events := []model.TransactionEvent{
		event("C1", "tee-1", "2020-09-01"),
		event("C2", "tee-1", "2020-09-02"),
		event("C3", "tee-1", "2020-09-03"),
	}
	categories := map[string]string{"tee-1": "t shirt"}

	result := a.Aggregate(events, categories)
	assert.Empty(t, result.Stats)
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 2, Median([]float64{3, 1, 2}), 1e-9)
	assert.InDelta(t, 2.5, Median([]float64{4, 1, 2, 3}), 1e-9)
	assert.InDelta(t, 0, Median(nil), 1e-9)
}
