package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/common"
)

func TestReadTransactions(t *testing.T) {
	csvData := `t_dat,customer_id,article_id,price,sales_channel_id
2020-09-01,C1,0108775015,9.99,1
2020-10-01,C1,0108775015,9.99,2
2020-09-10,C2,0111565001,39.99,1
`

	result, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.NoError(t, err)
	require.Len(t, result.Events, 3)
	assert.Zero(t, result.DroppedDates)

	first := result.Events[0]
	assert.Equal(t, time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "C1", first.CustomerID)
	assert.Equal(t, "0108775015", first.ItemID)
	assert.InDelta(t, 9.99, first.Price, 1e-9)
	assert.Equal(t, "1", first.Channel)
	assert.NotEmpty(t, first.Hash)
	assert.NotEqual(t, first.Hash, result.Events[1].Hash, "different dates must hash differently")
}

func TestReadTransactions_DropsUnparseableDates(t *testing.T) {
	csvData := `t_dat,customer_id,article_id,price,sales_channel_id
2020-09-01,C1,1,9.99,1
not-a-date,C1,1,9.99,1
,C2,2,5.00,1
2020-09-15,C2,2,5.00,2
`

	result, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Events, 2)
	assert.Equal(t, 2, result.DroppedDates)
}

func TestReadTransactions_DropsUnparseablePrices(t *testing.T) {
	csvData := `t_dat,customer_id,article_id,price,sales_channel_id
2020-09-01,C1,1,9.99,1
2020-09-02,C1,1,free,1
`

	result, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Events, 1)
	assert.Equal(t, 1, result.DroppedPrices)
}

func TestReadTransactions_MissingRequiredColumn(t *testing.T) {
	csvData := `t_dat,article_id,price
2020-09-01,1,9.99
`

	_, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "transactions", schemaErr.Table)
	assert.Equal(t, "customer_id", schemaErr.Missing)
}

func TestReadTransactions_ChannelOptional(t *testing.T) {
	csvData := `t_dat,customer_id,article_id,price
2021-01-15,C1,1,19.99
`

	result, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Empty(t, result.Events[0].Channel)
}

func TestReadTransactions_TimestampDates(t *testing.T) {
	csvData := `t_dat,customer_id,article_id,price
2021-01-15 00:00:00,C1,1,19.99
`

	result, err := ReadTransactions(strings.NewReader(csvData), TransactionOptions{})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, 2021, result.Events[0].Date.Year())
}
