package accounting

import (
	"testing"
	"time"

	"tradeback/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyBuyCapitalizesFee(t *testing.T) {
	state := &PositionState{StockCode: "600000", AvgCost: decimal.Zero}
	state.ApplyBuy(d("10.00"), 100, d("5.30"))

	assert.EqualValues(t, 100, state.Quantity)
	assert.True(t, state.AvgCost.Equal(d("10.053")), "avg cost %s", state.AvgCost)
	assert.True(t, state.LastPrice.Equal(d("10.00")))
}

func TestApplyBuyReaverages(t *testing.T) {
	state := &PositionState{StockCode: "600000", AvgCost: decimal.Zero}
	state.ApplyBuy(d("10.00"), 100, d("5.30"))
	state.ApplyBuy(d("12.00"), 100, d("5.31"))

	// (1005.30 + 1200 + 5.31) / 200
	assert.EqualValues(t, 200, state.Quantity)
	assert.True(t, state.AvgCost.Equal(d("11.05305")), "avg cost %s", state.AvgCost)
	assert.True(t, state.LastPrice.Equal(d("12.00")))
}

func TestApplySellRealizesProfit(t *testing.T) {
	state := &PositionState{StockCode: "600000", AvgCost: decimal.Zero}
	state.ApplyBuy(d("10.00"), 100, d("5.30"))

	profit, closed := state.ApplySell(d("12.00"), 100, d("6.00"))

	assert.True(t, profit.Equal(d("188.70")), "profit %s", profit)
	assert.True(t, closed)
}

func TestApplySellPartial(t *testing.T) {
	state := &PositionState{StockCode: "600000", AvgCost: decimal.Zero}
	state.ApplyBuy(d("10.00"), 200, d("10.60"))

	profit, closed := state.ApplySell(d("11.00"), 100, d("5.00"))

	assert.False(t, closed)
	assert.EqualValues(t, 100, state.Quantity)
	// avg cost stays at 10.053 for the remainder
	assert.True(t, state.AvgCost.Equal(d("10.053")), "avg cost %s", state.AvgCost)
	assert.True(t, profit.Equal(d("89.70")), "profit %s", profit)
}

func TestApplySellAbsorbsOversell(t *testing.T) {
	state := &PositionState{StockCode: "600000", AvgCost: decimal.Zero}
	state.ApplyBuy(d("10.00"), 100, d("5.30"))

	_, closed := state.ApplySell(d("12.00"), 150, d("6.00"))
	assert.True(t, closed)
}

func TestSortTradesIsDeterministic(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trades := []model.Trade{
		{ID: "c", Timestamp: base.Add(time.Hour)},
		{ID: "b", Timestamp: base},
		{ID: "a", Timestamp: base},
	}

	sorted := SortTrades(trades)

	require.Len(t, sorted, 3)
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "c", sorted[2].ID)
	// the input slice is untouched
	assert.Equal(t, "c", trades[0].ID)
}

func TestReplayBuildsBook(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trades := []model.Trade{
		{ID: "1", StockCode: "600000", StockName: "SPDB", Type: model.TradeTypeBuy, Price: d("10.00"), Quantity: 100, Fee: d("5.30"), Timestamp: base},
		{ID: "2", StockCode: "000001", StockName: "PAB", Type: model.TradeTypeBuy, Price: d("20.00"), Quantity: 50, Fee: d("5.01"), Timestamp: base.Add(time.Minute)},
		{ID: "3", StockCode: "600000", Type: model.TradeTypeSell, Price: d("12.00"), Quantity: 100, Fee: d("6.00"), Timestamp: base.Add(2 * time.Minute)},
	}

	book := Replay(trades)

	require.Len(t, book, 1)
	state := book["000001"]
	require.NotNil(t, state)
	assert.EqualValues(t, 50, state.Quantity)
	assert.True(t, state.AvgCost.Equal(d("20.1002")), "avg cost %s", state.AvgCost)
}

func TestReplayIgnoresSellWithoutPosition(t *testing.T) {
	trades := []model.Trade{
		{ID: "1", StockCode: "600000", Type: model.TradeTypeSell, Price: d("12.00"), Quantity: 100, Fee: d("6.00"), Timestamp: time.Now()},
	}

	book := Replay(trades)
	assert.Empty(t, book)
}
