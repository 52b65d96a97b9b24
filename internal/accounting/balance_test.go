package accounting

import (
	"testing"
	"time"

	"tradeback/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBalanceNoTrades(t *testing.T) {
	balance := ComputeBalance(nil, d("100000"))

	require.Len(t, balance.CashSeries, 1)
	assert.True(t, balance.Cash.Equal(d("100000")))
	assert.True(t, balance.TotalAssets.Equal(d("100000")))
	assert.Zero(t, balance.MaxDrawdown)
	assert.Empty(t, balance.Positions)
}

func TestComputeBalanceBuyMovesAmountOnly(t *testing.T) {
	trades := []model.Trade{
		{ID: "1", StockCode: "600000", Type: model.TradeTypeBuy, Price: d("10.00"), Quantity: 100, Amount: d("1000"), Fee: d("5.30"), Timestamp: time.Now()},
	}

	balance := ComputeBalance(trades, d("100000"))

	// the fee lives in the position basis, not in the cash delta
	assert.True(t, balance.Cash.Equal(d("99000")), "cash %s", balance.Cash)
	// open position marked at the traded price
	assert.True(t, balance.PositionsMarketValue.Equal(d("1000")), "market value %s", balance.PositionsMarketValue)
	assert.True(t, balance.TotalAssets.Equal(d("100000")))
	assert.InDelta(t, 0.01, balance.MaxDrawdown, 1e-12)
}

func TestComputeBalanceRoundTrip(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trades := []model.Trade{
		{ID: "1", StockCode: "600000", Type: model.TradeTypeBuy, Price: d("10.00"), Quantity: 100, Amount: d("1000"), Fee: d("5.30"), Timestamp: base},
		{ID: "2", StockCode: "600000", Type: model.TradeTypeSell, Price: d("12.00"), Quantity: 100, Amount: d("1200"), Fee: d("6.00"), Timestamp: base.Add(time.Hour)},
	}

	balance := ComputeBalance(trades, d("100000"))

	assert.True(t, balance.Cash.Equal(d("100194")), "cash %s", balance.Cash)
	assert.True(t, balance.TotalAssets.Equal(d("100194")))
	assert.Empty(t, balance.Positions)
	require.Len(t, balance.CashSeries, 3)
	assert.True(t, balance.CashSeries[1].Equal(d("99000")))
}

func TestComputeBalanceSellWithoutPositionStillMovesCash(t *testing.T) {
	trades := []model.Trade{
		{ID: "1", StockCode: "600000", Type: model.TradeTypeSell, Price: d("12.00"), Quantity: 100, Amount: d("1200"), Fee: d("6.00"), Timestamp: time.Now()},
	}

	balance := ComputeBalance(trades, d("100000"))

	assert.True(t, balance.Cash.Equal(d("101194")), "cash %s", balance.Cash)
	assert.Empty(t, balance.Positions)
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		series   []string
		expected float64
	}{
		{name: "empty", series: nil, expected: 0},
		{name: "single point", series: []string{"100"}, expected: 0},
		{name: "monotonic rise", series: []string{"100", "110", "120"}, expected: 0},
		{name: "single dip", series: []string{"100", "90", "110"}, expected: 0.1},
		{name: "deepest trough wins", series: []string{"100", "80", "120", "60"}, expected: 0.5},
		{name: "peak resets after recovery", series: []string{"100", "50", "200", "150"}, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := make([]decimal.Decimal, 0, len(tt.series))
			for _, s := range tt.series {
				series = append(series, d(s))
			}
			assert.InDelta(t, tt.expected, maxDrawdown(series), 1e-12)
		})
	}
}
