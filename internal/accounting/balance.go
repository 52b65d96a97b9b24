package accounting

import (
	"tradeback/internal/model"

	"github.com/shopspring/decimal"
)

// Balance is the result of replaying a trade history against an initial
// capital amount: the cash equity curve and what it implies.
type Balance struct {
	// CashSeries starts at the initial capital and gains one point per
	// trade. It tracks cash only, not mark-to-market.
	CashSeries           []decimal.Decimal
	Cash                 decimal.Decimal
	PositionsMarketValue decimal.Decimal
	TotalAssets          decimal.Decimal
	MaxDrawdown          float64
	Positions            map[string]*PositionState
}

// ComputeBalance replays the trades in timestamp order. A BUY moves only
// the trade amount out of cash, its fee lives in the position cost basis;
// a SELL moves amount minus fee back in. Open positions are marked at the
// last traded price seen for their instrument, from either side.
func ComputeBalance(trades []model.Trade, initialCapital decimal.Decimal) Balance {
	cash := initialCapital
	series := make([]decimal.Decimal, 0, len(trades)+1)
	series = append(series, cash)
	book := make(map[string]*PositionState)

	for _, t := range SortTrades(trades) {
		switch t.Type {
		case model.TradeTypeBuy:
			cash = cash.Sub(t.Amount)
			state, ok := book[t.StockCode]
			if !ok {
				state = &PositionState{StockCode: t.StockCode, StockName: t.StockName, AvgCost: decimal.Zero}
				book[t.StockCode] = state
			}
			state.ApplyBuy(t.Price, t.Quantity, t.Fee)
		case model.TradeTypeSell:
			cash = cash.Add(t.Amount).Sub(t.Fee)
			if state, ok := book[t.StockCode]; ok {
				if _, closed := state.ApplySell(t.Price, t.Quantity, t.Fee); closed {
					delete(book, t.StockCode)
				}
			}
		}
		series = append(series, cash)
	}

	marketValue := decimal.Zero
	for _, state := range book {
		marketValue = marketValue.Add(state.LastPrice.Mul(decimal.NewFromInt(state.Quantity)))
	}

	return Balance{
		CashSeries:           series,
		Cash:                 cash,
		PositionsMarketValue: marketValue,
		TotalAssets:          cash.Add(marketValue),
		MaxDrawdown:          maxDrawdown(series),
		Positions:            book,
	}
}

// maxDrawdown is the deepest peak-to-trough decline over the series,
// as a fraction of the running peak. A series with at most one point has
// no drawdown.
func maxDrawdown(series []decimal.Decimal) float64 {
	if len(series) <= 1 {
		return 0
	}
	peak := series[0]
	worst := 0.0
	for _, v := range series[1:] {
		if v.GreaterThan(peak) {
			peak = v
			continue
		}
		if peak.IsPositive() {
			dd, _ := peak.Sub(v).Div(peak).Float64()
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
