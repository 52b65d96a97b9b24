// Package accounting is the backtest accounting engine: pure functions
// that derive the position book and the summary statistics from an
// ordered trade history and an initial capital amount. Nothing in here
// touches storage; services feed it persisted trades and write back what
// it returns.
package accounting

import (
	"sort"

	"tradeback/internal/model"

	"github.com/shopspring/decimal"
)

// PositionState is the running book entry for one instrument while a
// trade history is replayed.
type PositionState struct {
	StockCode string
	StockName string
	Quantity  int64
	AvgCost   decimal.Decimal
	LastPrice decimal.Decimal
}

// ApplyBuy re-averages the cost basis over the enlarged position. The fee
// is capitalized into the basis rather than deducted from cash.
func (p *PositionState) ApplyBuy(price decimal.Decimal, quantity int64, fee decimal.Decimal) {
	total := p.AvgCost.Mul(decimal.NewFromInt(p.Quantity)).
		Add(price.Mul(decimal.NewFromInt(quantity))).
		Add(fee)
	p.Quantity += quantity
	p.AvgCost = total.Div(decimal.NewFromInt(p.Quantity))
	p.LastPrice = price
}

// ApplySell reduces the position and returns the realized profit,
// (price - avgCost) * quantity - fee, with the fee taken out of the
// proceeds. closed reports that the position is spent; selling past zero
// is absorbed, the excess quantity does not go negative on the book.
func (p *PositionState) ApplySell(price decimal.Decimal, quantity int64, fee decimal.Decimal) (profit decimal.Decimal, closed bool) {
	profit = price.Sub(p.AvgCost).Mul(decimal.NewFromInt(quantity)).Sub(fee)
	p.Quantity -= quantity
	p.LastPrice = price
	return profit, p.Quantity <= 0
}

// SortTrades returns a copy ordered ascending by timestamp, with ties
// broken by creation time and then id so replays are deterministic.
func SortTrades(trades []model.Trade) []model.Trade {
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Replay rebuilds the position book from an empty state by applying the
// trade history in order. A SELL with no corresponding entry leaves the
// book untouched.
func Replay(trades []model.Trade) map[string]*PositionState {
	book := make(map[string]*PositionState)
	for _, t := range SortTrades(trades) {
		switch t.Type {
		case model.TradeTypeBuy:
			state, ok := book[t.StockCode]
			if !ok {
				state = &PositionState{StockCode: t.StockCode, StockName: t.StockName, AvgCost: decimal.Zero}
				book[t.StockCode] = state
			}
			state.ApplyBuy(t.Price, t.Quantity, t.Fee)
		case model.TradeTypeSell:
			state, ok := book[t.StockCode]
			if !ok {
				continue
			}
			if _, closed := state.ApplySell(t.Price, t.Quantity, t.Fee); closed {
				delete(book, t.StockCode)
			}
		}
	}
	return book
}
