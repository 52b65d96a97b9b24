package accounting

import (
	"math"

	"tradeback/internal/model"

	"github.com/shopspring/decimal"
)

// ComputeSummary derives the full statistics block from the trade set and
// the initial capital. It is a pure function: same inputs, same summary.
// Callers replace the backtest's stored summary with the result wholesale
// after every trade mutation.
func ComputeSummary(trades []model.Trade, initialCapital decimal.Decimal) model.Summary {
	sorted := SortTrades(trades)

	realized := decimal.Zero
	totalTrades := 0
	winningTrades := 0
	maxProfit := decimal.Zero
	maxLoss := decimal.Zero
	winSum := decimal.Zero
	lossSum := decimal.Zero
	winCount := 0
	lossCount := 0

	for _, t := range sorted {
		if !t.IsSell() {
			continue
		}
		totalTrades++
		realized = realized.Add(t.Profit)
		if t.Profit.IsPositive() {
			winningTrades++
			winCount++
			winSum = winSum.Add(t.Profit)
		} else if t.Profit.IsNegative() {
			lossCount++
			lossSum = lossSum.Add(t.Profit)
		}
		if t.Profit.GreaterThan(maxProfit) {
			maxProfit = t.Profit
		}
		if t.Profit.LessThan(maxLoss) {
			maxLoss = t.Profit
		}
	}

	summary := model.EmptySummary(initialCapital)
	summary.RealizedProfit = realized
	summary.TotalProfit = realized
	summary.TotalTrades = totalTrades
	summary.WinningTrades = winningTrades
	summary.MaxProfit = maxProfit
	summary.MaxLoss = maxLoss

	if totalTrades > 0 {
		summary.WinRate = float64(winningTrades) / float64(totalTrades)
		summary.Expectation = realized.Div(decimal.NewFromInt(int64(totalTrades)))
	}

	avgWin := decimal.Zero
	if winCount > 0 {
		avgWin = winSum.Div(decimal.NewFromInt(int64(winCount)))
	}
	avgLoss := decimal.Zero
	if lossCount > 0 {
		avgLoss = lossSum.Abs().Div(decimal.NewFromInt(int64(lossCount)))
	}
	switch {
	case avgLoss.IsPositive():
		pf, _ := avgWin.Div(avgLoss).Float64()
		summary.ProfitFactor = model.Ratio(pf)
	case avgWin.IsPositive():
		summary.ProfitFactor = model.Ratio(math.Inf(1))
	}

	if initialCapital.IsPositive() {
		ratio, _ := realized.Div(initialCapital).Float64()
		summary.ProfitRatio = ratio
	}

	balance := ComputeBalance(sorted, initialCapital)
	summary.MaxDrawdown = balance.MaxDrawdown
	summary.CurrentCash = balance.Cash
	summary.TotalAssets = balance.TotalAssets

	return summary
}
