package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the derived holding of one instrument within one backtest.
// A position only exists while its quantity is positive; selling down to
// zero removes the row instead of storing it empty.
type Position struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	BacktestID  string          `gorm:"type:uuid;not null;index;uniqueIndex:idx_positions_backtest_stock" json:"backtest_id"`
	StockCode   string          `gorm:"not null;uniqueIndex:idx_positions_backtest_stock" json:"stock_code"`
	StockName   string          `gorm:"not null" json:"stock_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	AvgCost     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"avg_cost"`
	MarketPrice decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"market_price"`
	Profit      decimal.Decimal `gorm:"type:numeric(20,4)" json:"profit"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}

// MarketValue is quantity times the last known traded price.
func (p *Position) MarketValue() decimal.Decimal {
	return p.MarketPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// UnrealizedProfit is (marketPrice - avgCost) * quantity.
func (p *Position) UnrealizedProfit() decimal.Decimal {
	return p.MarketPrice.Sub(p.AvgCost).Mul(decimal.NewFromInt(p.Quantity))
}
