package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// Trade is a single manual journal entry. It is immutable once created;
// the only field rewritten afterwards is Profit, which the position
// ledger fills in when a SELL is applied.
type Trade struct {
	ID         string          `gorm:"primaryKey;type:uuid" json:"id"`
	BacktestID string          `gorm:"type:uuid;not null;index" json:"backtest_id"`
	StockCode  string          `gorm:"not null" json:"stock_code"`
	StockName  string          `gorm:"not null" json:"stock_name"`
	Type       TradeType       `gorm:"not null" json:"type"`
	Price      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Fee        decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"fee"`
	Timestamp  time.Time       `gorm:"not null;index" json:"timestamp"`
	Profit     decimal.Decimal `gorm:"type:numeric(20,4)" json:"profit"`
	Reason     string          `json:"reason"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}

func (t *Trade) IsBuy() bool {
	return t.Type == TradeTypeBuy
}

func (t *Trade) IsSell() bool {
	return t.Type == TradeTypeSell
}
