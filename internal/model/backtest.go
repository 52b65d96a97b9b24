package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BacktestStatus string

const (
	BacktestStatusActive    BacktestStatus = "active"
	BacktestStatusCompleted BacktestStatus = "completed"
	BacktestStatusArchived  BacktestStatus = "archived"
)

// Ratio is a float64 whose JSON form survives positive infinity, which a
// profit factor reaches as soon as a backtest has wins and no losses.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(r), 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(r))
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == `"Infinity"` {
		*r = Ratio(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// Summary is the derived statistics block of a backtest. It is a cache:
// every field is recomputable from the backtest's trade set and initial
// capital, and it is always replaced wholesale, never patched.
type Summary struct {
	TotalProfit    decimal.Decimal `json:"total_profit"`
	RealizedProfit decimal.Decimal `json:"realized_profit"`
	TotalTrades    int             `json:"total_trades"`
	WinningTrades  int             `json:"winning_trades"`
	MaxProfit      decimal.Decimal `json:"max_profit"`
	MaxLoss        decimal.Decimal `json:"max_loss"`
	MaxDrawdown    float64         `json:"max_drawdown"`
	WinRate        float64         `json:"win_rate"`
	ProfitFactor   Ratio           `json:"profit_factor"`
	Expectation    decimal.Decimal `json:"expectation"`
	ProfitRatio    float64         `json:"profit_ratio"`
	CurrentCash    decimal.Decimal `json:"current_cash"`
	TotalAssets    decimal.Decimal `json:"total_assets"`
}

// EmptySummary is the summary of a backtest with no trades: every rate is
// zero and all the money sits in cash.
func EmptySummary(initialCapital decimal.Decimal) Summary {
	return Summary{
		TotalProfit:    decimal.Zero,
		RealizedProfit: decimal.Zero,
		MaxProfit:      decimal.Zero,
		MaxLoss:        decimal.Zero,
		Expectation:    decimal.Zero,
		CurrentCash:    initialCapital,
		TotalAssets:    initialCapital,
	}
}

// Backtest is a named simulated trading run with its own capital and
// trade history. It owns its trades and positions.
type Backtest struct {
	ID              string                       `gorm:"primaryKey;type:uuid" json:"id"`
	Name            string                       `gorm:"not null" json:"name"`
	StrategyID      string                       `gorm:"type:uuid;index" json:"strategy_id"`
	StrategyName    string                       `json:"strategy_name"`
	InitialCapital  decimal.Decimal              `gorm:"type:numeric(20,4);not null" json:"initial_capital"`
	CurrentCapital  decimal.Decimal              `gorm:"type:numeric(20,4);not null" json:"current_capital"`
	Status          BacktestStatus               `gorm:"not null;default:active" json:"status"`
	Summary         datatypes.JSONType[Summary]  `json:"summary"`
	Notes           string                       `json:"notes"`
	CreatedAt       time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
	Trades          []Trade                      `gorm:"foreignKey:BacktestID;constraint:OnDelete:CASCADE" json:"-"`
	Positions       []Position                   `gorm:"foreignKey:BacktestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Backtest) TableName() string {
	return "backtests"
}
