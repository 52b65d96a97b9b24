package model

import "time"

// Snapshot is the bulk export format: every collection serialized into a
// single document. Restoring a snapshot is a full overwrite, not a merge.
type Snapshot struct {
	ExportedAt time.Time  `json:"exported_at"`
	Strategies []Strategy `json:"strategies"`
	Backtests  []Backtest `json:"backtests"`
	Trades     []Trade    `json:"trades"`
	Positions  []Position `json:"positions"`
	Stocks     []Stock    `json:"stocks"`
}
