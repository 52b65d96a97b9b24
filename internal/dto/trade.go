package dto

import "time"

// AddTradeRequest is a journal entry as the form layer submits it. The
// amount is never accepted from the caller, it is recomputed server-side
// as price * quantity; a missing fee is filled in from the fee schedule.
type AddTradeRequest struct {
	StockCode string     `json:"stock_code" validate:"required"`
	StockName string     `json:"stock_name" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=BUY SELL"`
	Price     float64    `json:"price" validate:"required,gt=0"`
	Quantity  int64      `json:"quantity" validate:"required,gt=0"`
	Fee       *float64   `json:"fee" validate:"omitempty,gte=0"`
	Timestamp *time.Time `json:"timestamp"`
	Reason    string     `json:"reason"`
	Notes     string     `json:"notes"`
}
