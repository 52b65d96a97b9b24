package dto

type MarkPriceRequest struct {
	MarketPrice float64 `json:"market_price" validate:"required,gt=0"`
}
