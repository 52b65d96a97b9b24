package dto

type CreateBacktestRequest struct {
	Name           string  `json:"name" validate:"required"`
	StrategyID     string  `json:"strategy_id" validate:"omitempty,uuid"`
	InitialCapital float64 `json:"initial_capital" validate:"required,gt=0"`
	Notes          string  `json:"notes"`
}

type UpdateBacktestRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Status *string `json:"status" validate:"omitempty,oneof=active completed archived"`
	Notes  *string `json:"notes"`
}
