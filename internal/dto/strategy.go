package dto

type CreateStrategyRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

type UpdateStrategyRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	Rules       *[]string `json:"rules"`
}
