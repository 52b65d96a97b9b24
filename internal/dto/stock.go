package dto

type CreateStockRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Note string `json:"note"`
}

type UpdateStockRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	Note *string `json:"note"`
}
