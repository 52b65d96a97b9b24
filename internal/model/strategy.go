package model

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a reusable description of how trades are picked. Backtests
// reference it by id but keep a denormalized copy of its name.
type Strategy struct {
	ID          string                        `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string                        `gorm:"not null" json:"name"`
	Description string                        `json:"description"`
	Rules       datatypes.JSONSlice[string]   `json:"rules"`
	CreatedAt   time.Time                     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}
