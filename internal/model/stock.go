package model

import "time"

// Stock is a shared reference in the stock pool. Trades and positions
// refer to it by code, not by id.
type Stock struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code      string    `gorm:"not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	Note      string    `json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
