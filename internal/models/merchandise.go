package models

import "github.com/shopspring/decimal"

// Merchandise is a catalog entry for goods the agency ships or resells.
type Merchandise struct {
	Base
	Name          string          `gorm:"not null" json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}
