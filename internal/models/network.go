package models

// MobileMoneyNetwork is a disbursement network available in one of the two
// corridor countries. Seeded by migration, toggled by admins.
type MobileMoneyNetwork struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Country  string `gorm:"size:2;not null;index" json:"country"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
