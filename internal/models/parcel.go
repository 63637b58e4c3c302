package models

import "github.com/shopspring/decimal"

// ParcelStatus is the shipment state of a parcel. Parcels move freely
// between states (a delayed parcel can go back in transit), unlike the
// one-directional transfer lifecycle.
type ParcelStatus string

const (
	ParcelReceived   ParcelStatus = "received"
	ParcelProcessing ParcelStatus = "processing"
	ParcelInTransit  ParcelStatus = "in_transit"
	ParcelDelivered  ParcelStatus = "delivered"
	ParcelDelayed    ParcelStatus = "delayed"
)

// ParcelPriority is the shipping service level.
type ParcelPriority string

const (
	PriorityStandard ParcelPriority = "standard"
	PriorityExpress  ParcelPriority = "express"
	PriorityUrgent   ParcelPriority = "urgent"
)

// Parcel is a physical shipment through one of the corridors. The tracking
// number is the public identifier used for unauthenticated lookups.
type Parcel struct {
	Base
	TrackingNumber   string          `gorm:"uniqueIndex;not null" json:"tracking_number"`
	Direction        Direction       `gorm:"not null" json:"direction"`
	SenderName       string          `gorm:"not null" json:"sender_name"`
	SenderPhone      string          `json:"sender_phone"`
	SenderAddress    string          `json:"sender_address"`
	RecipientName    string          `gorm:"not null" json:"recipient_name"`
	RecipientPhone   string          `json:"recipient_phone"`
	RecipientAddress string          `json:"recipient_address"`
	WeightKg         decimal.Decimal `gorm:"type:decimal(8,3)" json:"weight_kg"`
	Dimensions       string          `json:"dimensions"`
	Contents         string          `json:"contents"`
	Status           ParcelStatus    `gorm:"not null;default:received;index" json:"status"`
	Priority         ParcelPriority  `gorm:"not null;default:standard" json:"priority"`
	ShippingCost     decimal.Decimal `gorm:"type:decimal(14,2)" json:"shipping_cost"`
	Currency         string          `gorm:"size:3;default:USD" json:"currency"`
	CreatedBy        uint            `gorm:"not null" json:"created_by"`
}
