package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the fixed corridor of a transfer. It is immutable after
// creation and determines the default commission and the eligible
// mobile-money networks.
type Direction string

const (
	DirectionKinshasaToDubai Direction = "kinshasa_to_dubai"
	DirectionDubaiToKinshasa Direction = "dubai_to_kinshasa"
)

// TransferStatus is the lifecycle state of a money transfer.
type TransferStatus string

const (
	StatusPending   TransferStatus = "pending"
	StatusValidated TransferStatus = "validated"
	StatusCompleted TransferStatus = "completed"
	StatusCancelled TransferStatus = "cancelled"
)

// PaymentMethod is how the recipient collects the funds.
type PaymentMethod string

const (
	PaymentAgency      PaymentMethod = "agency"
	PaymentMobileMoney PaymentMethod = "mobile_money"
)

// Sender is the party handing over the principal. Senders carry an identity
// document reference for compliance checks at the counter.
type Sender struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Phone        string `json:"phone"`
	IDNumber     string `json:"id_number"`
	IDType       string `json:"id_type"`
	Transactions []Transaction `gorm:"foreignKey:SenderID" json:"-"`
}

// Recipient is the party collecting the funds on the other end of the
// corridor.
type Recipient struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Phone        string `json:"phone"`
	Transactions []Transaction `gorm:"foreignKey:RecipientID" json:"-"`
}

// Transaction is a money transfer through one of the two corridors.
//
// Amount is the principal handed over by the sender, in Currency.
// CommissionAmount is Amount * CommissionPercentage / 100 rounded to the
// currency precision; it is recomputed whenever amount or percentage change
// before persistence. ReceivingAmount is recorded independently: fee-on-top
// schemes mean it is not necessarily Amount - CommissionAmount.
type Transaction struct {
	Base
	TxnID                string          `gorm:"uniqueIndex;not null" json:"txn_id"`
	Direction            Direction       `gorm:"not null" json:"direction"`
	Amount               decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency             string          `gorm:"size:3;not null" json:"currency"`
	CommissionPercentage decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"commission_percentage"`
	CommissionAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"commission_amount"`
	ReceivingAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"receiving_amount"`
	PaymentMethod        PaymentMethod   `gorm:"not null" json:"payment_method"`
	MobileMoneyNetwork   string          `json:"mobile_money_network,omitempty"`
	Status               TransferStatus  `gorm:"not null;default:pending;index" json:"status"`
	Notes                string          `json:"notes"`

	SenderID    uint      `gorm:"not null" json:"sender_id"`
	RecipientID uint      `gorm:"not null" json:"recipient_id"`
	Sender      Sender    `gorm:"foreignKey:SenderID" json:"sender"`
	Recipient   Recipient `gorm:"foreignKey:RecipientID" json:"recipient"`

	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	ValidatedBy *uint      `json:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

// Terminal reports whether the transfer can no longer change state.
func (t *Transaction) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// CorridorCountry returns the ISO country code whose mobile-money networks
// may disburse this transfer.
func (d Direction) CorridorCountry() string {
	if d == DirectionDubaiToKinshasa {
		return "AE"
	}
	return "CD"
}
