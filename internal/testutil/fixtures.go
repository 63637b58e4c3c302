package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tramex/internal/models"
	"tramex/internal/refgen"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an operator with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleOperator)
}

// CreateTestUserWithRole creates a user with the given role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestNetwork creates an active mobile-money network for the given country.
func CreateTestNetwork(t *testing.T, db *gorm.DB, country string) *models.MobileMoneyNetwork {
	t.Helper()

	n := nextID()
	network := &models.MobileMoneyNetwork{
		Name:     fmt.Sprintf("Test Network %d", n),
		Code:     fmt.Sprintf("NET%d", n),
		Country:  country,
		IsActive: true,
	}
	if err := db.Create(network).Error; err != nil {
		t.Fatalf("failed to create test network: %v", err)
	}
	return network
}

// CreateTestTransaction creates an agency-payment transfer in the given
// status, with its sender and recipient, bypassing the service layer.
func CreateTestTransaction(t *testing.T, db *gorm.DB, createdBy uint, status models.TransferStatus, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	n := nextID()
	sender := &models.Sender{Name: fmt.Sprintf("Sender %d", n), Phone: "+243811111111"}
	if err := db.Create(sender).Error; err != nil {
		t.Fatalf("failed to create test sender: %v", err)
	}
	recipient := &models.Recipient{Name: fmt.Sprintf("Recipient %d", n), Phone: "+971501111111"}
	if err := db.Create(recipient).Error; err != nil {
		t.Fatalf("failed to create test recipient: %v", err)
	}

	pct := decimal.NewFromFloat(3.5)
	tx := &models.Transaction{
		TxnID:                refgen.TransactionCode(time.Now()),
		Direction:            models.DirectionKinshasaToDubai,
		Amount:               amount,
		Currency:             "USD",
		CommissionPercentage: pct,
		CommissionAmount:     amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2),
		ReceivingAmount:      amount,
		PaymentMethod:        models.PaymentAgency,
		Status:               status,
		SenderID:             sender.ID,
		RecipientID:          recipient.ID,
		CreatedBy:            createdBy,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	tx.Sender = *sender
	tx.Recipient = *recipient
	return tx
}

// CreateTestClient creates a client record.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()

	client := &models.Client{
		Name:    fmt.Sprintf("Test Client %d", nextID()),
		Phone:   "+243899999999",
		City:    "Kinshasa",
		Country: "CD",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestParcel creates a received parcel with a unique tracking number.
func CreateTestParcel(t *testing.T, db *gorm.DB, createdBy uint) *models.Parcel {
	t.Helper()

	n := nextID()
	parcel := &models.Parcel{
		TrackingNumber: refgen.TrackingNumber(time.Now()),
		Direction:      models.DirectionKinshasaToDubai,
		SenderName:     fmt.Sprintf("Parcel Sender %d", n),
		RecipientName:  fmt.Sprintf("Parcel Recipient %d", n),
		WeightKg:       decimal.NewFromFloat(2.5),
		Status:         models.ParcelReceived,
		Priority:       models.PriorityStandard,
		ShippingCost:   decimal.NewFromInt(40),
		Currency:       "USD",
		CreatedBy:      createdBy,
	}
	if err := db.Create(parcel).Error; err != nil {
		t.Fatalf("failed to create test parcel: %v", err)
	}
	return parcel
}
