package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

func sp(s string) *string { return &s }

func TestDecode(t *testing.T) {
	t.Run("fully_populated_row", func(t *testing.T) {
		created := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
		by := uint(4)
		res := Decode(RawTransaction{
			TxnID:                sp("TXN-20240310-ABCDEF"),
			Direction:            sp("dubai_to_kinshasa"),
			Amount:               sp("1500.00"),
			Currency:             sp("AED"),
			CommissionPercentage: sp("3"),
			CommissionAmount:     sp("45.00"),
			ReceivingAmount:      sp("1455.00"),
			PaymentMethod:        sp("mobile_money"),
			MobileMoneyNetwork:   sp("MPESA_CD"),
			Status:               sp("validated"),
			Notes:                sp("urgent"),
			CreatedBy:            &by,
			CreatedAt:            &created,
			Sender:               &RawParty{Name: sp("Amina K"), Phone: sp("+971501234567"), IDNumber: sp("784-1987"), IDType: sp("emirates_id")},
			Recipient:            &RawParty{Name: sp("Jean M"), Phone: sp("+243810000000")},
		})

		if !res.FullyPopulated() {
			t.Errorf("expected no defaulted fields, got %v", res.Defaulted)
		}
		tx := res.Transaction
		if tx.Direction != models.DirectionDubaiToKinshasa || tx.Status != models.StatusValidated {
			t.Errorf("unexpected decode: %+v", tx)
		}
		if !tx.CommissionAmount.Equal(decimal.RequireFromString("45")) {
			t.Errorf("expected commission 45, got %s", tx.CommissionAmount)
		}
	})

	t.Run("fees_fallback_when_commission_absent", func(t *testing.T) {
		res := Decode(RawTransaction{
			Amount: sp("500"),
			Fees:   sp("12.5"),
		})
		if !res.Transaction.CommissionAmount.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected fees fallback 12.5, got %s", res.Transaction.CommissionAmount)
		}
	})

	t.Run("commission_amount_wins_over_fees", func(t *testing.T) {
		res := Decode(RawTransaction{
			Amount:           sp("500"),
			CommissionAmount: sp("17.5"),
			Fees:             sp("12.5"),
		})
		if !res.Transaction.CommissionAmount.Equal(decimal.RequireFromString("17.5")) {
			t.Errorf("expected commission_amount 17.5 to win, got %s", res.Transaction.CommissionAmount)
		}
	})

	t.Run("empty_row_gets_all_defaults", func(t *testing.T) {
		res := Decode(RawTransaction{})
		tx := res.Transaction

		if tx.Currency != "USD" {
			t.Errorf("expected USD default, got %s", tx.Currency)
		}
		if tx.Status != models.StatusPending {
			t.Errorf("expected pending default, got %s", tx.Status)
		}
		if tx.Direction != models.DirectionKinshasaToDubai {
			t.Errorf("expected kinshasa_to_dubai default, got %s", tx.Direction)
		}
		if !tx.Amount.IsZero() || !tx.CommissionAmount.IsZero() || !tx.ReceivingAmount.IsZero() {
			t.Error("expected zero amounts")
		}
		if tx.Sender.Name != UnknownSender || tx.Recipient.Name != UnknownRecipient {
			t.Errorf("expected placeholder names, got %q / %q", tx.Sender.Name, tx.Recipient.Name)
		}
		if res.FullyPopulated() {
			t.Error("an empty row must report defaulted fields")
		}
	})

	t.Run("malformed_numeric_defaults_to_zero", func(t *testing.T) {
		res := Decode(RawTransaction{Amount: sp("not-a-number")})
		if !res.Transaction.Amount.IsZero() {
			t.Errorf("expected zero for malformed amount, got %s", res.Transaction.Amount)
		}
		found := false
		for _, f := range res.Defaulted {
			if f == "amount" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected amount in defaulted list, got %v", res.Defaulted)
		}
	})

	t.Run("blank_sender_name_gets_placeholder", func(t *testing.T) {
		res := Decode(RawTransaction{Sender: &RawParty{Name: sp(""), Phone: sp("+2438")}})
		if res.Transaction.Sender.Name != UnknownSender {
			t.Errorf("expected placeholder, got %q", res.Transaction.Sender.Name)
		}
		if res.Transaction.Sender.Phone != "+2438" {
			t.Error("phone should survive a defaulted name")
		}
	})
}
