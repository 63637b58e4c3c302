// Package mapper decodes raw persisted transaction rows into fully
// populated models. The decode is deliberately lenient: missing or
// malformed fields are replaced by defaults instead of failing, so legacy
// rows from older exports always render. The Result records which fields
// were defaulted so callers and tests can see the policy at work.
package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

// Placeholder names used when a party sub-record is missing entirely.
const (
	UnknownSender    = "Unknown sender"
	UnknownRecipient = "Unknown recipient"
)

// RawParty is the sender/recipient sub-row as stored.
type RawParty struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IDNumber *string `json:"id_number"`
	IDType   *string `json:"id_type"`
}

// RawTransaction mirrors the persisted transactions row, including the
// legacy fees column that predates commission_amount. Pointer fields
// distinguish absent from zero.
type RawTransaction struct {
	TxnID                *string    `json:"txn_id"`
	Direction            *string    `json:"direction"`
	Amount               *string    `json:"amount"`
	Currency             *string    `json:"currency"`
	CommissionPercentage *string    `json:"commission_percentage"`
	CommissionAmount     *string    `json:"commission_amount"`
	Fees                 *string    `json:"fees"`
	ReceivingAmount      *string    `json:"receiving_amount"`
	PaymentMethod        *string    `json:"payment_method"`
	MobileMoneyNetwork   *string    `json:"mobile_money_network"`
	Status               *string    `json:"status"`
	Notes                *string    `json:"notes"`
	CreatedBy            *uint      `json:"created_by"`
	CreatedAt            *time.Time `json:"created_at"`
	Sender               *RawParty  `json:"sender"`
	Recipient            *RawParty  `json:"recipient"`
}

// Result is a decoded transaction plus the names of every field that had to
// be defaulted.
type Result struct {
	Transaction models.Transaction
	Defaulted   []string
}

// FullyPopulated reports whether the row decoded without any defaulting.
func (r Result) FullyPopulated() bool {
	return len(r.Defaulted) == 0
}

// Decode maps a raw row to a transaction, never failing. Precedence for the
// commission amount: commission_amount wins, the legacy fees column is the
// fallback, zero is the last resort.
func Decode(raw RawTransaction) Result {
	var res Result
	tx := &res.Transaction

	tx.TxnID = str(&res, raw.TxnID, "txn_id", "")
	tx.Direction = models.Direction(str(&res, raw.Direction, "direction", string(models.DirectionKinshasaToDubai)))
	tx.Currency = str(&res, raw.Currency, "currency", "USD")
	tx.Status = models.TransferStatus(str(&res, raw.Status, "status", string(models.StatusPending)))
	tx.PaymentMethod = models.PaymentMethod(str(&res, raw.PaymentMethod, "payment_method", string(models.PaymentAgency)))
	if raw.MobileMoneyNetwork != nil {
		tx.MobileMoneyNetwork = *raw.MobileMoneyNetwork
	}
	if raw.Notes != nil {
		tx.Notes = *raw.Notes
	}

	tx.Amount = num(&res, raw.Amount, "amount")
	tx.CommissionPercentage = num(&res, raw.CommissionPercentage, "commission_percentage")
	tx.ReceivingAmount = num(&res, raw.ReceivingAmount, "receiving_amount")

	// commission_amount over fees over zero.
	switch {
	case parseable(raw.CommissionAmount):
		tx.CommissionAmount = mustParse(raw.CommissionAmount)
	case parseable(raw.Fees):
		tx.CommissionAmount = mustParse(raw.Fees)
	default:
		tx.CommissionAmount = decimal.Zero
		res.Defaulted = append(res.Defaulted, "commission_amount")
	}

	if raw.CreatedBy != nil {
		tx.CreatedBy = *raw.CreatedBy
	} else {
		res.Defaulted = append(res.Defaulted, "created_by")
	}
	if raw.CreatedAt != nil {
		tx.CreatedAt = *raw.CreatedAt
	} else {
		res.Defaulted = append(res.Defaulted, "created_at")
	}

	tx.Sender = decodeSender(&res, raw.Sender)
	tx.Recipient = decodeRecipient(&res, raw.Recipient)

	return res
}

func decodeSender(res *Result, raw *RawParty) models.Sender {
	var s models.Sender
	if raw == nil || raw.Name == nil || *raw.Name == "" {
		s.Name = UnknownSender
		res.Defaulted = append(res.Defaulted, "sender.name")
	} else {
		s.Name = *raw.Name
	}
	if raw != nil {
		if raw.Phone != nil {
			s.Phone = *raw.Phone
		}
		if raw.IDNumber != nil {
			s.IDNumber = *raw.IDNumber
		}
		if raw.IDType != nil {
			s.IDType = *raw.IDType
		}
	}
	return s
}

func decodeRecipient(res *Result, raw *RawParty) models.Recipient {
	var r models.Recipient
	if raw == nil || raw.Name == nil || *raw.Name == "" {
		r.Name = UnknownRecipient
		res.Defaulted = append(res.Defaulted, "recipient.name")
	} else {
		r.Name = *raw.Name
	}
	if raw != nil && raw.Phone != nil {
		r.Phone = *raw.Phone
	}
	return r
}

func str(res *Result, v *string, field, def string) string {
	if v == nil || *v == "" {
		res.Defaulted = append(res.Defaulted, field)
		return def
	}
	return *v
}

func num(res *Result, v *string, field string) decimal.Decimal {
	if !parseable(v) {
		res.Defaulted = append(res.Defaulted, field)
		return decimal.Zero
	}
	return mustParse(v)
}

func parseable(v *string) bool {
	if v == nil || *v == "" {
		return false
	}
	_, err := decimal.NewFromString(*v)
	return err == nil
}

func mustParse(v *string) decimal.Decimal {
	d, _ := decimal.NewFromString(*v)
	return d
}
