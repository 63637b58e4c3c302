// Package receipt renders transaction receipts and report exports: a
// deterministic fixed-width text layout for thermal printers, a PDF
// rendition of the same receipt, and tabular report documents. Rendering is
// pure formatting over an already-loaded transaction; no database access.
package receipt

import (
	"fmt"
	"strings"

	"tramex/internal/models"
	"tramex/internal/money"
)

const width = 42

// Business identity printed on every receipt.
const (
	businessName  = "TRAMEX SARL"
	businessLine1 = "Transfert d'argent & Messagerie"
	businessLine2 = "Kinshasa - Dubai"
)

var directionLabels = map[models.Direction]string{
	models.DirectionKinshasaToDubai: "Kinshasa -> Dubai",
	models.DirectionDubaiToKinshasa: "Dubai -> Kinshasa",
}

var paymentLabels = map[models.PaymentMethod]string{
	models.PaymentAgency:      "Agency pickup",
	models.PaymentMobileMoney: "Mobile money",
}

// QRPayload is the content encoded in the receipt's scannable code: the
// verification URL with the transaction code appended. The code itself is
// printed below the QR as the human-readable fallback.
func QRPayload(tx *models.Transaction, verifyBaseURL string) string {
	return strings.TrimRight(verifyBaseURL, "/") + "/" + tx.TxnID
}

// Text renders the fixed-width receipt. Same transaction, same output.
func Text(tx *models.Transaction, verifyBaseURL string) string {
	var b strings.Builder

	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	center := func(s string) {
		if len(s) >= width {
			line(s)
			return
		}
		pad := (width - len(s)) / 2
		line(strings.Repeat(" ", pad) + s)
	}
	kv := func(k, v string) {
		space := width - len(k) - len(v)
		if space < 1 {
			space = 1
		}
		line(k + strings.Repeat(" ", space) + v)
	}
	rule := func() { line(strings.Repeat("-", width)) }

	sym := money.Currencies[tx.Currency].Symbol
	amt := func(d interface{ StringFixed(int32) string }) string {
		return sym + " " + d.StringFixed(money.Precision(tx.Currency))
	}

	center(businessName)
	center(businessLine1)
	center(businessLine2)
	rule()
	kv("Receipt", tx.TxnID)
	kv("Date", tx.CreatedAt.Format("02/01/2006 15:04"))
	kv("Direction", directionLabels[tx.Direction])
	rule()
	kv("Sender", tx.Sender.Name)
	kv("Phone", tx.Sender.Phone)
	kv("Recipient", tx.Recipient.Name)
	kv("Phone", tx.Recipient.Phone)
	rule()
	kv("Amount", amt(tx.Amount))
	kv(fmt.Sprintf("Commission (%s%%)", tx.CommissionPercentage.String()), amt(tx.CommissionAmount))
	kv("Total paid", amt(money.Total(tx.Amount, tx.CommissionAmount)))
	kv("Receiving amount", amt(tx.ReceivingAmount))
	rule()
	kv("Payment", paymentLabels[tx.PaymentMethod])
	if tx.PaymentMethod == models.PaymentMobileMoney {
		kv("Network", tx.MobileMoneyNetwork)
	}
	kv("Status", strings.ToUpper(string(tx.Status)))
	rule()
	center("Verify at:")
	center(QRPayload(tx, verifyBaseURL))
	center(tx.TxnID)
	center("Merci / Thank you")

	return b.String()
}
