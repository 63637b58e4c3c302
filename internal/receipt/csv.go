package receipt

import (
	"encoding/csv"
	"io"
	"strconv"

	"tramex/internal/models"
	"tramex/internal/transfer"
)

// WriteReportCSV writes the report export as CSV: a summary block, a blank
// row, then one row per transaction.
func WriteReportCSV(w io.Writer, txs []models.Transaction, summary transfer.Summary) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"count", "total_amount", "total_commissions", "pending", "completed", "cancelled"},
		{
			strconv.Itoa(summary.Count),
			summary.TotalAmount.StringFixed(2),
			summary.TotalCommissions.StringFixed(2),
			strconv.Itoa(summary.PendingCount),
			strconv.Itoa(summary.CompletedCount),
			strconv.Itoa(summary.CancelledCount),
		},
		{},
		{"txn_id", "date", "sender", "recipient", "amount", "currency", "status", "commission", "direction"},
	}
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.TxnID,
			tx.CreatedAt.Format("2006-01-02"),
			tx.Sender.Name,
			tx.Recipient.Name,
			tx.Amount.StringFixed(2),
			tx.Currency,
			string(tx.Status),
			tx.CommissionAmount.StringFixed(2),
			string(tx.Direction),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
