package transfer

import (
	"sort"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

// Stats is the dashboard aggregate over a transaction collection.
type Stats struct {
	TotalCount       int             `json:"total_count"`
	PendingCount     int             `json:"pending_count"`
	ValidatedCount   int             `json:"validated_count"`
	CompletedCount   int             `json:"completed_count"`
	CancelledCount   int             `json:"cancelled_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
}

// ZeroStats returns a stats object with all counters and sums at zero. Used
// as the substitute value when a fetch fails.
func ZeroStats() Stats {
	return Stats{
		TotalAmount:      decimal.Zero,
		TotalCommissions: decimal.Zero,
	}
}

// ComputeStats derives dashboard statistics from a transaction list in a
// single pass. The reduction is order-independent: any permutation of the
// input yields the same result.
func ComputeStats(txs []models.Transaction) Stats {
	stats := ZeroStats()
	for _, tx := range txs {
		stats.TotalCount++
		switch tx.Status {
		case models.StatusPending:
			stats.PendingCount++
		case models.StatusValidated:
			stats.ValidatedCount++
		case models.StatusCompleted:
			stats.CompletedCount++
		case models.StatusCancelled:
			stats.CancelledCount++
		}
		stats.TotalAmount = stats.TotalAmount.Add(tx.Amount)
		stats.TotalCommissions = stats.TotalCommissions.Add(tx.CommissionAmount)
	}
	return stats
}

// Recent returns the n most recently created transactions, newest first.
// The input is not modified.
func Recent(txs []models.Transaction, n int) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
