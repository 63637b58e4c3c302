package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

// Period is the calendar bucket used by report filtering.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAll     Period = "all"
)

// ValidPeriod reports whether p is a known report period.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAll:
		return true
	}
	return false
}

// FilterByPeriod returns the transactions whose CreatedAt falls in the same
// calendar bucket as ref. Weeks start on Monday; daily and monthly use
// calendar comparison, not fixed 24h/30d windows. A nil reference date means
// no date constraint has been selected yet, so the input is returned as is.
func FilterByPeriod(txs []models.Transaction, period Period, ref *time.Time) []models.Transaction {
	if period == PeriodAll || ref == nil {
		return txs
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if sameBucket(tx.CreatedAt, *ref, period) {
			out = append(out, tx)
		}
	}
	return out
}

func sameBucket(t, ref time.Time, period Period) bool {
	t = t.In(ref.Location())
	switch period {
	case PeriodDaily:
		return t.Year() == ref.Year() && t.YearDay() == ref.YearDay()
	case PeriodWeekly:
		ty, tw := isoWeek(t)
		ry, rw := isoWeek(ref)
		return ty == ry && tw == rw
	case PeriodMonthly:
		return t.Year() == ref.Year() && t.Month() == ref.Month()
	}
	return false
}

// isoWeek wraps time.ISOWeek, which already treats Monday as the first day
// of the week.
func isoWeek(t time.Time) (int, int) {
	return t.ISOWeek()
}

// Summary is the aggregate block shown above a filtered report and embedded
// in exports.
type Summary struct {
	Count            int             `json:"count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	PendingCount     int             `json:"pending_count"`
	CompletedCount   int             `json:"completed_count"`
	CancelledCount   int             `json:"cancelled_count"`
}

// Summarize reduces an arbitrary (already filtered) transaction list to its
// summary. It is a pure reduction over the list: same input, same output,
// regardless of how the list was produced.
func Summarize(txs []models.Transaction) Summary {
	stats := ComputeStats(txs)
	return Summary{
		Count:            stats.TotalCount,
		TotalAmount:      stats.TotalAmount,
		TotalCommissions: stats.TotalCommissions,
		PendingCount:     stats.PendingCount,
		CompletedCount:   stats.CompletedCount,
		CancelledCount:   stats.CancelledCount,
	}
}
