package services

import (
	"time"

	"tramex/internal/transfer"
)

// reportService derives period reports from the transaction collection.
type reportService struct {
	transactionService TransactionServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(transactionService TransactionServicer) ReportServicer {
	return &reportService{transactionService: transactionService}
}

// Generate fetches all transactions and reduces them to a period report.
// The filter and summary are pure, so the report is reproducible from the
// same collection. A failed fetch produces an empty, degraded report.
func (s *reportService) Generate(period transfer.Period, ref *time.Time) Report {
	txs, ok := s.transactionService.FetchAll()
	filtered := transfer.FilterByPeriod(txs, period, ref)
	return Report{
		Period:       period,
		Reference:    ref,
		Transactions: filtered,
		Summary:      transfer.Summarize(filtered),
		Degraded:     !ok,
	}
}
