package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
	"tramex/internal/testutil"
	"tramex/internal/transfer"
)

func TestGenerateReport(t *testing.T) {
	t.Run("all_period_covers_everything", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewNetworkService(db))
		svc := NewReportService(txSvc)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.StatusCompleted, decimal.NewFromInt(100))
		testutil.CreateTestTransaction(t, db, user.ID, models.StatusPending, decimal.NewFromInt(200))

		report := svc.Generate(transfer.PeriodAll, nil)
		if report.Degraded {
			t.Fatal("report should not be degraded")
		}
		if len(report.Transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(report.Transactions))
		}
		testutil.AssertDecimal(t, "total amount", report.Summary.TotalAmount, "300")
	})

	t.Run("daily_excludes_other_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewNetworkService(db))
		svc := NewReportService(txSvc)
		user := testutil.CreateTestUser(t, db)

		today := testutil.CreateTestTransaction(t, db, user.ID, models.StatusPending, decimal.NewFromInt(100))
		old := testutil.CreateTestTransaction(t, db, user.ID, models.StatusPending, decimal.NewFromInt(200))
		if err := db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -10)).Error; err != nil {
			t.Fatalf("failed to backdate transaction: %v", err)
		}

		now := time.Now()
		report := svc.Generate(transfer.PeriodDaily, &now)
		if len(report.Transactions) != 1 {
			t.Fatalf("expected 1 transaction for today, got %d", len(report.Transactions))
		}
		if report.Transactions[0].ID != today.ID {
			t.Error("daily report should keep only today's transfer")
		}
	})

	t.Run("nil_reference_is_unfiltered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewNetworkService(db))
		svc := NewReportService(txSvc)
		user := testutil.CreateTestUser(t, db)

		old := testutil.CreateTestTransaction(t, db, user.ID, models.StatusPending, decimal.NewFromInt(100))
		if err := db.Model(old).Update("created_at", time.Now().AddDate(-1, 0, 0)).Error; err != nil {
			t.Fatalf("failed to backdate transaction: %v", err)
		}

		report := svc.Generate(transfer.PeriodMonthly, nil)
		if len(report.Transactions) != 1 {
			t.Errorf("nil reference should disable filtering, got %d transactions", len(report.Transactions))
		}
	})

	t.Run("degrades_on_fetch_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		txSvc := NewTransactionService(db, NewNetworkService(db))
		svc := NewReportService(txSvc)
		testutil.TeardownTestDB(t, db)

		report := svc.Generate(transfer.PeriodAll, nil)
		if !report.Degraded {
			t.Error("expected degraded report after connection loss")
		}
		if len(report.Transactions) != 0 {
			t.Errorf("degraded report should be empty, got %d transactions", len(report.Transactions))
		}
		if report.Summary.Count != 0 {
			t.Errorf("degraded summary should be zeroed, got %d", report.Summary.Count)
		}
	})
}
