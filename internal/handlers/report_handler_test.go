package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tramex/internal/models"
	"tramex/internal/services"
	"tramex/internal/transfer"
)

// --- mock report service ---

type mockReportService struct {
	generateFn func(period transfer.Period, ref *time.Time) services.Report
}

func (m *mockReportService) Generate(period transfer.Period, ref *time.Time) services.Report {
	if m.generateFn != nil {
		return m.generateFn(period, ref)
	}
	return services.Report{Period: period, Transactions: []models.Transaction{}}
}

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := injectAuth(1, models.RoleSupervisor)
	r.GET("/reports", auth, handler.GetReport)
	r.GET("/reports/export.csv", auth, handler.ExportReportCSV)
	r.GET("/reports/export.pdf", auth, handler.ExportReportPDF)
	return r
}

// --- tests ---

func TestReportHandler_GetReport(t *testing.T) {
	t.Run("defaults to all-time period", func(t *testing.T) {
		var gotPeriod transfer.Period
		reportSvc := &mockReportService{
			generateFn: func(period transfer.Period, _ *time.Time) services.Report {
				gotPeriod = period
				return services.Report{Period: period, Transactions: []models.Transaction{}}
			},
		}
		handler := NewReportHandler(reportSvc, &mockAuditService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPeriod != transfer.PeriodAll {
			t.Errorf("expected all-time period by default, got %s", gotPeriod)
		}
	})

	t.Run("passes reference date through", func(t *testing.T) {
		var gotRef *time.Time
		reportSvc := &mockReportService{
			generateFn: func(period transfer.Period, ref *time.Time) services.Report {
				gotRef = ref
				return services.Report{Period: period, Transactions: []models.Transaction{}}
			},
		}
		handler := NewReportHandler(reportSvc, &mockAuditService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports?period=weekly&date=2025-01-03", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotRef == nil {
			t.Fatal("expected a reference date")
		}
		if gotRef.Year() != 2025 || gotRef.Month() != time.January || gotRef.Day() != 3 {
			t.Errorf("expected 2025-01-03, got %s", gotRef)
		}
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{}, &mockAuditService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports?period=quarterly", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_Export(t *testing.T) {
	reportSvc := &mockReportService{
		generateFn: func(period transfer.Period, _ *time.Time) services.Report {
			return services.Report{
				Period:       period,
				Transactions: []models.Transaction{*sampleTransaction()},
				Summary: transfer.Summary{
					Count:       1,
					TotalAmount: decimal.NewFromInt(1000),
				},
			}
		},
	}

	t.Run("csv export sets headers and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		handler := NewReportHandler(reportSvc, audit)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports/export.csv?period=monthly", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report-monthly.csv") {
			t.Errorf("expected monthly filename, got %q", cd)
		}
		if !strings.Contains(rec.Body.String(), "TXN-20250103-0001") {
			t.Error("expected transaction row in CSV body")
		}
		if len(audit.logged) != 1 || audit.logged[0] != "EXPORT_REPORT" {
			t.Errorf("expected EXPORT_REPORT audit entry, got %v", audit.logged)
		}
	})

	t.Run("pdf export produces a pdf document", func(t *testing.T) {
		handler := NewReportHandler(reportSvc, &mockAuditService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports/export.pdf?period=daily", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %q", ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Error("expected PDF magic bytes in body")
		}
	})
}
