package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tramex/internal/errors"
	"tramex/internal/receipt"
	"tramex/internal/services"
	"tramex/internal/transfer"
)

// ReportHandler handles report generation and export requests.
type ReportHandler struct {
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, auditService services.AuditServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

func parseReportQuery(c *gin.Context) (transfer.Period, *time.Time, error) {
	period := transfer.Period(c.DefaultQuery("period", string(transfer.PeriodAll)))
	if !transfer.ValidPeriod(period) {
		return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid period, must be daily, weekly, monthly, or all")
	}

	var ref *time.Time
	if v := c.Query("date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
		}
		ref = &t
	}

	return period, ref, nil
}

// GetReport generates a period report
// @Summary     Generate report
// @Description Generate a transfer report for a daily, weekly, monthly, or all-time period; degraded is true when data could not be fetched
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Report period (daily, weekly, monthly, all; default all)"
// @Param       date   query string false "Reference date for the period (RFC3339 or YYYY-MM-DD; omit for unfiltered)"
// @Success     200 {object} services.Report "Report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	period, ref, err := parseReportQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.reportService.Generate(period, ref))
}

// ExportReportCSV exports a period report as CSV
// @Summary     Export report CSV
// @Description Export the transfer report for a period as a CSV file
// @Tags        reports
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       period query string false "Report period (daily, weekly, monthly, all; default all)"
// @Param       date   query string false "Reference date for the period (RFC3339 or YYYY-MM-DD)"
// @Success     200 {file} binary "Report CSV"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/export.csv [get]
func (h *ReportHandler) ExportReportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, ref, err := parseReportQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report := h.reportService.Generate(period, ref)

	var buf bytes.Buffer
	if err := receipt.WriteReportCSV(&buf, report.Transactions, report.Summary); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(userID, "EXPORT_REPORT", "report", 0, c.ClientIP(),
		map[string]interface{}{"period": period, "format": "csv"})

	c.Header("Content-Disposition", `attachment; filename="report-`+string(period)+`.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportReportPDF exports a period report as PDF
// @Summary     Export report PDF
// @Description Export the transfer report for a period as a PDF document
// @Tags        reports
// @Accept      json
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       period query string false "Report period (daily, weekly, monthly, all; default all)"
// @Param       date   query string false "Reference date for the period (RFC3339 or YYYY-MM-DD)"
// @Success     200 {file} binary "Report PDF"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/export.pdf [get]
func (h *ReportHandler) ExportReportPDF(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, ref, err := parseReportQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report := h.reportService.Generate(period, ref)

	title := "Transfer Report (" + string(period) + ")"
	var buf bytes.Buffer
	if err := receipt.WriteReportPDF(&buf, report.Transactions, report.Summary, title); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(userID, "EXPORT_REPORT", "report", 0, c.ClientIP(),
		map[string]interface{}{"period": period, "format": "pdf"})

	c.Header("Content-Disposition", `attachment; filename="report-`+string(period)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
