package receipt

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"tramex/internal/models"
	"tramex/internal/transfer"
)

// WritePDF renders the receipt as an A5 PDF with the QR verification code.
func WritePDF(w io.Writer, tx *models.Transaction, verifyBaseURL string) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pdf.SetFont("Courier", "", 8)
	for _, ln := range strings.Split(Text(tx, verifyBaseURL), "\n") {
		pdf.CellFormat(0, 3.5, ln, "", 1, "L", false, 0, "")
	}

	png, err := qrcode.Encode(QRPayload(tx, verifyBaseURL), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to encode QR: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 40, pdf.GetY()+2, 25, 25, false, opts, 0, "")

	if pdf.Err() {
		return fmt.Errorf("pdf rendering failed: %v", pdf.Error())
	}
	return pdf.Output(w)
}

// WriteReportPDF renders a filtered report: the summary block followed by
// one row per transaction, landscape A4.
func WriteReportPDF(w io.Writer, txs []models.Transaction, summary transfer.Summary, title string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Transactions: %d   Total amount: %s   Total commissions: %s",
		summary.Count, summary.TotalAmount.StringFixed(2), summary.TotalCommissions.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Pending: %d   Completed: %d   Cancelled: %d",
		summary.PendingCount, summary.CompletedCount, summary.CancelledCount), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	headers := []string{"Code", "Date", "Sender", "Recipient", "Amount", "Status", "Commission", "Direction"}
	widths := []float64{42, 26, 42, 42, 28, 24, 28, 40}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, tx := range txs {
		cols := []string{
			tx.TxnID,
			tx.CreatedAt.Format("02/01/2006"),
			tx.Sender.Name,
			tx.Recipient.Name,
			tx.Amount.StringFixed(2) + " " + tx.Currency,
			string(tx.Status),
			tx.CommissionAmount.StringFixed(2),
			directionLabels[tx.Direction],
		}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Err() {
		return fmt.Errorf("pdf rendering failed: %v", pdf.Error())
	}
	return pdf.Output(w)
}
