package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
	"tramex/internal/transfer"
)

func sampleTransaction() *models.Transaction {
	tx := &models.Transaction{
		TxnID:                "TXN-20240115-K7KQ3M",
		Direction:            models.DirectionKinshasaToDubai,
		Amount:               decimal.RequireFromString("1000"),
		Currency:             "USD",
		CommissionPercentage: decimal.RequireFromString("3.5"),
		CommissionAmount:     decimal.RequireFromString("35"),
		ReceivingAmount:      decimal.RequireFromString("965"),
		PaymentMethod:        models.PaymentMobileMoney,
		MobileMoneyNetwork:   "MPESA_CD",
		Status:               models.StatusValidated,
		Sender:               models.Sender{Name: "Jean Mukendi", Phone: "+243810000000"},
		Recipient:            models.Recipient{Name: "Amina Khalid", Phone: "+971501234567"},
	}
	tx.CreatedAt = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	return tx
}

func TestText(t *testing.T) {
	tx := sampleTransaction()
	out := Text(tx, "https://tramex.example.com/verify")

	t.Run("deterministic", func(t *testing.T) {
		if out != Text(tx, "https://tramex.example.com/verify") {
			t.Error("same transaction must render identically")
		}
	})

	t.Run("contains_financial_breakdown", func(t *testing.T) {
		for _, want := range []string{
			"TXN-20240115-K7KQ3M",
			"$ 1000.00",
			"$ 35.00",
			"$ 1035.00",
			"$ 965.00",
			"Commission (3.5%)",
			"VALIDATED",
			"Jean Mukendi",
			"Amina Khalid",
			"MPESA_CD",
			"https://tramex.example.com/verify/TXN-20240115-K7KQ3M",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("receipt missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("fixed_width_lines", func(t *testing.T) {
		for _, ln := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			if len(ln) > width && !strings.Contains(ln, "verify") {
				t.Errorf("line exceeds %d columns: %q", width, ln)
			}
		}
	})

	t.Run("agency_receipt_omits_network", func(t *testing.T) {
		agency := sampleTransaction()
		agency.PaymentMethod = models.PaymentAgency
		agency.MobileMoneyNetwork = ""
		if strings.Contains(Text(agency, "https://x"), "Network") {
			t.Error("agency receipts should not print a network line")
		}
	})
}

func TestQRPayload(t *testing.T) {
	tx := sampleTransaction()
	got := QRPayload(tx, "https://tramex.example.com/verify/")
	want := "https://tramex.example.com/verify/TXN-20240115-K7KQ3M"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteReportCSV(t *testing.T) {
	txs := []models.Transaction{*sampleTransaction()}
	summary := transfer.Summarize(txs)

	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, txs, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "TXN-20240115-K7KQ3M") {
		t.Errorf("csv missing transaction row:\n%s", out)
	}
	if !strings.Contains(out, "1000.00") || !strings.Contains(out, "35.00") {
		t.Errorf("csv missing summary totals:\n%s", out)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleTransaction(), "https://tramex.example.com/verify"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestWriteReportPDF(t *testing.T) {
	txs := []models.Transaction{*sampleTransaction()}
	var buf bytes.Buffer
	if err := WriteReportPDF(&buf, txs, transfer.Summarize(txs), "Monthly report"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
