package money

import (
	"testing"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCommission(t *testing.T) {
	cases := []struct {
		name       string
		amount     string
		percentage string
		want       string
	}{
		{"standard_kin_dxb", "1000", "3.5", "35"},
		{"standard_dxb_kin", "1000", "3", "30"},
		{"rounds_to_cents", "333.33", "3.5", "11.67"},
		{"zero_amount", "0", "3.5", "0"},
		{"zero_percentage", "500", "0", "0"},
		{"fractional_percentage", "200", "2.75", "5.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Commission(dec(tc.amount), dec(tc.percentage), "USD")
			if !got.Equal(dec(tc.want)) {
				t.Errorf("Commission(%s, %s) = %s, want %s", tc.amount, tc.percentage, got, tc.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	got := Total(dec("1000"), dec("35"))
	if !got.Equal(dec("1035")) {
		t.Errorf("Total(1000, 35) = %s, want 1035", got)
	}
}

func TestDefaultCommissionPercentage(t *testing.T) {
	if got := DefaultCommissionPercentage(models.DirectionKinshasaToDubai); !got.Equal(dec("3.5")) {
		t.Errorf("expected 3.5 for kinshasa_to_dubai, got %s", got)
	}
	if got := DefaultCommissionPercentage(models.DirectionDubaiToKinshasa); !got.Equal(dec("3")) {
		t.Errorf("expected 3.0 for dubai_to_kinshasa, got %s", got)
	}
}

func TestSupported(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "AED", "CDF"} {
		if !Supported(code) {
			t.Errorf("expected %s to be supported", code)
		}
	}
	if Supported("GBP") {
		t.Error("GBP should not be supported")
	}
}
