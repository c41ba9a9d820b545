package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewDashboardStats(t *testing.T) {
	r := DateRange{Start: *day(2024, 3, 1), End: *day(2024, 3, 2)}
	totals := WindowTotals{
		PaidAPI:          decimal.RequireFromString("150.25"),
		PaidGeral:        decimal.RequireFromString("200.00"),
		CountDivergent:   3,
		CountConciliated: 7,
		Geral: FinancialTotals{
			Rebate:      decimal.RequireFromString("1"),
			TitleAmount: decimal.RequireFromString("210"),
		},
	}

	stats := NewDashboardStats(r, DateFieldCredit, totals)

	if !stats.Difference.Equal(decimal.RequireFromString("-49.75")) {
		t.Fatalf("expected difference -49.75, got %s", stats.Difference)
	}
	if stats.CountDivergent != 3 || stats.CountConciliated != 7 {
		t.Fatalf("unexpected counts %d/%d", stats.CountDivergent, stats.CountConciliated)
	}
	if stats.DateField != DateFieldCredit || stats.Range != r {
		t.Fatalf("window not carried over")
	}
}

func TestFinancialTotals_Distribution(t *testing.T) {
	f := FinancialTotals{
		Rebate:          decimal.NewFromInt(1),
		Discount:        decimal.NewFromInt(2),
		IOF:             decimal.NewFromInt(3),
		InterestPenalty: decimal.NewFromInt(4),
		OtherExpenses:   decimal.NewFromInt(5),
		OtherCredits:    decimal.NewFromInt(6),
		NetAmount:       decimal.NewFromInt(7),
		PaidAmount:      decimal.NewFromInt(8),
		TariffAmount:    decimal.NewFromInt(9),
		TitleAmount:     decimal.NewFromInt(10),
	}

	labels := []string{
		"Rebate", "Discount", "IOF", "Interest/Penalty", "Other Expenses",
		"Other Credits", "Net Amount", "Paid Amount", "Tariff", "Title Amount",
	}

	dist := f.Distribution()
	if len(dist) != len(labels) {
		t.Fatalf("expected %d entries, got %d", len(labels), len(dist))
	}

	for i, e := range dist {
		if e.Label != labels[i] {
			t.Errorf("entry %d: expected label %q, got %q", i, labels[i], e.Label)
		}
		if !e.Amount.Equal(decimal.NewFromInt(int64(i + 1))) {
			t.Errorf("entry %d: expected amount %d, got %s", i, i+1, e.Amount)
		}
	}
}
