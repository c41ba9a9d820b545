package domain

import "github.com/shopspring/decimal"

// FinancialTotals sums every monetary column over a set of transactions.
type FinancialTotals struct {
	Rebate          decimal.Decimal
	Discount        decimal.Decimal
	IOF             decimal.Decimal
	InterestPenalty decimal.Decimal
	OtherExpenses   decimal.Decimal
	OtherCredits    decimal.Decimal
	NetAmount       decimal.Decimal
	PaidAmount      decimal.Decimal
	TariffAmount    decimal.Decimal
	TitleAmount     decimal.Decimal
}

// DistributionEntry is one labelled slice of the financial distribution.
type DistributionEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Distribution lists the totals in report order.
func (f FinancialTotals) Distribution() []DistributionEntry {
	return []DistributionEntry{
		{Label: "Rebate", Amount: f.Rebate},
		{Label: "Discount", Amount: f.Discount},
		{Label: "IOF", Amount: f.IOF},
		{Label: "Interest/Penalty", Amount: f.InterestPenalty},
		{Label: "Other Expenses", Amount: f.OtherExpenses},
		{Label: "Other Credits", Amount: f.OtherCredits},
		{Label: "Net Amount", Amount: f.NetAmount},
		{Label: "Paid Amount", Amount: f.PaidAmount},
		{Label: "Tariff", Amount: f.TariffAmount},
		{Label: "Title Amount", Amount: f.TitleAmount},
	}
}

// WindowTotals are the raw aggregates a store computes for one date window.
type WindowTotals struct {
	PaidAPI          decimal.Decimal
	PaidGeral        decimal.Decimal
	CountDivergent   int64
	CountConciliated int64
	Geral            FinancialTotals
}

// DashboardStats summarizes one date window for the dashboard.
type DashboardStats struct {
	Range            DateRange
	DateField        DateField
	TotalAPI         decimal.Decimal
	TotalGeral       decimal.Decimal
	Difference       decimal.Decimal
	CountDivergent   int64
	CountConciliated int64
	Distribution     []DistributionEntry
}

// NewDashboardStats derives dashboard figures from window totals.
func NewDashboardStats(r DateRange, field DateField, totals WindowTotals) *DashboardStats {
	return &DashboardStats{
		Range:            r,
		DateField:        field,
		TotalAPI:         totals.PaidAPI,
		TotalGeral:       totals.PaidGeral,
		Difference:       totals.PaidAPI.Sub(totals.PaidGeral),
		CountDivergent:   totals.CountDivergent,
		CountConciliated: totals.CountConciliated,
		Distribution:     totals.Geral.Distribution(),
	}
}
