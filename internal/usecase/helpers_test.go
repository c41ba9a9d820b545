package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func record(id string, origin domain.Origin, nossoNumero, paid string, occurred *time.Time) *domain.Transaction {
	t := &domain.Transaction{
		ID:             id,
		Origin:         origin,
		Status:         domain.StatusPending,
		NossoNumero:    nossoNumero,
		FileSource:     string(origin) + ".ret",
		PayerName:      "PAYER " + nossoNumero,
		OccurrenceDate: occurred,
		CreditDate:     occurred,
	}
	if paid != "" {
		t.PaidAmount = money(paid)
	}
	return t
}
