package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validTransaction() *Transaction {
	return &Transaction{
		Origin:         OriginAPI,
		NossoNumero:    "149990000029221858",
		PaidAmount:     decimal.NewNullDecimal(decimal.RequireFromString("702.68")),
		OccurrenceDate: day(2026, time.February, 10),
		CreditDate:     day(2026, time.February, 11),
		Status:         StatusPending,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "unknown origin", mutate: func(tx *Transaction) { tx.Origin = "OTHER" }, wantErr: ErrInvalidOrigin},
		{name: "blank nosso numero", mutate: func(tx *Transaction) { tx.NossoNumero = "   " }, wantErr: ErrMissingNossoNumero},
		{name: "missing paid amount", mutate: func(tx *Transaction) { tx.PaidAmount = decimal.NullDecimal{} }, wantErr: ErrMissingPaidAmount},
		{name: "missing occurrence date", mutate: func(tx *Transaction) { tx.OccurrenceDate = nil }, wantErr: ErrMissingOccurrenceDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(tx)

			err := tx.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransaction_LagDays(t *testing.T) {
	tx := validTransaction()

	lag, ok := tx.LagDays()
	if !ok || lag != 1 {
		t.Fatalf("expected lag 1, got %d (ok=%v)", lag, ok)
	}

	tx.CreditDate = nil
	if _, ok := tx.LagDays(); ok {
		t.Fatal("expected no lag without credit date")
	}
}

func TestTransaction_DateFor(t *testing.T) {
	tx := validTransaction()

	if got := tx.DateFor(DateFieldOccurrence); !got.Equal(*tx.OccurrenceDate) {
		t.Fatalf("expected occurrence date, got %v", got)
	}
	if got := tx.DateFor(DateFieldCredit); !got.Equal(*tx.CreditDate) {
		t.Fatalf("expected credit date, got %v", got)
	}
}

func TestParseOrigin(t *testing.T) {
	if o, err := ParseOrigin(" geral "); err != nil || o != OriginGeral {
		t.Fatalf("expected GERAL, got %q (%v)", o, err)
	}
	if _, err := ParseOrigin("bank"); !errors.Is(err, ErrInvalidOrigin) {
		t.Fatalf("expected ErrInvalidOrigin, got %v", err)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Fatal("expected same day")
	}
	if SameDay(a, b.Add(time.Minute)) {
		t.Fatal("expected different days")
	}
}
