package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Origin identifies which feed a transaction was decoded from.
type Origin string

const (
	OriginAPI   Origin = "API"
	OriginGeral Origin = "GERAL"
)

// ParseOrigin parses an origin label, case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	switch Origin(strings.ToUpper(strings.TrimSpace(s))) {
	case OriginAPI:
		return OriginAPI, nil
	case OriginGeral:
		return OriginGeral, nil
	default:
		return "", ErrInvalidOrigin
	}
}

// ReconciliationStatus is the persisted reconciliation state of a transaction.
type ReconciliationStatus string

const (
	StatusPending     ReconciliationStatus = "PENDENTE"
	StatusConciliated ReconciliationStatus = "CONCILIADO"
	StatusDivergent   ReconciliationStatus = "DIVERGENTE"
)

// Transaction is one payment event decoded from a CNAB 240 segment T/U pair.
type Transaction struct {
	CreatedAt time.Time
	ID        string
	Origin    Origin
	Status    ReconciliationStatus

	// NossoNumero is the bank-assigned identifier shared by both feeds.
	NossoNumero string
	FileSource  string

	Bank               string
	Batch              string
	RecordType         string
	Sequence           string
	Segment            string
	Movement           string
	Agency             string
	Account            string
	Wallet             string
	DocumentNumber     string
	CollectingBank     string
	CollectingAgency   string
	CompanyTitleID     string
	RegistrationType   string
	RegistrationNumber string
	PayerName          string
	ContractNumber     string
	ReasonCode         string

	DueDate        *time.Time
	OccurrenceDate *time.Time
	CreditDate     *time.Time

	TitleAmount     decimal.Decimal
	TariffAmount    decimal.Decimal
	InterestPenalty decimal.Decimal
	Discount        decimal.Decimal
	Rebate          decimal.Decimal
	IOF             decimal.Decimal
	PaidAmount      decimal.NullDecimal
	NetAmount       decimal.Decimal
	OtherExpenses   decimal.Decimal
	OtherCredits    decimal.Decimal
}

// Validate checks the fields every persisted transaction must carry.
func (t *Transaction) Validate() error {
	if t.Origin != OriginAPI && t.Origin != OriginGeral {
		return ErrInvalidOrigin
	}

	if strings.TrimSpace(t.NossoNumero) == "" {
		return ErrMissingNossoNumero
	}

	if !t.PaidAmount.Valid {
		return ErrMissingPaidAmount
	}

	if t.OccurrenceDate == nil {
		return ErrMissingOccurrenceDate
	}

	return nil
}

// LagDays returns the number of days between occurrence and credit.
// The second return value is false when either date is missing.
func (t *Transaction) LagDays() (int, bool) {
	if t.OccurrenceDate == nil || t.CreditDate == nil {
		return 0, false
	}

	return DaysBetween(*t.OccurrenceDate, *t.CreditDate), true
}

// DateFor returns the date the transaction is keyed by for the given field.
func (t *Transaction) DateFor(field DateField) *time.Time {
	if field == DateFieldCredit {
		return t.CreditDate
	}

	return t.OccurrenceDate
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(bd.Sub(ad).Hours() / 24)
}
