package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComparisonStatus classifies one nosso numero group of a windowed comparison.
type ComparisonStatus string

const (
	ComparisonOnlyAPI     ComparisonStatus = "SOMENTE_API"
	ComparisonOnlyGeral   ComparisonStatus = "SOMENTE_GERAL"
	ComparisonConciliated ComparisonStatus = "CONCILIADO"
	ComparisonDivergent   ComparisonStatus = "DIVERGENTE"
)

// ComparisonResult pairs the API and GERAL view of one nosso numero.
// At least one side is always set.
type ComparisonResult struct {
	API   *Transaction
	Geral *Transaction

	NossoNumero   string
	Status        ComparisonStatus
	Discrepancies []string
	Divergent     bool

	// DuplicatesDropped counts same-origin records ignored in the group.
	DuplicatesDropped int
}

func (c *ComparisonResult) primary() *Transaction {
	if c.API != nil {
		return c.API
	}

	return c.Geral
}

// PayerName returns the payer from the API side, falling back to GERAL.
func (c *ComparisonResult) PayerName() string {
	if t := c.primary(); t != nil {
		return t.PayerName
	}

	return ""
}

// MainDate returns the occurrence date from the API side, falling back to GERAL.
func (c *ComparisonResult) MainDate() *time.Time {
	if t := c.primary(); t != nil {
		return t.OccurrenceDate
	}

	return nil
}

// PaidAmount returns the paid amount from the API side, falling back to GERAL.
func (c *ComparisonResult) PaidAmount() decimal.NullDecimal {
	if t := c.primary(); t != nil {
		return t.PaidAmount
	}

	return decimal.NullDecimal{}
}

// CreditDate returns the credit date from the API side, falling back to GERAL.
func (c *ComparisonResult) CreditDate() *time.Time {
	if t := c.primary(); t != nil {
		return t.CreditDate
	}

	return nil
}
