package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/infrastructure/postgres/generated"
)

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(d.Decimal)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}

	d := decimal.NewFromBigInt(n.Int, 0)
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToNullDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(numericToDecimal(n))
}

func timeToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func pgDateToTime(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}

	t := d.Time.UTC()
	return &t
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return timeToPgTimestamptz(*t)
}

func transactionToParams(t *domain.Transaction) generated.CreateTransactionsParams {
	return generated.CreateTransactionsParams{
		ID:                 t.ID,
		Origin:             string(t.Origin),
		Status:             string(t.Status),
		NossoNumero:        t.NossoNumero,
		FileSource:         t.FileSource,
		Bank:               t.Bank,
		Batch:              t.Batch,
		RecordType:         t.RecordType,
		Sequence:           t.Sequence,
		Segment:            t.Segment,
		Movement:           t.Movement,
		Agency:             t.Agency,
		Account:            t.Account,
		Wallet:             t.Wallet,
		DocumentNumber:     t.DocumentNumber,
		CollectingBank:     t.CollectingBank,
		CollectingAgency:   t.CollectingAgency,
		CompanyTitleID:     t.CompanyTitleID,
		RegistrationType:   t.RegistrationType,
		RegistrationNumber: t.RegistrationNumber,
		PayerName:          t.PayerName,
		ContractNumber:     t.ContractNumber,
		ReasonCode:         t.ReasonCode,
		DueDate:            timeToPgDate(t.DueDate),
		OccurrenceDate:     timeToPgDate(t.OccurrenceDate),
		CreditDate:         timeToPgDate(t.CreditDate),
		TitleAmount:        decimalToNumeric(t.TitleAmount),
		TariffAmount:       decimalToNumeric(t.TariffAmount),
		InterestPenalty:    decimalToNumeric(t.InterestPenalty),
		Discount:           decimalToNumeric(t.Discount),
		Rebate:             decimalToNumeric(t.Rebate),
		Iof:                decimalToNumeric(t.IOF),
		PaidAmount:         nullDecimalToNumeric(t.PaidAmount),
		NetAmount:          decimalToNumeric(t.NetAmount),
		OtherExpenses:      decimalToNumeric(t.OtherExpenses),
		OtherCredits:       decimalToNumeric(t.OtherCredits),
		CreatedAt:          timeToPgTimestamptz(t.CreatedAt),
	}
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                 row.ID,
		Origin:             domain.Origin(row.Origin),
		Status:             domain.ReconciliationStatus(row.Status),
		NossoNumero:        row.NossoNumero,
		FileSource:         row.FileSource,
		Bank:               row.Bank,
		Batch:              row.Batch,
		RecordType:         row.RecordType,
		Sequence:           row.Sequence,
		Segment:            row.Segment,
		Movement:           row.Movement,
		Agency:             row.Agency,
		Account:            row.Account,
		Wallet:             row.Wallet,
		DocumentNumber:     row.DocumentNumber,
		CollectingBank:     row.CollectingBank,
		CollectingAgency:   row.CollectingAgency,
		CompanyTitleID:     row.CompanyTitleID,
		RegistrationType:   row.RegistrationType,
		RegistrationNumber: row.RegistrationNumber,
		PayerName:          row.PayerName,
		ContractNumber:     row.ContractNumber,
		ReasonCode:         row.ReasonCode,
		DueDate:            pgDateToTime(row.DueDate),
		OccurrenceDate:     pgDateToTime(row.OccurrenceDate),
		CreditDate:         pgDateToTime(row.CreditDate),
		TitleAmount:        numericToDecimal(row.TitleAmount),
		TariffAmount:       numericToDecimal(row.TariffAmount),
		InterestPenalty:    numericToDecimal(row.InterestPenalty),
		Discount:           numericToDecimal(row.Discount),
		Rebate:             numericToDecimal(row.Rebate),
		IOF:                numericToDecimal(row.Iof),
		PaidAmount:         numericToNullDecimal(row.PaidAmount),
		NetAmount:          numericToDecimal(row.NetAmount),
		OtherExpenses:      numericToDecimal(row.OtherExpenses),
		OtherCredits:       numericToDecimal(row.OtherCredits),
		CreatedAt:          row.CreatedAt.Time,
	}
}

func rowsToTransactions(rows []generated.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToTransaction(row))
	}

	return out
}
