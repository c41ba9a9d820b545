// Package cnab decodes CNAB 240 bank-return files into transactions.
package cnab

// RecordWidth is the fixed width of every CNAB 240 line.
const RecordWidth = 240

// segmentIndex is the zero-based position of the segment discriminator.
const segmentIndex = 13

const (
	SegmentT = 'T'
	SegmentU = 'U'
)

// FieldKind tells the decoder how to interpret a column range.
type FieldKind string

const (
	KindText    FieldKind = "text"    // kept verbatim
	KindTrimmed FieldKind = "trimmed" // surrounding spaces removed
	KindMoney   FieldKind = "money"   // cents, two implied decimals
	KindDate    FieldKind = "date"    // DDMMYYYY, zeros mean absent
)

// Field is one column range of a segment, zero-based and end exclusive.
type Field struct {
	Name  string
	Start int
	End   int
	Kind  FieldKind
}

// Length returns the width of the field in characters.
func (f Field) Length() int {
	return f.End - f.Start
}

// Segment T columns.
var (
	TBank               = Field{Name: "bank", Start: 0, End: 3, Kind: KindText}
	TBatch              = Field{Name: "batch", Start: 3, End: 7, Kind: KindText}
	TRecordType         = Field{Name: "record_type", Start: 7, End: 8, Kind: KindText}
	TSequence           = Field{Name: "sequence", Start: 8, End: 13, Kind: KindText}
	TMovement           = Field{Name: "movement", Start: 15, End: 17, Kind: KindText}
	TAgency             = Field{Name: "agency", Start: 17, End: 22, Kind: KindText}
	TAccount            = Field{Name: "account", Start: 23, End: 35, Kind: KindText}
	TNossoNumero        = Field{Name: "nosso_numero", Start: 37, End: 57, Kind: KindTrimmed}
	TWallet             = Field{Name: "wallet", Start: 57, End: 58, Kind: KindText}
	TDocumentNumber     = Field{Name: "document_number", Start: 58, End: 73, Kind: KindTrimmed}
	TDueDate            = Field{Name: "due_date", Start: 73, End: 81, Kind: KindDate}
	TTitleAmount        = Field{Name: "title_amount", Start: 81, End: 96, Kind: KindMoney}
	TCollectingBank     = Field{Name: "collecting_bank", Start: 96, End: 99, Kind: KindText}
	TCollectingAgency   = Field{Name: "collecting_agency", Start: 99, End: 104, Kind: KindText}
	TCompanyTitleID     = Field{Name: "company_title_id", Start: 105, End: 130, Kind: KindTrimmed}
	TRegistrationType   = Field{Name: "registration_type", Start: 130, End: 131, Kind: KindText}
	TRegistrationNumber = Field{Name: "registration_number", Start: 131, End: 148, Kind: KindText}
	TPayerName          = Field{Name: "payer_name", Start: 148, End: 188, Kind: KindTrimmed}
	TContractNumber     = Field{Name: "contract_number", Start: 188, End: 198, Kind: KindText}
	TTariffAmount       = Field{Name: "tariff_amount", Start: 198, End: 213, Kind: KindMoney}
	TReasonCode         = Field{Name: "reason_code", Start: 213, End: 223, Kind: KindTrimmed}
)

// Segment U columns.
var (
	UInterestPenalty = Field{Name: "interest_penalty", Start: 17, End: 32, Kind: KindMoney}
	UDiscount        = Field{Name: "discount", Start: 32, End: 47, Kind: KindMoney}
	URebate          = Field{Name: "rebate", Start: 47, End: 62, Kind: KindMoney}
	UIOF             = Field{Name: "iof", Start: 62, End: 77, Kind: KindMoney}
	UPaidAmount      = Field{Name: "paid_amount", Start: 77, End: 92, Kind: KindMoney}
	UNetAmount       = Field{Name: "net_amount", Start: 92, End: 107, Kind: KindMoney}
	UOtherExpenses   = Field{Name: "other_expenses", Start: 107, End: 122, Kind: KindMoney}
	UOtherCredits    = Field{Name: "other_credits", Start: 122, End: 137, Kind: KindMoney}
	UOccurrenceDate  = Field{Name: "occurrence_date", Start: 137, End: 145, Kind: KindDate}
	UCreditDate      = Field{Name: "credit_date", Start: 145, End: 153, Kind: KindDate}
)

// LayoutT lists the segment T columns in file order.
var LayoutT = []Field{
	TBank, TBatch, TRecordType, TSequence, TMovement, TAgency, TAccount,
	TNossoNumero, TWallet, TDocumentNumber, TDueDate, TTitleAmount,
	TCollectingBank, TCollectingAgency, TCompanyTitleID, TRegistrationType,
	TRegistrationNumber, TPayerName, TContractNumber, TTariffAmount, TReasonCode,
}

// LayoutU lists the segment U columns in file order.
var LayoutU = []Field{
	UInterestPenalty, UDiscount, URebate, UIOF, UPaidAmount, UNetAmount,
	UOtherExpenses, UOtherCredits, UOccurrenceDate, UCreditDate,
}
