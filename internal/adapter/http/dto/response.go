package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Status      string `json:"status"`
	NossoNumero string `json:"nosso_numero"`
	FileSource  string `json:"file_source"`

	Bank               string `json:"bank"`
	Batch              string `json:"batch"`
	RecordType         string `json:"record_type"`
	Sequence           string `json:"sequence"`
	Segment            string `json:"segment"`
	Movement           string `json:"movement"`
	Agency             string `json:"agency"`
	Account            string `json:"account"`
	Wallet             string `json:"wallet"`
	DocumentNumber     string `json:"document_number"`
	CollectingBank     string `json:"collecting_bank"`
	CollectingAgency   string `json:"collecting_agency"`
	CompanyTitleID     string `json:"company_title_id"`
	RegistrationType   string `json:"registration_type"`
	RegistrationNumber string `json:"registration_number"`
	PayerName          string `json:"payer_name"`
	ContractNumber     string `json:"contract_number"`
	ReasonCode         string `json:"reason_code"`

	DueDate        *time.Time `json:"due_date,omitempty"`
	OccurrenceDate *time.Time `json:"occurrence_date,omitempty"`
	CreditDate     *time.Time `json:"credit_date,omitempty"`
	LagDays        *int       `json:"lag_days,omitempty"`

	TitleAmount     decimal.Decimal  `json:"title_amount"`
	TariffAmount    decimal.Decimal  `json:"tariff_amount"`
	InterestPenalty decimal.Decimal  `json:"interest_penalty"`
	Discount        decimal.Decimal  `json:"discount"`
	Rebate          decimal.Decimal  `json:"rebate"`
	IOF             decimal.Decimal  `json:"iof"`
	PaidAmount      *decimal.Decimal `json:"paid_amount"`
	NetAmount       decimal.Decimal  `json:"net_amount"`
	OtherExpenses   decimal.Decimal  `json:"other_expenses"`
	OtherCredits    decimal.Decimal  `json:"other_credits"`

	CreatedAt time.Time `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}

	resp := &TransactionResponse{
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
		DueDate:            t.DueDate,
		OccurrenceDate:     t.OccurrenceDate,
		CreditDate:         t.CreditDate,
		TitleAmount:        t.TitleAmount,
		TariffAmount:       t.TariffAmount,
		InterestPenalty:    t.InterestPenalty,
		Discount:           t.Discount,
		Rebate:             t.Rebate,
		IOF:                t.IOF,
		NetAmount:          t.NetAmount,
		OtherExpenses:      t.OtherExpenses,
		OtherCredits:       t.OtherCredits,
		CreatedAt:          t.CreatedAt,
	}

	if t.PaidAmount.Valid {
		paid := t.PaidAmount.Decimal
		resp.PaidAmount = &paid
	}

	if lag, ok := t.LagDays(); ok {
		resp.LagDays = &lag
	}

	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PageResponse represents a page of transactions.
type PageResponse struct {
	Items  []*TransactionResponse `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// PageFromDomain converts a domain page to response.
func PageFromDomain(p *domain.Page) *PageResponse {
	return &PageResponse{
		Items:  TransactionsFromDomain(p.Items),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

// WindowResponse describes the date window a result was computed for.
type WindowResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	DateField string `json:"date_field"`
}

func windowFromDomain(r domain.DateRange, field domain.DateField) WindowResponse {
	return WindowResponse{
		Start:     r.Start.Format(domain.QueryDateLayout),
		End:       r.End.Format(domain.QueryDateLayout),
		DateField: string(field),
	}
}

// ComparisonResultResponse represents one compared nosso numero.
type ComparisonResultResponse struct {
	NossoNumero       string               `json:"nosso_numero"`
	Status            string               `json:"status"`
	Divergent         bool                 `json:"divergent"`
	Discrepancies     []string             `json:"discrepancies"`
	PayerName         string               `json:"payer_name"`
	MainDate          *time.Time           `json:"main_date,omitempty"`
	PaidAmount        *decimal.Decimal     `json:"paid_amount"`
	DuplicatesDropped int                  `json:"duplicates_dropped,omitempty"`
	API               *TransactionResponse `json:"api,omitempty"`
	Geral             *TransactionResponse `json:"geral,omitempty"`
}

// ComparisonResultFromDomain converts a comparison result to response.
func ComparisonResultFromDomain(c *domain.ComparisonResult) *ComparisonResultResponse {
	resp := &ComparisonResultResponse{
		NossoNumero:       c.NossoNumero,
		Status:            string(c.Status),
		Divergent:         c.Divergent,
		Discrepancies:     c.Discrepancies,
		PayerName:         c.PayerName(),
		MainDate:          c.MainDate(),
		DuplicatesDropped: c.DuplicatesDropped,
		API:               TransactionFromDomain(c.API),
		Geral:             TransactionFromDomain(c.Geral),
	}

	if resp.Discrepancies == nil {
		resp.Discrepancies = []string{}
	}

	if paid := c.PaidAmount(); paid.Valid {
		resp.PaidAmount = &paid.Decimal
	}

	return resp
}

// ComparisonSummaryResponse counts comparison results per class.
type ComparisonSummaryResponse struct {
	Total       int `json:"total"`
	Conciliated int `json:"conciliated"`
	Divergent   int `json:"divergent"`
	OnlyAPI     int `json:"only_api"`
	OnlyGeral   int `json:"only_geral"`
}

// ComparisonReportResponse represents a windowed comparison.
type ComparisonReportResponse struct {
	Window      WindowResponse              `json:"window"`
	Summary     ComparisonSummaryResponse   `json:"summary"`
	Results     []*ComparisonResultResponse `json:"results"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// ComparisonReportFromUseCase converts a comparison report to response.
func ComparisonReportFromUseCase(r *usecase.ComparisonReport) *ComparisonReportResponse {
	results := make([]*ComparisonResultResponse, len(r.Results))
	for i, c := range r.Results {
		results[i] = ComparisonResultFromDomain(c)
	}

	return &ComparisonReportResponse{
		Window: windowFromDomain(r.Range, r.DateField),
		Summary: ComparisonSummaryResponse{
			Total:       r.Summary.Total,
			Conciliated: r.Summary.Conciliated,
			Divergent:   r.Summary.Divergent,
			OnlyAPI:     r.Summary.OnlyAPI,
			OnlyGeral:   r.Summary.OnlyGeral,
		},
		Results:     results,
		GeneratedAt: r.GeneratedAt,
	}
}

// StampReportResponse represents a stamping pass.
type StampReportResponse struct {
	StartedAt        time.Time `json:"started_at"`
	DurationMs       int64     `json:"duration_ms"`
	OrphanGeral      string    `json:"orphan_geral_policy"`
	APIRecords       int       `json:"api_records"`
	APIConciliated   int       `json:"api_conciliated"`
	APIDivergent     int       `json:"api_divergent"`
	GeralConciliated int       `json:"geral_conciliated"`
	GeralDivergent   int       `json:"geral_divergent"`
	Updated          int       `json:"updated"`
}

// StampReportFromUseCase converts a stamping report to response.
func StampReportFromUseCase(r *usecase.StampReport) *StampReportResponse {
	if r == nil {
		return nil
	}

	return &StampReportResponse{
		StartedAt:        r.StartedAt,
		DurationMs:       r.Duration.Milliseconds(),
		OrphanGeral:      string(r.OrphanGeral),
		APIRecords:       r.APIRecords,
		APIConciliated:   r.APIConciliated,
		APIDivergent:     r.APIDivergent,
		GeralConciliated: r.GeralConciliated,
		GeralDivergent:   r.GeralDivergent,
		Updated:          r.Updated,
	}
}

// FileImportResponse describes one submitted file.
type FileImportResponse struct {
	Name       string             `json:"name"`
	Origin     string             `json:"origin"`
	Records    int                `json:"records"`
	Invalid    int                `json:"invalid"`
	Skipped    bool               `json:"skipped"`
	Reason     string             `json:"reason,omitempty"`
	Stats      domain.DecodeStats `json:"stats"`
	DurationMs int64              `json:"duration_ms"`
}

// ImportReportResponse represents an import batch.
type ImportReportResponse struct {
	Imported       int                  `json:"imported"`
	Records        int                  `json:"records"`
	Skipped        []string             `json:"skipped"`
	Files          []FileImportResponse `json:"files"`
	Reconciliation *StampReportResponse `json:"reconciliation,omitempty"`
}

// ImportReportFromUseCase converts an import report to response.
func ImportReportFromUseCase(r *usecase.ImportReport) *ImportReportResponse {
	files := make([]FileImportResponse, len(r.Files))
	for i, f := range r.Files {
		files[i] = FileImportResponse{
			Name:       f.Name,
			Origin:     string(f.Origin),
			Records:    f.Records,
			Invalid:    f.Invalid,
			Skipped:    f.Skipped,
			Reason:     f.Reason,
			Stats:      f.Stats,
			DurationMs: f.Duration.Milliseconds(),
		}
	}

	skipped := r.Skipped
	if skipped == nil {
		skipped = []string{}
	}

	return &ImportReportResponse{
		Imported:       r.Imported,
		Records:        r.Records,
		Skipped:        skipped,
		Files:          files,
		Reconciliation: StampReportFromUseCase(r.Reconciliation),
	}
}

// StatsResponse represents dashboard figures for a window.
type StatsResponse struct {
	Window           WindowResponse             `json:"window"`
	TotalAPI         decimal.Decimal            `json:"total_api"`
	TotalGeral       decimal.Decimal            `json:"total_geral"`
	Difference       decimal.Decimal            `json:"difference"`
	CountDivergent   int64                      `json:"count_divergent"`
	CountConciliated int64                      `json:"count_conciliated"`
	Distribution     []domain.DistributionEntry `json:"distribution"`
}

// StatsFromDomain converts dashboard stats to response.
func StatsFromDomain(s *domain.DashboardStats) *StatsResponse {
	return &StatsResponse{
		Window:           windowFromDomain(s.Range, s.DateField),
		TotalAPI:         s.TotalAPI,
		TotalGeral:       s.TotalGeral,
		Difference:       s.Difference,
		CountDivergent:   s.CountDivergent,
		CountConciliated: s.CountConciliated,
		Distribution:     s.Distribution,
	}
}

// AuditLogResponse represents an audit entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id,omitempty"`
	Action       string      `json:"action"`
	Term         string      `json:"term,omitempty"`
	Filters      domain.JSON `json:"filters,omitempty"`
	DurationMs   int64       `json:"duration_ms"`
	ResultCount  int         `json:"result_count"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts audit entries to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       string(l.Action),
			Term:         l.Term,
			Filters:      l.Filters,
			DurationMs:   l.DurationMs,
			ResultCount:  l.ResultCount,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			RequestID:    l.RequestID,
			Status:       string(l.Status),
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// FilesResponse lists imported file names.
type FilesResponse struct {
	Files []string `json:"files"`
}

// DeleteResponse reports how many transactions were removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
