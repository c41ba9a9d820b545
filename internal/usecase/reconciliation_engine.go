package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

// MatchLookup returns the GERAL records sharing nosso numero, paid amount
// and occurrence date with an API record.
type MatchLookup func(ctx context.Context, nossoNumero string, paidAmount decimal.Decimal, occurrenceDate time.Time) ([]*domain.Transaction, error)

// OrphanGeralPolicy decides what stamping does with unmatched GERAL records.
type OrphanGeralPolicy string

const (
	// OrphanGeralKeep leaves unmatched GERAL records with their prior status.
	OrphanGeralKeep OrphanGeralPolicy = "keep"
	// OrphanGeralDivergent marks unmatched GERAL records DIVERGENTE.
	OrphanGeralDivergent OrphanGeralPolicy = "divergent"
)

// ParseOrphanGeralPolicy parses a policy name. Empty means keep.
func ParseOrphanGeralPolicy(s string) (OrphanGeralPolicy, error) {
	switch p := OrphanGeralPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", OrphanGeralKeep:
		return OrphanGeralKeep, nil
	case OrphanGeralDivergent:
		return p, nil
	default:
		return "", fmt.Errorf("unknown orphan GERAL policy %q", s)
	}
}

// DuplicatePolicy decides what a windowed comparison does when a nosso
// numero group holds more than one record of the same origin.
type DuplicatePolicy string

const (
	DuplicatesKeepFirst DuplicatePolicy = "keep_first"
	DuplicatesWarn      DuplicatePolicy = "warn"
	DuplicatesError     DuplicatePolicy = "error"
)

// ParseDuplicatePolicy parses a policy name. Empty means keep_first.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DuplicatesKeepFirst:
		return DuplicatesKeepFirst, nil
	case DuplicatesWarn, DuplicatesError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// StampOptions tunes a stamping pass.
type StampOptions struct {
	OrphanGeral OrphanGeralPolicy
	// GeralRecords are the candidates for OrphanGeralDivergent.
	GeralRecords []*domain.Transaction
}

// StampOutcome describes the status changes produced by a stamping pass.
type StampOutcome struct {
	// Updates holds the IDs whose status changed, keyed by new status.
	Updates map[domain.ReconciliationStatus][]string
	// Touched holds every record whose status changed.
	Touched []*domain.Transaction

	APIConciliated   int
	APIDivergent     int
	GeralConciliated int
	GeralDivergent   int
}

// Changed returns the number of records whose status changed.
func (o *StampOutcome) Changed() int {
	return len(o.Touched)
}

type stamp struct {
	outcome *StampOutcome
	final   map[string]domain.ReconciliationStatus
}

func recordKey(t *domain.Transaction) string {
	if t.ID != "" {
		return t.ID
	}

	return fmt.Sprintf("%p", t)
}

func (s *stamp) set(t *domain.Transaction, status domain.ReconciliationStatus) {
	key := recordKey(t)
	if _, seen := s.final[key]; seen {
		return
	}
	s.final[key] = status

	switch {
	case t.Origin == domain.OriginAPI && status == domain.StatusConciliated:
		s.outcome.APIConciliated++
	case t.Origin == domain.OriginAPI && status == domain.StatusDivergent:
		s.outcome.APIDivergent++
	case t.Origin == domain.OriginGeral && status == domain.StatusConciliated:
		s.outcome.GeralConciliated++
	case t.Origin == domain.OriginGeral && status == domain.StatusDivergent:
		s.outcome.GeralDivergent++
	}

	if t.Status == status {
		return
	}

	t.Status = status
	s.outcome.Touched = append(s.outcome.Touched, t)
	if t.ID != "" {
		s.outcome.Updates[status] = append(s.outcome.Updates[status], t.ID)
	}
}

// StampStatuses marks every API record CONCILIADO when lookup finds at least
// one GERAL match, together with the matches, and DIVERGENTE otherwise.
// Records are mutated in place. A lookup failure aborts the pass with
// domain.ErrStoreUnavailable and no outcome.
func StampStatuses(ctx context.Context, apiRecords []*domain.Transaction, lookup MatchLookup, opts StampOptions) (*StampOutcome, error) {
	s := &stamp{
		outcome: &StampOutcome{Updates: make(map[domain.ReconciliationStatus][]string)},
		final:   make(map[string]domain.ReconciliationStatus),
	}

	type pending struct {
		record *domain.Transaction
		status domain.ReconciliationStatus
	}
	var decisions []pending

	matched := make(map[string]bool)
	for _, api := range apiRecords {
		if !api.PaidAmount.Valid || api.OccurrenceDate == nil {
			decisions = append(decisions, pending{api, domain.StatusDivergent})
			continue
		}

		matches, err := lookup(ctx, api.NossoNumero, api.PaidAmount.Decimal, *api.OccurrenceDate)
		if err != nil {
			return nil, fmt.Errorf("%w: match lookup for %s: %w", domain.ErrStoreUnavailable, api.NossoNumero, err)
		}

		if len(matches) == 0 {
			decisions = append(decisions, pending{api, domain.StatusDivergent})
			continue
		}

		decisions = append(decisions, pending{api, domain.StatusConciliated})
		for _, m := range matches {
			matched[recordKey(m)] = true
			decisions = append(decisions, pending{m, domain.StatusConciliated})
		}
	}

	for _, d := range decisions {
		s.set(d.record, d.status)
	}

	if opts.OrphanGeral == OrphanGeralDivergent {
		for _, g := range opts.GeralRecords {
			if !matched[recordKey(g)] {
				s.set(g, domain.StatusDivergent)
			}
		}
	}

	return s.outcome, nil
}

// WindowOptions tunes a windowed comparison.
type WindowOptions struct {
	DateField domain.DateField
	// Range, when set, drops records whose keyed date is absent or outside it.
	Range         *domain.DateRange
	OnlyDivergent bool
	Duplicates    DuplicatePolicy
	Logger        *zerolog.Logger
}

type group struct {
	key        string
	api        *domain.Transaction
	geral      *domain.Transaction
	duplicates int
}

// ReconcileWindow groups records by nosso numero and classifies each group.
// Divergent results come first; both classes keep first-encounter order.
func ReconcileWindow(records []*domain.Transaction, opts WindowOptions) ([]*domain.ComparisonResult, error) {
	var order []*group
	groups := make(map[string]*group)

	for _, r := range records {
		if opts.Range != nil {
			d := r.DateFor(opts.DateField)
			if d == nil || !opts.Range.Contains(*d) {
				continue
			}
		}

		g, ok := groups[r.NossoNumero]
		if !ok {
			g = &group{key: r.NossoNumero}
			groups[r.NossoNumero] = g
			order = append(order, g)
		}

		switch r.Origin {
		case domain.OriginAPI:
			if g.api == nil {
				g.api = r
			} else {
				g.duplicates++
			}
		case domain.OriginGeral:
			if g.geral == nil {
				g.geral = r
			} else {
				g.duplicates++
			}
		}
	}

	results := make([]*domain.ComparisonResult, 0, len(order))
	for _, g := range order {
		if g.api == nil && g.geral == nil {
			continue
		}

		if g.duplicates > 0 {
			switch opts.Duplicates {
			case DuplicatesError:
				return nil, fmt.Errorf("%w: nosso numero %s has %d surplus records", domain.ErrDuplicateRecord, g.key, g.duplicates)
			case DuplicatesWarn:
				if opts.Logger != nil {
					opts.Logger.Warn().
						Str("nosso_numero", g.key).
						Int("dropped", g.duplicates).
						Msg("duplicate records ignored in comparison")
				}
			}
		}

		res := classify(g.api, g.geral)
		res.NossoNumero = g.key
		if opts.Duplicates == DuplicatesWarn {
			res.DuplicatesDropped = g.duplicates
		}
		results = append(results, res)
	}

	return partition(results, opts.OnlyDivergent), nil
}

// partition moves divergent results ahead of the rest, keeping relative order.
func partition(results []*domain.ComparisonResult, onlyDivergent bool) []*domain.ComparisonResult {
	out := make([]*domain.ComparisonResult, 0, len(results))
	for _, r := range results {
		if r.Divergent {
			out = append(out, r)
		}
	}

	if onlyDivergent {
		return out
	}

	for _, r := range results {
		if !r.Divergent {
			out = append(out, r)
		}
	}

	return out
}

func classify(api, geral *domain.Transaction) *domain.ComparisonResult {
	res := &domain.ComparisonResult{API: api, Geral: geral, Discrepancies: []string{}}

	switch {
	case api == nil:
		res.Status = domain.ComparisonOnlyGeral
		res.Divergent = true
		res.Discrepancies = append(res.Discrepancies, "MISSING FROM API: record found only in the GERAL feed")
		return res
	case geral == nil:
		res.Status = domain.ComparisonOnlyAPI
		res.Divergent = true
		res.Discrepancies = append(res.Discrepancies, "MISSING FROM GERAL: record found only in the API feed")
		return res
	}

	if !api.PaidAmount.Valid || !geral.PaidAmount.Valid {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("VALUE MISSING: API[%s] vs GERAL[%s]",
			formatMoney(api.PaidAmount), formatMoney(geral.PaidAmount)))
	}
	if api.OccurrenceDate == nil || geral.OccurrenceDate == nil {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("OCCURRENCE DATE MISSING: API[%s] vs GERAL[%s]",
			formatDay(api.OccurrenceDate), formatDay(geral.OccurrenceDate)))
	}
	if len(res.Discrepancies) > 0 {
		res.Status = domain.ComparisonDivergent
		res.Divergent = true
		return res
	}

	if !api.PaidAmount.Decimal.Equal(geral.PaidAmount.Decimal) {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("VALUE MISMATCH: API[%s] vs GERAL[%s]",
			formatMoney(api.PaidAmount), formatMoney(geral.PaidAmount)))
	}

	if !domain.SameDay(*api.OccurrenceDate, *geral.OccurrenceDate) {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("PAYMENT DATE MISMATCH: API[%s] vs GERAL[%s]",
			formatDay(api.OccurrenceDate), formatDay(geral.OccurrenceDate)))
	}

	if api.CreditDate != nil && geral.CreditDate != nil && !domain.SameDay(*api.CreditDate, *geral.CreditDate) {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("CREDIT DATE MISMATCH: API[%s] vs GERAL[%s]",
			formatDay(api.CreditDate), formatDay(geral.CreditDate)))
	}

	res.Divergent = len(res.Discrepancies) > 0
	res.Status = domain.ComparisonConciliated
	if res.Divergent {
		res.Status = domain.ComparisonDivergent
	}

	return res
}

func formatMoney(v decimal.NullDecimal) string {
	if !v.Valid {
		return "none"
	}

	return "R$ " + v.Decimal.StringFixed(2)
}

func formatDay(t *time.Time) string {
	if t == nil {
		return "none"
	}

	return t.Format(domain.QueryDateLayout)
}
