package cnab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

const dateLayout = "02012006"

var (
	centsPattern = regexp.MustCompile(`^-?\d+$`)
	datePattern  = regexp.MustCompile(`^\d{8}$`)
)

// Stats counts what happened to each scanned line.
type Stats = domain.DecodeStats

// Result is the outcome of decoding one file.
type Result = domain.DecodedFile

// Decoder turns CNAB 240 segment T/U pairs into transactions.
// It keeps no state between calls and is safe for concurrent use.
type Decoder struct {
	logger zerolog.Logger
}

// NewDecoder creates a new Decoder.
func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{logger: logger.With().Str("component", "cnab_decoder").Logger()}
}

// DecodeLines decodes already split lines.
func (d *Decoder) DecodeLines(lines []string, origin domain.Origin, fileSource string) []*domain.Transaction {
	s := d.newScan(origin, fileSource)
	for _, line := range lines {
		s.feed(line)
	}

	return s.finish().Transactions
}

// Decode reads r line by line. Lines end at \n, \r or \r\n. The only
// error returned is a read failure; a line longer than MaxLineBytes is
// counted as failed and skipped.
func (d *Decoder) Decode(r io.Reader, origin domain.Origin, fileSource string) (*Result, error) {
	s := d.newScan(origin, fileSource)
	lines := newLineReader(r)

	for {
		line, overlong, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fileSource, err)
		}

		if overlong {
			s.skipOverlong()
			continue
		}
		s.feed(line)
	}

	return s.finish(), nil
}

// MaxLineBytes caps how much of a single line is buffered.
const MaxLineBytes = 1 << 20

type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the following line without its terminator. Bytes past
// MaxLineBytes are discarded and reported through overlong. io.EOF is
// returned only when no bytes remain.
func (lr *lineReader) next() (line string, overlong bool, err error) {
	lr.buf = lr.buf[:0]
	n := 0

	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && n > 0 {
				return string(lr.buf), n > MaxLineBytes, nil
			}
			return "", false, err
		}

		switch b {
		case '\n':
			return string(lr.buf), n > MaxLineBytes, nil
		case '\r':
			if peek, perr := lr.r.Peek(1); perr == nil && peek[0] == '\n' {
				_, _ = lr.r.ReadByte()
			}
			return string(lr.buf), n > MaxLineBytes, nil
		}

		n++
		if n <= MaxLineBytes {
			lr.buf = append(lr.buf, b)
		}
	}
}

type scan struct {
	logger     zerolog.Logger
	origin     domain.Origin
	fileSource string

	open   *domain.Transaction
	result Result
}

func (d *Decoder) newScan(origin domain.Origin, fileSource string) *scan {
	return &scan{
		logger:     d.logger.With().Str("origin", string(origin)).Str("file", fileSource).Logger(),
		origin:     origin,
		fileSource: fileSource,
	}
}

func (s *scan) skipOverlong() {
	s.result.Stats.Lines++
	s.result.Stats.Failed++
	s.logger.Debug().Int("line", s.result.Stats.Lines).Msg("skipping overlong line")
}

func (s *scan) feed(line string) {
	s.result.Stats.Lines++
	lineNo := s.result.Stats.Lines

	defer func() {
		if r := recover(); r != nil {
			s.result.Stats.Failed++
			s.logger.Debug().Int("line", lineNo).Interface("panic", r).Msg("skipping undecodable line")
		}
	}()

	row := []rune(strings.TrimRight(line, "\r"))
	if len(row) < RecordWidth {
		s.result.Stats.Short++
		s.logger.Trace().Int("line", lineNo).Int("width", len(row)).Msg("skipping short line")
		return
	}

	switch row[segmentIndex] {
	case SegmentT:
		if s.open != nil {
			s.result.Stats.Unterminated++
		}
		s.open = s.decodeT(row)
	case SegmentU:
		if s.open == nil {
			s.result.Stats.Orphans++
			return
		}
		applyU(s.open, row)
		s.result.Transactions = append(s.result.Transactions, s.open)
		s.result.Stats.Emitted++
		s.open = nil
	default:
		s.result.Stats.Ignored++
	}
}

func (s *scan) finish() *Result {
	if s.open != nil {
		s.result.Stats.Unterminated++
		s.open = nil
	}

	st := s.result.Stats
	if st.Failed > 0 || st.Orphans > 0 || st.Unterminated > 0 {
		s.logger.Warn().
			Int("emitted", st.Emitted).
			Int("failed", st.Failed).
			Int("orphan_u", st.Orphans).
			Int("unterminated_t", st.Unterminated).
			Msg("return file has unpaired or undecodable segments")
	}

	if s.result.Transactions == nil {
		s.result.Transactions = []*domain.Transaction{}
	}

	return &s.result
}

func (s *scan) decodeT(row []rune) *domain.Transaction {
	return &domain.Transaction{
		Origin:     s.origin,
		FileSource: s.fileSource,
		Status:     domain.StatusPending,
		Segment:    string(SegmentT),

		Bank:               text(row, TBank),
		Batch:              text(row, TBatch),
		RecordType:         text(row, TRecordType),
		Sequence:           text(row, TSequence),
		Movement:           text(row, TMovement),
		Agency:             text(row, TAgency),
		Account:            text(row, TAccount),
		NossoNumero:        text(row, TNossoNumero),
		Wallet:             text(row, TWallet),
		DocumentNumber:     text(row, TDocumentNumber),
		DueDate:            date(row, TDueDate),
		TitleAmount:        money(row, TTitleAmount),
		CollectingBank:     text(row, TCollectingBank),
		CollectingAgency:   text(row, TCollectingAgency),
		CompanyTitleID:     text(row, TCompanyTitleID),
		RegistrationType:   text(row, TRegistrationType),
		RegistrationNumber: text(row, TRegistrationNumber),
		PayerName:          text(row, TPayerName),
		ContractNumber:     text(row, TContractNumber),
		TariffAmount:       money(row, TTariffAmount),
		ReasonCode:         text(row, TReasonCode),
	}
}

func applyU(tx *domain.Transaction, row []rune) {
	tx.InterestPenalty = money(row, UInterestPenalty)
	tx.Discount = money(row, UDiscount)
	tx.Rebate = money(row, URebate)
	tx.IOF = money(row, UIOF)
	tx.PaidAmount = decimal.NewNullDecimal(money(row, UPaidAmount))
	tx.NetAmount = money(row, UNetAmount)
	tx.OtherExpenses = money(row, UOtherExpenses)
	tx.OtherCredits = money(row, UOtherCredits)
	tx.OccurrenceDate = date(row, UOccurrenceDate)
	tx.CreditDate = date(row, UCreditDate)
}

func text(row []rune, f Field) string {
	v := string(row[f.Start:f.End])
	if f.Kind == KindTrimmed {
		return strings.TrimSpace(v)
	}

	return v
}

func money(row []rune, f Field) decimal.Decimal {
	return ParseCents(string(row[f.Start:f.End]))
}

func date(row []rune, f Field) *time.Time {
	return ParseDate(string(row[f.Start:f.End]))
}

// ParseCents decodes a cents field. Anything other than an optionally
// signed run of digits decodes to zero.
func ParseCents(raw string) decimal.Decimal {
	v := strings.TrimSpace(raw)
	if !centsPattern.MatchString(v) {
		return decimal.Zero
	}

	cents, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}

	return cents.Shift(-2)
}

// ParseDate decodes a DDMMYYYY field. A day past the end of its month
// (31022024) is clamped to the month's last day, as the bank's own
// tooling resolves it. All zeros, blanks, non-digits, months outside 1..12
// and days outside 1..31 yield nil.
func ParseDate(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if len(v) != len(dateLayout) || v == "00000000" || !datePattern.MatchString(v) {
		return nil
	}

	day, _ := strconv.Atoi(v[0:2])
	month, _ := strconv.Atoi(v[2:4])
	year, _ := strconv.Atoi(v[4:8])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	if last := daysIn(time.Month(month), year); day > last {
		day = last
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
