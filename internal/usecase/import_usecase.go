package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/cnabrecon/internal/domain"
)

// ImportUseCase decodes return files and stores their transactions.
type ImportUseCase struct {
	txManager  TransactionManager
	repo       TransactionRepository
	decoder    FileDecoder
	idGen      IDGenerator
	retrier    Retrier
	reconciler Reconciler
	stats      StatsInvalidator
	metrics    Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	txManager TransactionManager,
	repo TransactionRepository,
	decoder FileDecoder,
	idGen IDGenerator,
	retrier Retrier,
	reconciler Reconciler,
	stats StatsInvalidator,
	metrics Metrics,
	logger zerolog.Logger,
) *ImportUseCase {
	if metrics == nil {
		metrics = NopMetrics()
	}

	return &ImportUseCase{
		txManager:  txManager,
		repo:       repo,
		decoder:    decoder,
		idGen:      idGen,
		retrier:    retrier,
		reconciler: reconciler,
		stats:      stats,
		metrics:    metrics,
		logger:     logger.With().Str("component", "import").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ImportFile is one return file submitted for import.
type ImportFile struct {
	Origin  domain.Origin
	Name    string
	Content io.Reader
}

// FileImport describes what happened to one submitted file.
type FileImport struct {
	Name     string
	Origin   domain.Origin
	Records  int
	Invalid  int
	Stats    domain.DecodeStats
	Skipped  bool
	Reason   string
	Duration time.Duration
}

// ImportReport summarizes an import batch.
type ImportReport struct {
	Files          []FileImport
	Imported       int
	Records        int
	Skipped        []string
	Reconciliation *StampReport
}

// ImportFiles imports API files before GERAL files. Files whose name was
// already imported are skipped. When at least one file is stored a
// stamping pass runs before returning.
func (uc *ImportUseCase) ImportFiles(ctx context.Context, files []ImportFile) (*ImportReport, error) {
	report := &ImportReport{Files: make([]FileImport, 0, len(files)), Skipped: []string{}}
	seen := make(map[string]bool)

	for _, f := range orderByOrigin(files) {
		fi, err := uc.importOne(ctx, f, seen)
		if err != nil {
			return nil, err
		}

		report.Files = append(report.Files, *fi)
		if fi.Skipped {
			report.Skipped = append(report.Skipped, fi.Name)
			continue
		}

		report.Imported++
		report.Records += fi.Records
	}

	if report.Imported == 0 {
		return report, nil
	}

	if uc.stats != nil {
		uc.stats.Invalidate(ctx)
	}

	if uc.reconciler != nil {
		stamp, err := uc.reconciler.PerformReconciliation(ctx)
		if err != nil {
			return nil, fmt.Errorf("reconcile after import: %w", err)
		}
		report.Reconciliation = stamp
	}

	return report, nil
}

// ImportSingle imports one file and fails with domain.ErrFileAlreadyImported
// instead of skipping it.
func (uc *ImportUseCase) ImportSingle(ctx context.Context, file ImportFile) (*ImportReport, error) {
	report, err := uc.ImportFiles(ctx, []ImportFile{file})
	if err != nil {
		return nil, err
	}

	if report.Imported == 0 && len(report.Files) == 1 && report.Files[0].Reason == skipAlreadyImported {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileAlreadyImported, file.Name)
	}

	return report, nil
}

const (
	skipAlreadyImported  = "already imported"
	skipDuplicateInBatch = "duplicate name in batch"
	skipEmpty            = "no transactions decoded"
)

func (uc *ImportUseCase) importOne(ctx context.Context, f ImportFile, seen map[string]bool) (*FileImport, error) {
	start := uc.now()
	fi := &FileImport{Name: f.Name, Origin: f.Origin}

	if err := domain.ValidateFileName(f.Name); err != nil {
		return nil, err
	}
	if f.Origin != domain.OriginAPI && f.Origin != domain.OriginGeral {
		return nil, domain.ErrInvalidOrigin
	}

	if seen[f.Name] {
		fi.Skipped, fi.Reason = true, skipDuplicateInBatch
		return fi, nil
	}
	seen[f.Name] = true

	exists, err := uc.repo.ExistsByFileSource(ctx, f.Name)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "exists_file", err)
	}
	if exists {
		uc.logger.Info().Str("file", f.Name).Msg("file already imported, skipping")
		fi.Skipped, fi.Reason = true, skipAlreadyImported
		return fi, nil
	}

	decoded, err := uc.decoder.Decode(f.Content, f.Origin, f.Name)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	fi.Stats = decoded.Stats

	valid := make([]*domain.Transaction, 0, len(decoded.Transactions))
	for _, t := range decoded.Transactions {
		if err := t.Validate(); err != nil {
			fi.Invalid++
			uc.logger.Debug().Err(err).Str("file", f.Name).Str("nosso_numero", t.NossoNumero).Msg("dropping invalid record")
			continue
		}

		t.ID = uc.idGen.Generate()
		t.CreatedAt = start
		valid = append(valid, t)
	}

	uc.metrics.RecordImport(f.Origin, len(valid), map[string]int{
		"short":        decoded.Stats.Short,
		"ignored":      decoded.Stats.Ignored,
		"orphan":       decoded.Stats.Orphans,
		"failed":       decoded.Stats.Failed,
		"unterminated": decoded.Stats.Unterminated,
		"invalid":      fi.Invalid,
	})

	if len(valid) == 0 {
		fi.Skipped, fi.Reason = true, skipEmpty
		uc.logger.Warn().Str("file", f.Name).Int("lines", decoded.Stats.Lines).Msg("no transactions decoded")
		return fi, nil
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.repo.CreateBatch(ctx, tx, valid); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "create_batch", err)
	}

	fi.Records = len(valid)
	fi.Duration = time.Since(start)

	uc.logger.Info().
		Str("file", f.Name).
		Str("origin", string(f.Origin)).
		Int("records", fi.Records).
		Int("invalid", fi.Invalid).
		Int("lines", decoded.Stats.Lines).
		Msg("file imported")

	return fi, nil
}

// orderByOrigin returns API files first, then GERAL files, keeping the
// submitted order inside each origin.
func orderByOrigin(files []ImportFile) []ImportFile {
	out := make([]ImportFile, 0, len(files))
	for _, f := range files {
		if f.Origin == domain.OriginAPI {
			out = append(out, f)
		}
	}
	for _, f := range files {
		if f.Origin != domain.OriginAPI {
			out = append(out, f)
		}
	}

	return out
}
