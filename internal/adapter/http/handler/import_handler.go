package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// Multipart field names accepted for each origin.
var uploadFields = []struct {
	origin domain.Origin
	names  []string
}{
	{domain.OriginAPI, []string{"api_files", "api_files[]"}},
	{domain.OriginGeral, []string{"geral_files", "geral_files[]"}},
}

// multipartMemory bounds how much of an upload is held in memory.
const multipartMemory = 32 << 20

// ImportService defines the behavior needed by ImportHandler.
type ImportService interface {
	ImportFiles(ctx context.Context, files []usecase.ImportFile) (*usecase.ImportReport, error)
	ImportSingle(ctx context.Context, file usecase.ImportFile) (*usecase.ImportReport, error)
}

// ImportHandler handles return file uploads.
type ImportHandler struct {
	importUC      ImportService
	auditor       Auditor
	maxUploadSize int64
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importUC ImportService, auditor Auditor, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{
		importUC:      importUC,
		auditor:       auditor,
		maxUploadSize: maxUploadSize,
	}
}

// Upload imports the API and GERAL files of a multipart form.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, uploadErrorStatus(err), "invalid upload", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, closeAll, err := openUploads(r.MultipartForm)
	defer closeAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload", err.Error())
		return
	}

	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded", "send api_files and/or geral_files")
		return
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	log := newAuditLog(r, domain.AuditActionImport, strings.Join(names, ","), domain.JSON{"files": len(files)})

	report, err := h.importUC.ImportFiles(r.Context(), files)
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to import files", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, report.Records, nil)

	status := http.StatusOK
	if report.Imported > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.ImportReportFromUseCase(report))
}

// ImportRaw imports one file sent as the raw request body.
func (h *ImportHandler) ImportRaw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	origin, err := domain.ParseOrigin(chi.URLParam(r, "origin"))
	if err != nil {
		writeDomainError(w, "invalid origin", err)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("file_name"))
	if err := domain.ValidateFileName(name); err != nil {
		writeDomainError(w, "invalid file name", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	log := newAuditLog(r, domain.AuditActionImport, name, domain.JSON{"origin": string(origin)})

	report, err := h.importUC.ImportSingle(r.Context(), usecase.ImportFile{
		Origin:  origin,
		Name:    name,
		Content: r.Body,
	})
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large", err.Error())
			return
		}
		writeDomainError(w, "failed to import file", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, report.Records, nil)

	writeJSON(w, http.StatusCreated, dto.ImportReportFromUseCase(report))
}

func openUploads(form *multipart.Form) ([]usecase.ImportFile, func(), error) {
	var files []usecase.ImportFile
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, field := range uploadFields {
		for _, name := range field.names {
			for _, header := range form.File[name] {
				f, err := header.Open()
				if err != nil {
					return nil, closeAll, fmt.Errorf("open %s: %w", header.Filename, err)
				}
				opened = append(opened, f)

				files = append(files, usecase.ImportFile{
					Origin:  field.origin,
					Name:    header.Filename,
					Content: f,
				})
			}
		}
	}

	return files, closeAll, nil
}

func uploadErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
