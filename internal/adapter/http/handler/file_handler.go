package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
)

// FileService defines the behavior needed by FileHandler.
type FileService interface {
	ListFileSources(ctx context.Context) ([]string, error)
	DeleteFiles(ctx context.Context, files []string) (int64, error)
}

// FileHandler handles imported file management.
type FileHandler struct {
	fileUC  FileService
	auditor Auditor
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileUC FileService, auditor Auditor) *FileHandler {
	return &FileHandler{fileUC: fileUC, auditor: auditor}
}

// List returns the distinct imported file names.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileUC.ListFileSources(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list files", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FilesResponse{Files: files})
}

// Delete removes every transaction imported from the named files.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req dto.DeleteFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	names := req.FileNames()
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "no files selected", "")
		return
	}

	log := newAuditLog(r, domain.AuditActionDeleteFiles, strings.Join(names, ","), nil)

	n, err := h.fileUC.DeleteFiles(r.Context(), names)
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to delete files", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, int(n), nil)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: n})
}
