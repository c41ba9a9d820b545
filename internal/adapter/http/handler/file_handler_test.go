package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
)

type stubFileService struct {
	files   []string
	deleted []string
	err     error
}

func (s *stubFileService) ListFileSources(ctx context.Context) ([]string, error) {
	return s.files, s.err
}

func (s *stubFileService) DeleteFiles(ctx context.Context, files []string) (int64, error) {
	s.deleted = files
	return int64(len(files)) * 10, s.err
}

func TestFileHandler_List(t *testing.T) {
	h := NewFileHandler(&stubFileService{files: []string{"a.ret", "b.ret"}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/files", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.FilesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a.ret", "b.ret"}, resp.Files)
}

func TestFileHandler_Delete(t *testing.T) {
	svc := &stubFileService{}
	auditor := &recordingAuditor{}
	h := NewFileHandler(svc, auditor)

	body := strings.NewReader(`{"files":[" a.ret ","a.ret","b.ret"]}`)
	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/files", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"a.ret", "b.ret"}, svc.deleted)

	var resp dto.DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(20), resp.Deleted)

	require.Len(t, auditor.logs, 1)
	assert.Equal(t, domain.AuditActionDeleteFiles, auditor.logs[0].Action)
}

func TestFileHandler_DeleteValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"files":`},
		{"empty", `{"files":["  "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubFileService{}
			rec := httptest.NewRecorder()
			NewFileHandler(svc, nil).Delete(rec, httptest.NewRequest(http.MethodDelete, "/files", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.deleted)
		})
	}
}
