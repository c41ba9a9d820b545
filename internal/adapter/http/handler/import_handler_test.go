package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

type stubImportService struct {
	got    []usecase.ImportFile
	bodies []string
	report *usecase.ImportReport
	err    error
}

func (s *stubImportService) capture(files []usecase.ImportFile) error {
	for _, f := range files {
		b, err := io.ReadAll(f.Content)
		if err != nil {
			return err
		}
		s.got = append(s.got, f)
		s.bodies = append(s.bodies, string(b))
	}
	return nil
}

func (s *stubImportService) ImportFiles(ctx context.Context, files []usecase.ImportFile) (*usecase.ImportReport, error) {
	if err := s.capture(files); err != nil {
		return nil, err
	}
	return s.report, s.err
}

func (s *stubImportService) ImportSingle(ctx context.Context, file usecase.ImportFile) (*usecase.ImportReport, error) {
	if err := s.capture([]usecase.ImportFile{file}); err != nil {
		return nil, err
	}
	return s.report, s.err
}

func multipartBody(t *testing.T, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestImportHandler_UploadReadsBothOrigins(t *testing.T) {
	svc := &stubImportService{report: &usecase.ImportReport{Imported: 2, Records: 4}}
	auditor := &recordingAuditor{}
	h := NewImportHandler(svc, auditor, 1<<20)

	body, contentType := multipartBody(t, map[string][2]string{
		"api_files[]": {"api.ret", "api-content"},
		"geral_files": {"geral.ret", "geral-content"},
	})
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, svc.got, 2)
	assert.Equal(t, domain.OriginAPI, svc.got[0].Origin)
	assert.Equal(t, "api.ret", svc.got[0].Name)
	assert.Equal(t, "api-content", svc.bodies[0])
	assert.Equal(t, domain.OriginGeral, svc.got[1].Origin)
	assert.Equal(t, "geral-content", svc.bodies[1])

	var resp dto.ImportReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 4, resp.Records)

	require.Len(t, auditor.logs, 1)
	assert.Equal(t, domain.AuditActionImport, auditor.logs[0].Action)
	assert.Equal(t, "api.ret,geral.ret", auditor.logs[0].Term)
}

func TestImportHandler_UploadNothingImportedReturnsOK(t *testing.T) {
	svc := &stubImportService{report: &usecase.ImportReport{Skipped: []string{"api.ret"}}}
	h := NewImportHandler(svc, nil, 1<<20)

	body, contentType := multipartBody(t, map[string][2]string{"api_files": {"api.ret", "x"}})
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestImportHandler_UploadWithoutFiles(t *testing.T) {
	h := NewImportHandler(&stubImportService{}, nil, 1<<20)

	body, contentType := multipartBody(t, map[string][2]string{"other": {"x.ret", "x"}})
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandler_UploadTooLarge(t *testing.T) {
	h := NewImportHandler(&stubImportService{}, nil, 16)

	body, contentType := multipartBody(t, map[string][2]string{"api_files": {"api.ret", strings.Repeat("x", 1024)}})
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestImportHandler_ImportRaw(t *testing.T) {
	svc := &stubImportService{report: &usecase.ImportReport{Imported: 1, Records: 1}}
	h := NewImportHandler(svc, nil, 1<<20)

	r := chi.NewRouter()
	r.Post("/imports/{origin}", h.ImportRaw)

	req := httptest.NewRequest(http.MethodPost, "/imports/geral?file_name=ret.txt", strings.NewReader("payload"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, svc.got, 1)
	assert.Equal(t, domain.OriginGeral, svc.got[0].Origin)
	assert.Equal(t, "ret.txt", svc.got[0].Name)
	assert.Equal(t, "payload", svc.bodies[0])
}

func TestImportHandler_ImportRawValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown origin", "/imports/bank?file_name=a.ret", http.StatusBadRequest},
		{"missing file name", "/imports/api", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubImportService{}
			r := chi.NewRouter()
			r.Post("/imports/{origin}", NewImportHandler(svc, nil, 1<<20).ImportRaw)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader("x")))

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, svc.got)
		})
	}
}

func TestImportHandler_ImportRawAlreadyImported(t *testing.T) {
	svc := &stubImportService{err: domain.ErrFileAlreadyImported}
	r := chi.NewRouter()
	r.Post("/imports/{origin}", NewImportHandler(svc, nil, 1<<20).ImportRaw)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/imports/api?file_name=a.ret", strings.NewReader("x")))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
