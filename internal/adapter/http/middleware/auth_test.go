package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/cnabrecon/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	operatorToken, err := manager.Generate("ops@example.com", auth.RoleOperator)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
		reason string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing_header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "malformed_header"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "invalid_token"},
		{"valid token", "Bearer " + operatorToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			failures := &failureLog{}
			handler := AuthMiddleware(manager, failures)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject = auth.SubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
			if tt.want == http.StatusOK && subject != "ops@example.com" {
				t.Fatalf("expected subject in context, got %q", subject)
			}
			if tt.reason == "" && len(failures.reasons) != 0 {
				t.Fatalf("expected no failures, got %v", failures.reasons)
			}
			if tt.reason != "" && (len(failures.reasons) != 1 || failures.reasons[0] != tt.reason) {
				t.Fatalf("expected failure %q, got %v", tt.reason, failures.reasons)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	viewerToken, _ := manager.Generate("viewer", auth.RoleViewer)
	operatorToken, _ := manager.Generate("operator", auth.RoleOperator)

	chain := func(next http.Handler) http.Handler {
		return AuthMiddleware(manager, nil)(RequireRole(auth.RoleOperator)(next))
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	rr := httptest.NewRecorder()
	chain(ok).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected viewer to be forbidden, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	rr = httptest.NewRecorder()
	chain(ok).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected operator to pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	RequireRole(auth.RoleViewer)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", rr.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	token, _ := manager.Generate("viewer", auth.RoleViewer)

	var subject string
	handler := OptionalAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = auth.SubjectFromContext(r.Context())
	}))

	for _, header := range []string{"", "Bearer garbage"} {
		subject = "unset"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if subject != "" {
			t.Fatalf("expected anonymous request for header %q, got %q", header, subject)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if subject != "viewer" {
		t.Fatalf("expected subject from token, got %q", subject)
	}
}

type failureLog struct {
	reasons []string
}

func (f *failureLog) RecordAuthFailure(reason string) {
	f.reasons = append(f.reasons, reason)
}
