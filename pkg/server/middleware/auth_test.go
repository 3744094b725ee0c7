package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"esfpc/fpcheck/pkg/config"
)

func TestAPIKey(t *testing.T) {
	v := NewAPIKeyValidator([]config.APIKeyConfig{
		{Name: "ops", Key: "0123456789abcdef"},
		{Name: "briefing", Key: "fedcba9876543210"},
	})
	var client string
	h := APIKey(v, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _ = ClientName(r.Context())
		}),
	)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		code   int
		client string
	}{
		{
			name:   "bearer",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer 0123456789abcdef") },
			target: "/v1/check",
			code:   http.StatusOK,
			client: "ops",
		},
		{
			name:   "header",
			setup:  func(r *http.Request) { r.Header.Set(APIKeyHeader, "fedcba9876543210") },
			target: "/v1/check",
			code:   http.StatusOK,
			client: "briefing",
		},
		{
			name:   "query",
			setup:  func(*http.Request) {},
			target: "/v1/check/stream?api_key=0123456789abcdef",
			code:   http.StatusOK,
			client: "ops",
		},
		{
			name:   "missing",
			setup:  func(*http.Request) {},
			target: "/v1/check",
			code:   http.StatusUnauthorized,
		},
		{
			name:   "wrong key",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			target: "/v1/check",
			code:   http.StatusUnauthorized,
		},
		{
			name:   "basic scheme",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Basic 0123456789abcdef") },
			target: "/v1/check",
			code:   http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client = ""
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if client != tt.client {
				t.Errorf("client = %q, want %q", client, tt.client)
			}
			if tt.code != http.StatusUnauthorized {
				return
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
			var body ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != "unauthorized" {
				t.Errorf("code = %q", body.Error.Code)
			}
		})
	}
}

func TestAPIKeyWithoutKeys(t *testing.T) {
	called := false
	h := APIKey(NewAPIKeyValidator(nil), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/check", nil))
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("called = %v, status = %d", called, rec.Code)
	}
}
