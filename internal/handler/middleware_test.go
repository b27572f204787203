package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mjiang93/user-service/internal/handler"
)

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	handler.Recover(log, panicking).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Success {
		t.Fatal("expected success=false")
	}
	// The client gets a generic message; the detail stays in the log.
	if env.Message != "Internal server error" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatal("expected panic detail to be logged")
	}
}

func TestRequireJSON(t *testing.T) {
	var called bool
	next := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}

	tests := []struct {
		name        string
		contentType string
		wantPass    bool
	}{
		{"plain json", "application/json", true},
		{"json with charset", "application/json; charset=utf-8", true},
		{"json suffix", "application/vnd.api+json", true},
		{"text", "text/plain", false},
		{"form", "application/x-www-form-urlencoded", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			handler.RequireJSON(next)(w, req)

			if called != tt.wantPass {
				t.Fatalf("called=%v, want %v", called, tt.wantPass)
			}
			if !tt.wantPass {
				resp := w.Result()
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", resp.StatusCode)
				}
				var env testEnvelope
				if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if env.Message != "Content-Type must be application/json" {
					t.Fatalf("unexpected message %q", env.Message)
				}
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	handler.RequestLogger(log, next).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", w.Result().StatusCode)
	}

	logged := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/users"`, `"status":418`, `"request_id"`} {
		if !strings.Contains(logged, want) {
			t.Fatalf("log line missing %s: %s", want, logged)
		}
	}
}
