package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mjiang93/user-service/internal/handler"
)

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.HandleHealth(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %s", ct)
	}

	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success=true")
	}

	var data struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Service   string `json:"service"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "healthy" {
		t.Fatalf("expected status=healthy, got %q", data.Status)
	}
	if data.Service != handler.ServiceName {
		t.Fatalf("expected service=%q, got %q", handler.ServiceName, data.Service)
	}
	if _, err := time.Parse(time.RFC3339, data.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %q", data.Timestamp)
	}
}

func TestHandleHealthRouting(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, http.MethodGet, srv.URL+"/health", "", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.Success {
		t.Fatal("expected success=true")
	}
}
