package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lazypower/momentum/internal/gateway"
	"github.com/lazypower/momentum/internal/store"
)

func testServer(t *testing.T) (*Server, *gateway.MockNotifier) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mock := &gateway.MockNotifier{}
	return New(db, mock, log.New(io.Discard), "hunter2", "test"), mock
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
	if body["version"] != "test" {
		t.Errorf("version = %v, want test", body["version"])
	}
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	s, mock := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/wrong", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if mock.Count() != 0 {
		t.Errorf("notifier called %d times, want 0", mock.Count())
	}
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook/hunter2", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWebhookDispatchesCommand(t *testing.T) {
	s, mock := testServer(t)

	payload := `{
		"update_id": 1,
		"message": {
			"message_id": 10,
			"from": {"id": 42, "username": "ana"},
			"chat": {"id": 42},
			"text": "/points"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/hunter2", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	sent := mock.SentTo(42)
	if len(sent) != 1 {
		t.Fatalf("got %d replies, want 1", len(sent))
	}
	if !strings.Contains(sent[0], "0 points") {
		t.Errorf("reply = %q, want points message", sent[0])
	}
}

func TestWebhookIgnoresNonMessageUpdates(t *testing.T) {
	s, mock := testServer(t)

	// Edited messages, channel posts etc. arrive without a message field.
	req := httptest.NewRequest(http.MethodPost, "/webhook/hunter2", strings.NewReader(`{"update_id": 2}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if mock.Count() != 0 {
		t.Errorf("notifier called %d times, want 0", mock.Count())
	}
}
