package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
)

func TestSendPostsRelayPayload(t *testing.T) {
	var got relayPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m, err := New(srv.URL, "noreply@bazarhat.example", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	item := model.EmailItem{Recipient: "a@b.co", Subject: "Welcome", Body: "hi"}
	if err := m.Send(context.Background(), item); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.To != "a@b.co" || got.Subject != "Welcome" || got.From != "noreply@bazarhat.example" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m, err := New(srv.URL, "noreply@bazarhat.example", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Send(context.Background(), model.EmailItem{Recipient: "a@b.co"}); err == nil {
		t.Fatal("expected delivery error")
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New("", "x", time.Second); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
