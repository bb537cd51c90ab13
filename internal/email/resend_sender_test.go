package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gita-wellness/internal/domain"
)

func TestResendSenderSendsHTMLResult(t *testing.T) {
	var got resendRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender(srv.URL, "re_test_key", "Gita Wellness <hello@example.com>")
	if err != nil {
		t.Fatalf("NewResendSender: %v", err)
	}

	msg := ResultMessage{
		Title:    "Your emotional score is 4.2/5",
		Subtitle: "Emotional state: positive",
		Bundle: domain.RecommendationBundle{
			EmotionType: domain.EmotionPositive,
			Mantra:      domain.Mantra{Text: "Sukha-duhkhe same kritva"},
		},
	}
	if err := sender.SendResult(context.Background(), "user@example.com", "Ana", msg); err != nil {
		t.Fatalf("SendResult: %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if got.To != "user@example.com" {
		t.Fatalf("unexpected to: %q", got.To)
	}
	if got.Subject != "Your Emotional Result" {
		t.Fatalf("unexpected subject: %q", got.Subject)
	}
	if !strings.Contains(got.HTML, "Namaste Ana") {
		t.Fatalf("html missing greeting: %s", got.HTML)
	}
	if !strings.Contains(got.HTML, "Sukha-duhkhe same kritva") {
		t.Fatalf("html missing mantra: %s", got.HTML)
	}
}

func TestResendSenderFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender(srv.URL, "re_bad_key", "")
	if err != nil {
		t.Fatalf("NewResendSender: %v", err)
	}

	err = sender.SendResult(context.Background(), "user@example.com", "Ana", ResultMessage{})
	if err == nil {
		t.Fatal("expected error on http 401")
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDisabledSenderIsNoop(t *testing.T) {
	sender := NewDisabledSender("no provider configured")
	if err := sender.SendResult(context.Background(), "user@example.com", "Ana", ResultMessage{}); err != nil {
		t.Fatalf("disabled sender should not fail: %v", err)
	}
}
