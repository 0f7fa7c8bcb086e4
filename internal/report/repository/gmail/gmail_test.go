package gmail_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eod-extractor/internal/report/repository"
	"eod-extractor/internal/report/repository/gmail"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func TestGmailRepository(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	writeCreds := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "credentials.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write credentials: %v", err)
		}
		return path
	}

	t.Run("Missing credentials path", func(t *testing.T) {
		_, err := gmail.New(context.Background(), gmail.Config{}, &mockLogger{})
		if err == nil {
			t.Errorf("expected error for empty credentials path")
		}
	})

	t.Run("Non-existent credentials file", func(t *testing.T) {
		_, err := gmail.New(context.Background(), gmail.Config{CredentialsPath: "non-existent-file-12345.json"}, &mockLogger{})
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})

	t.Run("Installed app config without token.json", func(t *testing.T) {
		_, err := gmail.New(context.Background(), gmail.Config{CredentialsPath: writeCreds(t, mockCreds)}, &mockLogger{})
		if err == nil {
			t.Errorf("expected error without token.json")
		}
	})

	t.Run("Installed app config with token.json", func(t *testing.T) {
		os.WriteFile("token.json", []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0644)
		defer os.Remove("token.json")

		_, err := gmail.New(context.Background(), gmail.Config{CredentialsPath: writeCreds(t, mockCreds)}, &mockLogger{})
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Installed app config bad token", func(t *testing.T) {
		os.WriteFile("token.json", []byte(`{"broken": true`), 0644)
		defer os.Remove("token.json")

		_, err := gmail.New(context.Background(), gmail.Config{CredentialsPath: writeCreds(t, mockCreds)}, &mockLogger{})
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("FetchRange E2E", func(t *testing.T) {
		plainData := base64.URLEncoding.EncodeToString([]byte("EOD:\n- Wrote integration tests - 2 hrs\n"))
		htmlData := base64.URLEncoding.EncodeToString([]byte("<p>EOD: done</p>"))
		messageJSON := fmt.Sprintf(`{
			"id": "m1",
			"internalDate": "1715778000000",
			"payload": {
				"mimeType": "multipart/alternative",
				"headers": [
					{"name": "Subject", "value": "Daily report"},
					{"name": "From", "value": "alice@example.com"},
					{"name": "Message-ID", "value": "<abc@example.com>"}
				],
				"parts": [
					{"mimeType": "text/html", "body": {"data": %q}},
					{"mimeType": "text/plain", "body": {"data": %q}}
				]
			}
		}`, htmlData, plainData)

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gmail/v1/users/me/messages" && r.Method == http.MethodGet {
				if q := r.URL.Query().Get("q"); q != "after:2024/05/01 before:2024/05/08" {
					t.Errorf("unexpected query: %s", q)
				}
				if r.URL.Query().Get("pageToken") == "page2" {
					w.Write([]byte(`{"messages": [{"id": "m2"}]}`))
					return
				}
				w.Write([]byte(`{"messages": [{"id": "m1"}], "nextPageToken": "page2"}`))
				return
			}
			if r.URL.Path == "/gmail/v1/users/me/messages/m1" && r.Method == http.MethodGet {
				w.Write([]byte(messageJSON))
				return
			}
			if r.URL.Path == "/gmail/v1/users/me/messages/m2" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		tsClient := ts.Client()
		tsClient.Transport = &rewriteTransport{
			Transport: tsClient.Transport,
			Host:      strings.TrimPrefix(ts.URL, "http://"),
		}

		repo, err := gmail.NewFromHTTP(context.Background(), tsClient, gmail.Config{RatePerMinute: 6000}, &mockLogger{})
		if err != nil {
			t.Fatalf("unexpected error creating repository: %v", err)
		}

		messages, err := repo.FetchRange(context.Background(), repository.FetchRangeOptions{
			Since:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Before: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}
		if len(messages) != 1 {
			t.Fatalf("expected 1 message (m2 is broken), got %d", len(messages))
		}

		msg := messages[0]
		if msg.UID != "m1" {
			t.Errorf("unexpected uid: %s", msg.UID)
		}
		if msg.Subject != "Daily report" {
			t.Errorf("unexpected subject: %s", msg.Subject)
		}
		if msg.From != "alice@example.com" {
			t.Errorf("unexpected sender: %s", msg.From)
		}
		if msg.MessageID != "<abc@example.com>" {
			t.Errorf("unexpected message id: %s", msg.MessageID)
		}
		if msg.Date.UnixMilli() != 1715778000000 {
			t.Errorf("unexpected date: %v", msg.Date)
		}
		if strings.Contains(msg.Body, "<p>") {
			t.Errorf("got html part instead of plain: %q", msg.Body)
		}
		if !strings.Contains(msg.Body, "Wrote integration tests") {
			t.Errorf("plain part missing, got %q", msg.Body)
		}
	})

	t.Run("FetchRange list error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		tsClient := ts.Client()
		tsClient.Transport = &rewriteTransport{
			Transport: tsClient.Transport,
			Host:      strings.TrimPrefix(ts.URL, "http://"),
		}

		repo, _ := gmail.NewFromHTTP(context.Background(), tsClient, gmail.Config{RatePerMinute: 6000}, &mockLogger{})
		_, err := repo.FetchRange(context.Background(), repository.FetchRangeOptions{
			Since:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Before: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
		})
		if err == nil {
			t.Fatalf("expected fetch error")
		}
	})
}
