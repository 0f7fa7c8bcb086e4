package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"eod-extractor/internal/middleware"
	"eod-extractor/internal/model"
	"eod-extractor/internal/report"
	reportHTTP "eod-extractor/internal/report/delivery/http"
	"eod-extractor/pkg/eod"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

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

type mockUseCase struct {
	rangeOut report.ExtractRangeOutput
	rangeErr error
	textOut  report.ExtractTextOutput
	textErr  error

	lastRangeInput report.ExtractRangeInput
	lastTextInput  report.ExtractTextInput
}

func (m *mockUseCase) ExtractRange(ctx context.Context, input report.ExtractRangeInput) (report.ExtractRangeOutput, error) {
	m.lastRangeInput = input
	return m.rangeOut, m.rangeErr
}

func (m *mockUseCase) ExtractText(ctx context.Context, input report.ExtractTextInput) (report.ExtractTextOutput, error) {
	m.lastTextInput = input
	return m.textOut, m.textErr
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type respEnvelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newTestEnv(muc *mockUseCase, mwCfg middleware.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	l := &mockLogger{}
	engine := gin.New()
	h := reportHTTP.New(l, muc)
	reportHTTP.RegisterRoutes(engine.Group("/api/v1"), h, middleware.New(l, mwCfg))
	return engine
}

func postJSON(engine *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sampleExtraction() model.Extraction {
	return model.Extraction{
		EmailID: "101",
		Subject: "Status update",
		Date:    time.Date(2024, 5, 15, 17, 0, 0, 0, time.UTC),
		Section: eod.Section{
			Header:     "EOD:",
			Tasks:      []eod.Task{{Description: "Fixed login bug", TimeSpent: "30 min", RawLine: "- Fixed login bug - 30 min"}},
			RawContent: "- Fixed login bug - 30 min",
		},
	}
}

// ── Parse ──────────────────────────────────────────────────────────────────

func TestParse(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		muc := &mockUseCase{textOut: report.ExtractTextOutput{Found: true, Extraction: sampleExtraction()}}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/parse", `{"subject": "Status update", "body": "EOD:\n- Fixed login bug - 30 min"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var env respEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("bad envelope: %v", err)
		}
		var data struct {
			Found      bool `json:"found"`
			Extraction *struct {
				EmailID string `json:"email_id"`
				Section struct {
					Header string `json:"section_header"`
					Tasks  []struct {
						Description string `json:"description"`
						TimeSpent   string `json:"time_spent"`
					} `json:"tasks"`
				} `json:"eod_section"`
			} `json:"extraction"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("bad data payload: %v", err)
		}
		if !data.Found || data.Extraction == nil {
			t.Fatalf("expected found extraction, got %s", env.Data)
		}
		if data.Extraction.Section.Header != "EOD:" {
			t.Errorf("header = %q", data.Extraction.Section.Header)
		}
		if len(data.Extraction.Section.Tasks) != 1 || data.Extraction.Section.Tasks[0].TimeSpent != "30 min" {
			t.Errorf("unexpected tasks: %+v", data.Extraction.Section.Tasks)
		}

		if muc.lastTextInput.Subject != "Status update" {
			t.Errorf("subject not passed through: %q", muc.lastTextInput.Subject)
		}
		if muc.lastTextInput.EmailID != "manual" {
			t.Errorf("expected default email id, got %q", muc.lastTextInput.EmailID)
		}
		if muc.lastTextInput.Date.IsZero() {
			t.Errorf("expected date defaulted to now")
		}
	})

	t.Run("Not found", func(t *testing.T) {
		muc := &mockUseCase{}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/parse", `{"body": "just a normal email"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}

		var env respEnvelope
		json.Unmarshal(w.Body.Bytes(), &env)
		var data struct {
			Found      bool            `json:"found"`
			Extraction json.RawMessage `json:"extraction"`
		}
		json.Unmarshal(env.Data, &data)
		if data.Found {
			t.Errorf("expected found=false")
		}
		if len(data.Extraction) != 0 {
			t.Errorf("expected extraction omitted, got %s", data.Extraction)
		}
	})

	t.Run("Missing body", func(t *testing.T) {
		engine := newTestEnv(&mockUseCase{}, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/parse", `{"subject": "no body"}`, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Empty body error", func(t *testing.T) {
		muc := &mockUseCase{textErr: report.ErrEmptyBody}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/parse", `{"body": "   "}`, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}

		var env respEnvelope
		json.Unmarshal(w.Body.Bytes(), &env)
		if env.Message != report.ErrEmptyBody.Error() {
			t.Errorf("message = %q", env.Message)
		}
	})
}

// ── Run ────────────────────────────────────────────────────────────────────

func TestRun(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		muc := &mockUseCase{rangeOut: report.ExtractRangeOutput{
			RunID:       "run-1",
			Scanned:     5,
			Extractions: []model.Extraction{sampleExtraction()},
		}}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "2024-05-01", "end_date": "2024-05-08"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var env respEnvelope
		json.Unmarshal(w.Body.Bytes(), &env)
		var data struct {
			RunID       string            `json:"run_id"`
			Scanned     int               `json:"scanned"`
			Found       int               `json:"found"`
			Extractions []json.RawMessage `json:"extractions"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("bad data payload: %v", err)
		}
		if data.RunID != "run-1" || data.Scanned != 5 || data.Found != 1 || len(data.Extractions) != 1 {
			t.Errorf("unexpected payload: %s", env.Data)
		}

		wantSince := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		wantBefore := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
		if !muc.lastRangeInput.Since.Equal(wantSince) || !muc.lastRangeInput.Before.Equal(wantBefore) {
			t.Errorf("window not passed through: %+v", muc.lastRangeInput)
		}
	})

	t.Run("RFC3339 dates", func(t *testing.T) {
		muc := &mockUseCase{}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "2024-05-01T08:00:00Z", "end_date": "2024-05-02T08:00:00Z"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if muc.lastRangeInput.Since.Hour() != 8 {
			t.Errorf("time of day lost: %v", muc.lastRangeInput.Since)
		}
	})

	t.Run("Invalid date", func(t *testing.T) {
		engine := newTestEnv(&mockUseCase{}, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "yesterday-ish", "end_date": "2024-05-08"}`, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Invalid range", func(t *testing.T) {
		muc := &mockUseCase{rangeErr: report.ErrInvalidRange}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "2024-05-08", "end_date": "2024-05-01"}`, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("No mail source", func(t *testing.T) {
		muc := &mockUseCase{rangeErr: report.ErrNoMailSource}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "2024-05-01", "end_date": "2024-05-08"}`, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})

	t.Run("Unknown error stays opaque", func(t *testing.T) {
		muc := &mockUseCase{rangeErr: errors.New("imap: connection reset by peer")}
		engine := newTestEnv(muc, middleware.Config{})

		w := postJSON(engine, "/api/v1/extractions/run", `{"start_date": "2024-05-01", "end_date": "2024-05-08"}`, "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}

		var env respEnvelope
		json.Unmarshal(w.Body.Bytes(), &env)
		if env.Message != "Internal server error" {
			t.Errorf("leaked error detail: %q", env.Message)
		}
	})
}

// ── Middleware wiring ──────────────────────────────────────────────────────

func TestRunAuth(t *testing.T) {
	muc := &mockUseCase{}
	engine := newTestEnv(muc, middleware.Config{AuthToken: "secret"})

	body := `{"start_date": "2024-05-01", "end_date": "2024-05-08"}`

	w := postJSON(engine, "/api/v1/extractions/run", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("without token: status = %d, want 401", w.Code)
	}

	w = postJSON(engine, "/api/v1/extractions/run", body, "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", w.Code)
	}

	w = postJSON(engine, "/api/v1/extractions/run", body, "secret")
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}

	w = postJSON(engine, "/api/v1/extractions/parse", `{"body": "hello there"}`, "")
	if w.Code != http.StatusOK {
		t.Errorf("parse must stay open: status = %d", w.Code)
	}
}

func TestParseRateLimit(t *testing.T) {
	muc := &mockUseCase{}
	engine := newTestEnv(muc, middleware.Config{RateLimitPerMin: 1})

	w := postJSON(engine, "/api/v1/extractions/parse", `{"body": "hello there"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}

	w = postJSON(engine, "/api/v1/extractions/parse", `{"body": "hello there"}`, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", w.Code)
	}
}
