package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxguard/spamcheck/internal/adapters/store"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/history"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	logger := zap.NewNop()
	ledger := history.NewLedger(store.NewMemoryStore(), history.DefaultLimit, logger)
	scorer := core.NewLocalScorer(core.DefaultLexicon())
	service := core.NewAnalysisService(scorer, nil, ledger, logger)
	return NewHandlers(service, ledger, core.DefaultSensitivity, logger)
}

func newTestRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
		r.Post("/replies", h.HandleReplies)
		r.Get("/history", h.HandleHistoryList)
		r.Delete("/history", h.HandleHistoryClear)
		r.Get("/history/export", h.HandleHistoryExport)
		r.Post("/speech/summary", h.HandleSpeechSummary)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeLocalSpam(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{
		"text": "WINNER!! Claim your free prize now",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsSpam     bool     `json:"is_spam"`
		Confidence int      `json:"confidence"`
		Signals    []string `json:"signals"`
		Result     string   `json:"result"`
		Risk       string   `json:"risk"`
		WordCount  int      `json:"word_count"`
		MatchCount int      `json:"match_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.IsSpam)
	assert.Equal(t, "Spam", resp.Result)
	assert.GreaterOrEqual(t, resp.Confidence, 60)
	assert.Contains(t, resp.Signals, "winner")
	assert.Contains(t, resp.Signals, "prize")
	assert.Equal(t, 6, resp.WordCount)
	assert.Equal(t, resp.MatchCount, len(resp.Signals))
}

func TestAnalyzeLocalClean(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{
		"text": "See you at lunch tomorrow",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsSpam     bool   `json:"is_spam"`
		Confidence int    `json:"confidence"`
		Result     string `json:"result"`
		Risk       string `json:"risk"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.IsSpam)
	assert.Equal(t, "Not Spam", resp.Result)
	assert.Equal(t, 5, resp.Confidence)
	assert.Equal(t, "Very Low", resp.Risk)
}

func TestAnalyzeBadBody(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAnalyzeRecordsHistory(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "first"})
	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "second"})

	rec := doJSON(t, router, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []core.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Text)
	assert.Equal(t, "first", entries[1].Text)
}

func TestHistoryClear(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "hello"})

	rec := doJSON(t, router, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []core.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestRepliesEndpoint(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodPost, "/api/replies", map[string]interface{}{
		"text": "Please find the invoice attached, payment is due Friday",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Intent  string   `json:"intent"`
		Replies []string `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "invoice", resp.Intent)
	require.Len(t, resp.Replies, 2)
	assert.Contains(t, resp.Replies[0], "I've received your invoice")
}

func TestHistoryExportCSV(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "plain text"})

	rec := doJSON(t, router, http.MethodGet, "/api/history/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="spam-history.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"result","confidence","text"`, lines[0])
	assert.Equal(t, `"Not Spam","5","plain text"`, lines[1])
}

func TestHistoryExportJSONDefault(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodGet, "/api/history/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="spam-history.json"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "[]", rec.Body.String())
}

func TestHistoryExportReport(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "free money"})

	rec := doJSON(t, router, http.MethodGet, "/api/history/export?format=report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Spam Checker - History")
}

func TestHistoryExportUnknownFormat(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodGet, "/api/history/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported export format")
}

func TestSpeechSummaryBeforeAnyAnalysis(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	rec := doJSON(t, router, http.MethodPost, "/api/speech/summary", map[string]interface{}{
		"lang":   "en",
		"voices": []map[string]string{{"name": "Samantha", "lang": "en-US"}},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSpeechSummaryNoVoices(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "hello there"})

	rec := doJSON(t, router, http.MethodPost, "/api/speech/summary", map[string]interface{}{
		"lang": "en",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSpeechSummaryAfterAnalysis(t *testing.T) {
	router := newTestRouter(newTestHandlers(t))

	doJSON(t, router, http.MethodPost, "/api/analyze", map[string]interface{}{"text": "hello there"})

	rec := doJSON(t, router, http.MethodPost, "/api/speech/summary", map[string]interface{}{
		"lang": "ta",
		"voices": []map[string]string{
			{"name": "Daniel", "lang": "en-GB"},
			{"name": "Valluvar", "lang": "ta-IN"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Text  string `json:"text"`
		Voice struct {
			Name string `json:"name"`
			Lang string `json:"lang"`
		} `json:"voice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Valluvar", resp.Voice.Name)
	assert.Contains(t, resp.Text, "Result: Not Spam")
	assert.Contains(t, resp.Text, "Suggested reply:")
}
