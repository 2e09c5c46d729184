package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/history"
	"github.com/inboxguard/spamcheck/internal/intent"
	"github.com/inboxguard/spamcheck/internal/speech"
	"go.uber.org/zap"
)

// Handlers holds the HTTP handlers for the browser client
type Handlers struct {
	service *core.AnalysisService
	ledger  *history.Ledger
	logger  *zap.Logger

	defaultSensitivity int

	// latest completed analysis, for the read-aloud summary.
	// Last-render-wins: overlapping analyses overwrite in completion order.
	mu          sync.Mutex
	lastVerdict *core.Verdict
	lastText    string
}

// NewHandlers creates the handler set
func NewHandlers(service *core.AnalysisService, ledger *history.Ledger, defaultSensitivity int, logger *zap.Logger) *Handlers {
	if defaultSensitivity <= 0 {
		defaultSensitivity = core.DefaultSensitivity
	}
	return &Handlers{
		service:            service,
		ledger:             ledger,
		defaultSensitivity: defaultSensitivity,
		logger:             logger,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck reports liveness
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Text        string `json:"text"`
	UseRemote   bool   `json:"use_remote"`
	Sensitivity *int   `json:"sensitivity"`
}

type analyzeResponse struct {
	core.Verdict
	Result     string `json:"result"`
	Risk       string `json:"risk"`
	WordCount  int    `json:"word_count"`
	MatchCount int    `json:"match_count"`
}

// HandleAnalyze classifies the submitted text and records the verdict
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sensitivity := h.defaultSensitivity
	if req.Sensitivity != nil {
		sensitivity = *req.Sensitivity
	}

	verdict := h.service.Analyze(r.Context(), req.Text, req.UseRemote, sensitivity)

	h.mu.Lock()
	h.lastVerdict = verdict
	h.lastText = req.Text
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, analyzeResponse{
		Verdict:    *verdict,
		Result:     verdict.Result(),
		Risk:       core.RiskLevel(verdict.Confidence),
		WordCount:  core.WordCount(req.Text),
		MatchCount: h.service.Scorer().MatchCount(req.Text),
	})
}

type repliesRequest struct {
	Text string `json:"text"`
}

// HandleReplies returns the two reply drafts for the submitted text
func (h *Handlers) HandleReplies(w http.ResponseWriter, r *http.Request) {
	var req repliesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"intent":  intent.Detect(req.Text),
		"replies": intent.Suggest(req.Text),
	})
}

// HandleHistoryList returns the ledger entries, newest first
func (h *Handlers) HandleHistoryList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ledger.List())
}

// HandleHistoryClear empties the ledger
func (h *Handlers) HandleHistoryClear(w http.ResponseWriter, r *http.Request) {
	h.ledger.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// HandleHistoryExport streams the history in the requested format as a
// download
func (h *Handlers) HandleHistoryExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		data, err := h.ledger.ExportJSON()
		if err != nil {
			h.logger.Error("Failed to export history", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "export failed")
			return
		}
		sendDownload(w, "spam-history.json", "application/json", data)
	case "csv":
		sendDownload(w, "spam-history.csv", "text/csv", []byte(h.ledger.ExportCSV()))
	case "report":
		sendDownload(w, "spam-history-report.txt", "text/plain", []byte(h.ledger.ExportReport()))
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format: %s", format))
	}
}

func sendDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type speechRequest struct {
	Lang   string         `json:"lang"`
	Voices []speech.Voice `json:"voices"`
}

type speechResponse struct {
	Text  string       `json:"text"`
	Voice speech.Voice `json:"voice"`
}

// HandleSpeechSummary returns the read-aloud text for the latest verdict
// and the voice the client should use. 204 when there is nothing to read
// or no voice is usable.
func (h *Handlers) HandleSpeechSummary(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	verdict := h.lastVerdict
	text := h.lastText
	h.mu.Unlock()

	if verdict == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	firstReply := ""
	if !verdict.IsSpam && text != "" {
		firstReply = intent.Suggest(text)[0]
	}
	summary := speech.BuildSummary(verdict, firstReply)

	voice, ok := speech.PickVoice(req.Voices, req.Lang)
	if !ok || summary == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, speechResponse{Text: summary, Voice: voice})
}
