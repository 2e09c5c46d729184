package core

import (
	"time"
)

// Verdict represents the outcome of a single spam analysis
type Verdict struct {
	IsSpam     bool      `json:"is_spam"`
	Confidence int       `json:"confidence"`
	Signals    []string  `json:"signals"`
	Source     string    `json:"source"`
	AnalysisID string    `json:"analysis_id"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Result renders the verdict label the way the client displays it
func (v *Verdict) Result() string {
	if v.IsSpam {
		return "Spam"
	}
	return "Not Spam"
}

// HistoryEntry is the immutable record of one completed analysis
type HistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IsSpam     bool      `json:"is_spam"`
	Confidence int       `json:"confidence"`
	Signals    []string  `json:"signals"`
	Text       string    `json:"text"`
}

// Result renders the entry's verdict label
func (e *HistoryEntry) Result() string {
	if e.IsSpam {
		return "Spam"
	}
	return "Not Spam"
}

// NewHistoryEntry captures a verdict and the analyzed text at the current time
func NewHistoryEntry(v *Verdict, text string) HistoryEntry {
	signals := v.Signals
	if signals == nil {
		signals = []string{}
	}
	return HistoryEntry{
		Timestamp:  time.Now(),
		IsSpam:     v.IsSpam,
		Confidence: v.Confidence,
		Signals:    signals,
		Text:       text,
	}
}

// RiskLevel maps a confidence value to the display band used by the client
func RiskLevel(confidence int) string {
	switch {
	case confidence >= 80:
		return "Very High"
	case confidence >= 60:
		return "High"
	case confidence >= 35:
		return "Medium"
	case confidence >= 15:
		return "Low"
	default:
		return "Very Low"
	}
}
