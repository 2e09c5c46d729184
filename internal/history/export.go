package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inboxguard/spamcheck/internal/core"
)

const (
	reportTitle = "Spam Checker - History"
	// Report page geometry: an A4-like page of wrapped 80-column lines
	reportWidth     = 80
	reportPageLines = 56
)

// ExportJSON renders entries as a pretty-printed JSON array.
// An empty history yields "[]".
func ExportJSON(entries []core.HistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []core.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// ExportCSV renders entries as CSV with header "result,confidence,text".
// Every field is double-quoted and embedded quotes are doubled, so any
// text round-trips through a standard CSV parser.
func ExportCSV(entries []core.HistoryEntry) string {
	var b strings.Builder
	writeCSVRow(&b, "result", "confidence", "text")
	for _, e := range entries {
		writeCSVRow(&b, e.Result(), fmt.Sprintf("%d", e.Confidence), e.Text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeCSVRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ExportReport renders entries as a paginated plain-text document: a title
// line, then per-entry numbered blocks with word-wrapped text. A new page
// (form-feed separated) starts whenever the next block would not fit in
// the remaining space on the current one.
func ExportReport(entries []core.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(reportTitle + "\n\n")
	used := 2

	if len(entries) == 0 {
		b.WriteString("No history available.\n")
		return b.String()
	}

	for i, e := range entries {
		header := fmt.Sprintf("%d. %s  |  Confidence: %d%%", i+1, e.Result(), e.Confidence)
		wrapped := wrapText(strings.ReplaceAll(e.Text, "\r", ""), reportWidth)

		needed := 2 + len(wrapped)
		if used+needed > reportPageLines {
			b.WriteString("\f")
			used = 0
		}

		b.WriteString(header + "\n")
		for _, line := range wrapped {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
		used += needed
	}

	return b.String()
}

// wrapText greedily wraps text at word boundaries. Words longer than the
// width are broken mid-word. Input newlines start fresh lines.
func wrapText(text string, width int) []string {
	lines := []string{}
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			for len(word) > width {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				lines = append(lines, word[:width])
				word = word[width:]
			}
			switch {
			case current == "":
				current = word
			case len(current)+1+len(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// ExportJSON serializes the ledger's entries; it does not mutate state
func (l *Ledger) ExportJSON() ([]byte, error) {
	return ExportJSON(l.List())
}

// ExportCSV serializes the ledger's entries; it does not mutate state
func (l *Ledger) ExportCSV() string {
	return ExportCSV(l.List())
}

// ExportReport serializes the ledger's entries; it does not mutate state
func (l *Ledger) ExportReport() string {
	return ExportReport(l.List())
}
