package core

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSensitivity is used when no sensitivity is supplied,
// including the remote-failure fallback path
const DefaultSensitivity = 50

// SourceLocal identifies verdicts produced by the local heuristic
const SourceLocal = "local"

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// LocalScorer is the keyword-containment spam heuristic. It is a total
// function: every string input yields a valid verdict.
type LocalScorer struct {
	lexicon *KeywordLexicon
}

// NewLocalScorer creates a scorer over the given lexicon
func NewLocalScorer(lexicon *KeywordLexicon) *LocalScorer {
	return &LocalScorer{lexicon: lexicon}
}

// Score classifies text using case-insensitive substring containment.
// Matching is deliberately not word-bounded: "free" inside "freedom" counts.
// Sensitivity is clamped into [0,100] before use.
func (s *LocalScorer) Score(text string, sensitivity int) *Verdict {
	sensitivity = clamp(sensitivity, 0, 100)
	lower := strings.ToLower(text)

	found := []string{}
	rawScore := 0.0
	for _, t := range s.lexicon.Terms() {
		if strings.Contains(lower, t.Term) {
			found = append(found, t.Term)
			rawScore += t.Weight
		}
	}

	if len(found) == 0 {
		// No matches: a flat floor, independent of sensitivity
		return &Verdict{
			IsSpam:     false,
			Confidence: 5,
			Signals:    found,
			Source:     SourceLocal,
			AnalysisID: uuid.NewString(),
			AnalyzedAt: time.Now(),
		}
	}

	base := math.Min(100, 35+12*float64(len(found))+3*rawScore)
	confidence := clamp(int(math.Round(base*(0.5+float64(sensitivity)/200))), 0, 100)
	isSpam := confidence >= 15

	return &Verdict{
		IsSpam:     isSpam,
		Confidence: confidence,
		Signals:    found,
		Source:     SourceLocal,
		AnalysisID: uuid.NewString(),
		AnalyzedAt: time.Now(),
	}
}

// MatchCount returns how many lexicon terms the text contains.
// Backs the live match-counter stat.
func (s *LocalScorer) MatchCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, t := range s.lexicon.Terms() {
		if strings.Contains(lower, t.Term) {
			count++
		}
	}
	return count
}

// WordCount counts word-boundary tokens in the text
func WordCount(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
