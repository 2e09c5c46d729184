package factory

import (
	"strconv"
	"strings"

	"github.com/inboxguard/spamcheck/internal/config"
	"github.com/inboxguard/spamcheck/internal/core"
	"go.uber.org/zap"
)

// BuildLexicon assembles the keyword lexicon from the built-in terms plus
// any configured extras. Extras are "term" or "term:weight" strings; a bad
// weight falls back to 1.
func BuildLexicon(cfg *config.Config, logger *zap.Logger) *core.KeywordLexicon {
	extras := cfg.GetScorer().ExtraTerms
	if len(extras) == 0 {
		return core.DefaultLexicon()
	}

	terms := make([]core.LexiconTerm, 0, len(extras))
	for _, raw := range extras {
		term := strings.TrimSpace(raw)
		weight := 1.0
		if idx := strings.LastIndex(term, ":"); idx > 0 {
			if w, err := strconv.ParseFloat(term[idx+1:], 64); err == nil {
				weight = w
				term = term[:idx]
			}
		}
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		terms = append(terms, core.LexiconTerm{Term: term, Weight: weight})
	}

	logger.Info("Extended keyword lexicon", zap.Int("extra_terms", len(terms)))
	return core.DefaultLexicon().Extend(terms)
}
