package core

// LexiconTerm is a single spam-indicative term with its scoring weight
type LexiconTerm struct {
	Term   string
	Weight float64
}

// KeywordLexicon is an ordered set of spam-indicative terms.
// Order is significant: matched signals are reported in lexicon order.
type KeywordLexicon struct {
	terms []LexiconTerm
}

// defaultTerms is the built-in keyword set, uniformly weighted
var defaultTerms = []string{
	"win", "free", "lottery", "prize", "congratulations", "cheap", "get rich",
	"scheme", "meds", "money", "urgent", "click", "offer", "now", "limited",
	"exclusive", "act fast", "guaranteed", "risk free", "credit", "loan",
	"easy", "investment", "miracle", "deal", "discount", "buy", "order",
	"cash", "gift", "reward", "selected", "winner", "claim", "unsubscribe",
}

// DefaultLexicon returns the built-in lexicon with all weights set to 1
func DefaultLexicon() *KeywordLexicon {
	terms := make([]LexiconTerm, 0, len(defaultTerms))
	for _, t := range defaultTerms {
		terms = append(terms, LexiconTerm{Term: t, Weight: 1})
	}
	return &KeywordLexicon{terms: terms}
}

// NewLexicon builds a lexicon from explicit terms, dropping duplicates
func NewLexicon(terms []LexiconTerm) *KeywordLexicon {
	seen := make(map[string]bool, len(terms))
	unique := make([]LexiconTerm, 0, len(terms))
	for _, t := range terms {
		if t.Term == "" || seen[t.Term] {
			continue
		}
		seen[t.Term] = true
		unique = append(unique, t)
	}
	return &KeywordLexicon{terms: unique}
}

// Extend returns a new lexicon with extra terms appended after the built-ins
func (l *KeywordLexicon) Extend(extra []LexiconTerm) *KeywordLexicon {
	combined := make([]LexiconTerm, 0, len(l.terms)+len(extra))
	combined = append(combined, l.terms...)
	combined = append(combined, extra...)
	return NewLexicon(combined)
}

// Terms returns the ordered terms of the lexicon
func (l *KeywordLexicon) Terms() []LexiconTerm {
	return l.terms
}

// Len returns the number of terms in the lexicon
func (l *KeywordLexicon) Len() int {
	return len(l.terms)
}
