package speech

import (
	"fmt"
	"strings"

	"github.com/inboxguard/spamcheck/internal/core"
	"golang.org/x/text/language"
)

// Voice describes one synthesized voice offered by the client platform
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// langShortcuts expands the client's short language codes to full tags
var langShortcuts = map[string]string{
	"en": "en-US",
	"ta": "ta-IN",
	"hi": "hi-IN",
	"kn": "kn-IN",
	"te": "te-IN",
}

// fallbackTag is used when the requested language is unknown
const fallbackTag = "en-US"

// ResolveLang expands a short language code ("ta") to its full tag
// ("ta-IN"), defaulting to en-US
func ResolveLang(lang string) string {
	if tag, ok := langShortcuts[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return tag
	}
	return fallbackTag
}

// PickVoice selects a voice for the target language: exact language-region
// match, then same primary language in any region, then the first voice.
// The second return is false only when no voices exist at all, in which
// case the read-aloud is silently skipped.
func PickVoice(voices []Voice, lang string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	target, err := language.Parse(ResolveLang(lang))
	if err != nil {
		return voices[0], true
	}
	targetBase, _ := target.Base()

	for _, v := range voices {
		tag, err := language.Parse(v.Lang)
		if err != nil {
			continue
		}
		if strings.EqualFold(tag.String(), target.String()) {
			return v, true
		}
	}

	for _, v := range voices {
		tag, err := language.Parse(v.Lang)
		if err != nil {
			continue
		}
		if base, _ := tag.Base(); base == targetBase {
			return v, true
		}
	}

	return voices[0], true
}

// BuildSummary assembles the read-aloud text from the latest verdict and
// the first reply suggestion, if present. Empty when there is nothing to
// read.
func BuildSummary(verdict *core.Verdict, firstReply string) string {
	if verdict == nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("Result: %s", verdict.Result()),
		fmt.Sprintf("Confidence: %d%%", verdict.Confidence),
		fmt.Sprintf("Risk: %s", core.RiskLevel(verdict.Confidence)),
	}
	if len(verdict.Signals) > 0 {
		parts = append(parts, "Spam keywords detected: "+strings.Join(verdict.Signals, ", "))
	} else {
		parts = append(parts, "No spam keywords detected.")
	}
	if firstReply != "" {
		parts = append(parts, "Suggested reply:", firstReply)
	}
	return strings.Join(parts, "\n")
}
