package intent

import (
	"regexp"
	"strings"
)

// Intent is a coarse categorization of an email's purpose
type Intent string

const (
	Invoice Intent = "invoice"
	Meeting Intent = "meeting"
	Job     Intent = "job"
	Support Intent = "support"
	Order   Intent = "order"
	Info    Intent = "info"
	Generic Intent = "generic"
)

// rule pairs an intent with the pattern that selects it
type rule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// rules is evaluated in order, first match wins. The vocabularies overlap
// ("order" appears in both fulfillment and billing mails), so earlier rules
// take precedence.
var rules = []rule{
	{Invoice, regexp.MustCompile(`invoice|bill|payment|due|attached`)},
	{Meeting, regexp.MustCompile(`meeting|call|schedule|tomorrow|today|time`)},
	{Job, regexp.MustCompile(`job|interview|resume|cv|position|role`)},
	{Support, regexp.MustCompile(`support|help|issue|problem|bug|error`)},
	{Order, regexp.MustCompile(`order|shipment|tracking|delivery|purchase`)},
	{Info, regexp.MustCompile(`info|information|details|clarify|question`)},
}

// Detect returns the first matching intent for the text, or Generic.
// Deterministic over any string input.
func Detect(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.pattern.MatchString(lower) {
			return r.intent
		}
	}
	return Generic
}
