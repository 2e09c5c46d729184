package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"Please find attached invoice, payment due Friday", Invoice},
		{"Can we schedule a call tomorrow?", Meeting},
		{"Your resume looks great, let's set up an interview", Job},
		{"I'm hitting an error when I log in, please help", Support},
		{"Where is my shipment? The tracking page is blank", Order},
		{"Could you clarify the details of the proposal?", Info},
		{"Lovely weather we're having", Generic},
		{"", Generic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.text), "text=%q", tt.text)
	}
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Invoice, Detect("INVOICE ENCLOSED"))
}

func TestDetectFirstRuleWins(t *testing.T) {
	// "payment" (invoice) and "order" (order) both match; invoice is
	// earlier in the rule list
	assert.Equal(t, Invoice, Detect("payment for your order"))
}

func TestSuggestReturnsTwoDraftsForEveryIntent(t *testing.T) {
	samples := map[Intent]string{
		Invoice: "invoice attached",
		Meeting: "meeting at noon",
		Job:     "job opening",
		Support: "support needed",
		Order:   "order status",
		Info:    "more information please",
		Generic: "hello",
	}
	for want, text := range samples {
		require.Equal(t, want, Detect(text))
		drafts := Suggest(text)
		require.Len(t, drafts, 2, "intent=%s", want)
		for _, draft := range drafts {
			assert.NotEmpty(t, draft)
			assert.True(t, strings.HasPrefix(draft, "Hi,"), "intent=%s", want)
			assert.Contains(t, draft, "[Your Name]")
		}
	}
}

func TestSuggestInvoiceSample(t *testing.T) {
	drafts := Suggest("Please find attached invoice, payment due Friday")
	require.Len(t, drafts, 2)
	assert.Contains(t, drafts[0], "invoice")
	assert.Contains(t, drafts[1], "[amount]")
}
