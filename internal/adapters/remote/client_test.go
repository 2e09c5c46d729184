package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := zap.NewNop()
	client := NewClient(srv.URL, 5*time.Second, 4096, logger, utils.NewTextProcessor(logger))
	return client, srv
}

func TestClassifySendsEmailPayload(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"result": "Not Spam", "probability": 0.1})
	})

	_, err := client.Classify(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got["email"])
}

func TestClassifyProbabilitySetsConfidence(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":         "Spam",
			"probability":    0.873,
			"found_keywords": []string{"winner", "prize"},
		})
	})

	v, err := client.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.True(t, v.IsSpam)
	assert.Equal(t, 87, v.Confidence)
	assert.Equal(t, []string{"winner", "prize"}, v.Signals)
	assert.Equal(t, "http", v.Source)
}

func TestClassifyLabelOnlyMapping(t *testing.T) {
	tests := []struct {
		name           string
		result         string
		wantSpam       bool
		wantConfidence int
	}{
		{"spam label", "Spam", true, 85},
		{"other label", "Not Spam", false, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"result": tt.result})
			})

			v, err := client.Classify(context.Background(), "text")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSpam, v.IsSpam)
			assert.Equal(t, tt.wantConfidence, v.Confidence)
			assert.Empty(t, v.Signals)
		})
	}
}

func TestClassifyLabelDecidesSpamRegardlessOfProbability(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": "Spam", "probability": 0.01})
	})

	v, err := client.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.True(t, v.IsSpam)
	assert.Equal(t, 1, v.Confidence)
}

func TestClassifyNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, core.TransportFailure, core.ClassificationKind(err))
}

func TestClassifyUnreachableEndpoint(t *testing.T) {
	logger := zap.NewNop()
	client := NewClient("http://127.0.0.1:1/check_spam", 200*time.Millisecond, 4096, logger, utils.NewTextProcessor(logger))

	_, err := client.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, core.TransportFailure, core.ClassificationKind(err))
}

func TestClassifyMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"wrong probability type", `{"probability": "high"}`},
		{"wrong result type", `{"result": 42}`},
		{"wrong keywords type", `{"result": "Spam", "found_keywords": "winner"}`},
		{"neither field", `{"status": "ok"}`},
		{"probability above one", `{"probability": 1.7}`},
		{"negative probability", `{"probability": -0.2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			_, err := client.Classify(context.Background(), "text")
			require.Error(t, err)
			assert.Equal(t, core.MalformedResponse, core.ClassificationKind(err))
		})
	}
}

func TestClassifyTruncatesOversizedText(t *testing.T) {
	var got map[string]string
	srvHandler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"result": "Not Spam"})
	}
	srv := httptest.NewServer(http.HandlerFunc(srvHandler))
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := NewClient(srv.URL, 5*time.Second, 10, logger, utils.NewTextProcessor(logger))

	_, err := client.Classify(context.Background(), "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", got["email"])
}
