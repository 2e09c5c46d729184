package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"go.uber.org/zap"
)

const spamLabel = "Spam"

// Client is a core.RemoteClassifier backed by the HTTP classification
// endpoint. One POST per classification; the response is normalized into
// a Verdict or rejected as a ClassificationError.
type Client struct {
	httpClient    *http.Client
	endpoint      string
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// classifyRequest is the wire format the endpoint expects
type classifyRequest struct {
	Email string `json:"email"`
}

// classifyResponse is the expected response shape. Pointer fields
// distinguish absent from zero: at least one of Result or Probability
// must be present for the response to be well-formed.
type classifyResponse struct {
	Result        *string   `json:"result"`
	Probability   *float64  `json:"probability"`
	FoundKeywords *[]string `json:"found_keywords"`
}

// NewClient creates a new HTTP classifier client
func NewClient(
	endpoint string,
	timeout time.Duration,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		endpoint:      endpoint,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Classify submits text to the endpoint and normalizes the response.
// Transport errors and non-success statuses surface as TransportFailure,
// unexpected payloads as MalformedResponse; the caller decides what to
// do next.
func (c *Client) Classify(ctx context.Context, text string) (*core.Verdict, error) {
	prepared := c.textProcessor.ProcessText(text, c.maxTextSize)

	body, err := json.Marshal(classifyRequest{Email: prepared})
	if err != nil {
		return nil, core.NewMalformedError(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("request to %s failed: %w", c.endpoint, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewTransportError(fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.endpoint))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("failed to read response body: %w", err))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, core.NewMalformedError(fmt.Errorf("failed to decode response: %w", err))
	}

	return c.normalize(&parsed)
}

// normalize converts a well-formed response into a Verdict. Any field of
// unexpected value is rejected, not coerced.
func (c *Client) normalize(resp *classifyResponse) (*core.Verdict, error) {
	if resp.Result == nil && resp.Probability == nil {
		return nil, core.NewMalformedError(fmt.Errorf("response carries neither result nor probability"))
	}
	if resp.Probability != nil && (*resp.Probability < 0 || *resp.Probability > 1) {
		return nil, core.NewMalformedError(fmt.Errorf("probability %v outside [0,1]", *resp.Probability))
	}

	// The label alone decides spam status; probability only sets confidence
	isSpam := resp.Result != nil && *resp.Result == spamLabel

	var confidence int
	switch {
	case resp.Probability != nil:
		confidence = int(*resp.Probability*100 + 0.5)
	case isSpam:
		confidence = 85
	default:
		confidence = 15
	}

	signals := []string{}
	if resp.FoundKeywords != nil {
		signals = append(signals, (*resp.FoundKeywords)...)
	}

	c.logger.Debug("Remote classification completed",
		zap.Bool("is_spam", isSpam),
		zap.Int("confidence", confidence),
		zap.Int("signal_count", len(signals)))

	return &core.Verdict{
		IsSpam:     isSpam,
		Confidence: confidence,
		Signals:    signals,
		Source:     "http",
		AnalysisID: uuid.NewString(),
		AnalyzedAt: time.Now(),
	}, nil
}
