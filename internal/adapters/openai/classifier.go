package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Classifier is a core.RemoteClassifier backed by OpenAI
type Classifier struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// classifierResponse is the structured verdict requested from the model
type classifierResponse struct {
	IsSpam     bool     `json:"is_spam"`
	Confidence int      `json:"confidence"`
	Signals    []string `json:"signals"`
}

// NewClassifier creates a new OpenAI-backed classifier
func NewClassifier(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Classifier {
	return &Classifier{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `You are a spam detection system. Analyze the following email text and determine if it's spam.
Respond with a JSON object containing:
- is_spam: boolean (true if spam, false if not)
- confidence: integer between 0 and 100 (how certain you are of the classification)
- signals: array of strings (the words or phrases in the text that indicate spam; empty if none)

Email text:
%s

Respond only with the JSON object and nothing else.`,
	}
}

// Classify analyzes text with the configured model
func (c *Classifier) Classify(ctx context.Context, text string) (*core.Verdict, error) {
	prepared := c.textProcessor.ProcessText(text, c.maxTextSize)
	prompt := fmt.Sprintf(c.promptFormat, prepared)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a spam detection system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: "json"}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewMalformedError(fmt.Errorf("empty response from OpenAI"))
	}

	parsed, err := parseClassifierJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("OpenAI classification completed",
		zap.Bool("is_spam", parsed.IsSpam),
		zap.Int("confidence", parsed.Confidence),
		zap.String("model", c.modelName))

	return &core.Verdict{
		IsSpam:     parsed.IsSpam,
		Confidence: clampConfidence(parsed.Confidence),
		Signals:    normalizeSignals(parsed.Signals),
		Source:     "openai",
		AnalysisID: resp.ID,
		AnalyzedAt: time.Now(),
	}, nil
}

// parseClassifierJSON parses the model output, tolerating prose around
// the JSON object
func parseClassifierJSON(text string) (*classifierResponse, error) {
	var parsed classifierResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return &parsed, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, core.NewMalformedError(fmt.Errorf("no JSON object in model response"))
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, core.NewMalformedError(fmt.Errorf("failed to parse model response: %w", err))
	}
	return &parsed, nil
}

func clampConfidence(confidence int) int {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

func normalizeSignals(signals []string) []string {
	if signals == nil {
		return []string{}
	}
	return signals
}
