package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Classifier is a core.RemoteClassifier backed by Google Gemini
type Classifier struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
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

// NewClassifier creates a new Gemini-backed classifier
func NewClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Classifier, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Classifier{
		client:        client,
		model:         model,
		modelName:     modelName,
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
	}, nil
}

// Close closes the Gemini client
func (c *Classifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify analyzes text with the configured model
func (c *Classifier) Classify(ctx context.Context, text string) (*core.Verdict, error) {
	prepared := c.textProcessor.ProcessText(text, c.maxTextSize)
	prompt := fmt.Sprintf(c.promptFormat, prepared)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("failed to generate content with Gemini: %w", err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, core.NewMalformedError(fmt.Errorf("empty response from Gemini"))
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	var parsed classifierResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		start := strings.Index(responseText, "{")
		end := strings.LastIndex(responseText, "}")
		if start < 0 || end <= start {
			return nil, core.NewMalformedError(fmt.Errorf("no JSON object in model response"))
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &parsed); err != nil {
			return nil, core.NewMalformedError(fmt.Errorf("failed to parse model response: %w", err))
		}
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}
	signals := parsed.Signals
	if signals == nil {
		signals = []string{}
	}

	c.logger.Debug("Gemini classification completed",
		zap.Bool("is_spam", parsed.IsSpam),
		zap.Int("confidence", confidence),
		zap.String("model", c.modelName))

	return &core.Verdict{
		IsSpam:     parsed.IsSpam,
		Confidence: confidence,
		Signals:    signals,
		Source:     "gemini",
		AnalysisID: uuid.NewString(),
		AnalyzedAt: time.Now(),
	}, nil
}
