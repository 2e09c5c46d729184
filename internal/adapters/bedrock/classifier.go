package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/google/uuid"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// Classifier is a core.RemoteClassifier backed by Amazon Bedrock
type Classifier struct {
	client        *bedrockruntime.Client
	modelID       string
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

// NewClassifier creates a new Bedrock-backed classifier
func NewClassifier(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Classifier {
	return &Classifier{
		client:        client,
		modelID:       modelID,
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

func (c *Classifier) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.")
}

func (c *Classifier) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}

// Classify analyzes text with the configured model
func (c *Classifier) Classify(ctx context.Context, text string) (*core.Verdict, error) {
	prepared := c.textProcessor.ProcessText(text, c.maxTextSize)
	prompt := fmt.Sprintf(c.promptFormat, prepared)

	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return nil, core.NewMalformedError(fmt.Errorf("failed to marshal request payload: %w", err))
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, core.NewTransportError(fmt.Errorf("failed to invoke Bedrock model: %w", err))
	}

	responseText, err := c.extractText(resp.Body)
	if err != nil {
		return nil, err
	}

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

	c.logger.Debug("Bedrock classification completed",
		zap.Bool("is_spam", parsed.IsSpam),
		zap.Int("confidence", confidence),
		zap.String("model", c.modelID))

	return &core.Verdict{
		IsSpam:     parsed.IsSpam,
		Confidence: confidence,
		Signals:    signals,
		Source:     "bedrock",
		AnalysisID: uuid.NewString(),
		AnalyzedAt: time.Now(),
	}, nil
}

// extractText pulls the generated text out of the model-specific envelope
func (c *Classifier) extractText(body []byte) (string, error) {
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", core.NewMalformedError(fmt.Errorf("failed to unmarshal Claude response: %w", err))
		}
		return claudeResp.Completion, nil
	}

	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", core.NewMalformedError(fmt.Errorf("failed to unmarshal Titan response: %w", err))
		}
		if len(titanResp.Results) == 0 {
			return "", core.NewMalformedError(fmt.Errorf("empty response from Titan model"))
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", core.NewMalformedError(fmt.Errorf("failed to unmarshal model response: %w", err))
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	default:
		return string(body), nil
	}
}
