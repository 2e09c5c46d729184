package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/inboxguard/spamcheck/internal/adapters/store"
	"github.com/inboxguard/spamcheck/internal/config"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/factory"
	"github.com/inboxguard/spamcheck/internal/history"
	"github.com/inboxguard/spamcheck/internal/intent"
	"github.com/inboxguard/spamcheck/internal/logging"
	"github.com/inboxguard/spamcheck/internal/utils"
	"go.uber.org/zap"
)

var (
	// Classifier flags
	useRemote = flag.Bool("remote", false, "Classify with the remote service instead of the local heuristic")
	provider  = flag.String("provider", "http", "Remote classifier provider (http, openai, gemini, bedrock)")
	endpoint  = flag.String("endpoint", "http://localhost:5000/check_spam", "HTTP classification endpoint")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Scorer flags
	sensitivity = flag.Int("sensitivity", core.DefaultSensitivity, "Local heuristic sensitivity (0-100)")

	// Input flags
	inputFile = flag.String("file", "", "Input text file (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	// Read text from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading text from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading text from stdin")
	}
	textBytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}
	text := string(textBytes)

	// Assemble the analysis pipeline
	textProcessor := utils.NewTextProcessor(logger)
	scorer := core.NewLocalScorer(factory.BuildLexicon(cfg, logger))
	ledger := history.NewLedger(store.NewMemoryStore(), history.DefaultLimit, logger)

	var classifier core.RemoteClassifier
	if *useRemote {
		classifier, err = factory.NewClassifierFactory(cfg, logger, textProcessor).CreateClassifier()
		if err != nil {
			logger.Fatal("Failed to create remote classifier", zap.Error(err))
		}
	}

	service := core.NewAnalysisService(scorer, classifier, ledger, logger)

	// Analyze
	fmt.Printf("\n=== Analysis ===\n")
	if *useRemote {
		fmt.Printf("Provider: %s\n", *provider)
	} else {
		fmt.Printf("Provider: local heuristic (sensitivity %d)\n", *sensitivity)
	}
	fmt.Printf("Words: %d\n", core.WordCount(text))
	fmt.Printf("Keyword matches: %d\n", scorer.MatchCount(text))

	startTime := time.Now()
	verdict := service.Analyze(context.Background(), text, *useRemote, *sensitivity)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Result: %s\n", verdict.Result())
	fmt.Printf("Confidence: %d%%\n", verdict.Confidence)
	fmt.Printf("Risk: %s\n", core.RiskLevel(verdict.Confidence))
	if len(verdict.Signals) > 0 {
		fmt.Printf("Signals: %s\n", strings.Join(verdict.Signals, ", "))
	} else {
		fmt.Printf("Signals: none\n")
	}
	fmt.Printf("Source: %s\n", verdict.Source)
	fmt.Printf("Processing time: %v\n", duration)

	// Reply suggestions for legitimate mail
	if !verdict.IsSpam && strings.TrimSpace(text) != "" {
		fmt.Printf("\n=== Reply ideas (%s) ===\n", intent.Detect(text))
		for i, draft := range intent.Suggest(text) {
			fmt.Printf("\n--- Draft %d ---\n%s\n", i+1, draft)
		}
	}

	// Close any resources that need closing
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("classifier.provider", *provider)
	v.Set("scorer.default_sensitivity", *sensitivity)

	switch *provider {
	case "http":
		v.Set("http.endpoint", *endpoint)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
	}

	return config.NewFromViper(v)
}
