package factory

import (
	"fmt"

	"github.com/inboxguard/spamcheck/internal/adapters/bedrock"
	"github.com/inboxguard/spamcheck/internal/adapters/gemini"
	"github.com/inboxguard/spamcheck/internal/adapters/openai"
	"github.com/inboxguard/spamcheck/internal/adapters/remote"
	"github.com/inboxguard/spamcheck/internal/config"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// ClassifierFactory creates remote classifiers
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a remote classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.RemoteClassifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Provider {
	case "http":
		httpCfg := f.cfg.GetHTTP()
		timeout, err := f.cfg.GetDuration("http.timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid http classifier timeout: %w", err)
		}
		return remote.NewClient(httpCfg.Endpoint, timeout, classifierCfg.MaxTextSize, f.logger, f.textProcessor), nil
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierCfg.Provider)
	}
}
