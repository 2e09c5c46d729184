package config

// ClassifierConfig represents the remote classifier selection
type ClassifierConfig struct {
	Provider    string
	MaxTextSize int
}

// HTTPConfig represents the configuration for the HTTP classification endpoint
type HTTPConfig struct {
	Endpoint string
	Timeout  string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// ScorerConfig represents the local heuristic configuration
type ScorerConfig struct {
	DefaultSensitivity int
	ExtraTerms         []string
}

// HistoryConfig represents the history ledger configuration
type HistoryConfig struct {
	Store      string
	Limit      int
	FilePath   string
	SQLitePath string
	MySQLDSN   string
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Provider:    c.GetString("classifier.provider"),
		MaxTextSize: c.GetInt("classifier.max_text_size"),
	}
}

// GetHTTP returns the HTTP classifier configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		Endpoint: c.GetString("http.endpoint"),
		Timeout:  c.GetString("http.timeout"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetScorer returns the local scorer configuration
func (c *Config) GetScorer() ScorerConfig {
	return ScorerConfig{
		DefaultSensitivity: c.GetInt("scorer.default_sensitivity"),
		ExtraTerms:         c.GetStringSlice("scorer.extra_terms"),
	}
}

// GetHistory returns the history ledger configuration
func (c *Config) GetHistory() HistoryConfig {
	return HistoryConfig{
		Store:      c.GetString("history.store"),
		Limit:      c.GetInt("history.limit"),
		FilePath:   c.GetString("history.file_path"),
		SQLitePath: c.GetString("history.sqlite_path"),
		MySQLDSN:   c.GetString("history.mysql_dsn"),
	}
}
