package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Firecrawl FirecrawlConfig `yaml:"firecrawl" mapstructure:"firecrawl"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gmail     GmailConfig     `yaml:"gmail" mapstructure:"gmail"`
	ClickUp   ClickUpConfig   `yaml:"clickup" mapstructure:"clickup"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// FirecrawlConfig holds Firecrawl API settings.
type FirecrawlConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GmailConfig holds the Gmail OAuth2 refresh-token credential.
type GmailConfig struct {
	User         string `yaml:"user" mapstructure:"user"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	RefreshToken string `yaml:"refresh_token" mapstructure:"refresh_token"`
}

// ClickUpConfig holds the ClickUp lead-capture settings. The field IDs map
// extracted business data onto the target list's custom fields.
type ClickUpConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	ListID         string  `yaml:"list_id" mapstructure:"list_id"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit      float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	WebsiteFieldID string  `yaml:"website_field_id" mapstructure:"website_field_id"`
	EmailFieldID   string  `yaml:"email_field_id" mapstructure:"email_field_id"`
	PhoneFieldID   string  `yaml:"phone_field_id" mapstructure:"phone_field_id"`
	AddressFieldID string  `yaml:"address_field_id" mapstructure:"address_field_id"`
	ContactFieldID string  `yaml:"contact_field_id" mapstructure:"contact_field_id"`
}

// PipelineConfig bounds each stage of an analysis run.
type PipelineConfig struct {
	ExtractTimeoutSecs int `yaml:"extract_timeout_secs" mapstructure:"extract_timeout_secs"`
	AnalyzeTimeoutSecs int `yaml:"analyze_timeout_secs" mapstructure:"analyze_timeout_secs"`
	NotifyTimeoutSecs  int `yaml:"notify_timeout_secs" mapstructure:"notify_timeout_secs"`
	RequestTimeoutSecs int `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// ExtractTimeout returns the extract stage bound as a duration.
func (p PipelineConfig) ExtractTimeout() time.Duration {
	return time.Duration(p.ExtractTimeoutSecs) * time.Second
}

// AnalyzeTimeout returns the analyze stage bound as a duration.
func (p PipelineConfig) AnalyzeTimeout() time.Duration {
	return time.Duration(p.AnalyzeTimeoutSecs) * time.Second
}

// NotifyTimeout returns the notify stage bound as a duration.
func (p PipelineConfig) NotifyTimeout() time.Duration {
	return time.Duration(p.NotifyTimeoutSecs) * time.Second
}

// RequestTimeout returns the whole-request bound as a duration.
func (p PipelineConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSecs) * time.Second
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VOICELEAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v2")
	v.SetDefault("firecrawl.timeout_secs", 60)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2000)
	v.SetDefault("clickup.base_url", "https://api.clickup.com/api/v2")
	v.SetDefault("clickup.rate_limit", 1.5)
	v.SetDefault("pipeline.extract_timeout_secs", 60)
	v.SetDefault("pipeline.analyze_timeout_secs", 60)
	v.SetDefault("pipeline.notify_timeout_secs", 30)
	v.SetDefault("pipeline.request_timeout_secs", 120)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
