package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
)

const (
	configPathEnv    = "INTERVIEW_SCANNER_CONFIG"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
	summaryKeyEnv    = "SUMMARY_API_KEY"
	summaryModelEnv  = "SUMMARY_MODEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig          `yaml:"logging"`
	Inputs        []InputConfig          `yaml:"inputs"`
	Groups        map[string]GroupConfig `yaml:"groups"`
	Notifications NotificationConfig     `yaml:"notifications"`
	Summary       SummaryConfig          `yaml:"summary"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// InputConfig describes a single file input with its reader strategy.
type InputConfig struct {
	Name    string            `yaml:"name"`
	Format  string            `yaml:"format"`
	Path    string            `yaml:"path"`
	Group   string            `yaml:"group"`
	Options map[string]string `yaml:"options"`
}

// GroupConfig overrides the built-in analysis dictionaries for one group.
// Absent fields keep their defaults.
type GroupConfig struct {
	Categories map[string][]string `yaml:"categories"`
	Sentiment  SentimentConfig     `yaml:"sentiment"`
	Thresholds ThresholdConfig     `yaml:"thresholds"`
	Alerts     AlertConfig         `yaml:"alerts"`
}

// SentimentConfig overrides the sentiment keyword lists.
type SentimentConfig struct {
	Positive    []string `yaml:"positive"`
	Negative    []string `yaml:"negative"`
	Negation    []string `yaml:"negation"`
	Intensifier []string `yaml:"intensifier"`
}

// ThresholdConfig overrides risk-tier cut points, urgency keywords, and
// factor weights.
type ThresholdConfig struct {
	RiskTier struct {
		Yellow *int `yaml:"yellow"`
		Red    *int `yaml:"red"`
	} `yaml:"riskTier"`
	Urgency struct {
		HighKeywords   []string `yaml:"highKeywords"`
		MediumKeywords []string `yaml:"mediumKeywords"`
	} `yaml:"urgency"`
	RiskWeights struct {
		VolumeIncrease        *float64 `yaml:"volumeIncrease"`
		SentimentDecline      *float64 `yaml:"sentimentDecline"`
		HighRiskCategory      *float64 `yaml:"highRiskCategory"`
		OpenCases             *float64 `yaml:"openCases"`
		UnresolvedExpressions *float64 `yaml:"unresolvedExpressions"`
	} `yaml:"riskWeights"`
}

// AlertConfig overrides group notification triggers.
type AlertConfig struct {
	Enabled              *bool `yaml:"enabled"`
	TriggerOnRed         *bool `yaml:"triggerOnRed"`
	TriggerOnHighUrgency *bool `yaml:"triggerOnHighUrgency"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SummaryConfig defines how to contact the narrative-summary API.
type SummaryConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
	if v := os.Getenv(summaryKeyEnv); v != "" {
		c.Summary.APIKey = v
	}
	if v := os.Getenv(summaryModelEnv); v != "" {
		c.Summary.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}
	if len(override.Inputs) > 0 {
		base.Inputs = override.Inputs
	}
	if len(override.Groups) > 0 {
		base.Groups = override.Groups
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Summary.Endpoint != "" {
		base.Summary.Endpoint = override.Summary.Endpoint
	}
	if override.Summary.Model != "" {
		base.Summary.Model = override.Summary.Model
	}
	if override.Summary.APIKey != "" {
		base.Summary.APIKey = override.Summary.APIKey
	}
	if override.Summary.SystemPrompt != "" {
		base.Summary.SystemPrompt = override.Summary.SystemPrompt
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Summary: SummaryConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
	}
}

// SettingsForGroup resolves the analysis settings for a group, overlaying any
// configured overrides on the built-in defaults. Unknown groups fall back to
// defaults, never fail.
func (c Config) SettingsForGroup(group string) domain.AppSettings {
	settings := analysis.DefaultSettings()
	gc, ok := c.Groups[group]
	if !ok {
		return settings
	}

	for key, keywords := range gc.Categories {
		if len(keywords) > 0 {
			settings.Dict[domain.CategoryKey(key)] = keywords
		}
	}

	if len(gc.Sentiment.Positive) > 0 {
		settings.SentimentDict.Positive = gc.Sentiment.Positive
	}
	if len(gc.Sentiment.Negative) > 0 {
		settings.SentimentDict.Negative = gc.Sentiment.Negative
	}
	if len(gc.Sentiment.Negation) > 0 {
		settings.SentimentDict.Negation = gc.Sentiment.Negation
	}
	if len(gc.Sentiment.Intensifier) > 0 {
		settings.SentimentDict.Intensifier = gc.Sentiment.Intensifier
	}

	if v := gc.Thresholds.RiskTier.Yellow; v != nil {
		settings.Thresholds.RiskTier.Yellow = *v
	}
	if v := gc.Thresholds.RiskTier.Red; v != nil {
		settings.Thresholds.RiskTier.Red = *v
	}
	if len(gc.Thresholds.Urgency.HighKeywords) > 0 {
		settings.Thresholds.Urgency.HighKeywords = gc.Thresholds.Urgency.HighKeywords
	}
	if len(gc.Thresholds.Urgency.MediumKeywords) > 0 {
		settings.Thresholds.Urgency.MediumKeywords = gc.Thresholds.Urgency.MediumKeywords
	}
	if v := gc.Thresholds.RiskWeights.VolumeIncrease; v != nil {
		settings.Thresholds.RiskWeights.VolumeIncrease = *v
	}
	if v := gc.Thresholds.RiskWeights.SentimentDecline; v != nil {
		settings.Thresholds.RiskWeights.SentimentDecline = *v
	}
	if v := gc.Thresholds.RiskWeights.HighRiskCategory; v != nil {
		settings.Thresholds.RiskWeights.HighRiskCategory = *v
	}
	if v := gc.Thresholds.RiskWeights.OpenCases; v != nil {
		settings.Thresholds.RiskWeights.OpenCases = *v
	}
	if v := gc.Thresholds.RiskWeights.UnresolvedExpressions; v != nil {
		settings.Thresholds.RiskWeights.UnresolvedExpressions = *v
	}

	if v := gc.Alerts.Enabled; v != nil {
		settings.Notifications.Enabled = *v
	}
	if v := gc.Alerts.TriggerOnRed; v != nil {
		settings.Notifications.TriggerOnRed = *v
	}
	if v := gc.Alerts.TriggerOnHighUrgency; v != nil {
		settings.Notifications.TriggerOnHighUrgency = *v
	}

	return settings
}
