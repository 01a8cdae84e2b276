package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"StockSentinel/internal/logger"
	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Log      logger.Config `yaml:"log"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token" validate:"required_if=Enabled true"`
		ChatID   string `yaml:"chat_id" validate:"required_if=Enabled true"`
	} `yaml:"telegram"`
	Email struct {
		Enabled  bool     `yaml:"enabled"`
		Host     string   `yaml:"host" default:"smtp.gmail.com"`
		Port     int      `yaml:"port" default:"465" validate:"gt=0,lte=65535"`
		Username string   `yaml:"username" validate:"required_if=Enabled true"`
		Password string   `yaml:"password" validate:"required_if=Enabled true"`
		To       []string `yaml:"to" validate:"omitempty,dive,email"`
	} `yaml:"email"`
	DataSource struct {
		Provider     string        `yaml:"provider" default:"yahoo" validate:"oneof=yahoo rest mock"`
		BaseURL      string        `yaml:"base_url" validate:"required_if=Provider rest"`
		APIKey       string        `yaml:"api_key"`
		LookbackDays int           `yaml:"lookback_days" default:"90" validate:"gte=1"`
		Workers      int           `yaml:"workers" validate:"gte=0"`
		Timeout      time.Duration `yaml:"timeout" default:"30s"`
		CacheTTL     time.Duration `yaml:"cache_ttl" default:"6h"`
	} `yaml:"data_source"`
	Tickers struct {
		File    string   `yaml:"file"`
		Default []string `yaml:"default" default:"[\"AAPL\",\"MSFT\",\"GOOGL\",\"AMZN\",\"NVDA\",\"META\",\"TSLA\"]"`
	} `yaml:"tickers"`
	Thresholds model.AlertThresholds `yaml:"thresholds"`
	Schedule   struct {
		DailyCron  string `yaml:"daily_cron" default:"0 30 22 * * 1-5"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/stock_sentinel.db"`
	} `yaml:"database"`
	HTTP struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Addr    string `yaml:"addr" default:":8080"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// envOverrides lists the environment variables that take precedence over the file.
// Unset variables leave the pointer nil.
type envOverrides struct {
	LogLevel          *string        `envconfig:"LOG_LEVEL"`
	TelegramBotToken  *string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    *string        `envconfig:"TELEGRAM_CHAT_ID"`
	DataBaseURL       *string        `envconfig:"DATA_BASE_URL"`
	DataAPIKey        *string        `envconfig:"DATA_API_KEY"`
	EmailUser         *string        `envconfig:"EMAIL_USER"`
	EmailPass         *string        `envconfig:"EMAIL_PASS"`
	EmailTo           []string       `envconfig:"EMAIL_TO"`
	Tickers           []string       `envconfig:"TICKERS"`
	TickersFile       *string        `envconfig:"TICKERS_FILE"`
	RSIUpper          *float64       `envconfig:"RSI_UPPER"`
	RSILower          *float64       `envconfig:"RSI_LOWER"`
	VolumeSpikeFactor *float64       `envconfig:"VOLUME_SPIKE_FACTOR"`
	DailyCron         *string        `envconfig:"CRON_DAILY"`
	RunOnStart        *bool          `envconfig:"RUN_ON_START"`
	SQLitePath        *string        `envconfig:"SQLITE_PATH"`
	HTTPAddr          *string        `envconfig:"HTTP_ADDR"`
	Proxy             *string        `envconfig:"HTTPS_PROXY"`
	CacheTTL          *time.Duration `envconfig:"CACHE_TTL"`
}

var validate = validator.New()

// Load applies defaults, then the YAML file (a missing file is not an error),
// then .env and environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	env.apply(cfg)

	return cfg, nil
}

func (e *envOverrides) apply(cfg *Config) {
	setString(&cfg.Log.Level, e.LogLevel)
	setString(&cfg.Telegram.BotToken, e.TelegramBotToken)
	setString(&cfg.Telegram.ChatID, e.TelegramChatID)
	setString(&cfg.DataSource.BaseURL, e.DataBaseURL)
	setString(&cfg.DataSource.APIKey, e.DataAPIKey)
	setString(&cfg.Email.Username, e.EmailUser)
	setString(&cfg.Email.Password, e.EmailPass)
	if len(e.EmailTo) > 0 {
		cfg.Email.To = e.EmailTo
	}
	if len(e.Tickers) > 0 {
		cfg.Tickers.Default = e.Tickers
	}
	setString(&cfg.Tickers.File, e.TickersFile)
	setFloat(&cfg.Thresholds.RSIUpper, e.RSIUpper)
	setFloat(&cfg.Thresholds.RSILower, e.RSILower)
	setFloat(&cfg.Thresholds.VolumeSpikeFactor, e.VolumeSpikeFactor)
	setString(&cfg.Schedule.DailyCron, e.DailyCron)
	if e.RunOnStart != nil {
		cfg.Schedule.RunOnStart = *e.RunOnStart
	}
	setString(&cfg.Database.SQLitePath, e.SQLitePath)
	setString(&cfg.HTTP.Addr, e.HTTPAddr)
	setString(&cfg.Proxy, e.Proxy)
	if e.CacheTTL != nil {
		cfg.DataSource.CacheTTL = *e.CacheTTL
	}
}

func setString(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks thresholds first so their error can be matched with
// strategy.ErrInvalidThresholds, then the remaining fields.
func (c *Config) Validate() error {
	if err := strategy.ValidateThresholds(c.Thresholds); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Tickers.File == "" && len(c.Tickers.Default) == 0 {
		return fmt.Errorf("tickers.file or tickers.default is required")
	}
	return nil
}
