package config

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ErrMissingCredential is returned by Validate when a required API key
	// is not configured. It is fatal at startup.
	ErrMissingCredential = eris.New("config: missing credential")
	// ErrInvalid is returned by Validate for out-of-range settings.
	ErrInvalid = eris.New("config: invalid settings")
)

// Config holds the full application configuration.
type Config struct {
	Linkup   LinkupConfig   `yaml:"linkup" mapstructure:"linkup"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Freepik  FreepikConfig  `yaml:"freepik" mapstructure:"freepik"`
	Media    MediaConfig    `yaml:"media" mapstructure:"media"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Pricing  PricingConfig  `yaml:"pricing" mapstructure:"pricing"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// LinkupConfig holds Linkup search API settings.
type LinkupConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig configures the search executor.
type SearchConfig struct {
	// RequestsPerSecond paces outgoing queries. Zero disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	// TimeoutSecs bounds a single search request.
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// FreepikConfig holds Freepik API settings.
type FreepikConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// MediaConfig configures media generation polling and retries.
type MediaConfig struct {
	ImageTimeoutSecs int `yaml:"image_timeout_secs" mapstructure:"image_timeout_secs"`
	VideoTimeoutSecs int `yaml:"video_timeout_secs" mapstructure:"video_timeout_secs"`
	PollIntervalMs   int `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
	PollCapMs        int `yaml:"poll_cap_ms" mapstructure:"poll_cap_ms"`
	RetryAttempts    int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	BreakerThreshold int `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerResetSecs int `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// ClassifyConfig configures the keyword classifier.
type ClassifyConfig struct {
	// RulesPath points at a YAML rules file. Empty uses the built-in rules.
	RulesPath string `yaml:"rules_path" mapstructure:"rules_path"`
}

// StoreConfig configures the run history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
}

// PricingConfig holds per-provider pricing rates in USD.
type PricingConfig struct {
	Linkup  LinkupPricing  `yaml:"linkup" mapstructure:"linkup"`
	Freepik FreepikPricing `yaml:"freepik" mapstructure:"freepik"`
}

// LinkupPricing holds Linkup per-query pricing.
type LinkupPricing struct {
	Standard float64 `yaml:"standard" mapstructure:"standard"`
	Deep     float64 `yaml:"deep" mapstructure:"deep"`
}

// FreepikPricing holds Freepik per-asset pricing.
type FreepikPricing struct {
	Image float64 `yaml:"image" mapstructure:"image"`
	Video float64 `yaml:"video" mapstructure:"video"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	RequestTimeoutSecs int      `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	AllowedOrigins     []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	// File enables a rotating log file in addition to stderr.
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// Load reads configuration from .env, config.yaml, and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare provider variables, as documented by both APIs.
	_ = v.BindEnv("linkup.key", "ADSCOUT_LINKUP_KEY", "LINKUP_API_KEY")
	_ = v.BindEnv("freepik.key", "ADSCOUT_FREEPIK_KEY", "FREEPIK_API_KEY")

	v.SetDefault("linkup.base_url", "https://api.linkup.so/v1")
	v.SetDefault("search.requests_per_second", 0)
	v.SetDefault("search.timeout_secs", 60)
	v.SetDefault("freepik.base_url", "https://api.freepik.com/v1")
	v.SetDefault("media.image_timeout_secs", 45)
	v.SetDefault("media.video_timeout_secs", 150)
	v.SetDefault("media.poll_interval_ms", 3000)
	v.SetDefault("media.poll_cap_ms", 10000)
	v.SetDefault("media.retry_attempts", 3)
	v.SetDefault("media.breaker_threshold", 5)
	v.SetDefault("media.breaker_reset_secs", 30)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "adscout.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("pricing.linkup.standard", 0.005)
	v.SetDefault("pricing.linkup.deep", 0.05)
	v.SetDefault("pricing.freepik.image", 0.04)
	v.SetDefault("pricing.freepik.video", 0.40)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.request_timeout_secs", 120)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 15)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

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

// Validate checks the settings a command mode depends on. Modes are
// "scrape", "serve", "media" and "runs".
func (c *Config) Validate(mode string) error {
	var missing, invalid []string

	switch mode {
	case "scrape":
		if c.Linkup.Key == "" {
			missing = append(missing, "linkup.key is required (LINKUP_API_KEY)")
		}
	case "serve":
		if c.Linkup.Key == "" {
			missing = append(missing, "linkup.key is required (LINKUP_API_KEY)")
		}
		if c.Server.Port <= 0 {
			invalid = append(invalid, "server.port must be > 0")
		}
		if c.Server.RequestTimeoutSecs <= 0 {
			invalid = append(invalid, "server.request_timeout_secs must be > 0")
		}
	case "media":
		if c.Freepik.Key == "" {
			missing = append(missing, "freepik.key is required (FREEPIK_API_KEY)")
		}
	case "runs":
	default:
		return eris.Wrapf(ErrInvalid, "unknown mode %q", mode)
	}

	if c.Search.RequestsPerSecond < 0 {
		invalid = append(invalid, "search.requests_per_second must be >= 0")
	}

	if len(missing) > 0 {
		return eris.Wrap(ErrMissingCredential, strings.Join(append(missing, invalid...), "; "))
	}
	if len(invalid) > 0 {
		return eris.Wrap(ErrInvalid, strings.Join(invalid, "; "))
	}
	return nil
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

	if cfg.File != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotatingFile(cfg)),
			zapCfg.Level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func rotatingFile(cfg LogConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}
