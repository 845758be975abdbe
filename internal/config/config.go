package config

import (
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent to subtitle providers.
const DefaultUserAgent = "MovieReviewApp/1.0"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	GRPC struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"grpc"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Search struct {
		DefaultLanguage string `mapstructure:"default_language"`
		Freshness       string `mapstructure:"freshness"`        // how long a cached search stays valid
		ProviderTimeout string `mapstructure:"provider_timeout"` // per provider call
		ProviderRetries int    `mapstructure:"provider_retries"`
	} `mapstructure:"search"`
	Download struct {
		MaxBytes int64 `mapstructure:"max_bytes"`
	} `mapstructure:"download"`
	Providers struct {
		OpenSubtitles struct {
			Enabled bool   `mapstructure:"enabled"`
			APIKey  string `mapstructure:"api_key"`
			BaseURL string `mapstructure:"base_url"`
		} `mapstructure:"opensubtitles"`
		Subscene struct {
			Enabled bool   `mapstructure:"enabled"`
			BaseURL string `mapstructure:"base_url"`
		} `mapstructure:"subscene"`
		SubDB struct {
			Enabled bool   `mapstructure:"enabled"`
			BaseURL string `mapstructure:"base_url"`
		} `mapstructure:"subdb"`
	} `mapstructure:"providers"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Colour only when attached to a terminal
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: !isatty.IsTerminal(os.Stdout.Fd()),
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.port", 5001)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("client_timeout", "30s")

	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 1000)
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("search.default_language", "en")
	v.SetDefault("search.freshness", "1h")
	v.SetDefault("search.provider_timeout", "15s")
	v.SetDefault("search.provider_retries", 1)

	v.SetDefault("download.max_bytes", 10<<20)

	v.SetDefault("providers.opensubtitles.enabled", true)
	v.SetDefault("providers.opensubtitles.base_url", "https://api.opensubtitles.com/api/v1")
	v.SetDefault("providers.subscene.enabled", false)
	v.SetDefault("providers.subscene.base_url", "https://subscene.com")
	v.SetDefault("providers.subdb.enabled", true)
	v.SetDefault("providers.subdb.base_url", "http://api.thesubdb.com")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Well-known variables that predate the APP_ prefix
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("providers.opensubtitles.api_key", "APP_PROVIDERS_OPENSUBTITLES_API_KEY", "OPENSUBTITLES_API_KEY")
	_ = v.BindEnv("sentry.dsn", "APP_SENTRY_DSN", "SENTRY_DSN")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}

// ParseDuration parses a Go duration string, falling back to def (with a
// warning) when the value is empty or malformed.
func ParseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("setting", name).Str("value", value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}
