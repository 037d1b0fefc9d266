package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

const (
	DefaultListingURL       = "https://yts.mx/browse-movies/0/all/animation/0/downloads/0/all"
	DefaultOutputDir        = "movies"
	DefaultMovieURLPrefix   = "https://yts.mx/movies/"
	DefaultTorrentURLPrefix = "https://yts.mx/torrent/download/"
	DefaultResolution       = "1080p"
	DefaultClientTimeout    = 30 * time.Second
	DefaultMovieDelay       = time.Second
	DefaultPageDelay        = 2 * time.Second
)

type Config struct {
	ListingURL            string `mapstructure:"listing_url"`
	OutputDir             string `mapstructure:"output_dir"`
	MovieURLPrefix        string `mapstructure:"movie_url_prefix"`
	TorrentURLPrefix      string `mapstructure:"torrent_url_prefix"`
	Resolution            string `mapstructure:"resolution"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	UserAgent             string `mapstructure:"user_agent"`
	MovieDelay            string `mapstructure:"movie_delay"`
	PageDelay             string `mapstructure:"page_delay"`
	MaxPages              int    `mapstructure:"max_pages"` // 0 means no limit
	RunInterval           string `mapstructure:"run_interval"` // 0 crawls once, otherwise the crawl repeats
	LogLevel              string `mapstructure:"log_level"`
	SentryDSN             string `mapstructure:"sentry_dsn"`
	Cache                 struct {
		Provider string `mapstructure:"provider"` // "none", "memory" or "redis"
		Size     int    `mapstructure:"size"`
		TTL      string `mapstructure:"ttl"`
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()
}

// RegisterFlags declares the command line flags understood by LoadConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("listing-url", DefaultListingURL, "Listing page to crawl")
	fs.String("output-dir", DefaultOutputDir, "Folder receiving the torrent files")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Int("max-pages", 0, "Stop after this many listing pages (0 = no limit)")
	fs.String("run-interval", "", "Repeat the crawl at this interval, e.g. 6h (empty or 0 = run once)")
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"listing-url":  "listing_url",
	"output-dir":   "output_dir",
	"log-level":    "log_level",
	"max-pages":    "max_pages",
	"run-interval": "run_interval",
}

// LoadConfig reads config.yaml, APP_* environment variables and, when fs is
// not nil, command line flags. Flags take precedence over everything else.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("listing_url", DefaultListingURL)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("movie_url_prefix", DefaultMovieURLPrefix)
	v.SetDefault("torrent_url_prefix", DefaultTorrentURLPrefix)
	v.SetDefault("resolution", DefaultResolution)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", DefaultClientTimeout.String())
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("movie_delay", DefaultMovieDelay.String())
	v.SetDefault("page_delay", DefaultPageDelay.String())
	v.SetDefault("max_pages", 0)
	v.SetDefault("run_interval", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", "localhost")
	v.SetDefault("metrics.port", 9090)

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the two parameters the crawl cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListingURL) == "" {
		return errors.New("listing_url must not be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return parseDuration("client_timeout", c.ClientTimeout, DefaultClientTimeout)
}

// MovieDelayDuration returns the pause between two movies.
func (c *Config) MovieDelayDuration() time.Duration {
	return parseDuration("movie_delay", c.MovieDelay, DefaultMovieDelay)
}

// PageDelayDuration returns the pause between two listing pages.
func (c *Config) PageDelayDuration() time.Duration {
	return parseDuration("page_delay", c.PageDelay, DefaultPageDelay)
}

// RunIntervalDuration returns the pause between two crawls, zero when the process crawls once.
func (c *Config) RunIntervalDuration() time.Duration {
	return parseDuration("run_interval", c.RunInterval, 0)
}

// DetailCacheProvider returns the cache provider to build, or "" for none.
// The memory provider is only read back when the same process crawls more than once.
func (c *Config) DetailCacheProvider() string {
	switch c.Cache.Provider {
	case "", "none":
		return ""
	case "memory":
		if c.RunIntervalDuration() == 0 {
			return ""
		}
	}
	return c.Cache.Provider
}

// CacheTTL returns how long resolved movie details are kept.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration("cache.ttl", c.Cache.TTL, 24*time.Hour)
}

func parseDuration(field, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		logger.Warn().Err(err).Str("field", field).Str("value", value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

// SetConfig installs cfg as the process configuration and applies its log level.
func SetConfig(cfg *Config) {
	level := zerolog.InfoLevel // default
	if cfg.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", cfg.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Info().Str("level", level.String()).Msg("Logging configured")
	globalConfig = cfg
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
