// ABOUTME: Configuration management with defaults, YAML file overlay and environment overrides
// ABOUTME: Defines the tunables of the access layer, media pipeline, cache backends and API server

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Access contains HTTP access layer configuration
	Access AccessConfig `yaml:"access"`

	// Media contains extraction and delivery tunables
	Media MediaConfig `yaml:"media"`

	// Cache contains cache backend configuration
	Cache CacheConfig `yaml:"cache"`

	// Server contains inspection API configuration
	Server ServerConfig `yaml:"server"`

	// Log contains logger configuration
	Log LogConfig `yaml:"log"`
}

// AccessConfig holds transport and retry settings
type AccessConfig struct {
	// RequestTimeout bounds feed and file downloads
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// MediaCheckTimeout bounds HEAD accessibility checks
	MediaCheckTimeout time.Duration `yaml:"media_check_timeout"`

	// MaxAttempts is the total number of attempts per request, first one included
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffFactor is the base of the exponential backoff
	BackoffFactor float64 `yaml:"backoff_factor"`

	// BackoffUnit scales BackoffFactor^attempt into a sleep duration
	BackoffUnit time.Duration `yaml:"backoff_unit"`

	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`

	// Headers are extra request headers sent with every request
	Headers map[string]string `yaml:"headers"`
}

// MediaConfig holds media extraction and delivery settings
type MediaConfig struct {
	// DecorativeKeywords filter out UI chrome images by URL substring
	DecorativeKeywords []string `yaml:"decorative_keywords"`

	// MaxConcurrentFeeds bounds caller-side fan-out across feeds
	MaxConcurrentFeeds int `yaml:"max_concurrent_feeds"`

	// MaxMediaPerBatch is the largest media group handed downstream at once
	MaxMediaPerBatch int `yaml:"max_media_per_batch"`

	// LargeFileThresholdMB switches delivery to download-then-upload
	LargeFileThresholdMB float64 `yaml:"large_file_threshold_mb"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// TTL is how long cached probe and feed results stay valid
	TTL time.Duration `yaml:"ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// KeyPrefix namespaces every key this process writes
	KeyPrefix string `yaml:"key_prefix"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// ServerConfig holds inspection API configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit float64 `yaml:"rate_limit"`

	// RateBurst is the burst size per client IP
	RateBurst int `yaml:"rate_burst"`

	// TrustedProxies are IPs or CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// Format is text or json
	Format string `yaml:"format"`
}

// DefaultUserAgent is a desktop browser string; several feed hosts reject
// unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Access: AccessConfig{
			RequestTimeout:    30 * time.Second,
			MediaCheckTimeout: 10 * time.Second,
			MaxAttempts:       3,
			BackoffFactor:     1.5,
			BackoffUnit:       time.Second,
			UserAgent:         DefaultUserAgent,
			Headers: map[string]string{
				"Accept":          "application/rss+xml, application/xml, text/xml, */*",
				"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
				"Cache-Control":   "no-cache",
			},
		},
		Media: MediaConfig{
			DecorativeKeywords:   []string{"icon", "logo", "avatar", "emoji", "button"},
			MaxConcurrentFeeds:   5,
			MaxMediaPerBatch:     10,
			LargeFileThresholdMB: 20,
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  300 * time.Second,
			Redis: RedisConfig{
				Address:   "localhost:6379",
				KeyPrefix: "feedmedia:",
			},
			SQLite: SQLiteConfig{
				Path: "feedmedia-cache.db",
			},
		},
		Server: ServerConfig{
			Port:      "8000",
			RateLimit: 5,
			RateBurst: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables over the defaults
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Access.RequestTimeout = getEnvAsSecondsOrDefault("FEEDMEDIA_REQUEST_TIMEOUT", c.Access.RequestTimeout)
	c.Access.MediaCheckTimeout = getEnvAsSecondsOrDefault("FEEDMEDIA_MEDIA_CHECK_TIMEOUT", c.Access.MediaCheckTimeout)
	c.Access.MaxAttempts = getEnvAsIntOrDefault("FEEDMEDIA_MAX_ATTEMPTS", c.Access.MaxAttempts)
	c.Access.BackoffFactor = getEnvAsFloatOrDefault("FEEDMEDIA_BACKOFF_FACTOR", c.Access.BackoffFactor)
	c.Access.UserAgent = getEnvOrDefault("FEEDMEDIA_USER_AGENT", c.Access.UserAgent)

	if kw := os.Getenv("FEEDMEDIA_DECORATIVE_KEYWORDS"); kw != "" {
		c.Media.DecorativeKeywords = splitList(kw)
	}
	c.Media.MaxConcurrentFeeds = getEnvAsIntOrDefault("FEEDMEDIA_MAX_CONCURRENT_FEEDS", c.Media.MaxConcurrentFeeds)
	c.Media.MaxMediaPerBatch = getEnvAsIntOrDefault("FEEDMEDIA_MAX_MEDIA_PER_BATCH", c.Media.MaxMediaPerBatch)
	c.Media.LargeFileThresholdMB = getEnvAsFloatOrDefault("FEEDMEDIA_LARGE_FILE_THRESHOLD_MB", c.Media.LargeFileThresholdMB)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.TTL = getEnvAsSecondsOrDefault("FEEDMEDIA_CACHE_TTL", c.Cache.TTL)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)

	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.RateLimit = getEnvAsFloatOrDefault("RATE_LIMIT", c.Server.RateLimit)
	c.Server.RateBurst = getEnvAsIntOrDefault("RATE_BURST", c.Server.RateBurst)
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		c.Server.TrustedProxies = splitList(proxies)
	}

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsSecondsOrDefault accepts either a Go duration ("1m30s") or whole seconds
func getEnvAsSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Access.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	if c.Access.MediaCheckTimeout <= 0 {
		return errors.New("media check timeout must be positive")
	}

	if c.Access.MaxAttempts < 1 {
		return errors.New("max attempts must be at least 1")
	}

	if c.Access.BackoffFactor < 0 {
		return errors.New("backoff factor cannot be negative")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache TTL must be positive")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Media.MaxConcurrentFeeds < 1 {
		return errors.New("max concurrent feeds must be at least 1")
	}

	if c.Media.MaxMediaPerBatch < 1 {
		return errors.New("max media per batch must be at least 1")
	}

	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("invalid trusted proxy %q", proxy)
		}
	}

	return nil
}
