package config

import "time"

// Storage backends understood by storage.Open.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds runtime settings for the midpoint client.
//
// Fields are tagged for both the JSON file and the environment overlay
// (prefix MIDPOINT_, e.g. MIDPOINT_API_BASE_URL).
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`

	StorageBackend string `envconfig:"STORAGE_BACKEND"`
	DatabasePath   string `envconfig:"DATABASE_PATH"`
	RedisAddr      string `envconfig:"REDIS_ADDR"`

	AnalyticsHost string `envconfig:"ANALYTICS_HOST"`
	AnalyticsKey  string `envconfig:"ANALYTICS_KEY"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`

	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.midpoint.place/v1"
	c.RequestTimeout = 15 * time.Second
	c.StorageBackend = StorageSQLite
	c.DatabasePath = ".midpoint/midpoint.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.AnalyticsHost = "https://us.i.posthog.com"
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file (if any), then
// the environment, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
