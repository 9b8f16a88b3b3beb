package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Valid values for the selector options.
var (
	DataBackends   = []string{"memory", "sqlite", "postgres", "memcache"}
	SyncTargets    = []string{"webapp", "sheets", "memory"}
	NotifyChannels = []string{"webhook", "telegram"}
	LogFormats     = []string{"text", "json"}
	LogLevels      = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	// HTTP Server
	Port            string        `koanf:"PORT"`
	ShutdownTimeout time.Duration `koanf:"SHUTDOWN_TIMEOUT"`

	// Logging
	LogLevel  string `koanf:"LOG_LEVEL"`
	LogFormat string `koanf:"LOG_FORMAT"`

	// Slot backend
	DataBackend   string `koanf:"DATA_BACKEND"`
	StorageKey    string `koanf:"STORAGE_KEY"`
	MemorySeedDir string `koanf:"MEMORY_SEED_DIR"`
	SQLiteDBPath  string `koanf:"SQLITE_DB_PATH"`

	Postgres PostgresConfig `koanf:",squash"`

	MemcacheHosts  []string `koanf:"MEMCACHE_HOSTS"`
	MemcachePrefix string   `koanf:"MEMCACHE_PREFIX"`

	// Sync
	SyncURL                  string `koanf:"SYNC_URL"`
	SyncTarget               string `koanf:"SYNC_TARGET"`
	GoogleSpreadsheetID      string `koanf:"GOOGLE_SPREADSHEET_ID"`
	GoogleSheetName          string `koanf:"GOOGLE_SHEET_NAME"`
	GoogleServiceAccountJSON string `koanf:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	GoogleServiceAccountFile string `koanf:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Notification
	NotifyURL      string `koanf:"NOTIFY_URL"`
	NotifyToken    string `koanf:"NOTIFY_TOKEN"`
	NotifyChannel  string `koanf:"NOTIFY_CHANNEL"`
	TelegramChatID int64  `koanf:"TELEGRAM_CHAT_ID"`
	NotifyTitle    string `koanf:"NOTIFY_TITLE"`
	NotifySender   string `koanf:"NOTIFY_SENDER"`
	NotifyClosing  string `koanf:"NOTIFY_CLOSING"`
	AppURL         string `koanf:"APP_URL"`
	DocsURL        string `koanf:"DOCS_URL"`

	// Record events; empty URL or broker list disables the publisher
	AMQPURL      string   `koanf:"AMQP_URL"`
	AMQPExchange string   `koanf:"AMQP_EXCHANGE"`
	AMQPQueue    string   `koanf:"AMQP_QUEUE"`
	KafkaBrokers []string `koanf:"KAFKA_BROKERS"`
	KafkaTopic   string   `koanf:"KAFKA_TOPIC"`
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string `koanf:"POSTGRES_HOST"`
	Port     int    `koanf:"POSTGRES_PORT"`
	Database string `koanf:"POSTGRES_DB"`
	User     string `koanf:"POSTGRES_USER"`
	Password string `koanf:"POSTGRES_PASSWORD"`
	SSLMode  string `koanf:"POSTGRES_SSLMODE"`
}

// Load reads the process environment. Unset or empty variables take their
// defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Port, "8081")
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	setDefault(&c.LogLevel, "info")
	setDefault(&c.LogFormat, "text")

	setDefault(&c.DataBackend, "memory")
	setDefault(&c.StorageKey, "expenses")
	setDefault(&c.SQLiteDBPath, "./data/kakei.db")

	setDefault(&c.Postgres.Host, "localhost")
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	setDefault(&c.Postgres.Database, "kakei")
	setDefault(&c.Postgres.User, "kakei")
	setDefault(&c.Postgres.SSLMode, "disable")

	c.MemcacheHosts = splitList(c.MemcacheHosts)
	if len(c.MemcacheHosts) == 0 {
		c.MemcacheHosts = []string{"localhost:11211"}
	}
	setDefault(&c.MemcachePrefix, "kakei:")

	setDefault(&c.SyncTarget, "webapp")
	setDefault(&c.GoogleSheetName, "Expenses")

	setDefault(&c.NotifyChannel, "webhook")
	setDefault(&c.NotifyTitle, "Expense tracker completed")
	setDefault(&c.NotifySender, "kakei")
	setDefault(&c.NotifyClosing, "Please take a look.")

	setDefault(&c.AMQPExchange, "kakei")
	setDefault(&c.AMQPQueue, "record_events")
	c.KafkaBrokers = splitList(c.KafkaBrokers)
	setDefault(&c.KafkaTopic, "kakei.records")
}

// SyncEnabled reports whether the selected sync target has what it needs.
func (c *Config) SyncEnabled() bool {
	switch c.SyncTarget {
	case "sheets":
		return c.GoogleSpreadsheetID != ""
	case "memory":
		return true
	default:
		return c.SyncURL != ""
	}
}

// NotifyEnabled reports whether a notification token is configured.
func (c *Config) NotifyEnabled() bool {
	return strings.TrimSpace(c.NotifyToken) != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(DataBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, DataBackends))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errors = append(errors, "storage key cannot be empty")
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	case "postgres":
		if c.Postgres.Host == "" {
			errors = append(errors, "POSTGRES_HOST is required when using postgres backend")
		}
		if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid postgres port %d", c.Postgres.Port))
		}
	case "memcache":
		if len(c.MemcacheHosts) == 0 {
			errors = append(errors, "MEMCACHE_HOSTS is required when using memcache backend")
		}
	}

	if !slices.Contains(SyncTargets, c.SyncTarget) {
		errors = append(errors, fmt.Sprintf("invalid sync target '%s': must be one of %v", c.SyncTarget, SyncTargets))
	}
	if c.SyncTarget == "webapp" && c.SyncURL != "" {
		if u, err := url.Parse(c.SyncURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid sync URL '%s': must be an http(s) URL", c.SyncURL))
		}
	}

	if !slices.Contains(NotifyChannels, c.NotifyChannel) {
		errors = append(errors, fmt.Sprintf("invalid notify channel '%s': must be one of %v", c.NotifyChannel, NotifyChannels))
	}
	if c.NotifyURL != "" {
		if u, err := url.Parse(c.NotifyURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid notify URL '%s': must be an http(s) URL", c.NotifyURL))
		}
	}
	if c.NotifyChannel == "telegram" && c.NotifyEnabled() && c.TelegramChatID == 0 {
		errors = append(errors, "TELEGRAM_CHAT_ID is required when NOTIFY_CHANNEL is telegram")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errors = append(errors, "Kafka topic cannot be empty when KAFKA_BROKERS is provided")
	}

	if !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, LogLevels))
	}
	if !slices.Contains(LogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, LogFormats))
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// splitList accepts both comma-separated single values and already split
// lists, dropping blanks.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
