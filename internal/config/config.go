package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	DataDir            string
	JWTSecret          string
	TokenStrategy      string
	TokenTTL           time.Duration
	ConnectTimeout     time.Duration
	StoreTimeout       time.Duration
	ShutdownTimeout    time.Duration
	InitialOrderStatus model.OrderStatus
	NotifyWorkers      int
	NotifyQueueSize    int
	NotifyTimeout      time.Duration
	StaticDir          string
	NATSURL            string
	NATSSubject        string
	WebhookURL         string
	StoreName          string
	LogLevel           slog.Level
	Mail               MailConfig
}

const (
	defaultRunAddress         = ":3000"
	defaultDataDir            = "data"
	defaultJWTSecret          = "change-me-in-production"
	defaultTokenStrategy      = "jwt"
	defaultTokenTTL           = 7 * 24 * time.Hour
	defaultConnectTimeout     = 5 * time.Second
	defaultStoreTimeout       = 5 * time.Second
	defaultShutdownTimeout    = 10 * time.Second
	defaultInitialOrderStatus = model.OrderStatusConfirmed
	defaultNotifyWorkers      = 2
	defaultNotifyQueueSize    = 64
	defaultNotifyTimeout      = 15 * time.Second
	defaultStaticDir          = "public"
	defaultNATSSubject        = "luvyn.orders.confirmed"
	defaultStoreName          = "Luvyn"
)

// Load parses configuration from a .env file, flags and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := load(os.Args[1:], os.LookupEnv)
	if err != nil {
		return nil, err
	}

	if cfg.Mail, err = LoadMail(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", portAddress(lookup)),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		DataDir:         getString(lookup, "DATA_DIR", defaultDataDir),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenStrategy:   getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ConnectTimeout:  getDuration(lookup, "CONNECT_TIMEOUT", defaultConnectTimeout),
		StoreTimeout:    getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize: getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		NotifyTimeout:   getDuration(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout),
		StaticDir:       getString(lookup, "STATIC_DIR", defaultStaticDir),
		NATSURL:         getString(lookup, "NATS_URL", ""),
		NATSSubject:     getString(lookup, "NATS_SUBJECT", defaultNATSSubject),
		WebhookURL:      getString(lookup, "NOTIFY_WEBHOOK_URL", ""),
		StoreName:       getString(lookup, "STORE_NAME", defaultStoreName),
	}

	fs := flag.NewFlagSet("luvyn", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		initialStatus = getString(lookup, "INITIAL_ORDER_STATUS", string(defaultInitialOrderStatus))
		logLevel      = getString(lookup, "LOG_LEVEL", "info")
		durations     = []struct {
			flag   string
			target *time.Duration
			raw    string
		}{
			{flag: "token-ttl", target: &cfg.TokenTTL},
			{flag: "connect-timeout", target: &cfg.ConnectTimeout},
			{flag: "store-timeout", target: &cfg.StoreTimeout},
			{flag: "shutdown-timeout", target: &cfg.ShutdownTimeout},
			{flag: "notify-timeout", target: &cfg.NotifyTimeout},
		}
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN, empty to use the file store")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory of the fallback JSON store")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token format: jwt or hmac")
	fs.StringVar(&initialStatus, "initial-status", initialStatus, "Status of newly created orders")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Pending notification capacity")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Directory with storefront assets")
	fs.StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS server URL for order events")
	fs.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "URL receiving order confirmation events")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn, error")
	for i := range durations {
		d := &durations[i]
		d.raw = d.target.String()
		fs.StringVar(&d.raw, d.flag, d.raw, "duration")
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	for _, d := range durations {
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.flag, err)
		}
		*d.target = parsed
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.InitialOrderStatus = model.OrderStatus(strings.ToLower(initialStatus))
	if !cfg.InitialOrderStatus.CanOriginate() {
		return nil, fmt.Errorf("initial order status must be pending or confirmed, got %q", initialStatus)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	switch cfg.TokenStrategy {
	case "jwt", "hmac":
	default:
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	normalize(cfg)

	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
}

func portAddress(lookup envLookup) string {
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultRunAddress
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
