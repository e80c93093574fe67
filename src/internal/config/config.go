package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=intl_payments_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultTokenTTL = 15 * time.Minute
const defaultStoreTimeout = 5 * time.Second
const defaultSwiftTopic = "swift.payments.submitted"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPAddr             string
	StorageDriver        string
	DatabaseDSN          string
	MigrationsDir        string
	JWTSecret            string
	TokenTTL             time.Duration
	StoreTimeout         time.Duration
	BcryptCost           int
	KafkaBrokers         []string
	SwiftTopic           string
	LogLevel             string
	LogPretty            bool
	SeedEmployeeAccount  string
	SeedEmployeePassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured when present and never overrides variables that are
// already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	conn := envOr("DATABASE_DSN", defaultConnectionString)

	cfg := Config{
		HTTPAddr:             envOr("HTTP_ADDR", defaultHTTPAddr),
		StorageDriver:        strings.ToLower(envOr("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseDSN:          normalizeConnectionString(conn),
		MigrationsDir:        envOr("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		JWTSecret:            strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SwiftTopic:           envOr("SWIFT_TOPIC", defaultSwiftTopic),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		SeedEmployeeAccount:  strings.TrimSpace(os.Getenv("SEED_EMPLOYEE_ACCOUNT")),
		SeedEmployeePassword: os.Getenv("SEED_EMPLOYEE_PASSWORD"),
	}

	var err error
	if cfg.TokenTTL, err = durationOr("TOKEN_TTL", defaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.StoreTimeout, err = durationOr("STORE_TIMEOUT", defaultStoreTimeout); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = intOr("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}
	if cfg.LogPretty, err = boolOr("LOG_PRETTY", false); err != nil {
		return Config{}, err
	}
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func envOr(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intOr(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolOr(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeConnectionString accepts either a libpq key/value string or the
// semicolon separated form used by .NET tooling.
func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") || !strings.Contains(raw, ";") {
		return raw
	}

	out := make([]string, 0, 8)
	hasSSLMode := false

	for _, part := range strings.Split(raw, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "host", "server":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username", "user id":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode", "ssl mode":
			hasSSLMode = true
			out = append(out, "sslmode="+strings.ToLower(val))
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}
	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}
	return strings.Join(out, " ")
}
