package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port         string
	Env          string
	Legacy       LegacyConfig
	Cache        CacheConfig
	TaxonomyFile string
	LogLevel     string
	LogFormat    string
}

// LegacyConfig selects the read-only legacy metadata source. With an empty
// DSN the gateway serves FixtureFile from memory, or an empty store.
type LegacyConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	QueryTimeout time.Duration
	FixtureFile  string
}

// CacheConfig sizes the snapshot cache. Size 0 disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

func (c Config) UsesDatabase() bool {
	return strings.TrimSpace(c.Legacy.DSN) != ""
}

// Load reads .env, the -port flag and the process environment. Binaries that
// own their flag set call FromEnv instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", "", "server port")
	flag.Parse()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if p := strings.TrimSpace(*port); p != "" && os.Getenv("PORT") == "" {
		cfg.Port = normalizePort(p)
	}
	return cfg, nil
}

func FromEnv() (*Config, error) {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}
	cfg := defaults(env)

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		cfg.Port = normalizePort(envPort)
	}

	cfg.Legacy.Driver = firstNonEmpty(strings.TrimSpace(os.Getenv("LEGACY_DB_DRIVER")), cfg.Legacy.Driver)
	cfg.Legacy.DSN = firstNonEmpty(strings.TrimSpace(os.Getenv("LEGACY_DB_DSN")), cfg.Legacy.DSN)
	cfg.Legacy.FixtureFile = firstNonEmpty(strings.TrimSpace(os.Getenv("LEGACY_FIXTURE_FILE")), cfg.Legacy.FixtureFile)
	cfg.TaxonomyFile = firstNonEmpty(strings.TrimSpace(os.Getenv("ROLE_TAXONOMY_FILE")), cfg.TaxonomyFile)
	cfg.LogLevel = firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), cfg.LogLevel)
	cfg.LogFormat = firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_FORMAT")), cfg.LogFormat)

	var err error
	if cfg.Legacy.MaxOpenConns, err = intEnv("LEGACY_DB_MAX_OPEN_CONNS", cfg.Legacy.MaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.Legacy.QueryTimeout, err = durationEnv("LEGACY_QUERY_TIMEOUT", cfg.Legacy.QueryTimeout); err != nil {
		return nil, err
	}
	if cfg.Cache.Size, err = intEnv("LEGACY_CACHE_SIZE", cfg.Cache.Size); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = durationEnv("LEGACY_CACHE_TTL", cfg.Cache.TTL); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaults(env string) Config {
	if strings.EqualFold(env, "local") {
		return localConfig()
	}
	return Config{
		Port: ":8081",
		Env:  env,
		Legacy: LegacyConfig{
			Driver:       DriverPostgres,
			MaxOpenConns: 8,
			QueryTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Size: 512,
			TTL:  time.Minute,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

func (c Config) validate() error {
	switch c.Legacy.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("LEGACY_DB_DRIVER: unsupported driver %q", c.Legacy.Driver)
	}
	if c.Legacy.MaxOpenConns < 0 {
		return fmt.Errorf("LEGACY_DB_MAX_OPEN_CONNS must not be negative")
	}
	if c.Legacy.QueryTimeout < 0 {
		return fmt.Errorf("LEGACY_QUERY_TIMEOUT must not be negative")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("LEGACY_CACHE_SIZE must not be negative")
	}
	if c.Cache.Size > 0 && c.Cache.TTL <= 0 {
		return fmt.Errorf("LEGACY_CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

func normalizePort(p string) string {
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
