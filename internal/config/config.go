package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	JobsAPI JobsAPIConfig
	Viewer  ViewerConfig
	Redis   RedisConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type JobsAPIConfig struct {
	BaseURL string
}

type ViewerConfig struct {
	SearchDebounce time.Duration
	SessionIdleTTL time.Duration
	SweepSpec      string
	CacheWarmSpec  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

const (
	defaultAppName        = "job-listing"
	defaultEnvironment    = "development"
	defaultJobsAPIURL     = "https://www.themuse.com/api/public/jobs"
	defaultSearchDebounce = 300 * time.Millisecond
	defaultSessionIdleTTL = 30 * time.Minute
	defaultSweepSpec      = "@every 1m"
	defaultRedisTTL       = 600 * time.Second
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := parseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", defaultAppName),
		Environment: opt("APP_ENV", defaultEnvironment),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.JobsAPI = JobsAPIConfig{
		BaseURL: opt("JOBS_API_URL", defaultJobsAPIURL),
	}

	cfg.Viewer = ViewerConfig{
		SearchDebounce: dur("SEARCH_DEBOUNCE", defaultSearchDebounce),
		SessionIdleTTL: dur("SESSION_IDLE_TTL", defaultSessionIdleTTL),
		SweepSpec:      opt("SESSION_SWEEP_SPEC", defaultSweepSpec),
		CacheWarmSpec:  opt("CACHE_WARM_SPEC", ""),
	}

	cfg.Redis = RedisConfig{
		Enabled:  flag("REDIS_ENABLED", false),
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      dur("REDIS_TTL", defaultRedisTTL),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseDuration accepts Go duration strings and bare integers, which are
// read as seconds.
func parseDuration(raw string) (time.Duration, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
