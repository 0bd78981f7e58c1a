package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration for the verchain server and CLI.
type Config struct {
	Env            string
	Addr           string
	LogMode        string
	ManifestPath   string
	DefaultVersion string
	AllowedOrigins []string
	ShutdownMs     int
}

// ShutdownTimeout is ShutdownMs as a duration.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownMs) * time.Millisecond
}

// LoadFromEnv reads VERCHAIN_* variables, falling back to local defaults.
func LoadFromEnv() (Config, error) {
	shutdownMs, err := getenvInt("VERCHAIN_SHUTDOWN_TIMEOUT_MS", 10_000)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Env:            getenv("VERCHAIN_ENV", "local"),
		Addr:           getenv("VERCHAIN_ADDR", ":8080"),
		LogMode:        getenv("VERCHAIN_LOG_MODE", "dev"),
		ManifestPath:   getenv("VERCHAIN_MANIFEST", ""),
		DefaultVersion: getenv("VERCHAIN_DEFAULT_VERSION", ""),
		AllowedOrigins: getenvList("VERCHAIN_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownMs:     shutdownMs,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ShutdownMs <= 0 {
		return fmt.Errorf("VERCHAIN_SHUTDOWN_TIMEOUT_MS must be > 0")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("VERCHAIN_ADDR must not be empty")
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", k, v)
	}
	return n, nil
}

func getenvList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
