package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModeWeb  = "web"
	ModeMenu = "menu"
)

type Config struct {
	Mode string
	HTTP struct {
		Port        string
		CORSOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	ExportPath   string
	DefaultCoats int
}

// Load reads .env (optional) and then the process environment.
// It reports whether .env was found so the caller can log it.
func Load() (*Config, bool) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{}
	cfg.Mode = strings.ToLower(getEnv("APP_MODE", ModeWeb))
	if cfg.Mode != ModeMenu {
		cfg.Mode = ModeWeb
	}
	cfg.HTTP.Port = getEnv("PORT", "8080")
	cfg.HTTP.CORSOrigins = parseCorsOrigins(os.Getenv("CORS_ORIGINS"))
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")
	cfg.ExportPath = getEnv("EXPORT_PATH", "paint_estimate.csv")
	cfg.DefaultCoats = parseInt(getEnv("DEFAULT_COATS", "2"), 2)
	if cfg.DefaultCoats < 1 {
		cfg.DefaultCoats = 2
	}
	return cfg, envLoaded
}

// Addr is the listen address for the form server.
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
