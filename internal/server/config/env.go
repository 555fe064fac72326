package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knothost/siteapi/internal/flagx"
)

// Environment variables understood by parseEnv.
const (
	envPort           = "PORT"
	envSecret         = "JWT_SECRET"
	envDatabaseDSN    = "DATABASE_DSN"
	envAllowedOrigins = "ALLOWED_ORIGINS"
	envLogLevel       = "LOG_LEVEL"
	envTokenTTL       = "ACCESS_TOKEN_TTL"
)

// parseEnv overlays Config with values from the process environment.
//
// A dotenv file (".env" by default, or the -env flag) is loaded first when
// it exists; variables already present in the environment win over the file.
// A malformed dotenv file or an unparsable ACCESS_TOKEN_TTL panics, matching
// the JSON and flag layers.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envPort); ok && v != "" {
		if strings.Contains(v, ":") {
			cfg.HTTPAddr = v
		} else {
			cfg.HTTPAddr = ":" + v
		}
	}
	if v, ok := os.LookupEnv(envSecret); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envAllowedOrigins); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenValidityDuration = d
	}
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
