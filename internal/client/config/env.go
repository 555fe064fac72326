package config

import "os"

const (
	envServerURL = "KNOTHOST_SERVER_URL"
	envToken     = "KNOTHOST_TOKEN"
	envSession   = "KNOTHOST_SESSION_DB"
)

func parseEnv(cfg *Config) {
	if v := os.Getenv(envServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(envToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(envSession); v != "" {
		cfg.SessionFile = v
	}
}
