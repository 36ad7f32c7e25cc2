// Package config loads Raider's ambient configuration — transport knobs and
// the loop-guard bound — via godotenv.Load() followed by os.Getenv reads
// with defaults.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the driver-level knobs: a proxy URL, the operator-controlled
// TLS toggle, user agent, and the authentication loop guard.
type Config struct {
	Proxy      string
	TLSVerify  bool
	UserAgent  string
	LoopGuard  int
	ProjectDir string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getIntOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// Load reads .env (if present) then the environment. None of Raider's
// knobs are required — every field has a usable default, so missing
// .env/env vars are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional: a missing .env is not an error here

	return &Config{
		Proxy:      os.Getenv("RAIDER_PROXY"),
		TLSVerify:  getBoolOrDefault("RAIDER_TLS_VERIFY", true),
		UserAgent:  getEnvOrDefault("RAIDER_USER_AGENT", "raider/1.0"),
		LoopGuard:  getIntOrDefault("RAIDER_LOOP_GUARD", 25),
		ProjectDir: getEnvOrDefault("RAIDER_PROJECT_DIR", ".raider"),
	}, nil
}
