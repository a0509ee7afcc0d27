package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr string
	Seed int64
}

type SimConfig struct {
	Seed     int64
	Careers  int
	RunEvery time.Duration
	RunOnce  bool
}

type CLIConfig struct {
	APIBaseURL string
}

// LoadAPIFromEnv reads the API server settings. PORT wins over
// GOALLINE_API_ADDR for platform compatibility. A zero seed means the
// service seeds itself from the clock.
func LoadAPIFromEnv() APIConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("GOALLINE_API_ADDR", ":8080")
	}
	return APIConfig{
		Addr: addr,
		Seed: envInt64Default("GOALLINE_SEED", 0),
	}
}

// LoadSimFromEnv reads the headless simulator settings.
func LoadSimFromEnv() SimConfig {
	return SimConfig{
		Seed:     envInt64Default("GOALLINE_SEED", 0),
		Careers:  envIntDefault("GOALLINE_SIM_CAREERS", 32),
		RunEvery: envDurationDefault("GOALLINE_SIM_EVERY", 5*time.Minute),
		RunOnce:  envBoolDefault("GOALLINE_SIM_RUN_ONCE", false),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("GL_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
