package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RoundDuration    int // seconds
	TickRate         int // simulation ticks per second
	Seed             uint64
	SnapshotEncoding string // "json" or "msgpack"
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RoundDuration:    getEnvInt("ROUND_DURATION", 60),
		TickRate:         getEnvInt("TICK_RATE", 60),
		Seed:             getEnvUint("RNG_SEED", 0),
		SnapshotEncoding: getEnv("SNAPSHOT_ENCODING", "json"),
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.SnapshotEncoding != "json" && cfg.SnapshotEncoding != "msgpack" {
		cfg.SnapshotEncoding = "json"
	}
	return cfg
}

// Tuning returns the default gameplay tuning with env overrides applied.
func (c Config) Tuning() Tuning {
	t := DefaultTuning()
	if c.RoundDuration > 0 {
		t.Round.DefaultDurationS = float64(c.RoundDuration)
	}
	return t
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}
