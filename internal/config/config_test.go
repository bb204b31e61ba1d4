package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ROUND_DURATION", "")
	t.Setenv("TICK_RATE", "")
	t.Setenv("RNG_SEED", "")
	t.Setenv("SNAPSHOT_ENCODING", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if cfg.RoundDuration != 60 {
		t.Errorf("RoundDuration = %d, want %d", cfg.RoundDuration, 60)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want %d", cfg.TickRate, 60)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
	if cfg.SnapshotEncoding != "json" {
		t.Errorf("SnapshotEncoding = %q, want %q", cfg.SnapshotEncoding, "json")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/aimrange")
	t.Setenv("ROUND_DURATION", "30")
	t.Setenv("TICK_RATE", "120")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("SNAPSHOT_ENCODING", "msgpack")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/aimrange" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/aimrange")
	}
	if cfg.RoundDuration != 30 {
		t.Errorf("RoundDuration = %d, want %d", cfg.RoundDuration, 30)
	}
	if cfg.TickRate != 120 {
		t.Errorf("TickRate = %d, want %d", cfg.TickRate, 120)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.SnapshotEncoding != "msgpack" {
		t.Errorf("SnapshotEncoding = %q, want %q", cfg.SnapshotEncoding, "msgpack")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("ROUND_DURATION", "abc")
	t.Setenv("TICK_RATE", "-5")
	t.Setenv("SNAPSHOT_ENCODING", "xml")

	cfg := Load()

	if cfg.RoundDuration != 60 {
		t.Errorf("RoundDuration = %d, want %d (fallback)", cfg.RoundDuration, 60)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want %d (fallback)", cfg.TickRate, 60)
	}
	if cfg.SnapshotEncoding != "json" {
		t.Errorf("SnapshotEncoding = %q, want json (fallback)", cfg.SnapshotEncoding)
	}
}

func TestConfig_TuningOverridesDuration(t *testing.T) {
	cfg := Config{RoundDuration: 30}
	tun := cfg.Tuning()
	if tun.Round.DefaultDurationS != 30 {
		t.Errorf("DefaultDurationS = %v, want 30", tun.Round.DefaultDurationS)
	}
}

func TestDefaultTuning(t *testing.T) {
	tun := DefaultTuning()
	if tun.Weapon.FireRate != 120*time.Millisecond {
		t.Errorf("FireRate = %v, want 120ms", tun.Weapon.FireRate)
	}
	if tun.Weapon.SpreadBase > tun.Weapon.SpreadMax {
		t.Errorf("SpreadBase %v > SpreadMax %v", tun.Weapon.SpreadBase, tun.Weapon.SpreadMax)
	}
	if tun.Weapon.MultiplierMax < 1 {
		t.Errorf("MultiplierMax = %v, want >= 1", tun.Weapon.MultiplierMax)
	}
	if tun.Peek.HiddenY >= 0 {
		t.Errorf("HiddenY = %v, want below ground", tun.Peek.HiddenY)
	}
	if tun.Round.MaxDT != 100*time.Millisecond {
		t.Errorf("MaxDT = %v, want 100ms", tun.Round.MaxDT)
	}
	if len(tun.Flick.Distances) == 0 {
		t.Error("Flick.Distances should not be empty")
	}
}
