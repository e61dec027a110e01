package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultPenquinConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultPenquinConfig())
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  walk_speed: 7\nenemy:\n  default_range: 100\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Physics.WalkSpeed != 7 {
		t.Errorf("WalkSpeed = %v, expected 7", cfg.Physics.WalkSpeed)
	}
	if cfg.Enemy.DefaultRange != 100 {
		t.Errorf("DefaultRange = %v, expected 100", cfg.Enemy.DefaultRange)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpImpulse != DefaultPenquinConfig().Physics.JumpImpulse {
		t.Errorf("JumpImpulse = %v, expected default", cfg.Physics.JumpImpulse)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("physics: [unclosed"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultPenquinConfig()

	tests := []struct {
		preset  DifficultyPreset
		faster  bool
		slower  bool
		restart func(int) bool
	}{
		{DifficultyEasy, false, true, func(v int) bool { return v < base.Timings.DeathRestartTicks }},
		{DifficultyNormal, false, false, func(v int) bool { return v == base.Timings.DeathRestartTicks }},
		{DifficultyHard, true, false, func(v int) bool { return v > base.Timings.DeathRestartTicks }},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPenquinConfig()
			ApplyPreset(&cfg, tc.preset)

			if tc.faster && cfg.Enemy.Speed <= base.Enemy.Speed {
				t.Errorf("enemy speed %v should exceed %v", cfg.Enemy.Speed, base.Enemy.Speed)
			}
			if tc.slower && cfg.Enemy.Speed >= base.Enemy.Speed {
				t.Errorf("enemy speed %v should be below %v", cfg.Enemy.Speed, base.Enemy.Speed)
			}
			if !tc.restart(cfg.Timings.DeathRestartTicks) {
				t.Errorf("unexpected restart delay %d", cfg.Timings.DeathRestartTicks)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"hard":   DifficultyHard,
		"normal": DifficultyNormal,
		"":       DifficultyNormal,
		"wat":    DifficultyNormal,
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", in, got, want)
		}
	}
}
