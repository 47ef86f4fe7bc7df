package runconfig

import (
	"os"
	"path/filepath"
	"testing"

	"bomb-abm/internal/dispersal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bomb.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != dispersal.DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 7
params:
  particles: 100
  wind:
    north: 25
    east: 25
    south: 25
    west: 25
`)
	cfg, err := LoadWithEnv(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || cfg.Params.Particles != 100 || cfg.Params.Wind.North != 25 {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
	if cfg.Params.BuildingHeight != 75 || cfg.Params.Fall.Down != 70 {
		t.Fatalf("defaults lost: %+v", cfg.Params)
	}
}

func TestLoadEnvWinsOverYAML(t *testing.T) {
	path := writeConfig(t, "params:\n  particles: 100\n")
	cfg, err := LoadWithEnv(path, map[string]string{
		"BOMB_PARTICLES":       "42",
		"BOMB_BUILDING_HEIGHT": "12",
		"BOMB_FALL_UP":         "0",
		"BOMB_FALL_DOWN":       "100",
		"BOMB_FALL_NONE":       "0",
		"BOMB_SEED":            "11",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.Particles != 42 || cfg.Params.BuildingHeight != 12 || cfg.Seed != 11 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Params.Fall != (dispersal.FallParams{Up: 0, Down: 100, None: 0}) {
		t.Fatalf("fall = %+v", cfg.Params.Fall)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadWithEnv(writeConfig(t, "params:\n  partcles: 3\n"), nil); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := LoadWithEnv("", map[string]string{"BOMB_PARTICLES": "lots"}); err == nil {
		t.Fatal("expected error for malformed env value")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := dispersal.DefaultConfig()
	cfg.Params.Workers = 4
	data, err := Encode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var back dispersal.Config
	if err := Decode(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != cfg {
		t.Fatalf("round trip = %+v, want %+v", back, cfg)
	}
}
