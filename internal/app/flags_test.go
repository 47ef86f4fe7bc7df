package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-scale", "4", "-seed", "9", "-set", "particles=50", "-set", "wind_east = 80"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "plume" || cfg.Scale != 4 || cfg.Seed != 9 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Overrides["particles"] != "50" || cfg.Overrides["wind_east"] != "80" {
		t.Fatalf("unexpected overrides %v", cfg.Overrides)
	}
}

func TestOverridesRejectMissingValue(t *testing.T) {
	o := Overrides{}
	if err := o.Set("particles"); err == nil {
		t.Fatal("expected error without '='")
	}
	if err := o.Set("=5"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
