// Package runconfig assembles a dispersal.Config from defaults, an optional
// YAML file and BOMB_-prefixed environment variables, in that order.
package runconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"bomb-abm/internal/dispersal"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BOMB_PARTICLES.
const EnvPrefix = "BOMB_"

// Load reads path (skipped when empty) and applies the process environment.
func Load(path string) (dispersal.Config, error) {
	return load(path, nil)
}

// LoadWithEnv is Load with an explicit environment instead of the process one.
func LoadWithEnv(path string, environ map[string]string) (dispersal.Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (dispersal.Config, error) {
	cfg := dispersal.DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Decode overlays YAML onto cfg. Unknown keys are rejected so typos surface.
func Decode(data []byte, cfg *dispersal.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// Encode renders cfg as YAML, e.g. to seed a config file.
func Encode(cfg dispersal.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config yaml: %w", err)
	}
	return data, nil
}
