package dispersal

import "strconv"

// WindParams holds the chance, in whole percent, of each wind direction.
type WindParams struct {
	North int `yaml:"north" env:"WIND_NORTH"`
	East  int `yaml:"east" env:"WIND_EAST"`
	South int `yaml:"south" env:"WIND_SOUTH"`
	West  int `yaml:"west" env:"WIND_WEST"`
}

// FallParams holds the chance, in whole percent, of each vertical outcome
// above the release height.
type FallParams struct {
	Up   int `yaml:"up" env:"FALL_UP"`
	Down int `yaml:"down" env:"FALL_DOWN"`
	None int `yaml:"none" env:"FALL_NONE"`
}

// Params holds the tunable values of a dispersal run.
type Params struct {
	Wind WindParams `yaml:"wind"`
	Fall FallParams `yaml:"fall"`

	Particles      int `yaml:"particles" env:"PARTICLES"`
	MaxIterations  int `yaml:"max_iterations" env:"MAX_ITERATIONS"`
	BuildingHeight int `yaml:"building_height" env:"BUILDING_HEIGHT"`
	Workers        int `yaml:"workers" env:"WORKERS"`
}

// Config describes a run: the fallback plane used when no raster is loaded,
// the seed and the model parameters.
type Config struct {
	Width   int `yaml:"width" env:"WIDTH"`
	Height  int `yaml:"height" env:"HEIGHT"`
	OriginX int `yaml:"origin_x" env:"ORIGIN_X"`
	OriginY int `yaml:"origin_y" env:"ORIGIN_Y"`

	Seed int64 `yaml:"seed" env:"SEED"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard scenario: a 300x300 plane with the bomb
// on a 75 m building at (50,150), a predominantly easterly drift and 5000
// particles.
func DefaultConfig() Config {
	return Config{
		Width:   300,
		Height:  300,
		OriginX: 50,
		OriginY: 150,
		Seed:    1337,
		Params: Params{
			Wind:           WindParams{North: 10, East: 75, South: 10, West: 5},
			Fall:           FallParams{Up: 20, Down: 70, None: 10},
			Particles:      5000,
			MaxIterations:  5000,
			BuildingHeight: 75,
		},
	}
}

// Settings validates the parameters and builds the model settings.
func (c Config) Settings() (Settings, error) {
	p := c.Params
	wind, err := NewWindDistribution(p.Wind.North, p.Wind.East, p.Wind.South, p.Wind.West)
	if err != nil {
		return Settings{}, err
	}
	fall, err := NewFallDistribution(p.Fall.Up, p.Fall.Down, p.Fall.None)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Wind:           wind,
		Fall:           fall,
		MaxIterations:  p.MaxIterations,
		Particles:      p.Particles,
		BuildingHeight: p.BuildingHeight,
		Seed:           c.Seed,
		Workers:        p.Workers,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Environment builds the fallback plane described by the config.
func (c Config) Environment() (*Environment, error) {
	return NewEnvironment(c.Width, c.Height, Position{X: c.OriginX, Y: c.OriginY})
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are ignored; range checks happen in Settings.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overrides fields named in cfg.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	ints := map[string]*int{
		"w":               &c.Width,
		"h":               &c.Height,
		"origin_x":        &c.OriginX,
		"origin_y":        &c.OriginY,
		"wind_north":      &c.Params.Wind.North,
		"wind_east":       &c.Params.Wind.East,
		"wind_south":      &c.Params.Wind.South,
		"wind_west":       &c.Params.Wind.West,
		"fall_up":         &c.Params.Fall.Up,
		"fall_down":       &c.Params.Fall.Down,
		"fall_none":       &c.Params.Fall.None,
		"particles":       &c.Params.Particles,
		"max_iterations":  &c.Params.MaxIterations,
		"building_height": &c.Params.BuildingHeight,
		"workers":         &c.Params.Workers,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
}
