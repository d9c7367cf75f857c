package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/beadgame/beadgraph/physics"
)

// config is the on-disk TOML configuration. Every field has a working
// default so the file is optional.
type config struct {
	Server   serverConfig   `toml:"server"`
	Viewport viewportConfig `toml:"viewport"`
	Physics  physics.Params `toml:"physics"`
}

type serverConfig struct {
	Addr string `toml:"addr"`
}

type viewportConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
}

func defaultConfig() config {
	return config{
		Server:   serverConfig{Addr: ":8080"},
		Viewport: viewportConfig{Width: 800, Height: 600, Padding: 40},
		Physics:  physics.DefaultParams(),
	}
}

// loadConfig reads the TOML file at path, overlaying it onto the defaults.
// An empty path returns the defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
