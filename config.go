package defog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/defogjs/defog/internal"
	tt "github.com/defogjs/defog/internal/types"
)

// DefaultConfigName is the configuration file looked up when no path
// is given.
const DefaultConfigName = ".defog.yaml"

// Config is the tool configuration: a pass cap and the per-rule
// enablement map. An absent rule entry means the rule runs.
type Config struct {
	Name      string                   `yaml:"name"`
	MaxPasses int                      `yaml:"max-passes"`
	Rules     map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Name:      "defog",
		MaxPasses: internal.DefaultMaxPasses,
		Rules:     map[string]tt.ConfigRule{},
	}
}

// LoadConfig reads a configuration file. An empty path falls back to
// .defog.yaml in the working directory, and a missing default file is
// not an error.
func LoadConfig(configurationPath string) (*Config, error) {
	path := configurationPath
	if path == "" {
		path = DefaultConfigName
	}

	f, err := os.Open(path)
	if err != nil {
		if configurationPath == "" && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	defer f.Close()

	config := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = internal.DefaultMaxPasses
	}
	return config, nil
}
