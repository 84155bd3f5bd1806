// Package yaml loads source configuration files.
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/modelcat"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates a sources configuration file.
func LoadConfig(path string) (*modelcat.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, modelcat.Errorf(modelcat.ENOTFOUND, "config file %s not found", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg modelcat.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "parsing config %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
