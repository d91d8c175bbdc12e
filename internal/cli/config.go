package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/vvka-141/msgcat/internal/config"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

const configFileHint = config.ConfigFileName

// resolveBaseConfig applies defaults, the config file and the environment.
// An explicit path must exist; the implicit ./msgcat.yaml is optional.
func resolveBaseConfig(path string) (msgcat.PipelineConfig, error) {
	cfg := config.Defaults()

	explicit := path != ""
	if !explicit {
		path = config.ConfigFileName
	}

	file, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && !explicit:
	case errors.Is(err, config.ErrConfigNotFound):
		return msgcat.PipelineConfig{}, fmt.Errorf("config file %s not found: %w", path, msgcat.ErrInvalidConfig)
	case err != nil:
		return msgcat.PipelineConfig{}, err
	default:
		if err := file.Apply(&cfg); err != nil {
			return msgcat.PipelineConfig{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return msgcat.PipelineConfig{}, err
	}
	return cfg, nil
}
