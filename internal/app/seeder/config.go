package seeder

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings. Command-line flags override it.
type Config struct {
	// File is the seed file to load.
	File string `yaml:"file" env:"SEEDER_FILE"`
	// BatchSize bounds how many upserts are issued between progress logs.
	BatchSize int  `yaml:"batch_size" env:"SEEDER_BATCH_SIZE" env-default:"200"`
	DryRun    bool `yaml:"dry_run"    env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder settings from the YAML file at path, if given,
// and from SEEDER_* environment variables, which take precedence.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("seeder config: file %s not found", path)
		}
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}

	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("seeder config: batch_size must be > 0 (got %d)", cfg.BatchSize)
	}
	return &cfg, nil
}
