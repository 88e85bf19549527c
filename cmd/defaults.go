package cmd

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/offtimer/offtimer/internal/schedule"
)

// defaultsFile is the optional YAML file passed via --config. It only fills
// parameters the command line left empty; flags always win.
type defaultsFile struct {
	Type string `yaml:"type"`
	Time string `yaml:"time"`
}

func applyDefaults(raw *schedule.Raw) error {
	if defaultsPath == "" {
		return nil
	}
	data, err := os.ReadFile(defaultsPath)
	if err != nil {
		return fmt.Errorf("could not read defaults file: %w", err)
	}
	var def defaultsFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("could not parse defaults file %s: %w", defaultsPath, err)
	}
	if raw.Kind == "" {
		raw.Kind = def.Type
	}
	if raw.At == "" {
		raw.At = def.Time
	}
	return nil
}
