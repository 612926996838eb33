package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericlevine/rmqrgo/render"
)

// config holds the settings that may come from a defaults file. Flags set
// on the command line override them.
type config struct {
	Level     string `yaml:"level"`
	Version   string `yaml:"version"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
	Type      string `yaml:"type"`
	Scale     int    `yaml:"scale"`
	Margin    int    `yaml:"margin"`
	Invert    bool   `yaml:"invert"`
	LogLevel  string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Level:    "M",
		Scale:    render.DefaultOptions.Scale,
		Margin:   render.DefaultOptions.QuietZone,
		LogLevel: "warn",
	}
}

// loadConfigFile merges the YAML file at path into cfg. Unknown keys are
// rejected so a misspelt setting is not silently ignored.
func loadConfigFile(path string, cfg *config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
