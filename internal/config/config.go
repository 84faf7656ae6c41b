package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Test    string   `yaml:"test"`
	Format  string   `yaml:"format"`
	Verbose bool     `yaml:"verbose"`

	Suites    []string `yaml:"suites"`
	OnlyTests []string `yaml:"only_test"`
	SkipTests []string `yaml:"skip_test"`

	Warn WarnConfig `yaml:"warn"`
}

// WarnConfig controls additional warning behaviour.
type WarnConfig struct {
	VersionMismatch bool `yaml:"version_mismatch"`
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or config
// file specify values.
func Default() Config {
	return Config{
		Command: "zig",
		Args:    []string{"build", "test"},
		Format:  FormatPretty,
		Warn: WarnConfig{
			VersionMismatch: true,
		},
	}
}

// Load reads .zigcheck.yml from the project root when present. Missing files
// are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".zigcheck.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.Command != "" {
		out.Command = override.Command
	}
	if len(override.Args) > 0 {
		out.Args = append([]string{}, override.Args...)
	}
	if override.Test != "" {
		out.Test = override.Test
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Verbose {
		out.Verbose = true
	}
	if len(override.Suites) > 0 {
		out.Suites = append([]string{}, override.Suites...)
	}
	if len(override.OnlyTests) > 0 {
		out.OnlyTests = append([]string{}, override.OnlyTests...)
	}
	if len(override.SkipTests) > 0 {
		out.SkipTests = append([]string{}, override.SkipTests...)
	}
	if override.Warn.VersionMismatch {
		out.Warn.VersionMismatch = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are
// present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Command.Set {
		cfg.Command = flags.Command.Value
	}
	if len(flags.Args.Values) > 0 {
		cfg.Args = append([]string{}, flags.Args.Values...)
	}
	if flags.Test.Set {
		cfg.Test = flags.Test.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
	if len(flags.Suites.Values) > 0 {
		cfg.Suites = append([]string{}, flags.Suites.Values...)
	}
	if len(flags.OnlyTests.Values) > 0 {
		cfg.OnlyTests = append([]string{}, flags.OnlyTests.Values...)
	}
	if len(flags.SkipTests.Values) > 0 {
		cfg.SkipTests = append([]string{}, flags.SkipTests.Values...)
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was
// set explicitly.
type FlagValues struct {
	Command   StringFlag
	Args      SliceFlag
	Test      StringFlag
	Format    StringFlag
	Verbose   BoolFlag
	Suites    SliceFlag
	OnlyTests SliceFlag
	SkipTests SliceFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
