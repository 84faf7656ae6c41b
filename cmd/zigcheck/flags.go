package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zigcheck/zigcheck/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("command") {
		v, err := flags.GetString("command")
		if err != nil {
			return values, fmt.Errorf("parse --command: %w", err)
		}
		values.Command = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("arg") {
		v, err := flags.GetStringArray("arg")
		if err != nil {
			return values, fmt.Errorf("parse --arg: %w", err)
		}
		values.Args = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("test") {
		v, err := flags.GetString("test")
		if err != nil {
			return values, fmt.Errorf("parse --test: %w", err)
		}
		values.Test = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("suite") {
		v, err := flags.GetStringArray("suite")
		if err != nil {
			return values, fmt.Errorf("parse --suite: %w", err)
		}
		values.Suites = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("only-test") {
		v, err := flags.GetStringArray("only-test")
		if err != nil {
			return values, fmt.Errorf("parse --only-test: %w", err)
		}
		values.OnlyTests = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("skip-test") {
		v, err := flags.GetStringArray("skip-test")
		if err != nil {
			return values, fmt.Errorf("parse --skip-test: %w", err)
		}
		values.SkipTests = config.SliceFlag{Values: append([]string{}, v...)}
	}

	return values, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := workingDir()
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}
