package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zigcheck/zigcheck/internal/capture"
	"github.com/zigcheck/zigcheck/internal/config"
	"github.com/zigcheck/zigcheck/internal/output"
	"github.com/zigcheck/zigcheck/internal/runner"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the build-tool tests and capture their results",
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if warn := detectVersionWarning(root, cfg); warn != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warn)
	}

	execRunner := runner.New(runner.Options{
		Root:     root,
		Command:  cfg.Command,
		Args:     cfg.Args,
		TestName: cfg.Test,
		Sink:     output.NewStreamSink(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	})

	res, err := execRunner.Run(cmd.Context())
	if err != nil {
		var decodeErr *capture.DecodeError
		if errors.As(err, &decodeErr) {
			// Tooling breakage, not red tests.
			return fmt.Errorf("test tooling produced unreadable output: %w", decodeErr.Unwrap())
		}
		return err
	}

	res, err = applyFilters(res, cfg)
	if err != nil {
		return err
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		if cfg.Verbose {
			renderer := output.NewPretty(cmd.OutOrStdout(), true)
			if err := renderer.RenderResult(res); err != nil {
				return err
			}
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.FromResult(cfg.Command, res)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if res.ExitCode != 0 {
		return fmt.Errorf("tests failed (exit code %d)", res.ExitCode)
	}
	return nil
}

func workingDir() (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return root, nil
}
