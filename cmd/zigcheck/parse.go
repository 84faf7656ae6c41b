package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zigcheck/zigcheck/internal/capture"
	"github.com/zigcheck/zigcheck/internal/config"
	"github.com/zigcheck/zigcheck/internal/output"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a saved test-run log (or stdin) and render its results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open log %q: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	runs, err := capture.ParseStream(in, cfg.Test)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No test reports found")
		return nil
	}

	res, err := applyFilters(collectRuns(runs), cfg)
	if err != nil {
		return err
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout(), cfg.Verbose)
		return renderer.RenderResult(res)
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		return renderer.Render(output.FromResult(cfg.Command, res))
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
