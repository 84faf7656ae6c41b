package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zigcheck",
		Short:         "Zigcheck runs build-tool tests and captures structured results",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("command", "", "build tool executable (default zig)")
	persistent.StringArray("arg", nil, "build tool argument (repeatable, default build test)")
	persistent.String("test", "", "known test name for single-test runs")
	persistent.String("format", "pretty", "output format (pretty|json)")
	persistent.BoolP("verbose", "v", false, "emit the full test transcript")
	persistent.StringArray("suite", nil, "suite filter (repeatable)")
	persistent.StringArray("only-test", nil, "include only matching tests")
	persistent.StringArray("skip-test", nil, "exclude matching tests")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newParseCmd())

	return cmd
}
