package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zigcheck/zigcheck/internal/format"
	"github.com/zigcheck/zigcheck/internal/report"
	"github.com/zigcheck/zigcheck/internal/runner"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// PrettyRenderer renders captured runs in a human-friendly format.
type PrettyRenderer struct {
	out     io.Writer
	verbose bool
}

// NewPretty creates a PrettyRenderer writing to the provided writer. In
// verbose mode it emits the full transcript instead of the status tree.
func NewPretty(out io.Writer, verbose bool) *PrettyRenderer {
	return &PrettyRenderer{out: out, verbose: verbose}
}

// RenderRun writes one run's results.
func (p *PrettyRenderer) RenderRun(run *report.Run) error {
	if p.verbose {
		for _, line := range format.Verbose(run) {
			if _, err := fmt.Fprintln(p.out, line); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := fmt.Fprintf(p.out, "Run %s\n", runLabel(run)); err != nil {
		return err
	}
	for _, suite := range run.TestSuites {
		if _, err := fmt.Fprintf(p.out, "  Suite %s\n", suite.Name); err != nil {
			return err
		}
		for _, test := range suite.Tests {
			if _, err := fmt.Fprintf(p.out, "    %s %s\n", statusGlyph(test.Status), test.Name); err != nil {
				return err
			}
			if test.Status != report.StatusFailed {
				continue
			}
			for _, msg := range test.Messages {
				if _, err := fmt.Fprintf(p.out, "      %s\n", msg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// RenderResult writes every run in the result followed by a summary line.
func (p *PrettyRenderer) RenderResult(res runner.Result) error {
	for _, run := range res.Runs {
		if err := p.RenderRun(run); err != nil {
			return err
		}
	}

	var passed, failed, skipped int
	for _, run := range res.Runs {
		for _, suite := range run.TestSuites {
			for _, test := range suite.Tests {
				switch test.Status {
				case report.StatusPassed:
					passed++
				case report.StatusFailed:
					failed++
				default:
					skipped++
				}
			}
		}
	}

	_, err := fmt.Fprintf(p.out, "SUMMARY: %d passed, %d failed, %d skipped (%s)\n",
		passed, failed, skipped, formatDuration(res.Duration))
	return err
}

// NewStreamSink returns an EventSink that writes stdout events to out and
// stderr events to errOut as they arrive. Exit events carry no text.
func NewStreamSink(out, errOut io.Writer) runner.EventSink {
	return runner.SinkFunc(func(ev runner.Event) error {
		switch ev.Type {
		case runner.EventStdout:
			_, err := fmt.Fprintln(out, ev.Output)
			return err
		case runner.EventStderr:
			_, err := fmt.Fprintln(errOut, ev.Output)
			return err
		case runner.EventExit:
			return nil
		default:
			return fmt.Errorf("unsupported event type %q", ev.Type)
		}
	})
}

func runLabel(run *report.Run) string {
	if run.Quicktest.Name == "" {
		return "(unnamed)"
	}
	return run.Quicktest.Name
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}

func statusGlyph(status string) string {
	switch status {
	case report.StatusPassed:
		return passStyle.Render("✓")
	case report.StatusFailed:
		return failStyle.Render("✗")
	case report.StatusSkipped:
		return skipStyle.Render("-")
	default:
		return "?"
	}
}
