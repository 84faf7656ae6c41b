// Package format renders decoded test reports as plain text views. The
// functions are pure and their exact line output is part of the contract
// with downstream consumers (the live stream and diagnostics placement), so
// they emit unstyled strings only.
package format

import (
	"fmt"

	"github.com/zigcheck/zigcheck/internal/report"
)

// Verbose returns a line-by-line transcript of the run: the run name, each
// suite indented one level, each test with its status indented two levels,
// and each failure message indented three levels followed by a blank line.
// Skipped tests are omitted entirely.
func Verbose(run *report.Run) []string {
	lines := []string{run.Quicktest.Name}
	for _, suite := range run.TestSuites {
		lines = append(lines, "  "+suite.Name)
		for _, test := range suite.Tests {
			if test.Status == report.StatusSkipped {
				continue
			}
			lines = append(lines, fmt.Sprintf("    %s: %s", test.Name, test.Status))
			for _, msg := range test.Messages {
				lines = append(lines, "      "+msg, "")
			}
		}
	}
	return lines
}

// Minimal returns the compact pass/fail view: a "<ok>/<ok+fail> OK (<name>)"
// header whose denominator excludes skipped tests, then, only when at least
// one test failed, a blank line and a block per failed test that carries
// messages. Failed tests without messages count toward the header but
// produce no block.
func Minimal(run *report.Run) []string {
	var numOK, numFail int
	for _, suite := range run.TestSuites {
		for _, test := range suite.Tests {
			switch test.Status {
			case report.StatusPassed:
				numOK++
			case report.StatusFailed:
				numFail++
			}
		}
	}

	lines := []string{fmt.Sprintf("%d/%d OK (%s)", numOK, numOK+numFail, run.Quicktest.Name)}
	if numFail == 0 {
		return lines
	}

	lines = append(lines, "")
	for _, suite := range run.TestSuites {
		for _, test := range suite.Tests {
			if test.Status != report.StatusFailed || len(test.Messages) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("FAILED: %s/%s", suite.Name, test.Name))
			for _, msg := range test.Messages {
				lines = append(lines, "  "+msg)
			}
			lines = append(lines, "")
		}
	}
	return lines
}

// FailureMessages returns every message belonging to every failed test, in
// document order (suite, then test within suite, then message). The
// diagnostics consumer maps each message to a source line.
func FailureMessages(run *report.Run) []string {
	var msgs []string
	for _, suite := range run.TestSuites {
		for _, test := range suite.Tests {
			if test.Status != report.StatusFailed {
				continue
			}
			msgs = append(msgs, test.Messages...)
		}
	}
	return msgs
}
