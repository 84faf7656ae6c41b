package capture

import (
	"errors"
	"strings"
	"testing"

	"github.com/zigcheck/zigcheck/internal/report"
)

var sampleDocument = []string{
	"{",
	`  "test_suites": [`,
	`    {`,
	`      "name": "my_suite",`,
	`      "tests": [`,
	`        { "name": "my_test", "status": "PASSED" },`,
	`        { "name": "other_test", "status": "FAILED", "messages": ["expected 1 got 2"] }`,
	`      ]`,
	`    }`,
	`  ]`,
	"}",
}

func feedAll(t *testing.T, c *Capture, lines []string, knownName string) *report.Run {
	t.Helper()
	var emitted *report.Run
	for i, line := range lines {
		ready, run, err := c.Feed(line, knownName)
		if err != nil {
			t.Fatalf("feed line %d %q: %v", i, line, err)
		}
		if ready {
			if emitted != nil {
				t.Fatalf("second report emitted at line %d", i)
			}
			if i != len(lines)-1 && !strings.HasPrefix(lines[i], "}") {
				t.Fatalf("report emitted on unexpected line %d %q", i, line)
			}
			emitted = run
		}
	}
	return emitted
}

func TestFeedEmitsOnceOnClosingBrace(t *testing.T) {
	lines := append([]string{"info: compiling", "1/2 my_suite/my_test OK", "✀ "}, sampleDocument...)

	c := New()
	for i, line := range lines {
		ready, run, err := c.Feed(line, "")
		if err != nil {
			t.Fatalf("feed line %d: %v", i, err)
		}
		if i < len(lines)-1 && ready {
			t.Fatalf("report ready before closing brace, line %d %q", i, line)
		}
		if i == len(lines)-1 {
			if !ready {
				t.Fatalf("expected report on closing brace")
			}
			if run == nil {
				t.Fatalf("ready without report")
			}
		}
	}
}

func TestNameDiscoveredFromBannerBeforeMarker(t *testing.T) {
	lines := append([]string{"1/1 my_suite/my_test OK", "✀ "}, sampleDocument...)

	run := feedAll(t, New(), lines, "")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if run.Quicktest.Name != "my_suite/my_test" {
		t.Fatalf("resolved name = %q, want my_suite/my_test", run.Quicktest.Name)
	}
	if len(run.TestSuites) != 1 || run.TestSuites[0].Name != "my_suite" {
		t.Fatalf("unexpected suites: %+v", run.TestSuites)
	}
}

func TestKnownNameWinsOverMarker(t *testing.T) {
	lines := append([]string{"1/1 my_suite/my_test OK", "✀ "}, sampleDocument...)

	run := feedAll(t, New(), lines, "foo_test")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if run.Quicktest.Name != "foo_test" {
		t.Fatalf("resolved name = %q, want foo_test", run.Quicktest.Name)
	}
}

func TestNameMissingDegradesToEmpty(t *testing.T) {
	run := feedAll(t, New(), sampleDocument, "")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if run.Quicktest.Name != "" {
		t.Fatalf("resolved name = %q, want empty", run.Quicktest.Name)
	}
}

func TestShortBannerLeavesNameUnresolved(t *testing.T) {
	lines := append([]string{"compiling", "✀ "}, sampleDocument...)

	run := feedAll(t, New(), lines, "")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if run.Quicktest.Name != "" {
		t.Fatalf("resolved name = %q, want empty for malformed banner", run.Quicktest.Name)
	}
}

func TestNameClearedBetweenDocuments(t *testing.T) {
	c := New()
	first := append([]string{"1/2 suite_a/test_a OK", "✀ "}, sampleDocument...)
	run := feedAll(t, c, first, "")
	if run == nil || run.Quicktest.Name != "suite_a/test_a" {
		t.Fatalf("first run: %+v", run)
	}

	second := append([]string{"2/2 suite_b/test_b OK", "✀ "}, sampleDocument...)
	run = feedAll(t, c, second, "")
	if run == nil {
		t.Fatalf("expected second report")
	}
	if run.Quicktest.Name != "suite_b/test_b" {
		t.Fatalf("second resolved name = %q, want suite_b/test_b", run.Quicktest.Name)
	}
}

func TestEmptyDocumentDecodesToEmptyReport(t *testing.T) {
	run := feedAll(t, New(), []string{"{", "}"}, "run")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if len(run.TestSuites) != 0 {
		t.Fatalf("expected no suites, got %+v", run.TestSuites)
	}
	if run.Quicktest.Name != "run" {
		t.Fatalf("resolved name = %q, want run", run.Quicktest.Name)
	}
}

func TestNestedBracesDoNotCloseDocument(t *testing.T) {
	// Indented braces belong to the document body; only a line-start brace
	// closes it.
	run := feedAll(t, New(), sampleDocument, "run")
	if run == nil {
		t.Fatalf("expected a report")
	}
	if got := len(run.TestSuites[0].Tests); got != 2 {
		t.Fatalf("expected 2 tests, got %d", got)
	}
}

func TestMalformedDocumentSpendsCapture(t *testing.T) {
	c := New()
	lines := []string{"{", `  "test_suites": not json`, "}"}

	var decodeErr *DecodeError
	for i, line := range lines {
		ready, _, err := c.Feed(line, "run")
		if i < len(lines)-1 {
			if err != nil || ready {
				t.Fatalf("unexpected state at line %d: ready=%v err=%v", i, ready, err)
			}
			continue
		}
		if err == nil {
			t.Fatalf("expected decode error")
		}
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %T: %v", err, err)
		}
	}

	if _, _, err := c.Feed("anything", ""); !errors.Is(err, ErrSpent) {
		t.Fatalf("expected ErrSpent after decode failure, got %v", err)
	}
}

func TestStrayClosingBraceFailsDecode(t *testing.T) {
	c := New()
	if _, _, err := c.Feed("some banner line", "run"); err != nil {
		t.Fatalf("feed banner: %v", err)
	}
	_, _, err := c.Feed("}", "run")
	if err == nil {
		t.Fatalf("expected decode error for stray closing brace")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestParseStreamCollectsRuns(t *testing.T) {
	var b strings.Builder
	b.WriteString("1/1 my_suite/my_test OK\n")
	b.WriteString("✀ \n")
	for _, line := range sampleDocument {
		b.WriteString(line + "\n")
	}

	runs, err := ParseStream(strings.NewReader(b.String()), "")
	if err != nil {
		t.Fatalf("parse stream: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Quicktest.Name != "my_suite/my_test" {
		t.Fatalf("resolved name = %q", runs[0].Quicktest.Name)
	}
}

func TestParseStreamPropagatesDecodeError(t *testing.T) {
	_, err := ParseStream(strings.NewReader("{\nbogus\n}\n"), "")
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}
