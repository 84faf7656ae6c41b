// Package capture reconstructs structured test reports from the interleaved
// text/JSON output stream of a build-tool test run.
//
// The runner pretty-prints its JSON report with the document's opening and
// closing braces alone on their own lines. Document boundaries are detected
// from those line-start characters only; nested braces inside the body never
// toggle the reading state. Any change to the runner's pretty-printing (for
// example compact JSON) breaks this contract.
package capture

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zigcheck/zigcheck/internal/report"
)

// Marker is the scissor glyph the build tool prints, as a row followed by a
// space, between a test's console banner and its JSON payload. The banner
// line immediately preceding the marker has the shape "<index> <name>
// <status>", which is where project-wide runs recover the test name from.
const Marker = "✀"

// ErrSpent reports a Feed call on a capture that already failed to decode a
// document. A spent capture never resynchronizes; start a fresh one for the
// next invocation.
var ErrSpent = errors.New("capture is spent after a decode failure")

// DecodeError wraps a JSON decode failure of an accumulated document. It
// lets callers tell "the tool produced unparseable output" apart from
// "tests failed".
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("test runner produced unparseable report: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Capture accumulates one invocation's output lines and emits the decoded
// report once the document closes. One capture per invocation; it is not
// safe for concurrent use and does not support multiple tests' output
// interleaved in the same stream (one banner, one marker, one document).
type Capture struct {
	readingJSON bool
	// While not reading JSON, buffer holds the most recent non-JSON line,
	// the candidate banner for name discovery. While reading JSON it holds
	// the accumulated document text including newlines.
	buffer   string
	testName string
	spent    bool
}

// New returns an empty capture for a fresh invocation.
func New() *Capture {
	return &Capture{}
}

// Feed consumes one output line. Lines must arrive in the exact order the
// process produced them; both the marker-then-name heuristic and the brace
// delimiting depend on strict ordering. knownName, when non-empty, pins the
// run name (single-test invocations know it up front; project-wide runs pass
// ""). It returns true with the decoded report on the line that closes the
// document, and a *DecodeError when the accumulated document does not parse.
func (c *Capture) Feed(line, knownName string) (bool, *report.Run, error) {
	if c.spent {
		return false, nil, ErrSpent
	}

	if knownName != "" {
		c.testName = knownName
	}

	if c.testName == "" && !c.readingJSON {
		if strings.Contains(line, Marker) {
			// Best effort: a banner that does not match the expected shape
			// leaves the name unresolved, which degrades to an empty run
			// name rather than an error.
			if fields := strings.Fields(c.buffer); len(fields) >= 2 {
				c.testName = fields[1]
			}
		} else {
			c.buffer = line
		}
	}

	if strings.HasPrefix(line, "{") {
		c.readingJSON = true
		c.buffer = ""
	}
	if c.readingJSON {
		c.buffer += line + "\n"
	}
	if strings.HasPrefix(line, "}") {
		c.readingJSON = false
		run, err := c.decode()
		if err != nil {
			c.spent = true
			return false, nil, err
		}
		c.testName = ""
		return true, run, nil
	}

	return false, nil, nil
}

func (c *Capture) decode() (*report.Run, error) {
	var run report.Run
	if err := json.Unmarshal([]byte(c.buffer), &run); err != nil {
		return nil, &DecodeError{Err: err}
	}
	run.Quicktest.Name = c.testName
	return &run, nil
}

// ParseStream feeds every line from r through a fresh capture and returns
// the reports emitted, in order. It serves offline parsing of a saved run
// log; live runs feed the capture line-by-line instead.
func ParseStream(r io.Reader, knownName string) ([]*report.Run, error) {
	c := New()
	var runs []*report.Run

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ready, run, err := c.Feed(scanner.Text(), knownName)
		if err != nil {
			return nil, err
		}
		if ready {
			runs = append(runs, run)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan test output: %w", err)
	}
	return runs, nil
}
