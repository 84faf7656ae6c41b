// Package runner drives the build-tool test subprocess and feeds its output
// through the capture, publishing render events as results arrive.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/zigcheck/zigcheck/internal/capture"
	"github.com/zigcheck/zigcheck/internal/format"
	"github.com/zigcheck/zigcheck/internal/report"
)

// Event types forwarded to the sink.
const (
	EventStdout = "stdout"
	EventStderr = "stderr"
	EventExit   = "exit"
)

// Event is one render update produced while a run is in flight: a summary
// line derived from a decoded report, a pass-through stderr line, or the
// final exit code.
type Event struct {
	Type   string `json:"type"`
	Output string `json:"output,omitempty"`
	Code   int    `json:"code,omitempty"`
}

// EventSink receives events in the order they are produced.
type EventSink interface {
	Publish(Event) error
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(Event) error

// Publish calls f.
func (f SinkFunc) Publish(ev Event) error { return f(ev) }

// Options configure how the runner invokes the build tool.
type Options struct {
	Root    string
	Command string
	Args    []string
	// TestName pins the run name for single-test invocations; project-wide
	// runs leave it empty and the capture discovers the name from the
	// stream.
	TestName string
	Env      []string
	Sink     EventSink
	Now      func() time.Time
}

// Result aggregates everything one invocation produced.
type Result struct {
	Runs            []*report.Run
	FailureMessages []string
	Stderr          []string
	ExitCode        int
	Duration        time.Duration
}

// Runner executes one build-tool test invocation at a time. Each invocation
// gets a fresh capture; captures are never shared across invocations.
type Runner struct {
	opts Options

	sinkMu sync.Mutex
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Command == "" {
		opts.Command = "zig"
	}
	if opts.Args == nil {
		opts.Args = []string{"build", "test"}
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{opts: opts}
}

// Run invokes the build tool and streams its output through a fresh capture.
// Stdout lines are fed to the capture in production order; each decoded
// report is collected and its minimal summary is published line-by-line as
// stdout events. Stderr lines pass through verbatim as stderr events and the
// exit code is published last. A non-zero exit is reported in the result,
// not as an error; errors mean the tool could not be run or produced
// unparseable output.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	cmd := exec.CommandContext(ctx, r.opts.Command, r.opts.Args...)
	cmd.Dir = r.opts.Root
	cmd.Env = r.opts.Env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return result, fmt.Errorf("open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return result, fmt.Errorf("open stderr pipe: %w", err)
	}

	start := r.opts.Now()
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("start %s: %w", r.opts.Command, err)
	}

	stderrLines := make(chan []string, 1)
	go func() {
		stderrLines <- r.drainStderr(stderr)
	}()

	scanErr := r.scanStdout(stdout, &result)
	if scanErr != nil {
		// Keep the pipe moving so the process can exit.
		_, _ = io.Copy(io.Discard, stdout)
	}

	result.Stderr = <-stderrLines
	waitErr := cmd.Wait()

	result.Duration = r.opts.Now().Sub(start)
	result.ExitCode = exitCode(waitErr)

	if scanErr != nil {
		// The context is spent; the caller discards this invocation. No
		// partial report is surfaced.
		return result, scanErr
	}
	if waitErr != nil && !isExitError(waitErr) {
		return result, fmt.Errorf("run %s: %w", r.opts.Command, waitErr)
	}

	if err := r.publish(Event{Type: EventExit, Code: result.ExitCode}); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) scanStdout(stdout io.Reader, result *Result) error {
	c := capture.New()
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		ready, run, err := c.Feed(scanner.Text(), r.opts.TestName)
		if err != nil {
			return err
		}
		if !ready {
			continue
		}
		result.Runs = append(result.Runs, run)
		result.FailureMessages = append(result.FailureMessages, format.FailureMessages(run)...)
		for _, line := range format.Minimal(run) {
			if err := r.publish(Event{Type: EventStdout, Output: line}); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan test output: %w", err)
	}
	return nil
}

func (r *Runner) drainStderr(stderr io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		_ = r.publish(Event{Type: EventStderr, Output: line})
	}
	return lines
}

func (r *Runner) publish(ev Event) error {
	if r.opts.Sink == nil {
		return nil
	}
	r.sinkMu.Lock()
	defer r.sinkMu.Unlock()
	return r.opts.Sink.Publish(ev)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
