package output

import (
	"encoding/json"
	"io"

	"github.com/zigcheck/zigcheck/internal/report"
	"github.com/zigcheck/zigcheck/internal/runner"
)

// JSONRenderer emits structured run data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures the JSON output schema.
type Report struct {
	Command         string        `json:"command"`
	Runs            []*report.Run `json:"runs"`
	FailureMessages []string      `json:"failure_messages,omitempty"`
	Stderr          []string      `json:"stderr,omitempty"`
	ExitCode        int           `json:"exit_code"`
	DurationMS      int64         `json:"duration_ms"`
}

// FromResult builds a Report from a runner result.
func FromResult(command string, res runner.Result) Report {
	return Report{
		Command:         command,
		Runs:            res.Runs,
		FailureMessages: res.FailureMessages,
		Stderr:          res.Stderr,
		ExitCode:        res.ExitCode,
		DurationMS:      res.Duration.Milliseconds(),
	}
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(rep Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
