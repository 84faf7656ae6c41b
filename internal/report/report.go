package report

// Test statuses emitted by the test runner. The runner may emit other
// values; summaries count anything that is not PASSED or FAILED as skipped.
const (
	StatusPassed  = "PASSED"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)

// Run is one decoded test-run report. Field names mirror the JSON document
// the test runner prints; Quicktest.Name is injected by the capture from the
// resolved run name and is not part of the wire document.
type Run struct {
	Quicktest  Meta    `json:"quicktest"`
	TestSuites []Suite `json:"test_suites"`
}

// Meta carries run-level metadata.
type Meta struct {
	Name string `json:"name"`
}

// Suite is an ordered group of tests.
type Suite struct {
	Name  string `json:"name"`
	Tests []Test `json:"tests"`
}

// Test is a single test outcome. Messages are present chiefly for failed
// tests but are not guaranteed either way.
type Test struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Messages []string `json:"messages,omitempty"`
}
