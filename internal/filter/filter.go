package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zigcheck/zigcheck/internal/report"
)

// Pattern represents a compiled filter condition supporting substring and
// regex matching. Patterns wrapped in slashes (/expr/) compile as regular
// expressions; anything else matches as a case-insensitive substring.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// FilterRuns applies suite and test filters to decoded runs, returning a new
// slice with matches. Suites left with no tests are dropped; runs left with
// no suites are dropped. An empty pattern set matches everything.
func FilterRuns(runs []*report.Run, suitePatterns, onlyPatterns, skipPatterns []Pattern) []*report.Run {
	if len(runs) == 0 {
		return nil
	}
	if len(suitePatterns) == 0 && len(onlyPatterns) == 0 && len(skipPatterns) == 0 {
		return runs
	}

	result := make([]*report.Run, 0, len(runs))
	for _, run := range runs {
		filteredSuites := make([]report.Suite, 0, len(run.TestSuites))
		for _, suite := range run.TestSuites {
			if len(suitePatterns) > 0 && !matchesAny(suite.Name, suitePatterns) {
				continue
			}
			filteredTests := filterTests(suite.Tests, onlyPatterns, skipPatterns)
			if len(filteredTests) == 0 {
				continue
			}
			suiteCopy := suite
			suiteCopy.Tests = filteredTests
			filteredSuites = append(filteredSuites, suiteCopy)
		}
		if len(filteredSuites) == 0 {
			continue
		}
		runCopy := *run
		runCopy.TestSuites = filteredSuites
		result = append(result, &runCopy)
	}
	return result
}

func filterTests(tests []report.Test, onlyPatterns, skipPatterns []Pattern) []report.Test {
	if len(tests) == 0 {
		return nil
	}
	result := make([]report.Test, 0, len(tests))
	for _, test := range tests {
		if len(onlyPatterns) > 0 && !matchesAny(test.Name, onlyPatterns) {
			continue
		}
		if len(skipPatterns) > 0 && matchesAny(test.Name, skipPatterns) {
			continue
		}
		result = append(result, test)
	}
	return result
}

func matchesAny(s string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(s) {
			return true
		}
	}
	return false
}
