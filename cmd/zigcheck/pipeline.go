package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zigcheck/zigcheck/internal/config"
	"github.com/zigcheck/zigcheck/internal/filter"
	"github.com/zigcheck/zigcheck/internal/format"
	"github.com/zigcheck/zigcheck/internal/report"
	"github.com/zigcheck/zigcheck/internal/runner"
	"github.com/zigcheck/zigcheck/internal/version"
)

// applyFilters narrows captured runs to the suites and tests the user asked
// for and recomputes the derived failure messages.
func applyFilters(res runner.Result, cfg config.Config) (runner.Result, error) {
	suitePatterns, err := filter.Compile(cfg.Suites)
	if err != nil {
		return runner.Result{}, err
	}
	onlyPatterns, err := filter.Compile(cfg.OnlyTests)
	if err != nil {
		return runner.Result{}, err
	}
	skipPatterns, err := filter.Compile(cfg.SkipTests)
	if err != nil {
		return runner.Result{}, err
	}

	if len(suitePatterns) == 0 && len(onlyPatterns) == 0 && len(skipPatterns) == 0 {
		return res, nil
	}

	filtered := res
	filtered.Runs = filter.FilterRuns(res.Runs, suitePatterns, onlyPatterns, skipPatterns)
	filtered.FailureMessages = nil
	for _, run := range filtered.Runs {
		filtered.FailureMessages = append(filtered.FailureMessages, format.FailureMessages(run)...)
	}
	return filtered, nil
}

func collectRuns(runs []*report.Run) runner.Result {
	res := runner.Result{Runs: runs}
	for _, run := range runs {
		res.FailureMessages = append(res.FailureMessages, format.FailureMessages(run)...)
	}
	return res
}

// detectVersionWarning compares the build tool's installed version against a
// .zigversion file at the project root, when one exists.
func detectVersionWarning(root string, cfg config.Config) string {
	if !cfg.Warn.VersionMismatch {
		return ""
	}

	contents, err := os.ReadFile(filepath.Join(root, ".zigversion"))
	if err != nil {
		return ""
	}
	required := strings.TrimSpace(string(contents))
	if required == "" {
		return ""
	}

	info, detectErr := version.Detect(cfg.Command)
	if detectErr != nil {
		if version.Missing(detectErr) {
			return fmt.Sprintf("%s executable not found; required %s", cfg.Command, required)
		}
		return fmt.Sprintf("unable to detect %s version: %v", cfg.Command, detectErr)
	}
	if !version.CompareMajorMinor(required, info.Version) {
		return fmt.Sprintf("%s version mismatch: required %s (from .zigversion) but found %s", cfg.Command, required, info.Version)
	}
	return ""
}
