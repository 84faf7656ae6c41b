package version

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Info captures an installed build-tool version.
type Info struct {
	Name    string
	Version string
}

var zigRegex = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// Detect returns the installed version of the build tool by calling
// `<command> version`.
func Detect(command string) (Info, error) {
	out, err := runCommand(command, "version")
	if err != nil {
		return Info{}, err
	}
	v, err := parseVersion(out)
	if err != nil {
		return Info{}, err
	}
	return Info{Name: command, Version: v}, nil
}

func parseVersion(out string) (string, error) {
	match := zigRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return "", fmt.Errorf("unable to parse version from %q", out)
	}
	return match[1], nil
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// CompareMajorMinor compares major.minor portions of two semver-like versions.
func CompareMajorMinor(desired, actual string) bool {
	d := semverPrefix(desired)
	a := semverPrefix(actual)
	if d == "" || a == "" {
		return false
	}
	return strings.EqualFold(d, a)
}

func semverPrefix(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return ""
	}
	return fmt.Sprintf("%s.%s", parts[0], parts[1])
}

// Missing reports whether executing the command returns a not-found error.
func Missing(cmdErr error) bool {
	return errors.Is(cmdErr, exec.ErrNotFound)
}
