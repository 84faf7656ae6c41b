package version

import "testing"

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0.13.0", "0.13.0", false},
		{"0.14.0-dev.2851+b074fb7dd", "0.14.0", false},
		{"no digits here", "", true},
	}
	for _, c := range cases {
		got, err := parseVersion(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseVersion(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseVersion(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parseVersion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSemverPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.13.0", "0.13"},
		{"0.14", "0.14"},
		{"", ""},
		{"1", ""},
	}
	for _, c := range cases {
		if got := semverPrefix(c.in); got != c.want {
			t.Fatalf("semverPrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCompareMajorMinor(t *testing.T) {
	tests := []struct {
		desired string
		actual  string
		match   bool
	}{
		{"0.13.0", "0.13.1", true},
		{"0.13", "0.13.0", true},
		{"0.13", "0.14.0", false},
		{"", "0.14.0", false},
		{"0.13", "", false},
	}
	for _, tt := range tests {
		if got := CompareMajorMinor(tt.desired, tt.actual); got != tt.match {
			t.Fatalf("CompareMajorMinor(%q,%q)=%v want %v", tt.desired, tt.actual, got, tt.match)
		}
	}
}
