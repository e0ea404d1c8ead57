package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if got := Get(); got.Version != Version || got.GitCommit != GitCommit {
		t.Errorf("Get() = %+v", got)
	}
}

func TestPretty_Plain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	cases := map[string]string{
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3":                "1.2.3",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
		"nightly":              "nightly",
	}
	for in, want := range cases {
		Version = in
		if got := Pretty(false); got != want {
			t.Errorf("Pretty(false) for %q = %q, want %q", in, got, want)
		}
	}
}

func TestPretty_Colored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-beta"
	got := Pretty(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-beta") {
		t.Fatalf("pre-release suffix lost: %q", got)
	}
}
