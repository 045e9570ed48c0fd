package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withPlain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func override(t *testing.T, number, commit, date string) {
	t.Helper()
	origNumber, origCommit, origDate := Number, GitCommit, BuildDate
	Number, GitCommit, BuildDate = number, commit, date
	t.Cleanup(func() { Number, GitCommit, BuildDate = origNumber, origCommit, origDate })
}

func TestColoredPlain(t *testing.T) {
	withPlain(t)
	cases := []string{"0.3.0-dev", "1.2.3", "1.0.0-beta.1", "1.2.3-rc.1+build.123"}
	for _, v := range cases {
		override(t, v, "", "")
		if got := Colored(); got != v {
			t.Fatalf("Colored() for %q = %q", v, got)
		}
	}
}

func TestColoredKeepsOddNumbers(t *testing.T) {
	withPlain(t)
	override(t, "nightly", "", "")
	if got := Colored(); got != "nightly" {
		t.Fatalf("Colored() = %q, want nightly", got)
	}
}

func TestLine(t *testing.T) {
	withPlain(t)
	override(t, "1.2.3", "1234567890abcdef1234", "2026-01-15")
	got := Line()
	want := "canon 1.2.3 (1234567890ab) built 2026-01-15"
	if got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}

	override(t, "1.2.3", "", "")
	if got := Line(); strings.Contains(got, "(") || strings.Contains(got, "built") {
		t.Fatalf("Line() without build info = %q", got)
	}
}
