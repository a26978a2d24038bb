package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPrettyKeepsPlainText(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	cases := map[string]string{
		"1.2.3":     "1.2.3",
		"0.1.0-dev": "0.1.0-dev",
		"nightly":   "nightly",
		"1.2-rc1":   "1.2-rc1",
	}
	for in, want := range cases {
		Version = in
		if got := Pretty(); got != want {
			t.Fatalf("Pretty(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBannerOptionalFields(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if strings.Contains(Banner(), "commit:") {
		t.Fatalf("empty commit printed:\n%s", Banner())
	}
	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	b := Banner()
	if !strings.Contains(b, "commit: abc123") || !strings.Contains(b, "built:  2024-01-15") {
		t.Fatalf("missing build info:\n%s", b)
	}
}
