package cli

import (
	"strings"
	"testing"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 vertices"},
		{1, "1 vertex"},
		{7, "7 vertices"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "vertex", "vertices"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(3, 1, true)
	for _, want := range []string{"3 vertices", "1 edge", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if line := statsLine(0, 0, false); !strings.Contains(line, "fresh") {
		t.Errorf("statsLine() = %q, want fresh marker", line)
	}
}
