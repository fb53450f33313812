package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

func TestFormatProb(t *testing.T) {
	tests := []struct {
		p      float64
		places int
		want   string
	}{
		{0.5, 3, "0.5"},
		{1.0 / 3, 3, "0.333"},
		{0.1255, 3, "0.126"},
		{1, 3, "1"},
		{0.125, 2, "0.13"},
	}

	for _, tt := range tests {
		if got := formatProb(tt.p, tt.places); got != tt.want {
			t.Errorf("formatProb(%v, %d) = %s, want %s", tt.p, tt.places, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"A":  "A",
		" ":  "␣",
		"Ж":  "Ж",
		"  ": "␣␣",
	}
	for in, want := range tests {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderCodeTable(t *testing.T) {
	out := renderCodeTable([]fano.Coded{
		{Name: "A", Probability: 0.5, Code: "1"},
		{Name: " ", Probability: 0.5, Code: "0"},
	}, 3)

	for _, want := range []string{"Symbol", "Probability", "Code", "Bits", "A", "␣", "0.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMetrics(t *testing.T) {
	out := renderMetrics(metrics.Summary{Entropy: 1.5, AverageLength: 1.5, Efficiency: 1, Kraft: 1, MaxLength: 2})
	for _, want := range []string{"entropy", "1.5 bits", "max length", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSteps(t *testing.T) {
	out := renderSteps([]fano.Split{
		{Prefix: "", Depth: 0, High: []string{"A"}, Low: []string{"B", "C"}, HighSum: 0.5, LowSum: 0.5},
		{Prefix: "0", Depth: 1, High: []string{"B"}, Low: []string{"C"}, HighSum: 0.25, LowSum: 0.25, Clamped: true},
	}, 3)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ε") {
		t.Errorf("root split should show the empty prefix: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") || !strings.Contains(lines[1], "clamped") {
		t.Errorf("nested clamped split rendered as %q", lines[1])
	}
}

func TestRenderStats(t *testing.T) {
	res := &pipeline.Result{
		Codes:    make([]fano.Coded, 3),
		Stats:    pipeline.Stats{Duration: time.Millisecond},
		CacheHit: true,
	}
	out := renderStats(res)
	if !strings.Contains(out, "3 symbols") || !strings.Contains(out, "cached") {
		t.Errorf("renderStats() = %q", out)
	}
}
