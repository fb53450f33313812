package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleCode for bit strings.
	StyleCode = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Result Display
// =============================================================================

// formatProb renders a probability rounded to places.
func formatProb(p float64, places int) string {
	return strconv.FormatFloat(metrics.Round(p, places), 'f', -1, 64)
}

// displayName makes whitespace-only names visible.
func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return strings.Repeat("␣", len([]rune(name)))
	}
	return name
}

// renderCodeTable renders codes as a bordered table.
func renderCodeTable(codes []fano.Coded, places int) string {
	rows := make([][]string, len(codes))
	for i, c := range codes {
		rows[i] = []string{displayName(c.Name), formatProb(c.Probability, places), c.Code, strconv.Itoa(c.Len())}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Symbol", "Probability", "Code", "Bits").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 2:
				return base.Foreground(colorCyan)
			case col == 1 || col == 3:
				return base.Foreground(colorGray).Align(lipgloss.Right)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}

// renderMetrics renders the metric summary as aligned key/value lines.
func renderMetrics(m metrics.Summary) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	line := func(k, v string) string {
		return keyStyle.Render(k) + " " + StyleValue.Render(v)
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	return strings.Join([]string{
		line("entropy", num(m.Entropy)+" bits"),
		line("average length", num(m.AverageLength)+" bits"),
		line("efficiency", num(m.Efficiency)),
		line("redundancy", num(m.Redundancy)),
		line("kraft sum", num(m.Kraft)),
		line("max length", strconv.Itoa(m.MaxLength)),
	}, "\n")
}

// renderSteps renders the partition trace, one split per line, indented by
// depth.
func renderSteps(steps []fano.Split, places int) string {
	var b strings.Builder
	for _, s := range steps {
		prefix := s.Prefix
		if prefix == "" {
			prefix = "ε"
		}
		names := func(ns []string) string {
			out := make([]string, len(ns))
			for i, n := range ns {
				out[i] = displayName(n)
			}
			return strings.Join(out, " ")
		}
		fmt.Fprintf(&b, "%s%s  %s %s | %s %s",
			strings.Repeat("  ", s.Depth),
			StyleCode.Render(prefix),
			names(s.High), StyleDim.Render("("+formatProb(s.HighSum, places)+")"),
			StyleDim.Render("("+formatProb(s.LowSum, places)+")"), names(s.Low))
		if s.Clamped {
			b.WriteString(" " + StyleWarning.Render("clamped"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderStats renders the one-line footer of a result.
func renderStats(res *pipeline.Result) string {
	status, style := iconFresh, styleComputed
	if res.CacheHit {
		status, style = iconCached, styleCached
	}
	sep := StyleDim.Render(" · ")
	return "  " + StyleDim.Render(fmt.Sprintf("%d symbols", len(res.Codes))) + sep +
		StyleDim.Render(res.Stats.Duration.String()) + sep + style.Render(status)
}
