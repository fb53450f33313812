package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CodeViewModel - Interactive code table
// =============================================================================

// CodeViewModel is the bubbletea model for browsing a code table.
type CodeViewModel struct {
	Codes   []fano.Coded
	Metrics metrics.Summary
	Places  int
	Cursor  int
	Height  int
	Offset  int
	Sorted  bool

	order []fano.Coded // partition order
}

// NewCodeViewModel creates a viewer over codes in partition order.
func NewCodeViewModel(codes []fano.Coded, m metrics.Summary, places int) CodeViewModel {
	return CodeViewModel{
		Codes:   codes,
		Metrics: m,
		Places:  places,
		Height:  15,
		order:   codes,
	}
}

func (m CodeViewModel) Init() tea.Cmd {
	return nil
}

func (m CodeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Codes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.Sorted = !m.Sorted
			if m.Sorted {
				m.Codes = slices.Clone(m.order)
				alphabet.SortByProbability(m.Codes)
			} else {
				m.Codes = m.order
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CodeViewModel) View() string {
	var b strings.Builder

	title := "Codes"
	if m.Sorted {
		title += listDimStyle.Render(" by probability")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sort  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Codes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Codes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor + displayName(c.Name), formatProb(c.Probability, m.Places), c.Code})
	}

	cursorRow := m.Cursor - m.Offset
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := listNormalStyle
			if row == cursorRow {
				style = listSelectedStyle
			}
			if col == 1 {
				style = style.Foreground(colorGray).Align(lipgloss.Right)
			}
			return style.PaddingRight(2)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Codes) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d-%d of %d", m.Offset+1, end, len(m.Codes))))
		b.WriteString("\n")
	}

	if m.Cursor < len(m.Codes) {
		b.WriteString("\n")
		b.WriteString(m.detail(m.Codes[m.Cursor]))
	}
	return b.String()
}

// detail renders the panel for the selected symbol.
func (m CodeViewModel) detail(c fano.Coded) string {
	share := 0.0
	if m.Metrics.AverageLength > 0 {
		share = c.Probability * float64(c.Len()) / m.Metrics.AverageLength
	}
	lines := []string{
		StyleValue.Render(displayName(c.Name)) + "  " + StyleCode.Render(c.Code),
		listDimStyle.Render("probability  ") + formatProb(c.Probability, m.Places),
		listDimStyle.Render("bits         ") + strconv.Itoa(c.Len()),
		listDimStyle.Render("share of L   ") + formatProb(share, m.Places),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// runViewer opens the interactive code table.
func runViewer(codes []fano.Coded, m metrics.Summary, places int) error {
	if len(codes) == 0 {
		printInfo("No codes to show")
		return nil
	}
	_, err := tea.NewProgram(NewCodeViewModel(codes, m, places)).Run()
	return err
}
