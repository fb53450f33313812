package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
)

func viewerCodes() []fano.Coded {
	return []fano.Coded{
		{Name: "C", Probability: 0.25, Code: "01"},
		{Name: "A", Probability: 0.5, Code: "1"},
		{Name: "B", Probability: 0.25, Code: "00"},
	}
}

func press(m CodeViewModel, key string) CodeViewModel {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(CodeViewModel)
}

func TestCodeViewModelNavigation(t *testing.T) {
	m := NewCodeViewModel(viewerCodes(), metrics.Summary{AverageLength: 1.5}, 3)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.Cursor)
	}
	m = press(m, "down")
	m = press(m, "j")
	m = press(m, "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped to last row)", m.Cursor)
	}
	m = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestCodeViewModelSort(t *testing.T) {
	codes := viewerCodes()
	m := NewCodeViewModel(codes, metrics.Summary{}, 3)
	m = press(m, "down")

	m = press(m, "s")
	if !m.Sorted || m.Codes[0].Name != "A" {
		t.Errorf("sorted first = %s, want A", m.Codes[0].Name)
	}
	if m.Cursor != 0 {
		t.Errorf("cursor not reset after sort: %d", m.Cursor)
	}
	if codes[0].Name != "C" {
		t.Error("sorting modified the caller's codes")
	}

	m = press(m, "s")
	if m.Sorted || m.Codes[0].Name != "C" {
		t.Errorf("unsorted first = %s, want C", m.Codes[0].Name)
	}
}

func TestCodeViewModelQuit(t *testing.T) {
	m := NewCodeViewModel(viewerCodes(), metrics.Summary{}, 3)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCodeViewModelView(t *testing.T) {
	m := NewCodeViewModel(viewerCodes(), metrics.Summary{AverageLength: 1.5}, 3)
	m = press(m, "down")

	view := m.View()
	for _, want := range []string{"Codes", "▸ A", "01", "00", "share of L"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestCodeViewModelWindowSize(t *testing.T) {
	m := NewCodeViewModel(viewerCodes(), metrics.Summary{}, 3)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(CodeViewModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}
