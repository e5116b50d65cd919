package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

func update(m previewModel, msg tea.Msg) previewModel {
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestPreviewModelRenders(t *testing.T) {
	m := newPreviewModel("96385074", symbology.EAN8, barcode.Props{})

	if !m.drawable.OK() {
		t.Fatalf("drawable error: %v", m.drawable.Err)
	}
	if m.drawable.Width != 67 {
		t.Errorf("width = %v, want one column per module", m.drawable.Width)
	}

	view := m.View()
	if !strings.Contains(view, "█") {
		t.Error("view should draw bars")
	}
	if !strings.Contains(view, "EAN8") {
		t.Error("view should show the format")
	}
}

func TestPreviewModelShrinksToTerminal(t *testing.T) {
	m := newPreviewModel("96385074", symbology.EAN8, barcode.Props{})
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	if got, want := m.drawable.Width, float64(40-2*previewMargin); got != want {
		t.Errorf("width = %v, want %v", got, want)
	}
}

func TestPreviewModelEditing(t *testing.T) {
	m := newPreviewModel("", symbology.Code128, barcode.Props{})
	if m.drawable.OK() {
		t.Fatal("empty value should not render")
	}
	if !strings.Contains(m.View(), "non-empty") {
		t.Errorf("view should show the error:\n%s", m.View())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("AB")})
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")})
	if m.value != "AB C" {
		t.Errorf("value = %q, want %q", m.value, "AB C")
	}
	if !m.drawable.OK() {
		t.Errorf("drawable error: %v", m.drawable.Err)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.value != "AB " {
		t.Errorf("value after backspace = %q", m.value)
	}
}

func TestPreviewModelFormatCycle(t *testing.T) {
	m := newPreviewModel("123", symbology.Code128, barcode.Props{})
	start := m.formats[m.format]

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.formats[m.format] == start {
		t.Error("tab should advance the format")
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.formats[m.format] != start {
		t.Errorf("shift+tab should go back to %s, got %s", start, m.formats[m.format])
	}

	for range len(m.formats) {
		m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.formats[m.format] != start {
		t.Error("cycling through all formats should wrap around")
	}
}

func TestPreviewModelRows(t *testing.T) {
	m := newPreviewModel("123", symbology.Code128, barcode.Props{})
	for range 50 {
		m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.rows != previewMaxRows {
		t.Errorf("rows = %d, want clamp at %d", m.rows, previewMaxRows)
	}
	for range 50 {
		m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.rows != previewMinRows {
		t.Errorf("rows = %d, want clamp at %d", m.rows, previewMinRows)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := newPreviewModel("123", symbology.Code128, barcode.Props{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestBarLine(t *testing.T) {
	d := barcode.NewBoundary(nil).Render(t.Context(), barcode.Props{
		Value: "96385074", Format: symbology.EAN8, UnitWidth: 1, Height: 1,
	})
	line := barLine(d)
	if got := len([]rune(line)); got != 67 {
		t.Fatalf("line has %d columns, want 67", got)
	}
	if !strings.HasPrefix(line, "█ █") {
		t.Errorf("line should start with the guard: %q", string([]rune(line)[:3]))
	}
}

func TestBarLineFailedRender(t *testing.T) {
	d := barcode.NewBoundary(nil).Render(t.Context(), barcode.Props{Format: symbology.EAN8, Height: 1})
	if line := barLine(d); line != "" {
		t.Errorf("barLine() = %q, want empty for a failed render", line)
	}
}
