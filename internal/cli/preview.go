package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/geometry"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

const (
	previewMinRows     = 2
	previewMaxRows     = 20
	previewDefaultRows = 6
	previewMargin      = 2
)

var (
	previewBarStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(8)
)

// =============================================================================
// previewModel - live terminal preview
// =============================================================================

// previewModel draws the barcode with one terminal column per module and
// re-renders on every keystroke. The boundary memo keeps re-renders free
// when only the terminal height or the cursor changes.
type previewModel struct {
	boundary *barcode.Boundary
	formats  []symbology.ID
	format   int
	value    string
	base     barcode.Props
	width    int // terminal columns
	rows     int // bar rows
	drawable barcode.Drawable
}

func newPreviewModel(value string, format symbology.ID, base barcode.Props) previewModel {
	reg := symbology.Builtin()
	m := previewModel{
		boundary: barcode.NewBoundary(reg),
		formats:  reg.IDs(),
		value:    value,
		base:     base,
		width:    80,
		rows:     previewDefaultRows,
	}
	for i, id := range m.formats {
		if id == format {
			m.format = i
		}
	}
	return m.render()
}

// render recompiles the drawable with a unit width of one column, shrinking
// to fit the terminal.
func (m previewModel) render() previewModel {
	p := barcode.Props{
		Value:     m.value,
		Format:    m.formats[m.format],
		UnitWidth: 1,
		Height:    float64(m.rows),
	}.Merge(m.base)
	if m.width > 2*previewMargin {
		p.MaxWidth = float64(m.width - 2*previewMargin)
	}
	m.drawable = m.boundary.Render(context.Background(), p)
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.format = (m.format + 1) % len(m.formats)
		case tea.KeyShiftTab:
			m.format = (m.format + len(m.formats) - 1) % len(m.formats)
		case tea.KeyUp:
			if m.rows < previewMaxRows {
				m.rows++
			}
		case tea.KeyDown:
			if m.rows > previewMinRows {
				m.rows--
			}
		case tea.KeyBackspace:
			if r := []rune(m.value); len(r) > 0 {
				m.value = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.value += " "
		case tea.KeyRunes:
			m.value += string(msg.Runes)
		default:
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	default:
		return m, nil
	}
	return m.render(), nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("barsvg preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type to edit  tab format  ↑/↓ height  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(previewLabelStyle.Render("value") + StyleValue.Render(m.value) + StyleDim.Render("▏"))
	b.WriteString("\n")
	b.WriteString(previewLabelStyle.Render("format") + StyleNumber.Render(string(m.formats[m.format])))
	b.WriteString("\n\n")

	d := m.drawable
	if !d.OK() {
		b.WriteString(StyleError.Render(fmt.Sprintf("%s %s", iconError, errors.UserMessage(d.Err))))
		b.WriteString("\n")
		return b.String()
	}

	line := previewBarStyle.Render(barLine(d))
	pad := strings.Repeat(" ", previewMargin)
	for range m.rows {
		b.WriteString(pad + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s%d bars · %.4g wide", pad, len(d.Rects), d.Width)))
	b.WriteString("\n")
	return b.String()
}

// barLine samples the drawable at the center of each terminal column.
func barLine(d barcode.Drawable) string {
	shape := geometry.Shape{Rects: d.Rects, Width: d.Width}
	bounds := d.Bounds()
	span := bounds.URx - bounds.LLx
	cols := int(span)
	if float64(cols) < span {
		cols++
	}
	var b strings.Builder
	for col := range cols {
		x := bounds.LLx + (float64(col)+0.5)*span/float64(cols)
		if shape.BarAt(x) {
			b.WriteString("█")
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

func (c *CLI) previewCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "preview [VALUE]",
		Short: "Interactively preview a barcode in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			if format == "" {
				format = c.cfg.Render.Format
			}

			base := c.cfg.Render.Props()
			base.UnitWidth, base.MaxWidth, base.Height = 0, 0, 0
			m := newPreviewModel(value, symbology.ID(format), base)

			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "initial symbology")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}
