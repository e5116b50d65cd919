package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/pkg/symbology"
)

// sampleValues are known-good inputs shown in the formats table.
var sampleValues = map[symbology.ID]string{
	symbology.Code128: "barsvg",
	symbology.Code39:  "BARSVG",
	symbology.Code93:  "BARSVG",
	symbology.EAN13:   "590123412345",
	symbology.EAN8:    "9638507",
	symbology.UPC:     "03600029145",
	symbology.ITF:     "1234567890",
	symbology.ITF14:   "1234567890123",
	symbology.Codabar: "40156",
}

func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported symbologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormats(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) runFormats(w io.Writer) error {
	reg := symbology.Builtin()
	def := symbology.ID(c.cfg.Render.Format)

	var rows [][]string
	for _, id := range reg.IDs() {
		sample := sampleValues[id]
		modules, runs := "—", "—"
		if p, err := symbology.Encode(reg, sample, id, symbology.Options{}); err == nil {
			m, r := patternStats(p)
			modules, runs = strconv.Itoa(m), strconv.Itoa(r)
		}
		name := string(id)
		if id == def {
			name += " *"
		}
		rows = append(rows, []string{name, sample, modules, runs})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "Sample", "Modules", "Bars").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return styleHeader
			case col == 0:
				return StyleNumber
			case col >= 2:
				return StyleDim
			}
			return StyleValue
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	printDetail(w, "* default format")
	return nil
}
