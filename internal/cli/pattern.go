package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/pkg/pattern"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// patternCommand prints the raw module pattern for a value. Useful for
// checking an encoder without looking at SVG output.
func (c *CLI) patternCommand() *cobra.Command {
	var (
		format string
		runs   bool
	)

	cmd := &cobra.Command{
		Use:   "pattern VALUE",
		Short: "Print the module pattern of a barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.cfg.Render.Format
			}
			return runPattern(cmd.Context(), cmd.OutOrStdout(), args[0], symbology.ID(format), runs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "symbology (see 'barsvg formats')")
	cmd.Flags().BoolVar(&runs, "runs", false, "list bar runs instead of the raw pattern")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func runPattern(ctx context.Context, w io.Writer, value string, id symbology.ID, runs bool) error {
	p, err := symbology.Encode(symbology.Builtin(), value, id, symbology.Options{})
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debugf("Encoded %q as %s: %d modules, %d bars", value, id, p.Len(), p.Bars())

	if !runs {
		_, err := fmt.Fprintln(w, p)
		return err
	}
	for r := range p.Runs() {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", r.Start, r.Len); err != nil {
			return err
		}
	}
	return nil
}

// patternStats summarizes a pattern for the formats table.
func patternStats(p pattern.Pattern) (modules, runs int) {
	for range p.Runs() {
		runs++
	}
	return p.Len(), runs
}
