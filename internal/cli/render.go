package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/sink"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	props      barcode.Props
	output     string  // output file; stdout when empty
	json       bool    // emit JSON geometry instead of SVG
	fontSize   float64 // caption font size; config default when zero
	fontFamily string  // caption font family; config default when empty
}

// addPropsFlags binds the render props shared by render and batch. Zero
// values mean "use the configured default".
func addPropsFlags(fs *pflag.FlagSet, p *barcode.Props) {
	fs.StringVarP((*string)(&p.Format), "format", "f", "", "symbology (see 'barsvg formats')")
	fs.Float64Var(&p.UnitWidth, "width", 0, "width of one module")
	fs.Float64Var(&p.MaxWidth, "max-width", 0, "shrink the barcode to fit this width")
	fs.Float64Var(&p.Height, "height", 0, "bar height")
	fs.StringVar(&p.LineColor, "line-color", "", "bar color")
	fs.StringVar(&p.Background, "background", "", "background color")
	fs.BoolVar(&p.Flat, "flat", false, "request flat output from the encoder")
	fs.StringVar(&p.Style, "style", "", "inline style for the svg element")
	fs.StringVar(&p.TextStyle, "text-style", "", "inline style for the caption")
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	ids := symbology.Builtin().IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render VALUE",
		Short: "Render a barcode to SVG or JSON",
		Long: `Render encodes VALUE and writes the barcode as SVG (default) or as JSON
geometry. Output goes to stdout unless --output is given; a .json output
file implies --json.`,
		Example: `  barsvg render 5901234123457 -f EAN13 -o ean.svg
  barsvg render "HELLO" -f CODE39 --max-width 200 --text HELLO
  barsvg render 96385074 -f EAN8 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.props.Value = args[0]
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	addPropsFlags(cmd.Flags(), &opts.props)
	cmd.Flags().StringVar(&opts.props.Text, "text", "", "caption below the bars")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .json)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "emit JSON geometry")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "caption font size")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "caption font family")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender renders one barcode. A render failure is returned as the
// command error; nothing is written in that case.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	asJSON := opts.json
	if opts.output != "" {
		switch strings.ToLower(filepath.Ext(opts.output)) {
		case ".json":
			asJSON = true
		case ".svg":
		default:
			return fmt.Errorf("unsupported output extension %q (use .svg or .json)", filepath.Ext(opts.output))
		}
	}

	p := opts.props.Merge(c.cfg.Render.Props())
	d := barcode.NewBoundary(nil).Render(ctx, p)
	if !d.OK() {
		return d.Err
	}
	logger.Debugf("Compiled %s: %d bars, width %g", d.Format, len(d.Rects), d.Width)

	var data []byte
	if asJSON {
		var err error
		if data, err = sink.RenderJSON(d); err != nil {
			return err
		}
	} else {
		data = sink.RenderSVG(d, c.svgOptions(opts.fontSize, opts.fontFamily)...)
	}

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	logger.Infof("Generated %s", opts.output)
	return nil
}
