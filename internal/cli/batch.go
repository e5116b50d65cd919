package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/batch"
	"github.com/matzehuels/barsvg/pkg/errors"
)

type batchOpts struct {
	dir        string
	overrides  barcode.Props
	fontSize   float64
	fontFamily string
}

// batchCommand renders every barcode listed in a TOML manifest.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{dir: "."}

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Render all barcodes listed in a TOML manifest",
		Long: `Batch reads a TOML manifest and writes one file per [[barcode]] entry.

  [defaults]
  format = "EAN13"
  height = 60

  [[barcode]]
  value  = "590123412345"
  output = "products/ean.svg"

  [[barcode]]
  value  = "HELLO"
  format = "CODE39"

Outputs are confined to --dir. Entries without an output are named
NNN-format.svg. Flags override both the manifest and the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "output directory")
	addPropsFlags(cmd.Flags(), &opts.overrides)
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "caption font size")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "caption font family")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, w io.Writer, path string, opts batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := batch.Load(path)
	if err != nil {
		return err
	}
	m.Defaults = m.Defaults.Merge(c.cfg.Render.Props())
	logger.Debugf("Loaded %d entries from %s", len(m.Barcodes), path)

	results, err := batch.Run(ctx, m, batch.Options{
		Dir:       opts.dir,
		Logger:    logger,
		SVG:       c.svgOptions(opts.fontSize, opts.fontFamily),
		Overrides: opts.overrides,
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			printError(w, "#%d %s: %s", r.Index+1, r.Value, errors.UserMessage(r.Err))
			continue
		}
		printFile(w, r.Path)
	}

	failed := batch.Failed(results)
	prog.donef("Rendered %d of %d barcodes", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d barcodes failed", failed, len(results))
	}
	printSuccess(w, "%d barcodes written to %s", len(results), opts.dir)
	return nil
}
