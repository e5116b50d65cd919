// Package cli implements the barsvg command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/internal/config"
	"github.com/matzehuels/barsvg/pkg/buildinfo"
	"github.com/matzehuels/barsvg/pkg/sink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "barsvg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	loader     *config.Loader
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "barsvg renders linear barcodes as SVG",
		Long:         `barsvg encodes values in common 1D symbologies and compiles the resulting bar pattern into compact SVG path geometry.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./barsvg.yaml, $XDG_CONFIG_HOME/barsvg, /etc/barsvg)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.patternCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and environment. The config log level
// applies only when it is more verbose than the current level, so --verbose
// is never undone by a file.
func (c *CLI) loadConfig() error {
	c.loader = config.NewLoader()

	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = c.loader.LoadWithFile(c.configFile)
	} else {
		cfg, err = c.loader.Load()
	}
	if err != nil {
		return err
	}
	c.cfg = *cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err == nil && level < c.Logger.GetLevel() {
		c.SetLogLevel(level)
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if used := c.loader.ConfigFileUsed(); used != "" {
		c.Logger.Debug("loaded config", "file", used)
	}
	return nil
}

// svgOptions merges caption settings from flags over the config.
func (c *CLI) svgOptions(fontSize float64, fontFamily string) []sink.SVGOption {
	if fontSize <= 0 {
		fontSize = c.cfg.Render.FontSize
	}
	if fontFamily == "" {
		fontFamily = c.cfg.Render.FontFamily
	}
	return []sink.SVGOption{sink.WithFontSize(fontSize), sink.WithFontFamily(fontFamily)}
}
