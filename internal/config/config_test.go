package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barsvg/pkg/symbology"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "CODE128", cfg.Render.Format)
	assert.Equal(t, 2.0, cfg.Render.Width)
	assert.Equal(t, 100.0, cfg.Render.Height)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"format", func(c *Config) { c.Render.Format = "QR" }},
		{"width", func(c *Config) { c.Render.Width = 0 }},
		{"height", func(c *Config) { c.Render.Height = -1 }},
		{"max width", func(c *Config) { c.Render.MaxWidth = -1 }},
		{"font size", func(c *Config) { c.Render.FontSize = 0 }},
		{"line color", func(c *Config) { c.Render.LineColor = "not a color!" }},
		{"background", func(c *Config) { c.Render.Background = "#12" }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"timeouts", func(c *Config) { c.Server.ReadTimeoutSec = 0 }},
		{"value length", func(c *Config) { c.Server.MaxValueLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRenderProps(t *testing.T) {
	r := DefaultConfig().Render
	r.Format = "EAN13"
	r.MaxWidth = 300
	p := r.Props()
	assert.Equal(t, symbology.EAN13, p.Format)
	assert.Equal(t, 300.0, p.MaxWidth)
	assert.Equal(t, "#000000", p.LineColor)
	assert.Empty(t, p.Value)
}

func TestLoadWithNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadWithFile(t *testing.T) {
	path := writeConfig(t, "barsvg.yaml", `
log_level: debug
render:
  format: EAN13
  height: 60
  line_color: "#333333"
server:
  port: 9090
`)

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "EAN13", cfg.Render.Format)
	assert.Equal(t, 60.0, cfg.Render.Height)
	assert.Equal(t, "#333333", cfg.Render.LineColor)
	assert.Equal(t, 2.0, cfg.Render.Width, "unset keys keep defaults")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, path, loader.ConfigFileUsed())
}

func TestLoadWithTOMLFile(t *testing.T) {
	path := writeConfig(t, "barsvg.toml", "[render]\nformat = \"UPC\"\nmax_width = 250.5\n")

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UPC", cfg.Render.Format)
	assert.Equal(t, 250.5, cfg.Render.MaxWidth)
}

func TestLoadWithFileMissing(t *testing.T) {
	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithFileInvalid(t *testing.T) {
	path := writeConfig(t, "barsvg.yaml", "server:\n  port: 0\n")
	_, err := NewLoader().LoadWithFile(path)
	assert.ErrorContains(t, err, "server.port")
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "barsvg.yaml", "server:\n  port: 9090\n")
	t.Setenv("BARSVG_SERVER_PORT", "7070")
	t.Setenv("BARSVG_RENDER_FORMAT", "ITF")

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "ITF", cfg.Render.Format)
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "barsvg.yaml", "render:\n  height: 60\n")

	loader := NewLoader()
	_, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	changes := make(chan *Config, 16)
	loader.Watch(func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("render:\n  height: 80\n"), 0o644))

	// A truncating write can surface an intermediate empty read first.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Render.Height == 80 {
				return
			}
		case <-timeout:
			t.Fatal("no reload after config file change")
		}
	}
}

func TestWatchWithoutFileIsNoop(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loader := NewLoader()
	_, err := loader.Load()
	require.NoError(t, err)
	loader.Watch(func(*Config, error) { t.Error("unexpected change") })
}
