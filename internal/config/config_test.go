package config

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tablescan/export"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"page.png"})
	require.NoError(t, err)

	assert.Equal(t, "page.png", cfg.Input)
	assert.Equal(t, "", cfg.Output)
	assert.Equal(t, ModeCLI, cfg.Mode)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "eng", cfg.Language)
	assert.Equal(t, 6, cfg.PageSegMode)
	assert.True(t, cfg.OCR)
	assert.Equal(t, 15, cfg.Scale)
	assert.Equal(t, 15, cfg.BlockSize)
	assert.Equal(t, 50.0, cfg.MinArea)
	assert.Equal(t, 5, cfg.MinJoints)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 10, cfg.Margin)
	assert.Equal(t, export.CSV, cfg.ExportFormat())
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{
		"--input", "scan.pdf",
		"-o", "out.json",
		"--format", "markdown",
		"--loglevel", "debug",
		"--lang", "deu",
		"--psm", "11",
		"--ocr=false",
		"--scale", "20",
		"--blocksize", "21",
		"--minarea", "120.5",
		"--minjoints", "8",
		"--workers", "3",
		"--margin", "6",
	})
	require.NoError(t, err)

	assert.Equal(t, "scan.pdf", cfg.Input)
	assert.Equal(t, "out.json", cfg.Output)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "deu", cfg.Language)
	assert.Equal(t, 11, cfg.PageSegMode)
	assert.False(t, cfg.OCR)
	assert.Equal(t, 20, cfg.Scale)
	assert.Equal(t, 21, cfg.BlockSize)
	assert.Equal(t, 120.5, cfg.MinArea)
	assert.Equal(t, 8, cfg.MinJoints)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 6, cfg.Margin)
}

func TestLoad_FormatFromOutput(t *testing.T) {
	cfg, err := Load([]string{"-o", "tables.xlsx", "page.png"})
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.Format)
	assert.Equal(t, export.XLSX, cfg.ExportFormat())

	// An explicit format wins over the extension
	cfg, err = Load([]string{"-o", "tables.xlsx", "-f", "json", "page.png"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("TABLESCAN_INPUT", "env.png")
	t.Setenv("TABLESCAN_SCALE", "30")
	t.Setenv("TABLESCAN_LOGLEVEL", "warn")
	t.Setenv("TABLESCAN_OCR", "false")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "env.png", cfg.Input)
	assert.Equal(t, 30, cfg.Scale)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.OCR)

	// Flags take precedence over the environment
	cfg, err = Load([]string{"--scale", "12"})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Scale)
}

func TestLoad_MCPMode(t *testing.T) {
	cfg, err := Load([]string{"--mode", "mcp"})
	require.NoError(t, err)
	assert.True(t, cfg.IsMCPMode())
	assert.Empty(t, cfg.Input)
}

func TestLoad_Version(t *testing.T) {
	cfg, err := Load([]string{"--version"})
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", nil},
		{"two inputs", []string{"a.png", "b.png"}},
		{"conflicting input", []string{"--input", "a.png", "b.png"}},
		{"unknown flag", []string{"--bogus", "a.png"}},
		{"bad scale type", []string{"--scale", "big", "a.png"}},
		{"bad format", []string{"-f", "pdf", "a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"--help"})
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.Input = "page.png"
		return c
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad mode", func(c *Config) { c.Mode = "server" }, "mode must be"},
		{"no input", func(c *Config) { c.Input = "" }, "input file is required"},
		{"no input in mcp mode", func(c *Config) { c.Input = ""; c.Mode = ModeMCP }, ""},
		{"bad format", func(c *Config) { c.Format = "docx" }, "invalid format"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
		{"bad scale", func(c *Config) { c.Scale = 0 }, "scale"},
		{"bad block size", func(c *Config) { c.BlockSize = 1 }, "block size"},
		{"negative area", func(c *Config) { c.MinArea = -1 }, "area"},
		{"negative joints", func(c *Config) { c.MinJoints = -1 }, "joints"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"negative margin", func(c *Config) { c.Margin = -1 }, "margin"},
		{"bad page segmentation mode", func(c *Config) { c.PageSegMode = 14 }, "page segmentation mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestString(t *testing.T) {
	c := DefaultConfig()
	c.Input = "page.png"
	assert.Contains(t, c.String(), "Input: page.png")
}
