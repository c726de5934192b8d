// Package config loads the tablescan command configuration from flags and
// TABLESCAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/tablescan/export"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/tables"
)

const (
	// Mode constants
	ModeCLI = "cli"
	ModeMCP = "mcp"

	// Default values
	DefaultLogLevel = "info"
	DefaultLanguage = "eng"
	DefaultFormat   = "csv"

	// EnvPrefix is prepended to every environment variable
	EnvPrefix = "TABLESCAN"
)

// Config holds all configuration for the tablescan command
type Config struct {
	// Input and output
	Input  string // image or PDF path; required in cli mode
	Output string // output path, empty for stdout
	Format string // csv, markdown, html, xlsx or json

	// Application configuration
	Mode        string // "cli" or "mcp"
	LogLevel    string
	ShowVersion bool

	// Recognition
	Language    string
	PageSegMode int // Tesseract page segmentation mode, 0-13
	OCR         bool

	// Detection
	Scale     int
	BlockSize int
	MinArea   float64
	MinJoints int
	Workers   int
	Margin    int
}

// DefaultConfig returns a configuration with the detector defaults
func DefaultConfig() *Config {
	det := tables.DefaultConfig()
	return &Config{
		Format:    DefaultFormat,
		Mode:      ModeCLI,
		LogLevel:  DefaultLogLevel,
		Language:    DefaultLanguage,
		PageSegMode: int(ocr.DefaultPageSegMode),
		OCR:         true,
		Scale:     det.Mask.Scale,
		BlockSize: det.Mask.BlockSize,
		MinArea:   det.MinTableArea,
		MinJoints: det.MinJoints,
		Workers:   0,
		Margin:    det.Pad.Margin,
	}
}

// Load parses args (without the program name) and the environment and
// returns a validated configuration. A single positional argument is taken
// as the input path. pflag.ErrHelp is returned when help was requested.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setupViperEnvironment(v, cfg)

	fs := pflag.NewFlagSet("tablescan", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	defineCommandLineFlags(fs, cfg)
	fs.Usage = func() { Usage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	populateConfigFromViper(v, cfg)
	cfg.ShowVersion, _ = fs.GetBool("version")

	switch fs.NArg() {
	case 0:
	case 1:
		if cfg.Input == "" {
			cfg.Input = fs.Arg(0)
		} else if cfg.Input != fs.Arg(0) {
			return nil, fmt.Errorf("input given twice: %q and %q", cfg.Input, fs.Arg(0))
		}
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	if _, fromEnv := os.LookupEnv(EnvPrefix + "_FORMAT"); !fs.Changed("format") && !fromEnv {
		if f, ok := export.FormatFromPath(cfg.Output); ok {
			cfg.Format = f.String()
		}
	}

	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("input", cfg.Input)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("lang", cfg.Language)
	v.SetDefault("psm", cfg.PageSegMode)
	v.SetDefault("ocr", cfg.OCR)
	v.SetDefault("scale", cfg.Scale)
	v.SetDefault("blocksize", cfg.BlockSize)
	v.SetDefault("minarea", cfg.MinArea)
	v.SetDefault("minjoints", cfg.MinJoints)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("margin", cfg.Margin)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringP("input", "i", cfg.Input, "Image or PDF file to scan")
	fs.StringP("output", "o", cfg.Output, "Output file (default stdout)")
	fs.StringP("format", "f", cfg.Format, "Output format: csv, markdown, html, xlsx, json")
	fs.String("mode", cfg.Mode, "Run mode: 'cli' for one file, 'mcp' for an MCP stdio server")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("lang", cfg.Language, "Tesseract language, e.g. eng or eng+deu")
	fs.Int("psm", cfg.PageSegMode, "Tesseract page segmentation mode (0-13)")
	fs.Bool("ocr", cfg.OCR, "Recognize cell text (requires a build with -tags ocr); when false, print table geometry as plain text")
	fs.Int("scale", cfg.Scale, "Image size divisor giving the minimum ruling line length")
	fs.Int("blocksize", cfg.BlockSize, "Adaptive threshold neighborhood size")
	fs.Float64("minarea", cfg.MinArea, "Minimum table contour area in square pixels")
	fs.Int("minjoints", cfg.MinJoints, "Minimum line intersections per table")
	fs.Int("workers", cfg.Workers, "Concurrent table candidates (0 = one per CPU)")
	fs.Int("margin", cfg.Margin, "White margin in pixels around each rectified table")
	fs.BoolP("version", "v", false, "Print version and exit")
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Input = v.GetString("input")
	cfg.Output = v.GetString("output")
	cfg.Format = v.GetString("format")
	cfg.Mode = v.GetString("mode")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.Language = v.GetString("lang")
	cfg.PageSegMode = v.GetInt("psm")
	cfg.OCR = v.GetBool("ocr")
	cfg.Scale = v.GetInt("scale")
	cfg.BlockSize = v.GetInt("blocksize")
	cfg.MinArea = v.GetFloat64("minarea")
	cfg.MinJoints = v.GetInt("minjoints")
	cfg.Workers = v.GetInt("workers")
	cfg.Margin = v.GetInt("margin")
}

// Usage prints the command help to w
func Usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: tablescan [options] <image|pdf>\n")
	fmt.Fprintf(w, "\ntablescan - recover ruled tables from scanned or photographed pages\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  tablescan invoice.jpg                      # CSV to stdout\n")
	fmt.Fprintf(w, "  tablescan -o tables.xlsx scan.pdf          # one sheet per table\n")
	fmt.Fprintf(w, "  tablescan --ocr=false page.png             # geometry only\n")
	fmt.Fprintf(w, "  tablescan --mode=mcp                       # MCP stdio server\n")
	fmt.Fprintf(w, "\nEnvironment Variables:\n")
	fmt.Fprintf(w, "  %s_<FLAG>  overrides the default of any flag, e.g. %s_LANG=deu\n", EnvPrefix, EnvPrefix)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeMCP {
		return errors.New("mode must be either 'cli' or 'mcp'")
	}
	if c.Mode == ModeCLI && c.Input == "" {
		return errors.New("an input file is required")
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %s (must be one of: csv, markdown, html, xlsx, json)", c.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.Scale < 1 {
		return errors.New("scale must be at least 1")
	}
	if c.BlockSize < 3 {
		return errors.New("block size must be at least 3")
	}
	if c.MinArea < 0 {
		return errors.New("minimum area cannot be negative")
	}
	if c.MinJoints < 0 {
		return errors.New("minimum joints cannot be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	if c.Margin < 0 {
		return errors.New("margin cannot be negative")
	}
	if !ocr.PageSegMode(c.PageSegMode).Valid() {
		return fmt.Errorf("invalid page segmentation mode: %d (must be 0-13)", c.PageSegMode)
	}
	return nil
}

// ExportFormat returns the parsed output format
func (c *Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return export.CSV
	}
	return f
}

// IsMCPMode returns true if the command runs as an MCP server
func (c *Config) IsMCPMode() bool {
	return c.Mode == ModeMCP
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Input: %s, Output: %s, Format: %s, LogLevel: %s, OCR: %t, Scale: %d, MinJoints: %d}",
		c.Mode, c.Input, c.Output, c.Format, c.LogLevel, c.OCR, c.Scale, c.MinJoints)
}
