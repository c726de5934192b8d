package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tsawler/tablescan"
	"github.com/tsawler/tablescan/internal/config"
	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/internal/mcp"
	"github.com/tsawler/tablescan/ocr"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.ShowVersion {
		printVersion(stdout)
		return 0
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Setup(stderr, level)
	log := logger.GetLogger("main")
	log.Debug("starting", "config", cfg.String())

	if cfg.IsMCPMode() {
		server, err := mcp.NewServer(cfg, version)
		if err != nil {
			log.Error("failed to create MCP server", "error", err)
			return 1
		}
		if err := server.Run(ctx); err != nil {
			log.Error("server stopped", "error", err)
			return 1
		}
		return 0
	}

	if err := scan(ctx, cfg, stdout); err != nil {
		log.Error("scan failed", "input", cfg.Input, "error", err)
		return 1
	}
	return 0
}

// scan processes one input file and writes the result. Output is rendered
// in memory so a failed run leaves an existing output file untouched.
func scan(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	log := logger.GetLogger("scan")
	f := cfg.ExportFormat()
	if f.Binary() && cfg.Output == "" {
		return fmt.Errorf("%s output needs --output", f)
	}

	e := tablescan.Open(cfg.Input).
		Scale(cfg.Scale).
		BlockSize(cfg.BlockSize).
		MinArea(cfg.MinArea).
		MinJoints(cfg.MinJoints).
		Workers(cfg.Workers).
		Margin(cfg.Margin).
		Language(cfg.Language).
		PageSegMode(ocr.PageSegMode(cfg.PageSegMode)).
		WithLogger(logger.GetLogger("tables"))

	var buf bytes.Buffer
	var warnings []tablescan.Warning
	if cfg.OCR {
		ws, err := e.Write(ctx, &buf, f)
		if err != nil {
			return err
		}
		warnings = ws
	} else {
		found, ws, err := e.Tables(ctx)
		if err != nil {
			return err
		}
		warnings = ws
		for i, t := range found {
			r := t.Region
			fmt.Fprintf(&buf, "table %d: %d rows x %d cols, region %dx%d+%d+%d\n",
				i+1, t.Rows(), t.Cols(), r.Width, r.Height, r.X, r.Y)
		}
	}

	for _, warning := range warnings {
		log.Warn(warning.Message, "page", warning.Page)
	}

	if cfg.Output == "" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	return os.WriteFile(cfg.Output, buf.Bytes(), 0o644)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "tablescan\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
