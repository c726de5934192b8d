// Package mcp exposes table detection and extraction as Model Context
// Protocol tools over stdio.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tsawler/tablescan"
	"github.com/tsawler/tablescan/export"
	"github.com/tsawler/tablescan/internal/config"
	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/tables"
)

// ServerName is the name reported to MCP clients
const ServerName = "tablescan"

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	mcpServer *server.MCPServer
	log       *slog.Logger

	// recognizer replaces the Tesseract client when set
	recognizer tables.WordRecognizer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, version string) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		mcpServer: mcpServer,
		log:       logger.GetLogger("mcp"),
	}
	s.registerTools()
	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	detectTool := mcp.NewTool(
		"detect_tables",
		mcp.WithDescription("Locate ruled tables in a page image or scanned PDF and report their size and position"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the image or PDF file"),
		),
		mcp.WithNumber("scale",
			mcp.Description("Image size divisor giving the minimum ruling line length"),
		),
		mcp.WithNumber("min_joints",
			mcp.Description("Minimum line intersections per table"),
		),
	)
	s.mcpServer.AddTool(detectTool, s.handleDetectTables)

	extractTool := mcp.NewTool(
		"extract_tables",
		mcp.WithDescription("Recover the cell text of every ruled table in a page image or scanned PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the image or PDF file"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default markdown)"),
			mcp.Enum("markdown", "csv", "html", "json"),
		),
		mcp.WithString("lang",
			mcp.Description("Tesseract language, e.g. eng or eng+deu"),
		),
		mcp.WithNumber("psm",
			mcp.Description("Tesseract page segmentation mode, 0 to 13 (default 6, a single block of text)"),
		),
		mcp.WithNumber("scale",
			mcp.Description("Image size divisor giving the minimum ruling line length"),
		),
		mcp.WithNumber("min_joints",
			mcp.Description("Minimum line intersections per table"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractTables)
}

// extractor builds an Extractor from the server configuration and the
// per-call overrides
func (s *Server) extractor(path string, request mcp.CallToolRequest) *tablescan.Extractor {
	cfg := s.config
	e := tablescan.Open(path).
		Scale(request.GetInt("scale", cfg.Scale)).
		BlockSize(cfg.BlockSize).
		MinArea(cfg.MinArea).
		MinJoints(request.GetInt("min_joints", cfg.MinJoints)).
		Workers(cfg.Workers).
		Margin(cfg.Margin).
		Language(request.GetString("lang", cfg.Language)).
		PageSegMode(ocr.PageSegMode(request.GetInt("psm", cfg.PageSegMode))).
		WithLogger(s.log)
	if s.recognizer != nil {
		e = e.WithRecognizer(s.recognizer)
	}
	return e
}

// Handler functions
func (s *Server) handleDetectTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.log.Debug("detect_tables", "path", path)
	found, warnings, err := s.extractor(path, request).Tables(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d table(s) in %s\n", len(found), path)
	for i, t := range found {
		r := t.Region
		fmt.Fprintf(&sb, "\nTable %d: %d rows x %d cols, region %dx%d at (%d, %d), %d joints\n",
			i+1, t.Rows(), t.Cols(), r.Width, r.Height, r.X, r.Y, t.Joints.Count())
	}
	writeWarnings(&sb, warnings)
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleExtractTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := export.ParseFormat(request.GetString("format", "markdown"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if f.Binary() {
		return mcp.NewToolResultError(fmt.Sprintf("format %s cannot be returned as text", f)), nil
	}

	s.log.Debug("extract_tables", "path", path, "format", f)
	var buf bytes.Buffer
	warnings, err := s.extractor(path, request).Write(ctx, &buf, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	if buf.Len() == 0 {
		fmt.Fprintf(&sb, "No tables found in %s\n", path)
	} else {
		sb.Write(buf.Bytes())
	}
	writeWarnings(&sb, warnings)
	return mcp.NewToolResultText(sb.String()), nil
}

func writeWarnings(sb *strings.Builder, warnings []tablescan.Warning) {
	if len(warnings) == 0 {
		return
	}
	sb.WriteString("\nWarnings:\n")
	for _, w := range warnings {
		fmt.Fprintf(sb, "- %s\n", w)
	}
}

// Run serves the tools over stdio until the client disconnects or ctx is
// canceled
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("starting MCP server", "mode", "stdio")
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads JSON-RPC messages from in and writes responses to out until
// in is exhausted or ctx is canceled. Cancellation is a clean shutdown.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
