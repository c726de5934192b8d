// Package export renders recovered table text as CSV, Markdown, HTML,
// XLSX or JSON. Absent cells are written as empty values.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/tablescan/model"
)

// Format is an output format.
type Format int

const (
	// CSV writes comma-separated records, one table after another
	CSV Format = iota
	// Markdown writes pipe tables with the first row as header
	Markdown
	// HTML writes one <table> element per table
	HTML
	// XLSX writes a workbook with one sheet per table
	XLSX
	// JSON writes an array of tables of rows of string or null
	JSON
)

var formatNames = map[Format]string{
	CSV:      "csv",
	Markdown: "markdown",
	HTML:     "html",
	XLSX:     "xlsx",
	JSON:     "json",
}

// String returns the canonical lower-case name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the usual file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case CSV, HTML, XLSX, JSON:
		return "." + f.String()
	}
	return ""
}

// Binary reports whether the format is not plain text
func (f Format) Binary() bool {
	return f == XLSX
}

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("export: unknown format %q", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Write renders grids to w in the given format.
func Write(w io.Writer, f Format, grids []model.TextGrid) error {
	switch f {
	case CSV:
		return WriteCSV(w, grids)
	case Markdown:
		return WriteMarkdown(w, grids)
	case HTML:
		return WriteHTML(w, grids)
	case XLSX:
		return WriteXLSX(w, grids)
	case JSON:
		return WriteJSON(w, grids)
	}
	return fmt.Errorf("export: unsupported format %v", f)
}
