package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/tsawler/tablescan/model"
)

// WriteCSV writes each grid as CSV records, separating tables with a
// blank line.
func WriteCSV(w io.Writer, grids []model.TextGrid) error {
	for i, g := range grids {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(g.Strings("")); err != nil {
			return err
		}
	}
	return nil
}

// ToMarkdown returns a markdown table for one grid. The first row is used
// as the header.
func ToMarkdown(g model.TextGrid) string {
	rows := g.Strings("")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}
	colCount := len(rows[0])

	var sb strings.Builder
	for rowIdx, row := range rows {
		sb.WriteString("|")
		for _, text := range row {
			// Replace newlines and pipes within cells
			text = strings.ReplaceAll(text, "\n", " ")
			text = strings.ReplaceAll(text, "|", "\\|")
			text = strings.TrimSpace(text)
			sb.WriteString(" ")
			sb.WriteString(text)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")

		if rowIdx == 0 {
			sb.WriteString("|")
			for i := 0; i < colCount; i++ {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteMarkdown writes each grid as a markdown table, separated by a
// blank line.
func WriteMarkdown(w io.Writer, grids []model.TextGrid) error {
	first := true
	for _, g := range grids {
		md := ToMarkdown(g)
		if md == "" {
			continue
		}
		if !first {
			md = "\n" + md
		}
		first = false
		if _, err := io.WriteString(w, md); err != nil {
			return err
		}
	}
	return nil
}

// ToJSONRows converts a grid to rows of nullable strings. Absent cells
// become nil and short rows keep their length.
func ToJSONRows(g model.TextGrid) [][]*string {
	out := make([][]*string, len(g))
	for i, row := range g {
		out[i] = make([]*string, len(row))
		for j, cell := range row {
			if cell.Valid {
				s := cell.Text
				out[i][j] = &s
			}
		}
	}
	return out
}

// WriteJSON writes the grids as a JSON array of tables, each an array of
// rows of string or null.
func WriteJSON(w io.Writer, grids []model.TextGrid) error {
	tables := make([][][]*string, len(grids))
	for i, g := range grids {
		tables[i] = ToJSONRows(g)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tables)
}
