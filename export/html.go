package export

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tablescan/model"
)

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// HTMLNode builds a <table> node for one grid. Absent cells are rendered
// as empty <td> elements so every row keeps its column count.
func HTMLNode(g model.TextGrid) *html.Node {
	table := element(atom.Table)
	body := element(atom.Tbody)
	table.AppendChild(body)

	for _, row := range g.Strings("") {
		tr := element(atom.Tr)
		for _, text := range row {
			td := element(atom.Td)
			if text != "" {
				td.AppendChild(&html.Node{Type: html.TextNode, Data: text})
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	return table
}

// WriteHTML renders each grid as an HTML table, one per line.
func WriteHTML(w io.Writer, grids []model.TextGrid) error {
	for _, g := range grids {
		if err := html.Render(w, HTMLNode(g)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
