// Package export converts a render tree into downloadable document
// formats. Only DOCX is supported; the hosting application streams the
// bytes as an attachment.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/debashish17/docview/internal/render"
	"github.com/fumiama/go-docx"
)

// Heading sizes in half-points, indexed by heading level (0 = title).
var headingSizes = []string{"44", "36", "32", "28", "26", "24", "22"}

// DOCX flattens a preview render tree into a Word document.
func DOCX(tree *render.Node) ([]byte, error) {
	w := docx.New().WithDefaultTheme()
	writeNode(w, tree)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeNode(w *docx.Docx, n *render.Node) {
	switch n.Type {
	case render.NodeTitleBlock:
		w.AddParagraph().Justification("center").AddText(n.Text).Size(headingSizes[0]).Bold()
		for _, c := range n.Children {
			w.AddParagraph().Justification("center").AddText(c.Text)
		}
	case render.NodeTOC:
		w.AddParagraph().AddText("Contents").Size(headingSizes[2]).Bold()
		for _, c := range n.Children {
			w.AddParagraph().AddText(strings.Repeat("    ", c.Level-1) + c.Text)
		}
	case render.NodeHeading:
		level := min(max(n.Level, 1), len(headingSizes)-1)
		w.AddParagraph().AddText(n.Text).Size(headingSizes[level]).Bold()
	case render.NodeParagraph, render.NodeQuote:
		writeRuns(w.AddParagraph(), n.Children)
	case render.NodeList:
		for _, item := range n.Children {
			writeRuns(w.AddParagraph(), item.Children)
		}
	case render.NodeCodeBlock, render.NodeSource:
		for _, line := range strings.Split(n.Text, "\n") {
			w.AddParagraph().AddText(line)
		}
	case render.NodeTable:
		writeTable(w, n)
	default:
		for _, c := range n.Children {
			writeNode(w, c)
		}
	}
}

// writeRuns lays out inline nodes as styled runs inside one paragraph.
func writeRuns(para *docx.Paragraph, nodes []*render.Node) {
	for _, c := range nodes {
		switch c.Type {
		case render.NodeBold:
			para.AddText(c.Text).Bold()
		case render.NodeItalic:
			para.AddText(c.Text).Italic()
		case render.NodeUnderline:
			para.AddText(c.Text).Underline("single")
		case render.NodeCode:
			para.AddText(c.Text)
		case render.NodeMath, render.NodeSup, render.NodeSub:
			para.AddText(c.Text).Italic()
		case render.NodeMathError:
			para.AddText("[math error: " + c.Text + "]").Color("CC0000")
		case render.NodeList, render.NodeQuote, render.NodeCodeBlock:
			// Nested blocks flatten to their text content.
			para.AddText(flatten(c))
		default:
			para.AddText(c.Text)
		}
	}
}

// writeTable emits rows as tab-separated paragraphs, header row bold, the
// caption beneath.
func writeTable(w *docx.Docx, table *render.Node) {
	for _, row := range table.Children {
		if row.Type != render.NodeTableRow {
			continue
		}
		para := w.AddParagraph()
		for i, cell := range row.Children {
			if i > 0 {
				para.AddText("\t")
			}
			t := para.AddText(flatten(cell))
			if row.Header {
				t.Bold()
			}
		}
	}
	if table.Text != "" {
		w.AddParagraph().AddText(table.Text).Italic()
	}
}

func flatten(n *render.Node) string {
	var b strings.Builder
	var walk func(*render.Node)
	walk = func(n *render.Node) {
		b.WriteString(n.Text)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
