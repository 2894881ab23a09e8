package render

import (
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/inline"
)

type rowMode int

const (
	modeUndeclared rowMode = iota
	modeHeader
	modeBody
)

// renderTableToken resolves a table token through the document's table
// list and renders header/body rows.
func (r *Renderer) renderTableToken(token string, doc *document.Document) *Node {
	tbl := doc.TableByToken(token)
	if tbl == nil {
		return &Node{Type: NodeText, Text: token}
	}
	return r.renderTable(tbl, doc)
}

func (r *Renderer) renderTable(tbl *document.TableBlock, doc *document.Document) *Node {
	node := &Node{Type: NodeTable, Text: tbl.Caption}
	if tbl.Caption != "" {
		node.Children = append(node.Children, &Node{Type: NodeCaption, Text: tbl.Caption})
	}

	headerSeen := false
	mode := modeUndeclared
	for _, line := range strings.Split(tbl.Rows, "\n") {
		line, next, ended := classifyLine(line, mode)
		if ended {
			break
		}
		line = strings.TrimSpace(line)
		if line != "" {
			header := isHeaderRow(next, headerSeen)
			if header {
				headerSeen = true
			}
			node.Children = append(node.Children, r.renderRow(line, header, doc))
		}
		mode = next
	}
	return node
}

// classifyLine applies rule markers to the row mode and strips them from
// the line. \toprule and \hline open header mode, \midrule switches to
// body, \bottomrule ends the table.
func classifyLine(line string, mode rowMode) (string, rowMode, bool) {
	if strings.Contains(line, `\bottomrule`) {
		return "", mode, true
	}
	if strings.Contains(line, `\toprule`) || strings.Contains(line, `\hline`) {
		line = strings.ReplaceAll(line, `\toprule`, "")
		line = strings.ReplaceAll(line, `\hline`, "")
		mode = modeHeader
	}
	if strings.Contains(line, `\midrule`) {
		line = strings.ReplaceAll(line, `\midrule`, "")
		mode = modeBody
	}
	return line, mode, false
}

// isHeaderRow decides row placement. Rows before any rule marker default
// to header only while no header row has been collected; afterwards they
// fall to the body. Known limitation for tables with no rule markers at
// all: only the first row becomes a header.
func isHeaderRow(mode rowMode, headerSeen bool) bool {
	switch mode {
	case modeHeader:
		return true
	case modeBody:
		return false
	default:
		return !headerSeen
	}
}

// renderRow splits a row on the column separator, stripping the
// row-continuation marker, and inline-formats each cell so masked math
// inside cells resolves.
func (r *Renderer) renderRow(line string, header bool, doc *document.Document) *Node {
	line = strings.TrimSuffix(strings.TrimSpace(line), `\\`)
	row := &Node{Type: NodeTableRow, Header: header}
	for _, cell := range strings.Split(line, "&") {
		cellNode := &Node{Type: NodeTableCell, Header: header}
		cellNode.Children = r.renderRuns(inline.Format(strings.TrimSpace(cell), doc.Markers), doc)
		row.Children = append(row.Children, cellNode)
	}
	return row
}
