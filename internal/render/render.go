// Package render walks pages and the marker store to produce the final
// visual tree: a JSON-serializable node structure convertible to HTML.
package render

import (
	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/inline"
	"github.com/debashish17/docview/internal/paginate"
)

// NodeType identifies a render tree node.
type NodeType string

const (
	NodeDocument   NodeType = "document"
	NodePage       NodeType = "page"
	NodeTitleBlock NodeType = "title"
	NodeAuthor     NodeType = "author"
	NodeDate       NodeType = "date"
	NodeAbstract   NodeType = "abstract"
	NodeTOC        NodeType = "toc"
	NodeTOCItem    NodeType = "toc_item"
	NodeHeading    NodeType = "heading"
	NodeParagraph  NodeType = "paragraph"
	NodeText       NodeType = "text"
	NodeBold       NodeType = "bold"
	NodeItalic     NodeType = "italic"
	NodeUnderline  NodeType = "underline"
	NodeCode       NodeType = "code"
	NodeSup        NodeType = "superscript"
	NodeSub        NodeType = "subscript"
	NodeMath       NodeType = "math"
	NodeMathError  NodeType = "math_error"
	NodeList       NodeType = "list"
	NodeListItem   NodeType = "list_item"
	NodeQuote      NodeType = "blockquote"
	NodeCodeBlock  NodeType = "code_block"
	NodeTable      NodeType = "table"
	NodeCaption    NodeType = "caption"
	NodeTableRow   NodeType = "table_row"
	NodeTableCell  NodeType = "table_cell"
	NodeSource     NodeType = "source"
)

// Node is one element of the render tree.
type Node struct {
	Type     NodeType `json:"type"`
	Text     string   `json:"text,omitempty"`
	Level    int      `json:"level,omitempty"`
	Display  bool     `json:"display,omitempty"`
	Header   bool     `json:"header,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Renderer resolves marker tokens and lays out text runs. The zero value
// is not usable; construct with New.
type Renderer struct {
	math MathRenderer
}

// New returns a renderer delegating math typesetting to math. A nil math
// renderer falls back to the plain-text typesetter.
func New(math MathRenderer) *Renderer {
	if math == nil {
		math = PlainMath{}
	}
	return &Renderer{math: math}
}

// Preview renders the full structural view: pages with title block, TOC,
// headings, paragraphs and tables.
func (r *Renderer) Preview(pages []paginate.Page, doc *document.Document) *Node {
	root := &Node{Type: NodeDocument}
	for i := range pages {
		pageNode := &Node{Type: NodePage}
		for j := range pages[i].Elements {
			pageNode.Children = append(pageNode.Children, r.renderElement(&pages[i].Elements[j], doc))
		}
		root.Children = append(root.Children, pageNode)
	}
	return root
}

// Code renders the read-only source view: the original string verbatim,
// no parsing.
func (r *Renderer) Code(src string) *Node {
	return &Node{Type: NodeSource, Text: src}
}

func (r *Renderer) renderElement(el *paginate.Element, doc *document.Document) *Node {
	switch el.Type {
	case paginate.ElementTitlePage:
		return r.renderTitle(el.Meta)
	case paginate.ElementTOC:
		toc := &Node{Type: NodeTOC}
		for _, e := range el.Entries {
			toc.Children = append(toc.Children, &Node{Type: NodeTOCItem, Text: e.Text, Level: e.Level})
		}
		return toc
	case paginate.ElementHeading:
		return &Node{Type: NodeHeading, Text: el.Text, Level: el.Level}
	case paginate.ElementTable:
		return r.renderTableToken(el.Token, doc)
	default:
		p := &Node{Type: NodeParagraph}
		p.Children = r.renderRuns(inline.Format(el.Text, doc.Markers), doc)
		return p
	}
}

func (r *Renderer) renderTitle(meta *document.Metadata) *Node {
	title := &Node{Type: NodeTitleBlock, Text: meta.Title}
	if meta.Author != "" {
		title.Children = append(title.Children, &Node{Type: NodeAuthor, Text: meta.Author})
	}
	if meta.Date != "" {
		title.Children = append(title.Children, &Node{Type: NodeDate, Text: meta.Date})
	}
	if meta.Abstract != "" {
		title.Children = append(title.Children, &Node{Type: NodeAbstract, Text: meta.Abstract})
	}
	return title
}

func (r *Renderer) renderRuns(runs []inline.Run, doc *document.Document) []*Node {
	var nodes []*Node
	for i := range runs {
		nodes = append(nodes, r.renderRun(&runs[i], doc))
	}
	return nodes
}

func (r *Renderer) renderRun(run *inline.Run, doc *document.Document) *Node {
	switch run.Kind {
	case inline.Bold:
		return &Node{Type: NodeBold, Text: run.Text}
	case inline.Italic:
		return &Node{Type: NodeItalic, Text: run.Text}
	case inline.Underline:
		return &Node{Type: NodeUnderline, Text: run.Text}
	case inline.InlineCode:
		return &Node{Type: NodeCode, Text: run.Text}
	case inline.Superscript:
		return &Node{Type: NodeSup, Text: run.Text}
	case inline.Subscript:
		return &Node{Type: NodeSub, Text: run.Text}
	case inline.MathRef:
		entry, ok := doc.Markers.Lookup(run.Token)
		if !ok {
			return &Node{Type: NodeText, Text: run.Token}
		}
		return r.renderMath(entry.Payload, entry.DisplayStyle)
	case inline.TableRef:
		return r.renderTableToken(run.Token, doc)
	case inline.ListBlock:
		list := &Node{Type: NodeList}
		for _, item := range run.Items {
			list.Children = append(list.Children, &Node{Type: NodeListItem, Children: r.renderRuns(item, doc)})
		}
		return list
	case inline.BlockQuote:
		return &Node{Type: NodeQuote, Children: r.renderRuns(run.Children, doc)}
	case inline.CodeBlock:
		return &Node{Type: NodeCodeBlock, Text: run.Text}
	default:
		return &Node{Type: NodeText, Text: run.Text}
	}
}
