// Package markdown builds a document model from the lightweight
// pseudo-Markdown the generation backend emits: a single # heading is the
// document title and ## headings are the section unit.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/latex"
	"github.com/debashish17/docview/internal/marker"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extract parses masked markdown into a document model. Math and table
// regions are expected to be masked already, so their tokens pass through
// the AST walk as plain text.
func Extract(masked string, store *marker.Store) (*document.Document, error) {
	src := []byte(masked)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	b := &builder{src: src}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n)
	}
	b.flush()

	doc := &document.Document{
		Meta:     document.Metadata{Title: b.title},
		Sections: b.sections,
		Markers:  store,
		Tables:   buildTables(store),
	}
	synthesizeContent(doc, masked)
	return doc, nil
}

// synthesizeContent applies the no-headings fallback: headingless input
// degrades to a single synthetic "Content" section rather than an empty
// document.
func synthesizeContent(doc *document.Document, masked string) {
	if len(doc.Sections) == 1 && doc.Sections[0].Title == "" {
		doc.Sections[0].Title = "Content"
		doc.Sections[0].Level = 1
	}
	if len(doc.Sections) == 0 && strings.TrimSpace(masked) != "" {
		doc.Sections = []document.Section{{Title: "Content", Body: strings.TrimSpace(masked), Level: 1}}
	}
}

type builder struct {
	src      []byte
	title    string
	sections []document.Section
	current  *document.Section
	chunks   []string
}

func (b *builder) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		title := string(node.Text(b.src))
		switch {
		case node.Level == 1 && b.title == "":
			b.title = title
		case node.Level <= 2:
			b.flush()
			b.current = &document.Section{Title: title, Level: 2}
		case node.Level == 3:
			b.append("## " + title)
		default:
			b.append("### " + title)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		b.append(latex.CodeStart + strings.Trim(blockLines(n, b.src), "\n") + latex.CodeEnd)
	case *ast.List:
		b.append(b.list(node))
	case *ast.Blockquote:
		var inner []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := extractText(c, b.src); t != "" {
				inner = append(inner, t)
			}
		}
		b.append(latex.QuoteStart + strings.Join(inner, "\n") + latex.QuoteEnd)
	default:
		if t := extractText(n, b.src); t != "" {
			b.append(t)
		}
	}
}

func (b *builder) list(node *ast.List) string {
	var lines []string
	i := 0
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		i++
		t := extractText(item, b.src)
		if t == "" {
			continue
		}
		if node.IsOrdered() {
			lines = append(lines, fmt.Sprintf("%d. %s", i, t))
		} else {
			lines = append(lines, "• "+t)
		}
	}
	return latex.ListStart + "\n" + strings.Join(lines, "\n") + "\n" + latex.ListEnd
}

func (b *builder) append(chunk string) {
	b.chunks = append(b.chunks, chunk)
}

// flush closes the current section, joining collected chunks with the
// blank-line paragraph delimiter.
func (b *builder) flush() {
	body := strings.Join(b.chunks, "\n\n")
	b.chunks = nil
	if b.current != nil {
		b.current.Body = body
		b.sections = append(b.sections, *b.current)
		b.current = nil
		return
	}
	// Chunks collected before any ## heading form a leading untitled
	// section, matching the LaTeX path's preamble handling.
	if strings.TrimSpace(body) != "" {
		b.sections = append(b.sections, document.Section{Body: body, Level: 2})
	}
}

// blockLines collects the raw source lines of a block node.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// extractText gets the text content of a goldmark AST node, keeping
// emphasis markers intact since the inline formatter consumes the same
// syntax.
func extractText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Kind() == ast.KindParagraph {
		return strings.TrimSpace(blockLines(n, src))
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock {
			if t := extractText(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(t)
			}
			continue
		}
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// buildTables parses TABLE marker payloads, same discovery-order indexing
// as the LaTeX path.
func buildTables(store *marker.Store) []document.TableBlock {
	return latex.TablesFromStore(store)
}
