// Package htmldoc builds a document model from pasted HTML, walking the
// node tree and mapping headings onto the two supported section depths.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/latex"
	"github.com/debashish17/docview/internal/marker"
	"golang.org/x/net/html"
)

// Extract parses masked HTML into a document model. h1 supplies the
// document title, h2 opens a section, deeper headings become sub-heading
// markers inside the current body.
func Extract(masked string, store *marker.Store) (*document.Document, error) {
	root, err := html.Parse(strings.NewReader(masked))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &builder{}
	if title := findTitle(root); title != "" {
		b.title = title
	}
	if body := findBody(root); body != nil {
		b.walk(body)
	} else {
		b.walk(root)
	}
	b.flush()

	doc := &document.Document{
		Meta:     document.Metadata{Title: b.title},
		Sections: b.sections,
		Markers:  store,
		Tables:   latex.TablesFromStore(store),
	}
	if len(doc.Sections) == 1 && doc.Sections[0].Title == "" {
		doc.Sections[0].Title = "Content"
		doc.Sections[0].Level = 1
	}
	if len(doc.Sections) == 0 && strings.TrimSpace(masked) != "" {
		doc.Sections = []document.Section{{Title: "Content", Body: textContent(root), Level: 1}}
	}
	return doc, nil
}

type builder struct {
	title    string
	sections []document.Section
	current  *document.Section
	chunks   []string
}

func (b *builder) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if level := headingLevel(n.Data); level > 0 {
			b.heading(level, textContent(n))
			return
		}
		switch n.Data {
		case "script", "style", "nav", "footer", "header":
			return
		case "p", "td", "figcaption":
			if t := textContent(n); t != "" {
				b.append(t)
			}
			return
		case "ul", "ol":
			b.append(listBlock(n, n.Data == "ol"))
			return
		case "blockquote":
			if t := textContent(n); t != "" {
				b.append(latex.QuoteStart + t + latex.QuoteEnd)
			}
			return
		case "pre":
			if t := textContent(n); t != "" {
				b.append(latex.CodeStart + strings.Trim(t, "\n") + latex.CodeEnd)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

func (b *builder) heading(level int, title string) {
	switch {
	case level == 1 && b.title == "":
		b.title = title
	case level <= 2:
		b.flush()
		b.current = &document.Section{Title: title, Level: 2}
	case level == 3:
		b.append("## " + title)
	default:
		b.append("### " + title)
	}
}

func (b *builder) append(chunk string) {
	b.chunks = append(b.chunks, chunk)
}

func (b *builder) flush() {
	body := strings.Join(b.chunks, "\n\n")
	b.chunks = nil
	if b.current != nil {
		b.current.Body = body
		b.sections = append(b.sections, *b.current)
		b.current = nil
		return
	}
	if strings.TrimSpace(body) != "" {
		b.sections = append(b.sections, document.Section{Body: body, Level: 2})
	}
}

func listBlock(n *html.Node, ordered bool) string {
	var lines []string
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		t := textContent(c)
		if t == "" {
			continue
		}
		i++
		if ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", i, t))
		} else {
			lines = append(lines, "• "+t)
		}
	}
	return latex.ListStart + "\n" + strings.Join(lines, "\n") + "\n" + latex.ListEnd
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
