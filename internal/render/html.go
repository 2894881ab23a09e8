package render

import (
	"fmt"
	"html"
	"strings"
)

// HTML converts a render tree into an HTML fragment. All text content is
// escaped; node types map onto semantic elements so the fragment can be
// styled by the hosting page.
func HTML(node *Node) string {
	var b strings.Builder
	writeHTML(&b, node)
	return b.String()
}

func writeHTML(b *strings.Builder, n *Node) {
	esc := html.EscapeString(n.Text)
	switch n.Type {
	case NodeDocument:
		b.WriteString(`<div class="document">`)
		writeChildren(b, n)
		b.WriteString(`</div>`)
	case NodePage:
		b.WriteString(`<section class="page">`)
		writeChildren(b, n)
		b.WriteString(`</section>`)
	case NodeTitleBlock:
		b.WriteString(`<header class="title-page"><h1>` + esc + `</h1>`)
		writeChildren(b, n)
		b.WriteString(`</header>`)
	case NodeAuthor:
		b.WriteString(`<p class="author">` + esc + `</p>`)
	case NodeDate:
		b.WriteString(`<p class="date">` + esc + `</p>`)
	case NodeAbstract:
		b.WriteString(`<p class="abstract">` + esc + `</p>`)
	case NodeTOC:
		b.WriteString(`<nav class="toc"><ol>`)
		writeChildren(b, n)
		b.WriteString(`</ol></nav>`)
	case NodeTOCItem:
		fmt.Fprintf(b, `<li class="toc-level-%d">%s</li>`, n.Level, esc)
	case NodeHeading:
		level := n.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		fmt.Fprintf(b, "<h%d>%s</h%d>", level, esc, level)
	case NodeParagraph:
		b.WriteString("<p>")
		writeChildren(b, n)
		b.WriteString("</p>")
	case NodeBold:
		b.WriteString("<strong>" + esc + "</strong>")
	case NodeItalic:
		b.WriteString("<em>" + esc + "</em>")
	case NodeUnderline:
		b.WriteString("<u>" + esc + "</u>")
	case NodeCode:
		b.WriteString("<code>" + esc + "</code>")
	case NodeSup:
		b.WriteString("<sup>" + esc + "</sup>")
	case NodeSub:
		b.WriteString("<sub>" + esc + "</sub>")
	case NodeMath:
		if n.Display {
			b.WriteString(`<div class="math math-display">` + esc + `</div>`)
		} else {
			b.WriteString(`<span class="math">` + esc + `</span>`)
		}
	case NodeMathError:
		b.WriteString(`<span class="math-error">` + esc + `</span>`)
	case NodeList:
		b.WriteString("<ul>")
		writeChildren(b, n)
		b.WriteString("</ul>")
	case NodeListItem:
		b.WriteString("<li>")
		writeChildren(b, n)
		b.WriteString("</li>")
	case NodeQuote:
		b.WriteString("<blockquote>")
		writeChildren(b, n)
		b.WriteString("</blockquote>")
	case NodeCodeBlock:
		b.WriteString("<pre><code>" + esc + "</code></pre>")
	case NodeTable:
		b.WriteString(`<figure class="table"><table>`)
		writeTableRows(b, n)
		b.WriteString("</table>")
		if n.Text != "" {
			b.WriteString("<figcaption>" + esc + "</figcaption>")
		}
		b.WriteString("</figure>")
	case NodeCaption:
		// Emitted as a figcaption by the table branch.
	case NodeTableRow:
		b.WriteString("<tr>")
		writeChildren(b, n)
		b.WriteString("</tr>")
	case NodeTableCell:
		tag := "td"
		if n.Header {
			tag = "th"
		}
		b.WriteString("<" + tag + ">")
		writeChildren(b, n)
		b.WriteString("</" + tag + ">")
	case NodeSource:
		b.WriteString(`<pre class="source">` + esc + `</pre>`)
	default:
		b.WriteString(esc)
	}
}

func writeChildren(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		writeHTML(b, c)
	}
}

// writeTableRows groups row children into thead/tbody.
func writeTableRows(b *strings.Builder, table *Node) {
	var header, body []*Node
	for _, c := range table.Children {
		switch {
		case c.Type == NodeCaption:
			// Rendered by the table branch.
		case c.Header:
			header = append(header, c)
		default:
			body = append(body, c)
		}
	}
	if len(header) > 0 {
		b.WriteString("<thead>")
		for _, row := range header {
			writeHTML(b, row)
		}
		b.WriteString("</thead>")
	}
	if len(body) > 0 {
		b.WriteString("<tbody>")
		for _, row := range body {
			writeHTML(b, row)
		}
		b.WriteString("</tbody>")
	}
}
