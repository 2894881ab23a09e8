// Package paginate projects a document model onto a list of print-like
// pages. Pagination is logical grouping by section, not height-based page
// filling; pages are rebuilt wholesale on every parse and never mutated.
package paginate

import (
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/marker"
)

// ElementType identifies a page element variant.
type ElementType string

const (
	ElementTitlePage ElementType = "title_page"
	ElementTOC       ElementType = "toc"
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
	ElementTable     ElementType = "table"
)

// Element is one renderable unit on a page.
type Element struct {
	Type    ElementType
	Meta    *document.Metadata   // title page
	Entries []document.TOCEntry  // toc
	Text    string               // heading text or paragraph body
	Level   int                  // heading depth
	Token   string               // table marker token
	Markers []*marker.Entry      // paragraph: referenced marker entries
}

// Page is an ordered list of elements.
type Page struct {
	Elements []Element
}

// Paginate lays out the document: a title page iff the title is set, a TOC
// page iff any entries were derived, then one page per section.
func Paginate(doc *document.Document) []Page {
	var pages []Page

	if doc.Meta.Title != "" {
		pages = append(pages, Page{Elements: []Element{{Type: ElementTitlePage, Meta: &doc.Meta}}})
	}
	if entries := TOCEntries(doc.Sections); len(entries) > 0 {
		pages = append(pages, Page{Elements: []Element{{Type: ElementTOC, Entries: entries}}})
	}

	for i := range doc.Sections {
		pages = append(pages, Page{Elements: sectionElements(&doc.Sections[i], doc.Markers)})
	}
	return pages
}

func sectionElements(sec *document.Section, store *marker.Store) []Element {
	var els []Element
	if sec.Title != "" {
		els = append(els, Element{Type: ElementHeading, Text: sec.Title, Level: sec.Level})
	}
	for _, chunk := range strings.Split(sec.Body, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		switch {
		case isTableChunk(chunk, store):
			els = append(els, Element{Type: ElementTable, Token: chunk})
		case strings.HasPrefix(chunk, "### ") && !strings.Contains(chunk, "\n"):
			els = append(els, Element{Type: ElementHeading, Text: strings.TrimPrefix(chunk, "### "), Level: 4})
		case strings.HasPrefix(chunk, "## ") && !strings.Contains(chunk, "\n"):
			els = append(els, Element{Type: ElementHeading, Text: strings.TrimPrefix(chunk, "## "), Level: 3})
		default:
			els = append(els, Element{Type: ElementParagraph, Text: chunk, Markers: sec.Markers})
		}
	}
	return els
}

// isTableChunk reports whether chunk is exactly one token referencing a
// table entry.
func isTableChunk(chunk string, store *marker.Store) bool {
	if !marker.IsToken(chunk) {
		return false
	}
	e, ok := store.Lookup(chunk)
	return ok && e.Kind == marker.KindTable
}

// TOCEntries scans section bodies for sub-heading markers, two depths
// only, in document order.
func TOCEntries(sections []document.Section) []document.TOCEntry {
	var entries []document.TOCEntry
	for i := range sections {
		for _, line := range strings.Split(sections[i].Body, "\n") {
			line = strings.TrimSpace(line)
			if t, ok := strings.CutPrefix(line, "### "); ok {
				entries = append(entries, document.TOCEntry{Text: strings.TrimSpace(t), Level: 2})
			} else if t, ok := strings.CutPrefix(line, "## "); ok {
				entries = append(entries, document.TOCEntry{Text: strings.TrimSpace(t), Level: 1})
			}
		}
	}
	return entries
}
