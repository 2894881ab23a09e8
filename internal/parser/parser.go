// Package parser is the pipeline entry point: it detects the input
// format, masks protected regions, and dispatches to the matching
// structural extractor. Parse never lets a failure escape; any error or
// panic inside the stage chain becomes a one-section "Error" document.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/htmldoc"
	"github.com/debashish17/docview/internal/latex"
	"github.com/debashish17/docview/internal/markdown"
	"github.com/debashish17/docview/internal/marker"
)

// Format selects an input front-end.
type Format string

const (
	FormatAuto     Format = ""
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var (
	latexCommandPattern = regexp.MustCompile(`\\(?:documentclass|begin|chapter|section|subsection|title|usepackage)\b`)
	htmlLeadPattern     = regexp.MustCompile(`(?is)^\s*<(?:!doctype|html|head|body|div|p|h[1-6]|ul|ol|table)\b`)
)

// DetectFormat classifies raw text. LaTeX commands win over everything;
// a leading markup tag means HTML; the rest is treated as markdown.
func DetectFormat(text string) Format {
	if latexCommandPattern.MatchString(text) {
		return FormatLaTeX
	}
	if htmlLeadPattern.MatchString(text) {
		return FormatHTML
	}
	return FormatMarkdown
}

// Parse runs the full chain: mask, extract, invariant checks. Every call
// owns a fresh marker store, so concurrent parses cannot interfere. The
// result is always a usable document model, degenerate on failure.
func Parse(text string, format Format) (doc *document.Document) {
	defer func() {
		if r := recover(); r != nil {
			doc = errorDocument(fmt.Sprintf("%v", r))
		}
	}()

	if format == FormatAuto {
		format = DetectFormat(text)
	}

	store := marker.NewStore()
	masked := latex.Mask(text, store)

	var err error
	switch format {
	case FormatHTML:
		doc, err = htmldoc.Extract(masked, store)
	case FormatMarkdown:
		doc, err = markdown.Extract(masked, store)
	default:
		doc, err = latex.Extract(masked, store)
	}
	if err != nil {
		return errorDocument(err.Error())
	}

	// Non-empty input always yields at least one renderable section.
	if len(doc.Sections) == 0 && strings.TrimSpace(text) != "" {
		doc.Sections = []document.Section{{Title: "Content", Level: 1}}
	}
	return doc
}

// errorDocument wraps a failure description in a degenerate but valid
// document model.
func errorDocument(msg string) *document.Document {
	return &document.Document{
		Sections: []document.Section{{
			Title: "Error",
			Body:  "The document could not be parsed: " + msg,
			Level: 1,
		}},
		Markers: marker.NewStore(),
	}
}
