// Package inline converts a paragraph of masked, normalized text into a
// flat sequence of typed runs. It is a pure function of its input and a
// read-only marker store.
package inline

import (
	"regexp"
	"strings"

	"github.com/debashish17/docview/internal/latex"
	"github.com/debashish17/docview/internal/marker"
)

// Kind identifies a run variant.
type Kind int

const (
	PlainText Kind = iota
	Bold
	Italic
	Underline
	InlineCode
	Superscript
	Subscript
	MathRef
	TableRef
	ListBlock
	BlockQuote
	CodeBlock
)

// Run is one typed span of paragraph content. Text carries the literal
// content for flat kinds and code blocks; Token references the marker
// store for math and table runs; Items and Children hold nested content
// for block kinds.
type Run struct {
	Kind     Kind
	Text     string
	Token    string
	Items    [][]Run // ListBlock: one run sequence per item
	Children []Run   // BlockQuote: nested formatted content
}

type blockMarker struct {
	start, end string
	kind       Kind
}

// Block wrappers resolve before flat patterns: the pair is located, and
// everything between is consumed as the block's content.
var blockMarkers = []blockMarker{
	{latex.ListStart, latex.ListEnd, ListBlock},
	{latex.QuoteStart, latex.QuoteEnd, BlockQuote},
	{latex.CodeStart, latex.CodeEnd, CodeBlock},
}

// itemPrefixPattern strips the bullet or number prefix list items carry
// in block-marker form; the renderer supplies its own list styling.
var itemPrefixPattern = regexp.MustCompile(`^(?:• |\d+\. )`)

type flatPattern struct {
	re   *regexp.Regexp
	kind Kind
}

// Flat patterns match single-pass left to right; the leftmost match wins
// and matching never backtracks into a consumed span. Underline is listed
// before italic so __x__ is not eaten as empty emphasis.
var flatPatterns = []flatPattern{
	{marker.TokenPattern, MathRef},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), Bold},
	{regexp.MustCompile(`__(.+?)__`), Underline},
	{regexp.MustCompile(`\*([^*]+)\*`), Italic},
	{regexp.MustCompile("`([^`]+)`"), InlineCode},
	{regexp.MustCompile(`\^\{([^}]*)\}`), Superscript},
	{regexp.MustCompile(`~\{([^}]*)\}`), Subscript},
}

// Format converts text into runs. An unmatched block-start marker extends
// its block to the end of the input rather than dropping content.
func Format(text string, store *marker.Store) []Run {
	var runs []Run
	for text != "" {
		bm, start := earliestBlock(text)
		if bm == nil {
			runs = append(runs, formatFlat(text, store)...)
			break
		}
		runs = append(runs, formatFlat(text[:start], store)...)
		rest := text[start+len(bm.start):]
		var inner string
		if end := strings.Index(rest, bm.end); end >= 0 {
			inner = rest[:end]
			text = rest[end+len(bm.end):]
		} else {
			inner = rest
			text = ""
		}
		runs = append(runs, blockRun(bm.kind, inner, store))
	}
	return runs
}

func earliestBlock(text string) (*blockMarker, int) {
	best := -1
	var found *blockMarker
	for i := range blockMarkers {
		if idx := strings.Index(text, blockMarkers[i].start); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			found = &blockMarkers[i]
		}
	}
	return found, best
}

func blockRun(kind Kind, inner string, store *marker.Store) Run {
	switch kind {
	case ListBlock:
		var items [][]Run
		for _, line := range strings.Split(inner, "\n") {
			line = itemPrefixPattern.ReplaceAllString(strings.TrimSpace(line), "")
			if line == "" {
				continue
			}
			items = append(items, Format(line, store))
		}
		return Run{Kind: ListBlock, Items: items}
	case BlockQuote:
		return Run{Kind: BlockQuote, Children: Format(strings.TrimSpace(inner), store)}
	default:
		return Run{Kind: CodeBlock, Text: strings.Trim(inner, "\n")}
	}
}

// formatFlat scans text left to right for the flat inline patterns.
func formatFlat(text string, store *marker.Store) []Run {
	var runs []Run
	for text != "" {
		pat, loc := earliestFlat(text)
		if pat == nil {
			runs = append(runs, Run{Kind: PlainText, Text: text})
			break
		}
		if loc[0] > 0 {
			runs = append(runs, Run{Kind: PlainText, Text: text[:loc[0]]})
		}
		match := text[loc[0]:loc[1]]
		runs = append(runs, flatRun(pat, match, store))
		text = text[loc[1]:]
	}
	return runs
}

func earliestFlat(text string) (*flatPattern, []int) {
	var found *flatPattern
	var at []int
	for i := range flatPatterns {
		loc := flatPatterns[i].re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if at == nil || loc[0] < at[0] {
			found = &flatPatterns[i]
			at = loc
		}
	}
	return found, at
}

func flatRun(pat *flatPattern, match string, store *marker.Store) Run {
	if pat.kind == MathRef {
		entry, ok := store.Lookup(match)
		if !ok {
			// Token-shaped text with no registered entry stays literal.
			return Run{Kind: PlainText, Text: match}
		}
		if entry.Kind == marker.KindTable {
			return Run{Kind: TableRef, Token: match}
		}
		return Run{Kind: MathRef, Token: match}
	}
	sub := pat.re.FindStringSubmatch(match)
	return Run{Kind: pat.kind, Text: sub[1]}
}
