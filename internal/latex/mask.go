// Package latex parses the LaTeX subset: it masks math and table regions
// behind marker tokens, then extracts document metadata and section
// structure from the masked text.
package latex

import (
	"regexp"
	"strings"

	"github.com/debashish17/docview/internal/marker"
)

// Masking pass patterns. Pass order is load-bearing: display math before
// inline math before tables, so a later pass never matches inside content
// an earlier pass already replaced with a plain token.
var (
	dollarDisplayPattern  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	bracketDisplayPattern = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	equationPattern       = regexp.MustCompile(`(?s)\\begin\{equation\*?\}(.+?)\\end\{equation\*?\}`)

	// Inline math must not match across a line break: an unterminated
	// delimiter degrades to literal text instead of consuming the rest
	// of the document.
	dollarInlinePattern = regexp.MustCompile(`\$([^$\n]+?)\$`)
	parenInlinePattern  = regexp.MustCompile(`\\\(([^\n]*?)\\\)`)

	tableEnvPattern = regexp.MustCompile(`(?s)\\begin\{table\}(?:\[[^\]]*\])?(.*?)\\end\{table\}`)
	tabularPattern  = regexp.MustCompile(`(?s)\\begin\{tabular\}\{([^}]*)\}(.*?)\\end\{tabular\}`)
)

// Mask replaces math and table regions in text with tokens registered in
// store. Applying Mask to its own output is a no-op: tokens contain none
// of the delimiters the passes match on.
func Mask(text string, store *marker.Store) string {
	// 1. Display math, three equivalent syntaxes.
	text = replaceSubmatch(text, dollarDisplayPattern, func(payload string) string {
		return store.AddDisplayMath(strings.TrimSpace(payload))
	})
	text = replaceSubmatch(text, bracketDisplayPattern, func(payload string) string {
		return store.AddDisplayMath(strings.TrimSpace(payload))
	})
	text = replaceSubmatch(text, equationPattern, func(payload string) string {
		return store.AddDisplayMath(strings.TrimSpace(payload))
	})

	// 2. Inline math, two equivalent syntaxes.
	text = replaceSubmatch(text, dollarInlinePattern, func(payload string) string {
		return store.AddInlineMath(strings.TrimSpace(payload))
	})
	text = replaceSubmatch(text, parenInlinePattern, func(payload string) string {
		return store.AddInlineMath(strings.TrimSpace(payload))
	})

	// 3. Full table environments first, then bare tabular blocks.
	text = tableEnvPattern.ReplaceAllStringFunc(text, func(m string) string {
		return store.AddTable(strings.TrimSpace(m))
	})
	text = tabularPattern.ReplaceAllStringFunc(text, func(m string) string {
		return store.AddTable(strings.TrimSpace(m))
	})

	return text
}

// replaceSubmatch replaces every match of re with repl applied to the
// first capture group.
func replaceSubmatch(text string, re *regexp.Regexp, repl func(string) string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		sub := re.FindStringSubmatch(m)
		return repl(sub[1])
	})
}
