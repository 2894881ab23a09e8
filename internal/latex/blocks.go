package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Bracketed block markers. Block environments must be matched as
// start/end pairs downstream, so they are rewritten into a marker pair
// rather than handled by single-line patterns.
const (
	ListStart  = "[[LIST]]"
	ListEnd    = "[[/LIST]]"
	QuoteStart = "[[QUOTE]]"
	QuoteEnd   = "[[/QUOTE]]"
	CodeStart  = "[[CODE]]"
	CodeEnd    = "[[/CODE]]"
)

var (
	itemizePattern   = regexp.MustCompile(`(?s)\\begin\{itemize\}(.*?)\\end\{itemize\}`)
	enumeratePattern = regexp.MustCompile(`(?s)\\begin\{enumerate\}(.*?)\\end\{enumerate\}`)
	quoteEnvPattern  = regexp.MustCompile(`(?s)\\begin\{(?:quote|quotation)\}(.*?)\\end\{(?:quote|quotation)\}`)
	verbatimPattern  = regexp.MustCompile(`(?s)\\begin\{verbatim\}(.*?)\\end\{verbatim\}`)
)

// replaceBlockEnvironments rewrites list/quote/code environments into
// bracketed block markers. Items inside a block are joined with single
// newlines so the block survives paragraph splitting as one chunk.
func replaceBlockEnvironments(text string) string {
	text = replaceSubmatch(text, itemizePattern, func(body string) string {
		return wrapList(splitItems(body), false)
	})
	text = replaceSubmatch(text, enumeratePattern, func(body string) string {
		return wrapList(splitItems(body), true)
	})
	text = replaceSubmatch(text, quoteEnvPattern, func(body string) string {
		return QuoteStart + strings.TrimSpace(body) + QuoteEnd
	})
	text = replaceSubmatch(text, verbatimPattern, func(body string) string {
		return CodeStart + strings.Trim(body, "\n") + CodeEnd
	})
	return text
}

// splitItems breaks an itemize/enumerate body on \item commands.
func splitItems(body string) []string {
	parts := strings.Split(body, `\item`)
	var items []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

func wrapList(items []string, ordered bool) string {
	var b strings.Builder
	b.WriteString(ListStart)
	for i, item := range items {
		b.WriteString("\n")
		if ordered {
			fmt.Fprintf(&b, "%d. %s", i+1, item)
		} else {
			b.WriteString("• " + item)
		}
	}
	b.WriteString("\n" + ListEnd)
	return b.String()
}
