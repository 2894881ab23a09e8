package latex

import (
	"regexp"
	"strings"
	"time"

	"github.com/debashish17/docview/internal/document"
)

var (
	titlePattern         = regexp.MustCompile(`\\title\{([^}]*)\}`)
	authorPattern        = regexp.MustCompile(`\\author\{([^}]*)\}`)
	datePattern          = regexp.MustCompile(`\\date\{([^}]*)\}`)
	documentClassPattern = regexp.MustCompile(`\\documentclass(?:\[[^\]]*\])?\{([^}]*)\}`)
	abstractPattern      = regexp.MustCompile(`(?s)\\begin\{abstract\}(.*?)\\end\{abstract\}`)
)

// extractMetadata pulls document-level fields out of the masked text.
// Each field is matched independently; missing fields stay empty. A
// \today date is resolved to the current date here, at extraction time.
func extractMetadata(text string) document.Metadata {
	var meta document.Metadata
	if m := titlePattern.FindStringSubmatch(text); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}
	if m := authorPattern.FindStringSubmatch(text); m != nil {
		meta.Author = strings.TrimSpace(m[1])
	}
	if m := datePattern.FindStringSubmatch(text); m != nil {
		meta.Date = resolveDate(m[1])
	}
	if m := documentClassPattern.FindStringSubmatch(text); m != nil {
		meta.DocumentClass = strings.TrimSpace(m[1])
	}
	if m := abstractPattern.FindStringSubmatch(text); m != nil {
		meta.Abstract = strings.TrimSpace(m[1])
	}
	return meta
}

func resolveDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == `\today` {
		return time.Now().Format("January 2, 2006")
	}
	return raw
}
