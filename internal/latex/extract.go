package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/marker"
)

var (
	chapterPattern       = regexp.MustCompile(`\\chapter\*?\{([^}]*)\}`)
	sectionPattern       = regexp.MustCompile(`\\section\*?\{([^}]*)\}`)
	subsectionPattern    = regexp.MustCompile(`\\subsection\*?\{([^}]*)\}`)
	subsubsectionPattern = regexp.MustCompile(`\\subsubsection\*?\{([^}]*)\}`)

	commentPattern = regexp.MustCompile(`(?m)(^|[^\\])%.*$`)

	// Document-level noise: directives already consumed by the metadata
	// step or meaningless outside a real TeX engine.
	noisePatterns = []*regexp.Regexp{
		abstractPattern,
		documentClassPattern,
		titlePattern,
		authorPattern,
		datePattern,
		regexp.MustCompile(`\\usepackage(?:\[[^\]]*\])?\{[^}]*\}`),
		regexp.MustCompile(`\\(?:maketitle|tableofcontents|listoffigures|listoftables|newpage|clearpage|centering|noindent)\b`),
		regexp.MustCompile(`\\(?:begin|end)\{document\}`),
		regexp.MustCompile(`\\label\{[^}]*\}`),
	}

	// Inline emphasis commands normalized to marker syntax understood by
	// the inline formatter.
	inlineRewrites = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\\textbf\{([^{}]*)\}`), "**$1**"},
		{regexp.MustCompile(`\\(?:textit|emph)\{([^{}]*)\}`), "*$1*"},
		{regexp.MustCompile(`\\underline\{([^{}]*)\}`), "__${1}__"},
		{regexp.MustCompile(`\\texttt\{([^{}]*)\}`), "`$1`"},
		{regexp.MustCompile(`\\textsuperscript\{([^{}]*)\}`), "^{$1}"},
		{regexp.MustCompile(`\\textsubscript\{([^{}]*)\}`), "~{$1}"},
	}

	bracedCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?\{([^{}]*)\}`)
	bareCommandPattern   = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	blankRunPattern      = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

	captionPattern         = regexp.MustCompile(`\\caption\{([^}]*)\}`)
	unterminatedEnvPattern = regexp.MustCompile(`\\(?:begin|end)\{[^}\n]*(?:\n|$)`)
)

// maxStripPasses bounds the iterative brace-stripping loop so pathological
// nesting cannot spin forever.
const maxStripPasses = 5

// Extract turns masked text into a document model. The returned document
// always has at least one section when text is non-empty; a missing
// heading structure falls back to a single synthetic "Content" section.
func Extract(masked string, store *marker.Store) (*document.Document, error) {
	if err := validate(masked); err != nil {
		return nil, err
	}

	meta := extractMetadata(masked)
	body := commentPattern.ReplaceAllString(masked, "$1")

	var sections []document.Section
	if heads := chapterPattern.FindAllStringSubmatchIndex(body, -1); len(heads) > 0 {
		sections = splitSections(body, heads, 1, true)
	} else if heads := sectionPattern.FindAllStringSubmatchIndex(body, -1); len(heads) > 0 {
		sections = splitSections(body, heads, 2, false)
	} else if processed := processBody(body, false); processed != "" {
		sections = []document.Section{{Title: "Content", Body: processed, Level: 1}}
	}

	doc := &document.Document{
		Meta:     meta,
		Sections: sections,
		Markers:  store,
		Tables:   TablesFromStore(store),
	}
	attachMarkers(doc)
	return doc, nil
}

// splitSections cuts body at each heading match. Text before the first
// heading becomes an untitled leading section when it survives processing.
func splitSections(body string, heads [][]int, level int, chapterMode bool) []document.Section {
	var sections []document.Section
	if lead := processBody(body[:heads[0][0]], chapterMode); lead != "" {
		sections = append(sections, document.Section{Body: lead, Level: level})
	}
	for i, h := range heads {
		title := strings.TrimSpace(body[h[2]:h[3]])
		end := len(body)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		sections = append(sections, document.Section{
			Title: title,
			Body:  processBody(body[h[1]:end], chapterMode),
			Level: level,
		})
	}
	return sections
}

// processBody runs the per-section transform chain: block environments,
// sub-heading markers, inline normalization, bounded command stripping,
// blank-line collapse. In chapter mode \section and \subsection map to the
// two sub-heading depths; otherwise \subsection and \subsubsection do.
func processBody(body string, chapterMode bool) string {
	for _, re := range noisePatterns {
		body = re.ReplaceAllString(body, "")
	}
	body = replaceBlockEnvironments(body)

	if chapterMode {
		body = sectionPattern.ReplaceAllString(body, "\n\n## $1\n\n")
		body = subsectionPattern.ReplaceAllString(body, "\n\n### $1\n\n")
		body = subsubsectionPattern.ReplaceAllString(body, "\n\n### $1\n\n")
	} else {
		body = subsectionPattern.ReplaceAllString(body, "\n\n## $1\n\n")
		body = subsubsectionPattern.ReplaceAllString(body, "\n\n### $1\n\n")
	}

	for _, rw := range inlineRewrites {
		body = rw.re.ReplaceAllString(body, rw.repl)
	}

	for i := 0; i < maxStripPasses; i++ {
		stripped := bracedCommandPattern.ReplaceAllString(body, "$1")
		if stripped == body {
			break
		}
		body = stripped
	}
	body = bareCommandPattern.ReplaceAllString(body, "")

	body = blankRunPattern.ReplaceAllString(body, "\n\n")
	return strings.TrimSpace(body)
}

// TablesFromStore parses each TABLE marker payload into a TableBlock. The
// Nth discovered table gets index N, caption or not.
func TablesFromStore(store *marker.Store) []document.TableBlock {
	var tables []document.TableBlock
	for i, e := range store.TableEntries() {
		tbl := document.TableBlock{Token: e.Token, Index: i + 1}
		if m := captionPattern.FindStringSubmatch(e.Payload); m != nil {
			tbl.Caption = strings.TrimSpace(m[1])
		}
		if m := tabularPattern.FindStringSubmatch(e.Payload); m != nil {
			tbl.ColumnSpec = m[1]
			tbl.Rows = strings.TrimSpace(m[2])
		} else {
			tbl.Rows = strings.TrimSpace(e.Payload)
		}
		tables = append(tables, tbl)
	}
	return tables
}

// attachMarkers records, per section, which marker entries its body
// references.
func attachMarkers(doc *document.Document) {
	for i := range doc.Sections {
		for _, e := range doc.Markers.Entries() {
			if strings.Contains(doc.Sections[i].Body, e.Token) {
				doc.Sections[i].Markers = append(doc.Sections[i].Markers, e)
			}
		}
	}
}

// validate rejects structurally broken input that the transform chain
// cannot make sense of, such as a \begin{ with no closing brace.
func validate(text string) error {
	if m := unterminatedEnvPattern.FindString(text); m != "" {
		return fmt.Errorf("unterminated environment delimiter %q", strings.TrimSpace(m))
	}
	return nil
}
