package document

import "github.com/debashish17/docview/internal/marker"

// Metadata holds document-level fields extracted once per parse.
// All fields are optional and default to empty strings.
type Metadata struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	DocumentClass string `json:"document_class"`
	Abstract      string `json:"abstract"`
}

// Section is one heading plus its body text. Level 1 is chapter-equivalent,
// level 2 is section-equivalent. Body text is post-mask and pre-paragraph-split.
type Section struct {
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Level   int             `json:"level"`
	Markers []*marker.Entry `json:"-"` // marker entries referenced by this body
}

// TableBlock is a parsed table environment, looked up by marker token at
// render time. Index is 1-based, assigned in discovery order.
type TableBlock struct {
	Token      string `json:"token"`
	ColumnSpec string `json:"column_spec"`
	Rows       string `json:"rows"` // raw row text, rule markers included
	Caption    string `json:"caption"`
	Index      int    `json:"index"`
}

// TOCEntry is one table-of-contents line. Two depths are supported.
type TOCEntry struct {
	Text  string `json:"text"`
	Level int    `json:"level"` // 1 or 2
}

// Document is the output of structural extraction. It is transient: rebuilt
// wholesale on every parse, never mutated afterward.
type Document struct {
	Meta     Metadata
	Sections []Section
	Tables   []TableBlock
	Markers  *marker.Store
}

// TableByToken returns the table referenced by token, or nil.
func (d *Document) TableByToken(token string) *TableBlock {
	for i := range d.Tables {
		if d.Tables[i].Token == token {
			return &d.Tables[i]
		}
	}
	return nil
}
