// Package marker implements the placeholder registry used to protect math
// and table regions during text transformation. A Store is scoped to one
// parse: tokens are minted from a store-local counter, so concurrent parses
// of different documents can never interfere with each other.
package marker

import (
	"fmt"
	"regexp"
)

// Kind classifies what a marker entry holds.
type Kind int

const (
	KindMath Kind = iota
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindMath:
		return "math"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Token class names. The @@…@@ fence is reserved: it never occurs in
// literal document text after masking, so later passes cannot corrupt
// protected content.
const (
	classDisplayMath = "DISPLAYMATH"
	classInlineMath  = "INLINEMATH"
	classTable       = "TABLE"
)

// TokenPattern matches any marker token.
var TokenPattern = regexp.MustCompile(`@@(?:DISPLAYMATH|INLINEMATH|TABLE)_\d+@@`)

// Entry is one extracted sub-content block.
type Entry struct {
	Token        string
	Kind         Kind
	Payload      string
	DisplayStyle bool
	Index        int // per-kind sequence, 0-based in discovery order
}

// Store is an append-only token registry. Not safe for concurrent use;
// each parse owns exactly one store.
type Store struct {
	entries []*Entry
	byToken map[string]*Entry
	counts  map[string]int
}

func NewStore() *Store {
	return &Store{
		byToken: make(map[string]*Entry),
		counts:  make(map[string]int),
	}
}

func (s *Store) add(class string, kind Kind, payload string, display bool) string {
	n := s.counts[class]
	s.counts[class] = n + 1
	e := &Entry{
		Token:        fmt.Sprintf("@@%s_%d@@", class, n),
		Kind:         kind,
		Payload:      payload,
		DisplayStyle: display,
		Index:        n,
	}
	s.entries = append(s.entries, e)
	s.byToken[e.Token] = e
	return e.Token
}

// AddDisplayMath registers a display-style math payload and returns its token.
func (s *Store) AddDisplayMath(payload string) string {
	return s.add(classDisplayMath, KindMath, payload, true)
}

// AddInlineMath registers an inline math payload and returns its token.
func (s *Store) AddInlineMath(payload string) string {
	return s.add(classInlineMath, KindMath, payload, false)
}

// AddTable registers a table payload and returns its token.
func (s *Store) AddTable(payload string) string {
	return s.add(classTable, KindTable, payload, false)
}

// Lookup resolves a token back to its entry.
func (s *Store) Lookup(token string) (*Entry, bool) {
	e, ok := s.byToken[token]
	return e, ok
}

// Entries returns all entries in discovery order.
func (s *Store) Entries() []*Entry {
	return s.entries
}

// TableEntries returns the table entries in discovery order.
func (s *Store) TableEntries() []*Entry {
	var out []*Entry
	for _, e := range s.entries {
		if e.Kind == KindTable {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of registered entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// IsToken reports whether text is exactly one marker token.
func IsToken(text string) bool {
	loc := TokenPattern.FindStringIndex(text)
	return loc != nil && loc[0] == 0 && loc[1] == len(text)
}
