package parser

import (
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Format
	}{
		{"documentclass", "\\documentclass{article}\ntext", FormatLaTeX},
		{"section command", "\\section{Intro}\nHello.", FormatLaTeX},
		{"begin env", "\\begin{itemize}\\item x\\end{itemize}", FormatLaTeX},
		{"html doctype", "<!DOCTYPE html><html><body></body></html>", FormatHTML},
		{"html div", "  <div><p>x</p></div>", FormatHTML},
		{"markdown heading", "# Title\n\ntext", FormatMarkdown},
		{"plain text", "Just text, no structure.", FormatMarkdown},
		{"latex wins over html", "<p>x</p>\n\\section{S}", FormatLaTeX},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DetectFormat(c.in); got != c.want {
				t.Errorf("DetectFormat(%q): expected %q, got %q", c.in, c.want, got)
			}
		})
	}
}

func TestParse_LaTeXSection(t *testing.T) {
	doc := Parse("\\section{Intro}\nHello $x^2$ world.", FormatAuto)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Title != "Intro" || sec.Level != 2 {
		t.Errorf("expected Intro at level 2, got %+v", sec)
	}
	if sec.Body != "Hello @@INLINEMATH_0@@ world." {
		t.Errorf("expected masked body, got %q", sec.Body)
	}
	if doc.Markers.Len() != 1 {
		t.Errorf("expected 1 marker entry, got %d", doc.Markers.Len())
	}
}

func TestParse_PlainTextGetsContentSection(t *testing.T) {
	doc := Parse("Just text, no structure.", FormatAuto)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Content" {
		t.Errorf("expected synthetic Content section, got %+v", doc.Sections[0])
	}
}

func TestParse_MalformedInputYieldsErrorDocument(t *testing.T) {
	doc := Parse("\\begin{document\nText.", FormatAuto)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Title != "Error" {
		t.Errorf("expected Error section, got %q", sec.Title)
	}
	if !strings.HasPrefix(sec.Body, "The document could not be parsed: ") {
		t.Errorf("expected failure description, got %q", sec.Body)
	}
	if doc.Markers == nil {
		t.Error("expected error document to carry a usable marker store")
	}
}

func TestParse_ExplicitFormatOverridesDetection(t *testing.T) {
	// LaTeX-looking input forced through the markdown front-end keeps the
	// commands as literal paragraph text.
	doc := Parse("\\section{Not A Heading}", FormatMarkdown)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Content" {
		t.Errorf("expected Content section, got %+v", doc.Sections[0])
	}
	if !strings.Contains(doc.Sections[0].Body, "\\section{Not A Heading}") {
		t.Errorf("expected command kept literal, got %q", doc.Sections[0].Body)
	}
}

func TestParse_HTMLInput(t *testing.T) {
	doc := Parse("<html><body><h2>Sec</h2><p>Para text.</p></body></html>", FormatAuto)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Sec" || doc.Sections[0].Body != "Para text." {
		t.Errorf("expected Sec section, got %+v", doc.Sections[0])
	}
}

func TestParse_NonEmptyInputAlwaysHasSection(t *testing.T) {
	inputs := []string{
		"Just text, no structure.",
		"\\maketitle",
		"# \n",
		"<div></div>x",
		"$unclosed",
	}
	for _, in := range inputs {
		doc := Parse(in, FormatAuto)
		if len(doc.Sections) == 0 {
			t.Errorf("Parse(%q): expected at least one section", in)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	doc := Parse("", FormatAuto)
	if doc == nil {
		t.Fatal("expected a document for empty input")
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected no sections for empty input, got %d", len(doc.Sections))
	}
}

func TestParse_IsolatedMarkerStores(t *testing.T) {
	// Two parses mint tokens independently; each document's body tokens
	// resolve against its own store.
	a := Parse("\\section{A}\n$x$", FormatAuto)
	b := Parse("\\section{B}\n$y$", FormatAuto)

	ea, ok := a.Markers.Lookup("@@INLINEMATH_0@@")
	if !ok || ea.Payload != "x" {
		t.Errorf("doc a: expected payload x, got %+v", ea)
	}
	eb, ok := b.Markers.Lookup("@@INLINEMATH_0@@")
	if !ok || eb.Payload != "y" {
		t.Errorf("doc b: expected payload y, got %+v", eb)
	}
}
