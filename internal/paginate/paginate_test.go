package paginate

import (
	"testing"

	"github.com/debashish17/docview/internal/document"
	"github.com/debashish17/docview/internal/marker"
)

func TestPaginate_TitlePageOnlyWhenTitleSet(t *testing.T) {
	store := marker.NewStore()
	doc := &document.Document{
		Sections: []document.Section{{Title: "S", Body: "text", Level: 2}},
		Markers:  store,
	}

	pages := Paginate(doc)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page without title, got %d", len(pages))
	}

	doc.Meta.Title = "My Doc"
	pages = Paginate(doc)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages with title, got %d", len(pages))
	}
	first := pages[0].Elements
	if len(first) != 1 || first[0].Type != ElementTitlePage {
		t.Errorf("expected title page first, got %+v", first)
	}
	if first[0].Meta.Title != "My Doc" {
		t.Errorf("expected title page metadata, got %+v", first[0].Meta)
	}
}

func TestPaginate_TOCPageFromSubHeadings(t *testing.T) {
	store := marker.NewStore()
	doc := &document.Document{
		Sections: []document.Section{
			{Title: "One", Body: "intro\n\n## Alpha\n\ntext\n\n### Beta\n\nmore", Level: 2},
			{Title: "Two", Body: "## Gamma", Level: 2},
		},
		Markers: store,
	}

	pages := Paginate(doc)
	if len(pages) != 3 {
		t.Fatalf("expected toc page plus 2 section pages, got %d", len(pages))
	}
	toc := pages[0].Elements
	if len(toc) != 1 || toc[0].Type != ElementTOC {
		t.Fatalf("expected toc element, got %+v", toc)
	}

	want := []document.TOCEntry{
		{Text: "Alpha", Level: 1},
		{Text: "Beta", Level: 2},
		{Text: "Gamma", Level: 1},
	}
	if len(toc[0].Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(toc[0].Entries))
	}
	for i, w := range want {
		if toc[0].Entries[i] != w {
			t.Errorf("entry[%d]: expected %+v, got %+v", i, w, toc[0].Entries[i])
		}
	}
}

func TestPaginate_SectionElements(t *testing.T) {
	store := marker.NewStore()
	tok := store.AddTable("payload")
	doc := &document.Document{
		Sections: []document.Section{{
			Title: "Results",
			Body:  "Lead paragraph.\n\n## Methods\n\n" + tok + "\n\n### Detail\n\nClosing.",
			Level: 2,
		}},
		Markers: store,
	}

	pages := Paginate(doc)
	els := pages[len(pages)-1].Elements

	want := []struct {
		typ   ElementType
		text  string
		level int
	}{
		{ElementHeading, "Results", 2},
		{ElementParagraph, "Lead paragraph.", 0},
		{ElementHeading, "Methods", 3},
		{ElementTable, "", 0},
		{ElementHeading, "Detail", 4},
		{ElementParagraph, "Closing.", 0},
	}
	if len(els) != len(want) {
		t.Fatalf("expected %d elements, got %d: %+v", len(want), len(els), els)
	}
	for i, w := range want {
		if els[i].Type != w.typ {
			t.Errorf("element[%d]: expected type %q, got %q", i, w.typ, els[i].Type)
			continue
		}
		if w.typ == ElementHeading && (els[i].Text != w.text || els[i].Level != w.level) {
			t.Errorf("element[%d]: expected heading %q level %d, got %q level %d",
				i, w.text, w.level, els[i].Text, els[i].Level)
		}
	}
	if els[3].Token != tok {
		t.Errorf("expected table element token %q, got %q", tok, els[3].Token)
	}
}

func TestPaginate_MathTokenChunkIsParagraph(t *testing.T) {
	// Only table tokens get a dedicated element; a display math chunk is
	// a paragraph whose single run resolves through the marker store.
	store := marker.NewStore()
	tok := store.AddDisplayMath("E=mc^2")
	doc := &document.Document{
		Sections: []document.Section{{Title: "S", Body: tok, Level: 2}},
		Markers:  store,
	}

	els := Paginate(doc)[0].Elements
	if len(els) != 2 {
		t.Fatalf("expected heading and paragraph, got %+v", els)
	}
	if els[1].Type != ElementParagraph || els[1].Text != tok {
		t.Errorf("expected math chunk as paragraph, got %+v", els[1])
	}
}

func TestPaginate_OnePagePerSection(t *testing.T) {
	store := marker.NewStore()
	doc := &document.Document{
		Sections: []document.Section{
			{Title: "A", Body: "a", Level: 2},
			{Title: "B", Body: "b", Level: 2},
			{Title: "C", Body: "c", Level: 2},
		},
		Markers: store,
	}
	pages := Paginate(doc)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for i, name := range []string{"A", "B", "C"} {
		if pages[i].Elements[0].Text != name {
			t.Errorf("page[%d]: expected heading %q, got %q", i, name, pages[i].Elements[0].Text)
		}
	}
}

func TestTOCEntries_EmptyWhenNoMarkers(t *testing.T) {
	sections := []document.Section{{Title: "S", Body: "plain text only"}}
	if entries := TOCEntries(sections); len(entries) != 0 {
		t.Errorf("expected no toc entries, got %+v", entries)
	}
}
