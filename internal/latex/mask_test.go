package latex

import (
	"strings"
	"testing"

	"github.com/debashish17/docview/internal/marker"
)

func TestMask_InlineDollarMath(t *testing.T) {
	store := marker.NewStore()
	got := Mask("Hello $x^2$ world.", store)

	if got != "Hello @@INLINEMATH_0@@ world." {
		t.Errorf("expected %q, got %q", "Hello @@INLINEMATH_0@@ world.", got)
	}
	e, ok := store.Lookup("@@INLINEMATH_0@@")
	if !ok {
		t.Fatal("expected inline math entry to be registered")
	}
	if e.Payload != "x^2" {
		t.Errorf("expected payload %q, got %q", "x^2", e.Payload)
	}
	if e.DisplayStyle {
		t.Error("expected inline entry, got display style")
	}
}

func TestMask_DisplayBeforeInline(t *testing.T) {
	// $$…$$ must be consumed by the display pass; the inline pass would
	// otherwise see two empty $…$ pairs.
	store := marker.NewStore()
	got := Mask("before $$\\sum_i x_i$$ after", store)

	if got != "before @@DISPLAYMATH_0@@ after" {
		t.Errorf("expected display token, got %q", got)
	}
	e, _ := store.Lookup("@@DISPLAYMATH_0@@")
	if e == nil || !e.DisplayStyle {
		t.Fatal("expected display-style entry")
	}
	if e.Payload != `\sum_i x_i` {
		t.Errorf("expected payload %q, got %q", `\sum_i x_i`, e.Payload)
	}
}

func TestMask_AllDelimiterSyntaxes(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		token   string
		payload string
	}{
		{"bracket display", `\[a+b\]`, "@@DISPLAYMATH_0@@", "a+b"},
		{"equation env", "\\begin{equation}E=mc^2\\end{equation}", "@@DISPLAYMATH_0@@", "E=mc^2"},
		{"starred equation", "\\begin{equation*}F=ma\\end{equation*}", "@@DISPLAYMATH_0@@", "F=ma"},
		{"paren inline", `\(n!\)`, "@@INLINEMATH_0@@", "n!"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := marker.NewStore()
			got := Mask(c.in, store)
			if got != c.token {
				t.Fatalf("expected %q, got %q", c.token, got)
			}
			e, ok := store.Lookup(c.token)
			if !ok || e.Payload != c.payload {
				t.Errorf("expected payload %q, got %+v", c.payload, e)
			}
		})
	}
}

func TestMask_InlineMathNotAcrossLines(t *testing.T) {
	// An unterminated $ degrades to literal text instead of swallowing
	// the rest of the document.
	store := marker.NewStore()
	in := "Cost is $5 today.\nTomorrow it is $6 again."
	got := Mask(in, store)

	if strings.Contains(got, "@@") {
		t.Errorf("expected no masking across line break, got %q", got)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", store.Len())
	}
}

func TestMask_TableEnvironmentBeforeBareTabular(t *testing.T) {
	in := "intro\n" +
		"\\begin{table}\n\\caption{Results}\n\\begin{tabular}{ll}\na & b \\\\\n\\end{tabular}\n\\end{table}\n" +
		"middle\n" +
		"\\begin{tabular}{cc}\nc & d \\\\\n\\end{tabular}\n" +
		"outro"
	store := marker.NewStore()
	got := Mask(in, store)

	tables := store.TableEntries()
	if len(tables) != 2 {
		t.Fatalf("expected 2 table entries, got %d", len(tables))
	}
	if !strings.Contains(got, "@@TABLE_0@@") || !strings.Contains(got, "@@TABLE_1@@") {
		t.Errorf("expected both table tokens in output, got %q", got)
	}
	if !strings.Contains(tables[0].Payload, `\caption{Results}`) {
		t.Errorf("expected first payload to keep the caption, got %q", tables[0].Payload)
	}
	if !strings.HasPrefix(tables[1].Payload, `\begin{tabular}`) {
		t.Errorf("expected second payload to be the bare tabular, got %q", tables[1].Payload)
	}
}

func TestMask_IdempotentOnOwnOutput(t *testing.T) {
	in := "Text $a$ and $$b$$ and\n\\begin{tabular}{l}\nx \\\\\n\\end{tabular}\ndone."
	store := marker.NewStore()
	masked := Mask(in, store)

	second := marker.NewStore()
	again := Mask(masked, second)
	if again != masked {
		t.Errorf("expected re-mask to be a no-op\nfirst:  %q\nsecond: %q", masked, again)
	}
	if second.Len() != 0 {
		t.Errorf("expected no new entries on re-mask, got %d", second.Len())
	}
}

func TestMask_OrderIndependentOfSurroundingText(t *testing.T) {
	store := marker.NewStore()
	got := Mask("$first$ then $second$", store)

	if got != "@@INLINEMATH_0@@ then @@INLINEMATH_1@@" {
		t.Errorf("expected tokens in discovery order, got %q", got)
	}
	e0, _ := store.Lookup("@@INLINEMATH_0@@")
	e1, _ := store.Lookup("@@INLINEMATH_1@@")
	if e0 == nil || e1 == nil || e0.Payload != "first" || e1.Payload != "second" {
		t.Errorf("expected payloads in order, got %+v %+v", e0, e1)
	}
}
