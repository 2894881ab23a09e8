package render

import "strings"

// MathRenderer is the external typesetting capability. Implementations
// may panic or return nil on malformed input; callers go through
// Renderer.renderMath, which contains both.
type MathRenderer interface {
	Render(expr string, display bool) *Node
}

// mathPreviewLimit bounds the source preview embedded in an error node.
const mathPreviewLimit = 48

// renderMath delegates to the configured typesetter, converting any panic
// or nil result into an inline error node instead of aborting the render.
func (r *Renderer) renderMath(expr string, display bool) (node *Node) {
	defer func() {
		if recover() != nil {
			node = MathErrorNode(expr)
		}
	}()
	node = r.math.Render(expr, display)
	if node == nil {
		node = MathErrorNode(expr)
	}
	return node
}

// MathErrorNode builds a visibly-marked error node holding a bounded
// preview of the offending source expression.
func MathErrorNode(expr string) *Node {
	preview := expr
	if len(preview) > mathPreviewLimit {
		preview = preview[:mathPreviewLimit] + "…"
	}
	return &Node{Type: NodeMathError, Text: preview}
}

// PlainMath is the default typesetter: it emits the expression as verbatim
// math text after a delimiter balance check, with no real layout. Swap in
// a KaTeX/MathJax-backed implementation for typeset output.
type PlainMath struct{}

func (PlainMath) Render(expr string, display bool) *Node {
	if !balanced(expr) {
		return nil
	}
	return &Node{Type: NodeMath, Text: expr, Display: display}
}

// balanced checks brace pairing, ignoring escaped braces.
func balanced(expr string) bool {
	depth := 0
	escaped := false
	for _, c := range expr {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && !strings.HasSuffix(expr, "\\")
}
