package matcha

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// matchState holds the per-call state of one top-level match attempt:
// the input, the shared read-only definition table and the capture
// table being built. Backtracking is ordinary recursion with explicit
// snapshot/restore of the capture table, so a failed branch never
// leaks captures into a sibling branch.
type matchState struct {
	input    string
	defs     map[string]Node
	caps     Captures
	maxDepth int
}

func newMatchState(input string, defs map[string]Node, cfg Config) *matchState {
	return &matchState{
		input:    input,
		defs:     defs,
		caps:     Captures{},
		maxDepth: cfg.maxDepth(),
	}
}

// copyCaptures snapshots the capture table before a branch that may
// need rolling back.
func copyCaptures(src Captures) Captures {
	dst := make(Captures, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// match attempts node at byte position pos. It returns the position
// after the match and whether it succeeded; a nil error with ok=false
// is an ordinary non-match. A non-nil error (unresolved reference,
// recursion limit) aborts the whole top-level attempt.
func (m *matchState) match(n Node, pos, depth int) (end int, ok bool, err error) {
	if depth > m.maxDepth {
		return 0, false, fmt.Errorf("%w: depth %d", ErrRecursionLimit, m.maxDepth)
	}

	switch node := n.(type) {
	case *LiteralNode:
		if node.FoldCase {
			return m.matchFold(node.Value, pos)
		}
		end := pos + len(node.Value)
		if end > len(m.input) || m.input[pos:end] != node.Value {
			return 0, false, nil
		}
		return end, true, nil

	case *RangeNode:
		r, w := m.step(pos)
		if w == 0 {
			return 0, false, nil
		}
		if r < node.Lo || r > node.Hi {
			return 0, false, nil
		}
		return pos + w, true, nil

	case *SequenceNode:
		// Children inherit cursor and captures left by the previous
		// child; on any failure the whole sequence rolls back together.
		saved := copyCaptures(m.caps)
		cur := pos
		for _, child := range node.Nodes {
			next, ok, err := m.match(child, cur, depth+1)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				m.caps = saved
				return 0, false, nil
			}
			cur = next
		}
		return cur, true, nil

	case *AlternationNode:
		// First success is final, even if a later alternative would
		// consume more input.
		saved := copyCaptures(m.caps)
		for _, child := range node.Nodes {
			end, ok, err := m.match(child, pos, depth+1)
			if err != nil {
				return 0, false, err
			}
			if ok {
				return end, true, nil
			}
			m.caps = copyCaptures(saved)
		}
		m.caps = saved
		return 0, false, nil

	case *NegationNode:
		if pos >= len(m.input) {
			return 0, false, nil
		}
		// The child runs in a throwaway capture scope either way.
		saved := copyCaptures(m.caps)
		_, ok, err := m.match(node.Node, pos, depth+1)
		m.caps = saved
		if err != nil {
			return 0, false, err
		}
		if ok {
			return 0, false, nil
		}
		_, w := m.step(pos)
		return pos + w, true, nil

	case *StarNode:
		cur := pos
		for {
			saved := copyCaptures(m.caps)
			next, ok, err := m.match(node.Node, cur, depth+1)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				m.caps = saved
				return cur, true, nil
			}
			if next == cur {
				// Zero-width success: keep this iteration's captures
				// but stop, otherwise the loop would never terminate.
				return cur, true, nil
			}
			cur = next
		}

	case *RepeatNode:
		saved := copyCaptures(m.caps)
		cur := pos
		for i := 0; i < node.N; i++ {
			next, ok, err := m.match(node.Node, cur, depth+1)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				m.caps = saved
				return 0, false, nil
			}
			cur = next
		}
		return cur, true, nil

	case *OptionalNode:
		saved := copyCaptures(m.caps)
		end, ok, err := m.match(node.Node, pos, depth+1)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			m.caps = saved
			return pos, true, nil
		}
		return end, true, nil

	case *StoreNode:
		end, ok, err := m.match(node.Node, pos, depth+1)
		if err != nil || !ok {
			return 0, false, err
		}
		m.caps[node.Name] = m.input[pos:end]
		return end, true, nil

	case *RefNode:
		def, found := m.defs[node.Name]
		if !found {
			return 0, false, fmt.Errorf("%w: %q", ErrUnresolvedReference, node.Name)
		}
		return m.match(def, pos, depth+1)

	default:
		return 0, false, fmt.Errorf("matcha: unknown node type %T", n)
	}
}

// matchFold matches lit rune by rune under simple Unicode case folding,
// so the consumed width follows the input's own spelling.
func (m *matchState) matchFold(lit string, pos int) (int, bool, error) {
	cur := pos
	for _, lr := range lit {
		sr, w := m.step(cur)
		if w == 0 || !foldEq(lr, sr) {
			return 0, false, nil
		}
		cur += w
	}
	return cur, true, nil
}

func foldEq(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// step decodes the rune at byte position pos. A width of 0 means the
// input is exhausted.
func (m *matchState) step(pos int) (rune, int) {
	if pos >= len(m.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(m.input[pos:])
}
