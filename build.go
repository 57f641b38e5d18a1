package matcha

import "fmt"

// Literal returns a node matching exactly s. An empty literal is legal
// and matches zero-width.
func Literal(s string) Node {
	return &LiteralNode{Value: s}
}

// LiteralFold returns a node matching s case-insensitively, under simple
// Unicode case folding.
func LiteralFold(s string) Node {
	return &LiteralNode{Value: s, FoldCase: true}
}

// Between returns a node matching a single rune in [lo, hi].
func Between(lo, hi rune) (Node, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: [%q, %q]", ErrInvalidRange, lo, hi)
	}
	return &RangeNode{Lo: lo, Hi: hi}, nil
}

// Then returns a sequence of the given nodes. Associative chains are
// flattened: a node that is itself a sequence contributes its children
// directly, so Then(a, Then(b, c)) has three children, not two.
func Then(nodes ...Node) (Node, error) {
	flat := flatten(nodes, NodeSequence)
	if len(flat) < 2 {
		return nil, fmt.Errorf("%w: sequence of %d", ErrEmptyComposite, len(flat))
	}
	return &SequenceNode{Nodes: flat}, nil
}

// Or returns an alternation of the given nodes, flattened like Then.
// The first alternative to match wins.
func Or(nodes ...Node) (Node, error) {
	flat := flatten(nodes, NodeAlternation)
	if len(flat) < 2 {
		return nil, fmt.Errorf("%w: alternation of %d", ErrEmptyComposite, len(flat))
	}
	return &AlternationNode{Nodes: flat}, nil
}

// Not returns a node that succeeds only where p fails, consuming one rune.
func Not(p Node) Node {
	return &NegationNode{Node: p}
}

// Star returns a node matching p zero or more times, greedily.
func Star(p Node) Node {
	return &StarNode{Node: p}
}

// Repeat returns a node matching p exactly n times. n may be zero, in
// which case the node always succeeds zero-width.
func Repeat(p Node, n int) (Node, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRepeatCount, n)
	}
	return &RepeatNode{Node: p, N: n}, nil
}

// Optional returns a node matching p once if possible, succeeding either way.
func Optional(p Node) Node {
	return &OptionalNode{Node: p}
}

// Store returns a node that matches p and records the consumed substring
// under name. The first Store for a name in a compiled pattern also
// becomes the definition Ref resolves against.
func Store(name string, p Node) Node {
	return &StoreNode{Name: name, Node: p}
}

// Ref returns a node that matches the definition recorded for name.
// Resolution is deferred to compile/match time, so a pattern may refer
// to a name before (or inside) its own definition.
func Ref(name string) Node {
	return &RefNode{Name: name}
}

// Again returns a sequence of two structurally independent copies of p.
// Each application doubles the repeat count: once is 2x the base match,
// twice is 4x, n applications 2^n. The copies are deep so each can
// accumulate captures on its own during matching.
func Again(p Node) Node {
	return &SequenceNode{Nodes: []Node{p.Clone(), p.Clone()}}
}

// Must is a helper that wraps a constructor returning (Node, error) and
// panics if the error is non-nil. Intended for patterns known to be valid.
func Must(n Node, err error) Node {
	if err != nil {
		panic(fmt.Sprintf("matcha: Must: %v", err))
	}
	return n
}

func flatten(nodes []Node, nt NodeType) []Node {
	flat := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Type() != nt {
			flat = append(flat, n)
			continue
		}
		switch c := n.(type) {
		case *SequenceNode:
			flat = append(flat, c.Nodes...)
		case *AlternationNode:
			flat = append(flat, c.Nodes...)
		}
	}
	return flat
}
