// Package matcha is a combinator pattern-matching engine: a tree of
// composable match rules (literals, ranges, sequence, alternation,
// negation, repetition, optionality) evaluated by a recursive
// backtracking matcher that produces named sub-match captures. A
// sub-pattern stored under a name can be referenced elsewhere in the
// same pattern, including from inside its own definition, which makes
// recursive grammars ordinary table lookups instead of cyclic data.
package matcha

import "fmt"

// DefaultMaxDepth bounds the matcher's recursion when no explicit limit
// is configured. Depth grows with pattern nesting and with reference
// recursion, so pathological self-reference fails with
// ErrRecursionLimit instead of exhausting the stack.
const DefaultMaxDepth = 10000

// Config carries matching limits.
type Config struct {
	// MaxDepth is the maximum matcher recursion depth.
	// Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// Captures maps stored names to the substring each one matched.
type Captures map[string]string

// Pattern is a compiled, immutable pattern: the root node plus the
// definition table collected from its Store nodes. A Pattern is safe for
// concurrent use; every match call gets its own capture table.
type Pattern struct {
	root Node
	defs map[string]Node
	cfg  Config
}

// Compile links a pattern tree: it validates the structure, collects
// Store definitions (pre-order, first occurrence of a name wins) and
// verifies that every Ref resolves. An unresolvable Ref anywhere in the
// tree is reported as ErrUnresolvedReference.
func Compile(root Node) (*Pattern, error) {
	return compile(root, nil, Config{})
}

// CompileWithConfig is Compile with explicit matching limits.
func CompileWithConfig(root Node, cfg Config) (*Pattern, error) {
	return compile(root, nil, cfg)
}

// MustCompile is like Compile but panics on error.
func MustCompile(root Node) *Pattern {
	p, err := Compile(root)
	if err != nil {
		panic(fmt.Sprintf("matcha: Compile: %v", err))
	}
	return p
}

// compile links root against an optional external definition table
// (used by the DSL's shared registry and by rule files). Entries in
// extra take precedence over definitions collected from the tree, which
// matches first-Store-wins: the registry is populated in chain order.
func compile(root Node, extra map[string]Node, cfg Config) (*Pattern, error) {
	if root == nil {
		return nil, fmt.Errorf("matcha: nil pattern")
	}

	defs := make(map[string]Node, len(extra))
	for name, def := range extra {
		defs[name] = def
	}
	collectDefs(root, defs)

	p := &Pattern{root: root, defs: defs, cfg: cfg}
	if err := p.validate(root); err != nil {
		return nil, err
	}
	for _, def := range extra {
		if err := p.validate(def); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// collectDefs records the first Store node seen for each name, walking
// pre-order. The Store node itself is the definition, so matching a Ref
// also refreshes the capture for that name.
func collectDefs(n Node, defs map[string]Node) {
	switch node := n.(type) {
	case *SequenceNode:
		for _, c := range node.Nodes {
			collectDefs(c, defs)
		}
	case *AlternationNode:
		for _, c := range node.Nodes {
			collectDefs(c, defs)
		}
	case *NegationNode:
		collectDefs(node.Node, defs)
	case *StarNode:
		collectDefs(node.Node, defs)
	case *RepeatNode:
		collectDefs(node.Node, defs)
	case *OptionalNode:
		collectDefs(node.Node, defs)
	case *StoreNode:
		if _, exists := defs[node.Name]; !exists {
			defs[node.Name] = node
		}
		collectDefs(node.Node, defs)
	}
}

// validate walks a subtree checking the invariants the constructors
// enforce, so hand-built node values get the same errors, and resolves
// every Ref against the definition table.
func (p *Pattern) validate(n Node) error {
	switch node := n.(type) {
	case *LiteralNode:
		return nil
	case *RangeNode:
		if node.Lo > node.Hi {
			return fmt.Errorf("%w: [%q, %q]", ErrInvalidRange, node.Lo, node.Hi)
		}
		return nil
	case *SequenceNode:
		if len(node.Nodes) < 2 {
			return fmt.Errorf("%w: sequence of %d", ErrEmptyComposite, len(node.Nodes))
		}
		for _, c := range node.Nodes {
			if err := p.validate(c); err != nil {
				return err
			}
		}
		return nil
	case *AlternationNode:
		if len(node.Nodes) < 2 {
			return fmt.Errorf("%w: alternation of %d", ErrEmptyComposite, len(node.Nodes))
		}
		for _, c := range node.Nodes {
			if err := p.validate(c); err != nil {
				return err
			}
		}
		return nil
	case *NegationNode:
		return p.validate(node.Node)
	case *StarNode:
		return p.validate(node.Node)
	case *RepeatNode:
		if node.N < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRepeatCount, node.N)
		}
		return p.validate(node.Node)
	case *OptionalNode:
		return p.validate(node.Node)
	case *StoreNode:
		return p.validate(node.Node)
	case *RefNode:
		if _, ok := p.defs[node.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnresolvedReference, node.Name)
		}
		return nil
	default:
		return fmt.Errorf("matcha: unknown node type %T", n)
	}
}

// MatchFull matches the pattern against input starting at position 0
// and succeeds only if the whole input is consumed. On success it
// returns the capture table; a match that stops short of the end
// reports ErrIncompleteMatch, an ordinary non-match ErrNoMatch.
func (p *Pattern) MatchFull(input string) (Captures, error) {
	m := newMatchState(input, p.defs, p.cfg)
	end, ok, err := m.match(p.root, 0, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoMatch
	}
	if end != len(input) {
		return nil, fmt.Errorf("%w: matched %d of %d bytes", ErrIncompleteMatch, end, len(input))
	}
	return m.caps, nil
}

// MatchPrefix matches the pattern against input starting at position 0
// and reports how many bytes of the input the match consumed, along
// with the capture table. The remainder of the input is ignored.
func (p *Pattern) MatchPrefix(input string) (int, Captures, error) {
	m := newMatchState(input, p.defs, p.cfg)
	end, ok, err := m.match(p.root, 0, 0)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, ErrNoMatch
	}
	return end, m.caps, nil
}

// MatchString reports whether the pattern matches the entire input.
func (p *Pattern) MatchString(input string) bool {
	_, err := p.MatchFull(input)
	return err == nil
}
