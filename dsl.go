package matcha

import (
	"errors"
	"fmt"
)

var errEmptyChain = errors.New("matcha: dsl chain has no pattern")

// DSL builds patterns by method chaining. Every derived chain shares one
// definition registry, so a name stored on one chain can be referenced
// from any other chain of the same DSL, including before its definition
// is complete:
//
//	m := New()
//	balanced := m.MATCH("(").THEN(m.REF("balanced")).THEN(m.MATCH(")")).
//		OPTIONAL().
//		STORE("balanced")
//	caps, err := balanced.MatchFull("(())")
//
// Construction errors are sticky: the first error poisons the chain and
// surfaces from Pattern (or the match helpers), so long chains need a
// single check at the end.
type DSL struct {
	registry map[string]Node
	last     Node
	err      error
}

// New returns a DSL with an empty definition registry.
func New() *DSL {
	return &DSL{registry: make(map[string]Node)}
}

func (d *DSL) derive(n Node) *DSL {
	return &DSL{registry: d.registry, last: n}
}

func (d *DSL) fail(err error) *DSL {
	return &DSL{registry: d.registry, err: err}
}

// MATCH starts or continues a chain with an exact literal.
func (d *DSL) MATCH(lit string) *DSL {
	if d.err != nil {
		return d
	}
	return d.derive(Literal(lit))
}

// BETWEEN starts or continues a chain with a single-rune range.
func (d *DSL) BETWEEN(lo, hi rune) *DSL {
	if d.err != nil {
		return d
	}
	n, err := Between(lo, hi)
	if err != nil {
		return d.fail(err)
	}
	return d.derive(n)
}

// THEN sequences the chain's pattern with another chain's pattern.
func (d *DSL) THEN(other *DSL) *DSL {
	if d.err != nil {
		return d
	}
	if other.err != nil {
		return d.fail(other.err)
	}
	if d.last == nil || other.last == nil {
		return d.fail(errEmptyChain)
	}
	n, err := Then(d.last, other.last)
	if err != nil {
		return d.fail(err)
	}
	return d.derive(n)
}

// OR alternates the chain's pattern with another chain's pattern. The
// receiver's pattern is tried first.
func (d *DSL) OR(other *DSL) *DSL {
	if d.err != nil {
		return d
	}
	if other.err != nil {
		return d.fail(other.err)
	}
	if d.last == nil || other.last == nil {
		return d.fail(errEmptyChain)
	}
	n, err := Or(d.last, other.last)
	if err != nil {
		return d.fail(err)
	}
	return d.derive(n)
}

// NOT negates the chain's pattern.
func (d *DSL) NOT() *DSL {
	if d.err != nil {
		return d
	}
	if d.last == nil {
		return d.fail(errEmptyChain)
	}
	return d.derive(Not(d.last))
}

// AGAIN doubles the chain's pattern: each application sequences two
// independent copies, so n applications repeat the base pattern 2^n times.
func (d *DSL) AGAIN() *DSL {
	if d.err != nil {
		return d
	}
	if d.last == nil {
		return d.fail(errEmptyChain)
	}
	return d.derive(Again(d.last))
}

// REPEAT with no argument matches the chain's pattern zero or more
// times; REPEAT(n) matches it exactly n times.
func (d *DSL) REPEAT(n ...int) *DSL {
	if d.err != nil {
		return d
	}
	if d.last == nil {
		return d.fail(errEmptyChain)
	}
	switch len(n) {
	case 0:
		return d.derive(Star(d.last))
	case 1:
		node, err := Repeat(d.last, n[0])
		if err != nil {
			return d.fail(err)
		}
		return d.derive(node)
	default:
		return d.fail(fmt.Errorf("matcha: REPEAT takes at most one count, got %d", len(n)))
	}
}

// OPTIONAL makes the chain's pattern optional.
func (d *DSL) OPTIONAL() *DSL {
	if d.err != nil {
		return d
	}
	if d.last == nil {
		return d.fail(errEmptyChain)
	}
	return d.derive(Optional(d.last))
}

// STORE names the chain's pattern. The first STORE of a name owns the
// registry definition; a later STORE of the same name still captures on
// match but does not change what REF resolves to.
func (d *DSL) STORE(name string) *DSL {
	if d.err != nil {
		return d
	}
	if d.last == nil {
		return d.fail(errEmptyChain)
	}
	n := Store(name, d.last)
	if _, exists := d.registry[name]; !exists {
		d.registry[name] = n
	}
	return d.derive(n)
}

// REF continues with a reference to a stored name, resolved lazily at
// compile/match time so forward and self references work.
func (d *DSL) REF(name string) *DSL {
	if d.err != nil {
		return d
	}
	return d.derive(Ref(name))
}

// Node returns the chain's pattern node.
func (d *DSL) Node() (Node, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.last == nil {
		return nil, errEmptyChain
	}
	return d.last, nil
}

// Pattern compiles the chain against the shared registry.
func (d *DSL) Pattern() (*Pattern, error) {
	return d.PatternWithConfig(Config{})
}

// PatternWithConfig is Pattern with explicit matching limits.
func (d *DSL) PatternWithConfig(cfg Config) (*Pattern, error) {
	n, err := d.Node()
	if err != nil {
		return nil, err
	}
	return compile(n, d.registry, cfg)
}

// MatchFull compiles the chain and runs a full match.
func (d *DSL) MatchFull(input string) (Captures, error) {
	p, err := d.Pattern()
	if err != nil {
		return nil, err
	}
	return p.MatchFull(input)
}

// MatchPrefix compiles the chain and runs a prefix match.
func (d *DSL) MatchPrefix(input string) (int, Captures, error) {
	p, err := d.Pattern()
	if err != nil {
		return 0, nil, err
	}
	return p.MatchPrefix(input)
}
