package matcha

import "testing"

// TestMatchLiteral tests exact literal matching under full-match semantics
func TestMatchLiteral(t *testing.T) {
	tests := []struct {
		literal string
		input   string
		match   bool
	}{
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"abc", "abcd", false}, // full match requires total consumption
		{"abc", "xabc", false}, // no unanchored search
		{"a", "a", true},
		{"a", "b", false},
		{"", "", true}, // empty literal is zero-width
		{"", "a", false},
	}

	for _, tc := range tests {
		p := MustCompile(Literal(tc.literal))
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Literal(%q).MatchString(%q) = %v; want %v", tc.literal, tc.input, got, tc.match)
		}
	}
}

// TestMatchLiteralFold tests case-insensitive literals
func TestMatchLiteralFold(t *testing.T) {
	tests := []struct {
		literal string
		input   string
		match   bool
	}{
		{"hello", "hello", true},
		{"hello", "HELLO", true},
		{"hello", "HeLLo", true},
		{"hello", "hell", false},
		{"straße", "STRASSE", false}, // simple folding only, no full case folding
		{"πpq", "ΠPQ", true},
	}

	for _, tc := range tests {
		p := MustCompile(LiteralFold(tc.literal))
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("LiteralFold(%q).MatchString(%q) = %v; want %v", tc.literal, tc.input, got, tc.match)
		}
	}
}

// TestMatchRange tests single-rune range matching
func TestMatchRange(t *testing.T) {
	tests := []struct {
		lo, hi rune
		input  string
		match  bool
	}{
		{'0', '9', "0", true},
		{'0', '9', "5", true},
		{'0', '9', "9", true},
		{'0', '9', "a", false},
		{'0', '9', "", false}, // empty input always fails a range
		{'0', '9', "55", false},
		{'a', 'a', "a", true}, // degenerate single-rune range
		{'a', 'z', "m", true},
		{'a', 'z', "M", false},
	}

	for _, tc := range tests {
		p := MustCompile(Must(Between(tc.lo, tc.hi)))
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Between(%q, %q).MatchString(%q) = %v; want %v", tc.lo, tc.hi, tc.input, got, tc.match)
		}
	}
}

// TestMatchSequence tests left-to-right sequencing with cumulative cursor
func TestMatchSequence(t *testing.T) {
	seq := Must(Then(Literal("foo"), Literal("bar")))
	tests := []struct {
		input string
		match bool
	}{
		{"foobar", true},
		{"foo", false},
		{"bar", false},
		{"foobaz", false},
		{"foobarx", false},
	}

	for _, tc := range tests {
		p := MustCompile(seq)
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Then(foo, bar).MatchString(%q) = %v; want %v", tc.input, got, tc.match)
		}
	}

	// Flattening: nesting Then produces one flat sequence.
	nested := Must(Then(Literal("a"), Must(Then(Literal("b"), Literal("c")))))
	if s, ok := nested.(*SequenceNode); !ok || len(s.Nodes) != 3 {
		t.Errorf("nested Then not flattened: %#v", nested)
	}
}

// TestMatchAlternation tests ordered alternation with first-match-wins
func TestMatchAlternation(t *testing.T) {
	alt := Must(Or(Literal("foo"), Literal("bar"), Literal("baz")))
	tests := []struct {
		input string
		match bool
	}{
		{"foo", true},
		{"bar", true},
		{"baz", true},
		{"qux", false},
		{"", false},
	}

	for _, tc := range tests {
		p := MustCompile(alt)
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Or(foo, bar, baz).MatchString(%q) = %v; want %v", tc.input, got, tc.match)
		}
	}
}

// TestAlternationOrderSensitivity pins first-match-wins: the first
// alternative that succeeds is final even when a later one would
// consume more input.
func TestAlternationOrderSensitivity(t *testing.T) {
	p := MustCompile(Must(Or(Literal("a"), Literal("ab"))))

	n, _, err := p.MatchPrefix("ab")
	if err != nil {
		t.Fatalf("MatchPrefix(ab) error: %v", err)
	}
	if n != 1 {
		t.Errorf("MatchPrefix(ab) consumed %d; want 1 (first alternative wins)", n)
	}

	if p.MatchString("ab") {
		t.Error("MatchString(ab) = true; the short first alternative must win and leave input unconsumed")
	}

	// Reversed order consumes everything.
	q := MustCompile(Must(Or(Literal("ab"), Literal("a"))))
	if !q.MatchString("ab") {
		t.Error("Or(ab, a).MatchString(ab) = false; want true")
	}
}

// TestMatchNegation tests single-rune negated lookahead
func TestMatchNegation(t *testing.T) {
	tests := []struct {
		input string
		match bool
	}{
		{"b", true},
		{"z", true},
		{"a", false},
		{"", false}, // exhausted input fails regardless of the child
	}

	for _, tc := range tests {
		p := MustCompile(Not(Literal("a")))
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Not(a).MatchString(%q) = %v; want %v", tc.input, got, tc.match)
		}
	}

	// Negation consumes exactly one rune on success.
	p := MustCompile(Not(Literal("a")))
	n, _, err := p.MatchPrefix("bcd")
	if err != nil {
		t.Fatalf("MatchPrefix(bcd) error: %v", err)
	}
	if n != 1 {
		t.Errorf("Not(a).MatchPrefix(bcd) consumed %d; want 1", n)
	}

	// Negating a multi-rune literal still consumes a single rune.
	q := MustCompile(Not(Literal("abc")))
	n, _, err = q.MatchPrefix("abd")
	if err != nil {
		t.Fatalf("MatchPrefix(abd) error: %v", err)
	}
	if n != 1 {
		t.Errorf("Not(abc).MatchPrefix(abd) consumed %d; want 1", n)
	}
}
