package matcha

import "testing"

// TestStar tests greedy zero-or-more repetition
func TestStar(t *testing.T) {
	digits := MustCompile(Star(Must(Between('0', '9'))))

	tests := []struct {
		input    string
		consumed int
	}{
		{"123abc", 3},
		{"123", 3},
		{"abc", 0},
		{"", 0}, // zero iterations is a valid match
		{"007x", 3},
	}

	for _, tc := range tests {
		n, _, err := digits.MatchPrefix(tc.input)
		if err != nil {
			t.Errorf("Star(digit).MatchPrefix(%q) error: %v", tc.input, err)
			continue
		}
		if n != tc.consumed {
			t.Errorf("Star(digit).MatchPrefix(%q) consumed %d; want %d", tc.input, n, tc.consumed)
		}
	}

	if !digits.MatchString("123") {
		t.Error("Star(digit).MatchString(123) = false; want true")
	}
	if digits.MatchString("123abc") {
		t.Error("Star(digit).MatchString(123abc) = true; want false (trailing input)")
	}
}

// TestStarZeroWidth tests the zero-width loop guard: a successful
// iteration that consumes nothing ends the loop instead of spinning.
func TestStarZeroWidth(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"star of empty literal", Star(Literal(""))},
		{"star of optional", Star(Optional(Literal("a")))},
		{"star of star", Star(Star(Literal("a")))},
	}

	for _, tc := range tests {
		p := MustCompile(tc.node)
		n, _, err := p.MatchPrefix("")
		if err != nil {
			t.Errorf("%s: MatchPrefix() error: %v", tc.name, err)
			continue
		}
		if n != 0 {
			t.Errorf("%s: consumed %d; want 0", tc.name, n)
		}
	}

	// The inner star still consumes what it can before going zero-width.
	p := MustCompile(Star(Star(Must(Between('0', '9')))))
	n, _, err := p.MatchPrefix("42x")
	if err != nil {
		t.Fatalf("MatchPrefix(42x) error: %v", err)
	}
	if n != 2 {
		t.Errorf("Star(Star(digit)).MatchPrefix(42x) consumed %d; want 2", n)
	}
}

// TestRepeatN tests exact-count repetition
func TestRepeatN(t *testing.T) {
	tests := []struct {
		n     int
		input string
		match bool
	}{
		{3, "aaa", true},
		{3, "aa", false},
		{3, "aaaa", false}, // full match: one extra is too many
		{1, "a", true},
		{0, "", true}, // zero repetitions succeed zero-width
		{0, "a", false},
	}

	for _, tc := range tests {
		p := MustCompile(Must(Repeat(Literal("a"), tc.n)))
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Repeat(a, %d).MatchString(%q) = %v; want %v", tc.n, tc.input, got, tc.match)
		}
	}

	// Under prefix semantics a zero-count repeat consumes nothing.
	p := MustCompile(Must(Repeat(Literal("a"), 0)))
	n, _, err := p.MatchPrefix("aaa")
	if err != nil {
		t.Fatalf("MatchPrefix(aaa) error: %v", err)
	}
	if n != 0 {
		t.Errorf("Repeat(a, 0).MatchPrefix(aaa) consumed %d; want 0", n)
	}
}

// TestAgainDoubling tests the exponential repeat-by-doubling transform:
// n applications of Again demand 2^n copies of the base match.
func TestAgainDoubling(t *testing.T) {
	base := Literal("x")
	once := Again(base)
	twice := Again(once)
	thrice := Again(twice)

	tests := []struct {
		name  string
		node  Node
		input string
		match bool
	}{
		{"once", once, "xx", true},
		{"once", once, "x", false},
		{"once", once, "xxx", false},
		{"twice", twice, "xxxx", true},
		{"twice", twice, "xxx", false},
		{"thrice", thrice, "xxxxxxxx", true},
		{"thrice", thrice, "xxxxxxx", false},
	}

	for _, tc := range tests {
		p := MustCompile(tc.node)
		if got := p.MatchString(tc.input); got != tc.match {
			t.Errorf("Again^%s(x).MatchString(%q) = %v; want %v", tc.name, tc.input, got, tc.match)
		}
	}

	// Zero applications is the identity.
	if !MustCompile(base).MatchString("x") {
		t.Error("base pattern no longer matches after Again was applied to copies")
	}

	// Again(p) is equivalent to Then(p, p): structurally a two-child sequence.
	if s, ok := once.(*SequenceNode); !ok || len(s.Nodes) != 2 {
		t.Fatalf("Again(x) is not a two-child sequence: %#v", once)
	}
}

// TestAgainCopiesAreIndependent verifies the duplicated subtrees share
// no nodes, so each copy accumulates its own captures.
func TestAgainCopiesAreIndependent(t *testing.T) {
	base := Store("d", Must(Between('0', '9')))
	doubled := Again(base)

	s := doubled.(*SequenceNode)
	if s.Nodes[0] == base || s.Nodes[1] == base || s.Nodes[0] == s.Nodes[1] {
		t.Fatal("Again must duplicate the subtree, not share it")
	}

	caps, err := MustCompile(doubled).MatchFull("42")
	if err != nil {
		t.Fatalf("MatchFull(42) error: %v", err)
	}
	if caps["d"] != "2" {
		t.Errorf("caps[d] = %q; want %q (second copy overwrites)", caps["d"], "2")
	}
}
