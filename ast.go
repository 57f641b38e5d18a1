package matcha

// NodeType identifies the type of pattern tree node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeRange
	NodeSequence
	NodeAlternation
	NodeNegation
	NodeStar
	NodeRepeat
	NodeOptional
	NodeStore
	NodeRef
)

// String returns the string representation of a NodeType.
func (nt NodeType) String() string {
	switch nt {
	case NodeLiteral:
		return "Literal"
	case NodeRange:
		return "Range"
	case NodeSequence:
		return "Sequence"
	case NodeAlternation:
		return "Alternation"
	case NodeNegation:
		return "Negation"
	case NodeStar:
		return "Star"
	case NodeRepeat:
		return "Repeat"
	case NodeOptional:
		return "Optional"
	case NodeStore:
		return "Store"
	case NodeRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Node is the base interface for pattern tree nodes. Nodes are immutable
// once built and may be shared between patterns; Clone produces a
// structurally independent copy when duplication is required.
type Node interface {
	Type() NodeType
	Clone() Node
}

var (
	_ Node = (*LiteralNode)(nil)
	_ Node = (*RangeNode)(nil)
	_ Node = (*SequenceNode)(nil)
	_ Node = (*AlternationNode)(nil)
	_ Node = (*NegationNode)(nil)
	_ Node = (*StarNode)(nil)
	_ Node = (*RepeatNode)(nil)
	_ Node = (*OptionalNode)(nil)
	_ Node = (*StoreNode)(nil)
	_ Node = (*RefNode)(nil)
)

// LiteralNode matches an exact string.
type LiteralNode struct {
	Value    string
	FoldCase bool // Case-insensitive matching
}

func (n *LiteralNode) Type() NodeType { return NodeLiteral }

func (n *LiteralNode) Clone() Node {
	c := *n
	return &c
}

// RangeNode matches a single rune in [Lo, Hi].
type RangeNode struct {
	Lo, Hi rune
}

func (n *RangeNode) Type() NodeType { return NodeRange }

func (n *RangeNode) Clone() Node {
	c := *n
	return &c
}

// SequenceNode matches its children in order.
type SequenceNode struct {
	Nodes []Node
}

func (n *SequenceNode) Type() NodeType { return NodeSequence }

func (n *SequenceNode) Clone() Node {
	return &SequenceNode{Nodes: cloneNodes(n.Nodes)}
}

// AlternationNode matches the first child that succeeds. Order is
// significant: there is no longest-match search.
type AlternationNode struct {
	Nodes []Node
}

func (n *AlternationNode) Type() NodeType { return NodeAlternation }

func (n *AlternationNode) Clone() Node {
	return &AlternationNode{Nodes: cloneNodes(n.Nodes)}
}

// NegationNode succeeds iff its child fails at the cursor, consuming
// exactly one rune. It fails without consuming when the input is
// exhausted, regardless of the child.
type NegationNode struct {
	Node Node
}

func (n *NegationNode) Type() NodeType { return NodeNegation }

func (n *NegationNode) Clone() Node {
	return &NegationNode{Node: n.Node.Clone()}
}

// StarNode matches its child zero or more times, greedily.
type StarNode struct {
	Node Node
}

func (n *StarNode) Type() NodeType { return NodeStar }

func (n *StarNode) Clone() Node {
	return &StarNode{Node: n.Node.Clone()}
}

// RepeatNode matches its child exactly N times.
type RepeatNode struct {
	Node Node
	N    int
}

func (n *RepeatNode) Type() NodeType { return NodeRepeat }

func (n *RepeatNode) Clone() Node {
	return &RepeatNode{Node: n.Node.Clone(), N: n.N}
}

// OptionalNode matches its child once if possible and succeeds either way.
type OptionalNode struct {
	Node Node
}

func (n *OptionalNode) Type() NodeType { return NodeOptional }

func (n *OptionalNode) Clone() Node {
	return &OptionalNode{Node: n.Node.Clone()}
}

// StoreNode matches its child and records the consumed substring under
// Name in the capture table. The first StoreNode for a name also defines
// that name for RefNode lookup.
type StoreNode struct {
	Name string
	Node Node
}

func (n *StoreNode) Type() NodeType { return NodeStore }

func (n *StoreNode) Clone() Node {
	return &StoreNode{Name: n.Name, Node: n.Node.Clone()}
}

// RefNode matches the definition recorded for Name. The reference is a
// name, not a pointer, so the tree stays acyclic as data; recursion
// happens through the definition table at match time.
type RefNode struct {
	Name string
}

func (n *RefNode) Type() NodeType { return NodeRef }

func (n *RefNode) Clone() Node {
	c := *n
	return &c
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
