package matcha

import "errors"

// Structural errors are reported while a pattern is being built and are
// fatal to construction.
var (
	ErrInvalidRange       = errors.New("matcha: range lower bound above upper bound")
	ErrInvalidRepeatCount = errors.New("matcha: negative repeat count")
	ErrEmptyComposite     = errors.New("matcha: sequence or alternation needs at least two children")
)

// Match-time errors. An ordinary non-match is ErrNoMatch and is the
// expected result of probing an alternative; the others indicate a
// malformed pattern or a blown resource limit and abort the whole
// top-level match call.
var (
	ErrNoMatch             = errors.New("matcha: no match")
	ErrIncompleteMatch     = errors.New("matcha: match did not consume the entire input")
	ErrUnresolvedReference = errors.New("matcha: reference to undefined name")
	ErrRecursionLimit      = errors.New("matcha: recursion limit exceeded")
)
