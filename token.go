package patgen

import "strconv"

// InfiniteQuantifierMax is the repetition ceiling that "*", "+" and "{n,}"
// are materialized with at tokenize time.
const InfiniteQuantifierMax = 10

// TokenKind identifies the variant stored in a Token.
type TokenKind uint8

const (
	// TokenChar emits Value verbatim.
	TokenChar TokenKind = iota
	// TokenClass emits one rune of Value, chosen uniformly by index.
	TokenClass
	// TokenGroup renders Group and captures the result.
	TokenGroup
	// TokenBackreference replays the text previously captured by Ref.
	TokenBackreference
	// TokenSubroutine renders the definition of the group Ref again.
	TokenSubroutine
)

func (k TokenKind) String() string {
	switch k {
	case TokenChar:
		return "char"
	case TokenClass:
		return "class"
	case TokenGroup:
		return "group"
	case TokenBackreference:
		return "backreference"
	case TokenSubroutine:
		return "subroutine"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// GroupKey addresses a group either by number or, when Name is not empty,
// by name.
type GroupKey struct {
	Num  int
	Name string
}

func (k GroupKey) String() string {
	if k.Name != "" {
		return k.Name
	}
	return strconv.Itoa(k.Num)
}

// Quantifier is a repetition range. Min == Max is an exact count.
type Quantifier struct {
	Min int
	Max int
}

// Token is one parsed unit of a pattern.
type Token struct {
	Kind TokenKind
	// Value holds the literal text of a TokenChar or the expanded member
	// runes of a TokenClass.
	Value string
	// Group is set for TokenGroup.
	Group *Group
	// Ref is set for TokenBackreference and TokenSubroutine.
	Ref GroupKey
	// Quantifier is nil when the token is rendered exactly once.
	Quantifier *Quantifier
}

// Group is a parenthesized sub-pattern.
type Group struct {
	// Num is assigned in source order of the opening parenthesis, starting
	// with 0 for the implicit group wrapping the whole pattern. It is -1 for
	// non-capturing groups.
	Num       int
	Name      string
	Capturing bool
	// Shuffle permutes the runes rendered for all repetitions of the group.
	Shuffle bool
	Body    Tree
}

// Sequence is an ordered run of tokens.
type Sequence []Token

// Tree is one level of a parsed pattern. It holds a single Sequence, or
// several alternatives when the level contained a top-level '|'.
type Tree struct {
	Alternatives []Sequence
}

// IsAlternation reports whether exactly one of several sequences is to be
// chosen at render time.
func (t Tree) IsAlternation() bool {
	return len(t.Alternatives) > 1
}

func charToken(s string) Token {
	return Token{Kind: TokenChar, Value: s}
}

func classToken(members string) Token {
	return Token{Kind: TokenClass, Value: members}
}
