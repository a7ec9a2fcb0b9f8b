package patgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// renderState is everything one render pass mutates. It never outlives a
// single Get call.
type renderState struct {
	cfg *Config
	rnd Source
	// groups holds the rendered text of every captured group, by number and
	// by name.
	groups map[GroupKey]string
	// patterns holds the group definitions subroutines re-render.
	patterns map[GroupKey]*Group
	// length is the number of runes emitted so far.
	length int
	depth  int
	// work counts renderTree and renderOnce entries, whether or not they
	// emit anything.
	work int
}

func newRenderState(cfg *Config, rnd Source) *renderState {
	return &renderState{
		cfg:      cfg,
		rnd:      rnd,
		groups:   map[GroupKey]string{},
		patterns: map[GroupKey]*Group{},
	}
}

func (st *renderState) exceeded() bool {
	return st.length > st.cfg.ResultLimit
}

// halted reports whether nothing more may be rendered in this pass.
func (st *renderState) halted() bool {
	return st.exceeded() || st.work >= st.cfg.WorkLimit
}

// spend charges one unit of work. It reports false once the budget is used
// up, in which case the caller renders nothing.
func (st *renderState) spend() bool {
	if st.work >= st.cfg.WorkLimit {
		return false
	}
	st.work++
	return true
}

func (st *renderState) draw(lo, hi int) (int, error) {
	n, err := st.rnd.Int(lo, hi)
	if err != nil {
		return 0, &EntropyError{Err: err}
	}
	return n, nil
}

// render renders group 0 and returns the generated string.
func (st *renderState) render(root *Group) (string, error) {
	return st.renderToken(&Token{Kind: TokenGroup, Group: root}, true)
}

func (st *renderState) renderTree(tree Tree, register bool) (string, error) {
	if len(tree.Alternatives) == 0 || !st.spend() {
		return "", nil
	}
	seq := tree.Alternatives[0]
	if tree.IsAlternation() {
		i, err := st.draw(0, len(tree.Alternatives)-1)
		if err != nil {
			return "", err
		}
		seq = tree.Alternatives[i]
	}

	var sb strings.Builder
	for i := range seq {
		if st.halted() {
			break
		}
		s, err := st.renderToken(&seq[i], register)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// repetitions draws how many times a token is rendered in this pass.
func (st *renderState) repetitions(q *Quantifier) (int, error) {
	if q == nil {
		return 1, nil
	}
	hi := min(q.Max, st.cfg.QuantifierLimit)
	lo := min(q.Min, hi)
	if lo >= hi {
		return max(hi, 0), nil
	}
	return st.draw(max(lo, 0), hi)
}

func (st *renderState) renderToken(tok *Token, register bool) (string, error) {
	count, err := st.repetitions(tok.Quantifier)
	if err != nil || count == 0 {
		return "", err
	}
	if tok.Kind == TokenGroup {
		return st.renderGroup(tok.Group, count, register)
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 && st.halted() {
			break
		}
		s, err := st.renderOnce(tok)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (st *renderState) renderOnce(tok *Token) (string, error) {
	if !st.spend() {
		return "", nil
	}
	switch tok.Kind {
	case TokenChar:
		st.length += utf8.RuneCountInString(tok.Value)
		return tok.Value, nil
	case TokenClass:
		return st.pick(tok.Value)
	case TokenBackreference:
		s := st.groups[tok.Ref]
		st.length += utf8.RuneCountInString(s)
		return s, nil
	case TokenSubroutine:
		g, ok := st.patterns[tok.Ref]
		if !ok || st.depth >= st.cfg.MaxDepth {
			return "", nil
		}
		st.depth++
		defer func() { st.depth-- }()
		return st.renderGroup(g, 1, false)
	}
	panic(fmt.Sprintf("patgen: unknown token kind %v", tok.Kind))
}

// renderGroup renders g count times. With register set, the result is
// captured and g becomes available to subroutines; subroutine calls render
// with register unset so nothing inside them is captured again.
func (st *renderState) renderGroup(g *Group, count int, register bool) (string, error) {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 && st.halted() {
			break
		}
		s, err := st.renderTree(g.Body, register)
		if err != nil {
			return "", err
		}
		if register && !g.Shuffle {
			st.capture(g, s)
		}
		sb.WriteString(s)
	}

	out := sb.String()
	if g.Shuffle {
		var err error
		if out, err = st.shuffle(out); err != nil {
			return "", err
		}
		if register {
			st.capture(g, out)
		}
	}
	return out, nil
}

func (st *renderState) capture(g *Group, s string) {
	if !g.Capturing {
		return
	}
	keys := []GroupKey{{Num: g.Num}}
	if g.Name != "" {
		keys = append(keys, GroupKey{Name: g.Name})
	}
	for _, k := range keys {
		st.groups[k] = s
		st.patterns[k] = g
	}
}

// pick returns one rune of members chosen by index, so duplicated members
// are drawn proportionally more often.
func (st *renderState) pick(members string) (string, error) {
	n := utf8.RuneCountInString(members)
	if n == 0 {
		return "", nil
	}
	i, err := st.draw(0, n-1)
	if err != nil {
		return "", err
	}
	for _, r := range members {
		if i == 0 {
			st.length++
			return string(r), nil
		}
		i--
	}
	panic("patgen: class index out of range")
}

func (st *renderState) shuffle(s string) (string, error) {
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		j, err := st.draw(0, i)
		if err != nil {
			return "", err
		}
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}
