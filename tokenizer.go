package patgen

type tokenizer struct {
	src runeSource
	rnd Source
	// groupNum is the number the next capturing group receives.
	groupNum int
	// steps counts scan iterations over all nesting levels; every iteration
	// consumes at least one rune, so it can never legitimately exceed the
	// pattern length.
	steps int
}

// tokenize parses pattern into group 0. The source is only consulted for
// choice-list quantifiers such as {2|4|6}, which are resolved while parsing.
func tokenize(pattern string, rnd Source) (*Group, error) {
	t := &tokenizer{
		src:      newRuneSource(pattern),
		rnd:      rnd,
		groupNum: 1,
	}
	body, err := t.parseLevel()
	if err != nil {
		return nil, err
	}
	return &Group{Num: 0, Capturing: true, Body: body}, nil
}

// parseLevel scans until the end of the pattern or the first unmatched ')',
// which it consumes.
func (t *tokenizer) parseLevel() (Tree, error) {
	alts := []Sequence{nil}
	for !t.src.atEnd() {
		t.steps++
		if t.steps > len(t.src.runes) {
			break
		}
		cur := &alts[len(alts)-1]
		r, _ := t.src.next()
		switch r {
		case '\\':
			t.src.pos++
			if t.src.atEnd() {
				*cur = append(*cur, charToken(`\`))
				continue
			}
			esc, n := resolveEscape(t.src.runes, t.src.pos, false)
			t.src.pos += 1 + n
			*cur = append(*cur, escapeToken(esc))
		case '[':
			t.src.pos++
			if t.src.consume(']') {
				*cur = append(*cur, charToken(""))
				continue
			}
			end := t.classEnd()
			if end < 0 {
				*cur = append(*cur, charToken("["))
				continue
			}
			body := t.src.stringInRange(t.src.pos, end)
			t.src.pos = end + 1
			*cur = append(*cur, classToken(expandClass(body)))
		case '.':
			t.src.pos++
			*cur = append(*cur, classToken(alphabet))
		case '(':
			t.src.pos++
			tok, ok, err := t.parseGroup()
			if err != nil {
				return Tree{}, err
			}
			if ok {
				*cur = append(*cur, tok)
			}
		case ')':
			t.src.pos++
			return Tree{Alternatives: alts}, nil
		case '|':
			t.src.pos++
			alts = append(alts, nil)
		case '{':
			end := t.src.indexFrom(1, '}')
			if end < 0 {
				t.src.pos++
				*cur = append(*cur, charToken("{"))
				continue
			}
			body := t.src.stringInRange(t.src.pos+1, t.src.pos+end)
			t.src.pos += end + 1
			q, err := parseQuantifier(body, t.rnd)
			if err != nil {
				return Tree{}, &EntropyError{Err: err}
			}
			if q != nil {
				applyQuantifier(*cur, q)
			}
		case '?':
			t.src.pos++
			applyQuantifier(*cur, &Quantifier{Min: 0, Max: 1})
		case '+':
			t.src.pos++
			applyQuantifier(*cur, &Quantifier{Min: 1, Max: InfiniteQuantifierMax})
		case '*':
			t.src.pos++
			applyQuantifier(*cur, &Quantifier{Min: 0, Max: InfiniteQuantifierMax})
		default:
			t.src.pos++
			*cur = append(*cur, charToken(string(r)))
		}
	}
	return Tree{Alternatives: alts}, nil
}

// parseGroup is called after '('. It reports false for comment groups, which
// produce no token.
func (t *tokenizer) parseGroup() (Token, bool, error) {
	g := &Group{Capturing: true}
	if t.src.consume('?') {
		next, _ := t.src.next()
		switch next {
		case '#':
			end := t.src.indexFrom(0, ')')
			if end < 0 {
				t.src.pos = len(t.src.runes)
			} else {
				t.src.pos += end + 1
			}
			return Token{}, false, nil
		case ':':
			t.src.pos++
			g.Capturing = false
		case '~':
			t.src.pos++
			g.Shuffle = true
		case 'P', '<':
			at := t.src.pos
			if next == 'P' {
				at++
			}
			if name, n, ok := delimited(t.src.runes, at, '<', '>'); ok && name != "" {
				g.Name = name
				t.src.pos = at + n
			}
		}
	}

	if g.Capturing {
		g.Num = t.groupNum
		t.groupNum++
	} else {
		g.Num = -1
	}

	body, err := t.parseLevel()
	if err != nil {
		return Token{}, false, err
	}
	g.Body = body
	return Token{Kind: TokenGroup, Group: g}, true, nil
}

// classEnd returns the index of the ']' closing the class whose body starts
// at the cursor, or -1. A bracketed POSIX name such as [:digit:] does not
// close the class.
func (t *tokenizer) classEnd() int {
	runes := t.src.runes
	for i := t.src.pos; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '[':
			if i+1 < len(runes) && runes[i+1] == ':' {
				if end := posixNameEnd(runes, i+2); end >= 0 {
					i = end
				}
			}
		case ']':
			return i
		}
	}
	return -1
}

// posixNameEnd returns the index of the ']' ending a POSIX name that starts
// at from and is followed by ":]", or -1.
func posixNameEnd(runes []rune, from int) int {
	i := from
	for i < len(runes) && (isLetterASCII(runes[i]) || runes[i] == '+' || runes[i] == '-') {
		i++
	}
	if i == from || i+1 >= len(runes) || runes[i] != ':' || runes[i+1] != ']' {
		return -1
	}
	return i + 1
}

func applyQuantifier(seq Sequence, q *Quantifier) {
	if len(seq) == 0 {
		return
	}
	seq[len(seq)-1].Quantifier = q
}

func escapeToken(esc escape) Token {
	switch esc.kind {
	case escapeClass:
		return classToken(esc.value)
	case escapeBackreference:
		return Token{Kind: TokenBackreference, Ref: esc.ref}
	case escapeSubroutine:
		return Token{Kind: TokenSubroutine, Ref: esc.ref}
	}
	return charToken(esc.value)
}
