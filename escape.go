package patgen

import (
	"math"
	"unicode"
	"unicode/utf8"
)

type escapeKind uint8

const (
	escapeLiteral escapeKind = iota
	escapeClass
	escapeBackreference
	escapeSubroutine
)

type escape struct {
	kind escapeKind
	// value is the literal text for escapeLiteral and the member runes for
	// escapeClass.
	value string
	ref   GroupKey
}

func literalEscape(s string) escape {
	return escape{kind: escapeLiteral, value: s}
}

// resolveEscape resolves the escape whose code rune (the one following the
// backslash) is pattern[at]. The second result is the number of runes
// consumed after the code rune; callers advance past the code rune themselves.
func resolveEscape(pattern []rune, at int, insideClass bool) (escape, int) {
	code := pattern[at]
	switch code {
	case '0':
		return literalEscape(""), 0
	case 'd':
		return escape{kind: escapeClass, value: digits}, 0
	case 'D':
		return escape{kind: escapeClass, value: letters + specials}, 0
	case 'w':
		return escape{kind: escapeClass, value: letters + digits}, 0
	case 'W':
		return escape{kind: escapeClass, value: specials}, 0
	case 's':
		return escape{kind: escapeClass, value: whitespace}, 0
	case 'S':
		return escape{kind: escapeClass, value: alphabet}, 0
	case 'n':
		return literalEscape("\n"), 0
	case 'r':
		return literalEscape("\r"), 0
	case 't':
		return literalEscape("\t"), 0
	case 'v':
		return literalEscape("\v"), 0
	case 'x':
		r, n := hexRun(pattern, at+1, 2)
		if n != 2 {
			return literalEscape("x"), 0
		}
		return literalEscape(codePoint(int64(r))), 2
	case 'u':
		return resolveUnicodeEscape(pattern, at)
	case '#':
		if body, n, ok := delimited(pattern, at+1, '{', '}'); ok {
			if v, digitsLen := decimalRun([]rune(body), 0); digitsLen > 0 && digitsLen == len([]rune(body)) {
				return literalEscape(codePoint(int64(v))), n
			}
			return literalEscape("#"), 0
		}
		v, n := decimalRun(pattern, at+1)
		if n == 0 {
			return literalEscape("#"), 0
		}
		return literalEscape(codePoint(int64(v))), n
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if insideClass {
			return literalEscape(string(code)), 0
		}
		v, n := decimalRun(pattern, at)
		return escape{kind: escapeBackreference, ref: GroupKey{Num: v}}, n - 1
	case 'g':
		if insideClass {
			break
		}
		if v, n := decimalRun(pattern, at+1); n > 0 {
			return escape{kind: escapeSubroutine, ref: GroupKey{Num: v}}, n
		}
		if key, n, ok := groupReference(pattern, at+1); ok {
			return escape{kind: escapeSubroutine, ref: key}, n
		}
	case 'k':
		if insideClass {
			break
		}
		if key, n, ok := groupReference(pattern, at+1); ok {
			return escape{kind: escapeBackreference, ref: key}, n
		}
	}
	return literalEscape(string(code)), 0
}

// resolveUnicodeEscape handles \uXXXX, \u{X...} and \u+{X...}.
func resolveUnicodeEscape(pattern []rune, at int) (escape, int) {
	skip := 0
	if at+1 < len(pattern) && pattern[at+1] == '+' {
		skip = 1
	}
	if body, n, ok := delimited(pattern, at+1+skip, '{', '}'); ok {
		bodyRunes := []rune(body)
		if r, digitsLen := hexRun(bodyRunes, 0, len(bodyRunes)); digitsLen > 0 && digitsLen == len(bodyRunes) {
			return literalEscape(codePoint(int64(r))), skip + n
		}
		return literalEscape("u"), 0
	}
	if skip != 0 {
		return literalEscape("u"), 0
	}
	r, n := hexRun(pattern, at+1, 4)
	if n == 0 {
		return literalEscape("u"), 0
	}
	return literalEscape(codePoint(int64(r))), n
}

// groupReference parses {name} or <name> starting at pattern[at]. A name made
// of digits only addresses a numbered group.
func groupReference(pattern []rune, at int) (GroupKey, int, bool) {
	if at >= len(pattern) {
		return GroupKey{}, 0, false
	}
	closing := '}'
	switch pattern[at] {
	case '{':
	case '<':
		closing = '>'
	default:
		return GroupKey{}, 0, false
	}
	name, n, ok := delimited(pattern, at, pattern[at], closing)
	if !ok || name == "" {
		return GroupKey{}, 0, false
	}
	nameRunes := []rune(name)
	if v, digitsLen := decimalRun(nameRunes, 0); digitsLen == len(nameRunes) {
		return GroupKey{Num: v}, n, true
	}
	return GroupKey{Name: name}, n, true
}

// delimited returns the text between pattern[at] == opening and the next closing rune,
// and the number of runes spanned including both delimiters.
func delimited(pattern []rune, at int, opening, closing rune) (string, int, bool) {
	if at >= len(pattern) || pattern[at] != opening {
		return "", 0, false
	}
	for i := at + 1; i < len(pattern); i++ {
		if pattern[i] == closing {
			return string(pattern[at+1 : i]), i - at + 1, true
		}
	}
	return "", 0, false
}

// hexRun reads at most limit hex digits starting at pattern[at].
func hexRun(pattern []rune, at, limit int) (rune, int) {
	var v int64
	n := 0
	for ; n < limit && at+n < len(pattern) && isHexDigit(pattern[at+n]); n++ {
		v = v<<4 | int64(parseHexDigit(pattern[at+n]))
		if v > unicode.MaxRune {
			v = unicode.MaxRune + 1
		}
	}
	return rune(v), n
}

// decimalRun reads every consecutive decimal digit starting at pattern[at].
func decimalRun(pattern []rune, at int) (int, int) {
	var v int64
	n := 0
	for ; at+n < len(pattern) && isDigit(pattern[at+n]); n++ {
		v = v*10 + int64(pattern[at+n]-'0')
		if v >= math.MaxInt32 {
			v = math.MaxInt32
		}
	}
	return int(v), n
}

func codePoint(v int64) string {
	if v < 0 || v > unicode.MaxRune {
		return string(utf8.RuneError)
	}
	return string(rune(v))
}
