package patgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestEscape(t *testing.T) {
	lit := func(s string) escape { return escape{kind: escapeLiteral, value: s} }
	class := func(s string) escape { return escape{kind: escapeClass, value: s} }
	backref := func(k GroupKey) escape { return escape{kind: escapeBackreference, ref: k} }
	subroutine := func(k GroupKey) escape { return escape{kind: escapeSubroutine, ref: k} }

	cases := []struct {
		input       string
		insideClass bool
		expected    escape
		consumed    int
	}{
		{"0", false, lit(""), 0},
		{"05", false, lit(""), 0},
		{"d", false, class(digits), 0},
		{"D", false, class(letters + specials), 0},
		{"w", false, class(letters + digits), 0},
		{"W", false, class(specials), 0},
		{"s", false, class(" \r\n\t"), 0},
		{"S", false, class(alphabet), 0},
		{"n", false, lit("\n"), 0},
		{"r", false, lit("\r"), 0},
		{"t", false, lit("\t"), 0},
		{"v", false, lit("\v"), 0},
		{`\`, false, lit(`\`), 0},
		{"q", false, lit("q"), 0},
		{"é", false, lit("é"), 0},
		{".", true, lit("."), 0},

		{"x41z", false, lit("A"), 2},
		{"x7e", true, lit("~"), 2},
		{"x4", false, lit("x"), 0},
		{"xZZ", false, lit("x"), 0},

		{"u00e9rest", false, lit("é"), 4},
		{"u41", false, lit("A"), 2},
		{"u0041ff", false, lit("A"), 4},
		{"u{1F431}x", false, lit("🐱"), 7},
		{"u+{41}", false, lit("A"), 5},
		{"u{110000}", false, lit("\uFFFD"), 8},
		{"u{FFFFFFFFF}", false, lit("\uFFFD"), 11},
		{"u{zz}", false, lit("u"), 0},
		{"u{}", false, lit("u"), 0},
		{"u{41", false, lit("u"), 0},
		{"u+41", false, lit("u"), 0},
		{"uq", false, lit("u"), 0},

		{"#65x", false, lit("A"), 2},
		{"#{228}", false, lit("ä"), 5},
		{"#{22a}", false, lit("#"), 0},
		{"#x", false, lit("#"), 0},

		{"1", false, backref(GroupKey{Num: 1}), 0},
		{"12a", false, backref(GroupKey{Num: 12}), 1},
		{"1", true, lit("1"), 0},

		{"g1", false, subroutine(GroupKey{Num: 1}), 1},
		{"g21", false, subroutine(GroupKey{Num: 21}), 2},
		{"g{name}", false, subroutine(GroupKey{Name: "name"}), 6},
		{"g{3}", false, subroutine(GroupKey{Num: 3}), 3},
		{"g<2>", false, subroutine(GroupKey{Num: 2}), 3},
		{"gx", false, lit("g"), 0},
		{"g{}", false, lit("g"), 0},
		{"g1", true, lit("g"), 0},

		{"k{name}", false, backref(GroupKey{Name: "name"}), 6},
		{"k<n>", false, backref(GroupKey{Name: "n"}), 3},
		{"k{}", false, lit("k"), 0},
		{"k{name", false, lit("k"), 0},
		{"k", false, lit("k"), 0},
		{"k{name}", true, lit("k"), 0},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			actual, consumed := resolveEscape([]rune(c.input), 0, c.insideClass)
			assert.DeepEqual(t, actual, c.expected, cmp.AllowUnexported(escape{}))
			assert.Equal(t, consumed, c.consumed)
		})
	}
}

func TestEscapeKeepsTokenizerInSync(t *testing.T) {
	cases := []struct {
		pattern  string
		expected []string
	}{
		{`\x41B`, []string{"A", "B"}},
		{`AB`, []string{"A", "B"}},
		{`\u{41}B`, []string{"A", "B"}},
		{`\u+{41}B`, []string{"A", "B"}},
		{`\#65B`, []string{"A", "B"}},
		{`\#{65}6`, []string{"A", "6"}},
		{`\xZ`, []string{"x", "Z"}},
		{`a\`, []string{"a", `\`}},
	}

	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			root, err := tokenize(c.pattern, nil)
			assert.NilError(t, err)
			assert.Equal(t, len(root.Body.Alternatives), 1)
			var actual []string
			for _, tok := range root.Body.Alternatives[0] {
				assert.Equal(t, tok.Kind, TokenChar)
				actual = append(actual, tok.Value)
			}
			assert.DeepEqual(t, actual, c.expected)
		})
	}
}

func TestHelperFunctions(t *testing.T) {
	assert.Equal(t, isHexDigit('0'-1), false)
	assert.Equal(t, isHexDigit('0'), true)
	assert.Equal(t, isHexDigit('9'), true)
	assert.Equal(t, isHexDigit('9'+1), false)
	assert.Equal(t, isHexDigit('a'-1), false)
	assert.Equal(t, isHexDigit('a'), true)
	assert.Equal(t, isHexDigit('f'), true)
	assert.Equal(t, isHexDigit('f'+1), false)
	assert.Equal(t, isHexDigit('A'), true)
	assert.Equal(t, isHexDigit('F'), true)
	assert.Equal(t, isHexDigit('F'+1), false)
	assert.Equal(t, isHexDigit('ä'), false)

	assert.Equal(t, parseHexDigit('0'), rune(0))
	assert.Equal(t, parseHexDigit('9'), rune(9))
	assert.Equal(t, parseHexDigit('a'), rune(10))
	assert.Equal(t, parseHexDigit('F'), rune(15))

	v, n := decimalRun([]rune("0123x"), 1)
	assert.Equal(t, v, 123)
	assert.Equal(t, n, 3)
	v, n = decimalRun([]rune("99999999999999"), 0)
	assert.Equal(t, n, 14)
	assert.Assert(t, v > 0)
}
