package patgen

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestExpandClass(t *testing.T) {
	cases := []struct {
		body     string
		expected string
	}{
		{"abc", "abc"},
		{"a-e", "abcde"},
		{"e-a", "abcde"},
		{"a-", "a-"},
		{"-a", "-a"},
		{"a-c-e", "abc-e"},
		{`a\-c`, "a-c"},
		{`\d`, digits},
		{`a-c\d`, "abc" + digits},
		{`\d-z`, digits + "-z"},
		{`\x41-\x43`, "ABC"},
		{`\u{3b1}-\u{3b3}`, "αβγ"},
		{`\]\\`, `]\`},
		{`\0a`, "a"},
		{`\1`, "1"},
		{":digit:", digits},
		{"x:digit:y", "x" + digits + "y"},
		{":alpha::digit:", letters + digits},
		{":lower:_", lowerLetters + "_"},
		{":xdigit:", digits + "abcdefABCDEF"},
		{":umlaut:", "äöüßÄÖÜ"},
		{":umlaut+:", "ÄÖÜ"},
		{":umlaut-:", "äöüß"},
		{":vowel-:", "aeiouäöü"},
		{":consonant+:", "BCDFGHJKLMNPQRSTVWXYZ"},
		{":nope:", ":nope:"},
		{"[:digit:]", digits},
		{"x[:digit:]y", "x" + digits + "y"},
		{"[:digit:][:upper:]", digits + upperLetters},
		{"^[:alnum:]", specials},
		{"[:digit:", "[" + digits},
		{"[:nope:]", "[:nope:]"},
		{`\:digit:`, ":digit:"},
		{"^", alphabet},
		{`^\w\W`, ""},
		{`^\S`, ""},
		{`^\s`, alphabet},
		{"^a-z", upperLetters + digits + specials},
		{"^:alnum:", specials},
		{"äöü", "äöü"},
	}

	for _, c := range cases {
		t.Run(c.body, func(t *testing.T) {
			assert.Equal(t, expandClass(c.body), c.expected)
		})
	}
}

// Overlapping members are kept. Sampling is by index, so "a" is twice as
// likely as "A" in [a-z\w]; this skew is intended.
func TestExpandClassKeepsDuplicates(t *testing.T) {
	members := expandClass(`a-z\w`)
	assert.Equal(t, len(members), 26+52+10)
	assert.Equal(t, strings.Count(members, "a"), 2)
	assert.Equal(t, strings.Count(members, "A"), 1)

	src := NewSeededSource(7)
	st := newRenderState(&Config{QuantifierLimit: 100, ResultLimit: 10000}, src)
	counts := map[string]int{}
	for i := 0; i < 20000; i++ {
		s, err := st.pick(members)
		assert.NilError(t, err)
		counts[s]++
	}
	// Expected 20000*2/88 ≈ 454 for lowercase and ≈ 227 for uppercase.
	assert.Assert(t, counts["a"] > 340, "a drawn %d times", counts["a"])
	assert.Assert(t, counts["A"] < 330, "A drawn %d times", counts["A"])
}

func TestPOSIXMatcherRecognizesEveryName(t *testing.T) {
	for name, members := range posixClasses {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expandClass(":"+name+":"), members)
			assert.Equal(t, expandClass("<:"+name+":>"), "<"+members+">")
			assert.Equal(t, expandClass("<[:"+name+":]>"), "<"+members+">")
		})
	}
}
