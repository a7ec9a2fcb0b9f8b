package patgen

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	letters      = lowerLetters + upperLetters
	digits       = "0123456789"
	specials     = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace   = " \r\n\t"

	// alphabet is what "." draws from and what negated classes are
	// complemented against.
	alphabet = letters + digits + specials
)

const (
	umlautsLower    = "äöüß"
	umlautsUpper    = "ÄÖÜ"
	vowelsLower     = "aeiouäöü"
	vowelsUpper     = "AEIOUÄÖÜ"
	consonantsLower = "bcdfghjklmnpqrstvwxyzß"
	consonantsUpper = "BCDFGHJKLMNPQRSTVWXYZ"
)

// posixClasses maps the names usable as [:name:] inside a class body.
var posixClasses = map[string]string{
	"alpha":      letters,
	"upper":      upperLetters,
	"lower":      lowerLetters,
	"digit":      digits,
	"alnum":      letters + digits,
	"xdigit":     digits + "abcdefABCDEF",
	"space":      " \t\r\n\v\f",
	"blank":      " \t",
	"print":      " " + alphabet,
	"punct":      specials,
	"word":       letters + digits + "_",
	"umlaut":     umlautsLower + umlautsUpper,
	"umlaut+":    umlautsUpper,
	"umlaut-":    umlautsLower,
	"vowel":      vowelsLower + vowelsUpper,
	"vowel+":     vowelsUpper,
	"vowel-":     vowelsLower,
	"consonant":  consonantsLower + consonantsUpper,
	"consonant+": consonantsUpper,
	"consonant-": consonantsLower,
}

var posixMatcher = buildPOSIXMatcher()

func buildPOSIXMatcher() *ahocorasick.Automaton {
	names := make([]string, 0, len(posixClasses))
	for name := range posixClasses {
		names = append(names, name)
	}
	slices.Sort(names)

	builder := ahocorasick.NewBuilder()
	for _, name := range names {
		builder.AddPattern([]byte(":" + name + ":"))
	}
	auto, err := builder.Build()
	if err != nil {
		panic("patgen: building POSIX class matcher: " + err.Error())
	}
	return auto
}

// classAtom is one element of a class body while it is being expanded.
type classAtom struct {
	r rune
	// escaped atoms never act as a range operator or part of a POSIX name.
	escaped bool
	// set atoms contribute members verbatim and never form range endpoints.
	set     bool
	members string
}

// expandClass returns the member runes of the class whose body is the text
// between '[' and the matching ']'. Duplicates are kept: overlapping members
// are proportionally more likely to be drawn.
func expandClass(body string) string {
	negated := strings.HasPrefix(body, "^")
	if negated {
		body = body[1:]
	}

	atoms := classAtoms([]rune(body))
	atoms = expandPOSIXNames(atoms)

	var sb strings.Builder
	for i := 0; i < len(atoms); i++ {
		a := atoms[i]
		if a.set {
			sb.WriteString(a.members)
			continue
		}
		if i+2 < len(atoms) && isRangeOperator(atoms[i+1]) && !atoms[i+2].set {
			lo, hi := a.r, atoms[i+2].r
			if lo > hi {
				lo, hi = hi, lo
			}
			for r := lo; r <= hi; r++ {
				sb.WriteRune(r)
			}
			i += 2
			continue
		}
		sb.WriteRune(a.r)
	}

	if !negated {
		return sb.String()
	}
	return complement(sb.String())
}

func isRangeOperator(a classAtom) bool {
	return !a.set && !a.escaped && a.r == '-'
}

// classAtoms resolves the escapes of a class body.
func classAtoms(body []rune) []classAtom {
	atoms := make([]classAtom, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			atoms = append(atoms, classAtom{r: body[i]})
			continue
		}
		i++
		esc, n := resolveEscape(body, i, true)
		i += n
		switch esc.kind {
		case escapeClass:
			atoms = append(atoms, classAtom{set: true, members: esc.value})
		case escapeLiteral:
			if r, size := utf8.DecodeRuneInString(esc.value); size == len(esc.value) && size > 0 {
				atoms = append(atoms, classAtom{r: r, escaped: true})
			} else {
				atoms = append(atoms, classAtom{set: true, members: esc.value})
			}
		}
	}
	return atoms
}

// expandPOSIXNames replaces every :name: found in a run of plain atoms with
// the members of that POSIX class.
func expandPOSIXNames(atoms []classAtom) []classAtom {
	out := make([]classAtom, 0, len(atoms))
	for i := 0; i < len(atoms); {
		if atoms[i].set || atoms[i].escaped {
			out = append(out, atoms[i])
			i++
			continue
		}
		j := i
		for j < len(atoms) && !atoms[j].set && !atoms[j].escaped {
			j++
		}
		out = appendPOSIXRun(out, atoms[i:j])
		i = j
	}
	return out
}

func appendPOSIXRun(out, run []classAtom) []classAtom {
	var text []byte
	starts := make([]int, len(run))
	for k, a := range run {
		starts[k] = len(text)
		text = utf8.AppendRune(text, a.r)
	}

	done := 0
	for at := 0; at < len(text); {
		m := posixMatcher.Find(text, at)
		if m == nil {
			break
		}
		start, end := m.Start, m.End
		// [:name:] is the bracketed spelling of :name:.
		if start > 0 && text[start-1] == '[' && end < len(text) && text[end] == ']' {
			start--
			end++
		}
		first := sort.SearchInts(starts, start)
		last := sort.SearchInts(starts, end)
		out = append(out, run[done:first]...)
		name := string(text[m.Start+1 : m.End-1])
		out = append(out, classAtom{set: true, members: posixClasses[name]})
		done = last
		at = end
	}
	return append(out, run[done:]...)
}

// complement returns every rune of the alphabet that is not in members.
func complement(members string) string {
	var sb strings.Builder
	for _, r := range alphabet {
		if !strings.ContainsRune(members, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
