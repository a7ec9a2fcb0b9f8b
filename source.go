package patgen

// runeSource is a cursor over a decoded pattern.
type runeSource struct {
	runes []rune
	pos   int
}

func newRuneSource(s string) runeSource {
	return runeSource{runes: []rune(s)}
}

func (s *runeSource) atEnd() bool {
	return s.pos >= len(s.runes)
}

// If source is ended, returns 0, true
func (s *runeSource) next() (rune, bool) {
	return s.nextNth(0)
}

// If source is ended, returns 0, true
func (s *runeSource) nextNth(n int) (rune, bool) {
	pos := s.pos + n
	if pos < 0 || pos >= len(s.runes) {
		return 0, true
	}
	return s.runes[pos], false
}

func (s *runeSource) consume(expected rune) bool {
	if r, ended := s.next(); ended || r != expected {
		return false
	}
	s.pos++
	return true
}

// indexFrom returns the offset relative to pos of the first occurrence of r
// at or after pos+from, or -1.
func (s *runeSource) indexFrom(from int, r rune) int {
	for i := s.pos + from; i < len(s.runes); i++ {
		if s.runes[i] == r {
			return i - s.pos
		}
	}
	return -1
}

func (s *runeSource) stringInRange(start, end int) string {
	return string(s.runes[start:end])
}

func isDigit(r rune) bool {
	return uint32(r-'0') <= 9
}

func lowerASCII(r rune) rune {
	return r | ('a' - 'A')
}

func isLetterASCII(r rune) bool {
	return uint32(lowerASCII(r)-'a') <= 'z'-'a'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || uint32(lowerASCII(r)-'a') <= 'f'-'a'
}

func parseHexDigit(r rune) rune {
	return (r & 0b1111) + (r>>6)*9
}
