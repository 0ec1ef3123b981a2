package parser

// scanner is a byte cursor over the source with single-byte lookahead. The
// token classes are all ASCII-delimited, so multi-byte runes fall through
// into identifiers untouched.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) next() (byte, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	c := s.input[s.pos]
	s.pos++
	return c, true
}

func (s *scanner) peek() (byte, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	return s.input[s.pos], true
}

// readWhile collects bytes satisfying keep, starting with the already
// consumed first byte.
func (s *scanner) readWhile(first byte, keep func(byte) bool) string {
	start := s.pos - 1
	for {
		c, ok := s.peek()
		if !ok || !keep(c) {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos]
}

// collect collects bytes satisfying keep with no initial byte, which may
// yield the empty string.
func (s *scanner) collect(keep func(byte) bool) string {
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok || !keep(c) {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos]
}

// readToken collects the next run of non-whitespace bytes.
func (s *scanner) readToken() string {
	return s.collect(func(b byte) bool { return !isSpace(b) })
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
