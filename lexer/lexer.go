// Package lexer tokenizes textual PEG patterns.
//
// The lexer is a single pass over the source with no look-ahead beyond the
// two-character check for "<-". String literals and character classes are
// decoded in place, so a String token's Literal already holds the byte
// sequence the pattern should match and a Class token carries its byte set.
package lexer

import (
	"strings"

	"github.com/parsekit/pegs/charset"
)

// Lexer splits a PEG source text into Tokens.
type Lexer struct {
	source    string
	filename  string
	pos       int
	line      int
	lineStart int // offset of the first byte of the current line
}

// New returns a Lexer over source. filename is used in positions only.
func New(filename, source string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

func (l *Lexer) position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.pos - l.lineStart + 1,
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.source) }

// at returns the byte at offset i from the cursor, or 0 past the end.
func (l *Lexer) at(i int) byte {
	if l.pos+i >= len(l.source) {
		return 0
	}
	return l.source[l.pos+i]
}

// skipSpace consumes spaces, tabs, line breaks and "# ..." comments. CR, LF
// and CRLF each count as a single line break.
func (l *Lexer) skipSpace() {
	for !l.eof() {
		switch l.source[l.pos] {
		case ' ', '\t':
			l.pos++
		case '#':
			for !l.eof() && l.source[l.pos] != '\n' && l.source[l.pos] != '\r' {
				l.pos++
			}
		case '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		case '\r':
			l.pos++
			if !l.eof() && l.source[l.pos] == '\n' {
				l.pos++
			}
			l.line++
			l.lineStart = l.pos
		default:
			return
		}
	}
}

// Next returns the next token. After the end of the source it returns EOF
// tokens forever.
func (l *Lexer) Next() Token {
	l.skipSpace()
	pos := l.position()
	if l.eof() {
		return Token{Kind: EOF, Literal: "<EOF>", Pos: pos}
	}
	c := l.source[l.pos]
	switch {
	case isLetter(c):
		return l.scanIdent(pos)
	case c == '\'' || c == '"':
		return l.scanString(pos, ModNone)
	case c == '$':
		return l.scanBackRef(pos, ModNone)
	case c == '[':
		return l.scanClass(pos)
	case c == '\\':
		return l.scanBackslash(pos)
	}
	l.pos++
	one := func(kind Kind) Token {
		return Token{Kind: kind, Literal: l.source[pos.Offset:l.pos], Pos: pos}
	}
	switch c {
	case '(':
		return one(LeftParen)
	case ')':
		return one(RightParen)
	case '{':
		return one(LeftBrace)
	case '}':
		return one(RightBrace)
	case '/':
		return one(Slash)
	case '*':
		return one(Star)
	case '+':
		return one(Plus)
	case '&':
		return one(Amp)
	case '!':
		return one(Bang)
	case '?':
		return one(Question)
	case '@':
		return one(At)
	case '.':
		return one(AnyChar)
	case '_':
		return one(AnyRune)
	case '<':
		if !l.eof() && l.source[l.pos] == '-' {
			l.pos++
			return Token{Kind: Arrow, Literal: "<-", Pos: pos}
		}
	}
	return one(Invalid)
}

// scanIdent scans an identifier. An identifier immediately followed by a
// quote or '$' is a modifier prefix on the following string or back
// reference; only i, y and v are valid modifiers.
func (l *Lexer) scanIdent(pos Position) Token {
	start := l.pos
	l.pos++
	for !l.eof() && isIdentChar(l.source[l.pos]) {
		l.pos++
	}
	name := l.source[start:l.pos]
	if l.eof() {
		return Token{Kind: Ident, Literal: name, Pos: pos}
	}
	switch l.source[l.pos] {
	case '\'', '"', '$':
		var mod Modifier
		switch name {
		case "i":
			mod = ModIgnoreCase
		case "y":
			mod = ModIgnoreStyle
		case "v":
			mod = ModVerbatim
		default:
			return Token{Kind: Invalid, Literal: name, Pos: pos}
		}
		if l.source[l.pos] == '$' {
			return l.scanBackRef(pos, mod)
		}
		return l.scanString(pos, mod)
	}
	return Token{Kind: Ident, Literal: name, Pos: pos}
}

func (l *Lexer) scanString(pos Position, mod Modifier) Token {
	quote := l.source[l.pos]
	l.pos++
	var b strings.Builder
	for {
		if l.eof() || l.source[l.pos] == '\n' || l.source[l.pos] == '\r' {
			return Token{Kind: Invalid, Literal: l.source[pos.Offset:l.pos], Pos: pos}
		}
		c := l.source[l.pos]
		if c == quote {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			e, ok := l.scanEscape()
			if !ok {
				return Token{Kind: Invalid, Literal: l.source[pos.Offset:l.pos], Pos: pos}
			}
			b.WriteByte(e)
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
	return Token{Kind: String, Literal: b.String(), Modifier: mod, Pos: pos}
}

// scanEscape decodes one escape sequence, the backslash already consumed.
// A zero byte is never produced.
func (l *Lexer) scanEscape() (byte, bool) {
	if l.eof() {
		return 0, false
	}
	c := l.source[l.pos]
	l.pos++
	switch c {
	case 'r', 'R', 'c', 'C':
		return '\r', true
	case 'l', 'L':
		return '\n', true
	case 'f', 'F':
		return '\f', true
	case 'e', 'E':
		return 27, true
	case 'a', 'A':
		return 7, true
	case 'b', 'B':
		return 8, true
	case 'v', 'V':
		return 11, true
	case 't', 'T':
		return '\t', true
	case 'x', 'X':
		n := 0
		for i := 0; i < 2; i++ {
			d := hexValue(l.at(0))
			if d < 0 {
				return 0, false
			}
			n = n*16 + d
			l.pos++
		}
		if n == 0 {
			return 0, false
		}
		return byte(n), true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := int(c - '0')
		for i := 0; i < 2 && isDigit(l.at(0)); i++ {
			n = n*10 + int(l.source[l.pos]-'0')
			l.pos++
		}
		if n == 0 || n > 255 {
			return 0, false
		}
		return byte(n), true
	default:
		if isLetter(c) || c < ' ' {
			return 0, false
		}
		return c, true
	}
}

// scanClass scans a [...] character class. Ranges are written a-z; a leading
// '^' complements the set within 1..255.
func (l *Lexer) scanClass(pos Position) Token {
	l.pos++ // [
	invalid := func() Token {
		return Token{Kind: Invalid, Literal: l.source[pos.Offset:l.pos], Pos: pos}
	}
	neg := false
	if !l.eof() && l.source[l.pos] == '^' {
		neg = true
		l.pos++
	}
	set := &charset.Set{}
	for {
		if l.eof() || l.source[l.pos] == '\n' || l.source[l.pos] == '\r' {
			return invalid()
		}
		if l.source[l.pos] == ']' {
			l.pos++
			break
		}
		lo, ok := l.scanClassChar()
		if !ok {
			return invalid()
		}
		if l.at(0) == '-' && l.at(1) != ']' && l.pos+1 < len(l.source) {
			l.pos++ // -
			hi, ok := l.scanClassChar()
			if !ok || hi < lo {
				return invalid()
			}
			set.AddRange(lo, hi)
		} else {
			set.Add(lo)
		}
	}
	if neg {
		set = set.Complement()
	}
	return Token{Kind: Class, Literal: l.source[pos.Offset:l.pos], Set: set, Pos: pos}
}

func (l *Lexer) scanClassChar() (byte, bool) {
	c := l.source[l.pos]
	if c == '\\' {
		l.pos++
		return l.scanEscape()
	}
	l.pos++
	return c, true
}

// scanBackslash scans either a built-in (\letters) or a single escaped byte.
func (l *Lexer) scanBackslash(pos Position) Token {
	l.pos++ // backslash
	if !l.eof() && isLetter(l.source[l.pos]) {
		start := l.pos
		for !l.eof() && isLetter(l.source[l.pos]) {
			l.pos++
		}
		return Token{Kind: Builtin, Literal: l.source[start:l.pos], Pos: pos}
	}
	e, ok := l.scanEscape()
	if !ok {
		return Token{Kind: Invalid, Literal: l.source[pos.Offset:l.pos], Pos: pos}
	}
	return Token{Kind: Escaped, Literal: string([]byte{e}), Pos: pos}
}

func (l *Lexer) scanBackRef(pos Position, mod Modifier) Token {
	l.pos++ // $
	if !isDigit(l.at(0)) {
		return Token{Kind: Invalid, Literal: l.source[pos.Offset:l.pos], Pos: pos}
	}
	n := 0
	for isDigit(l.at(0)) {
		n = n*10 + int(l.source[l.pos]-'0')
		l.pos++
	}
	return Token{Kind: BackRef, Literal: l.source[pos.Offset:l.pos], Index: n, Modifier: mod, Pos: pos}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentChar(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
