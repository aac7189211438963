package pegs

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// span is one recorded capture, byte offsets with an inclusive last. A
// zero-length capture has last == first-1.
type span struct {
	first, last int
}

// closure is the per-match mutable capture state. It is stack-like: any
// scope that fails is rewound to the capture count it started with.
type closure struct {
	matches [MaxSubpatterns]span
	ml      int // captures recorded so far, dropped ones included

	trace io.Writer // when non-nil, every node visit is logged
	depth int
}

// at returns the byte at i, or NUL at and past the end of the input. NUL
// doubles as the end-of-input sentinel: no pattern byte, set member or
// terminal ever contains it.
func at(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

// rawMatch runs p against s from start and returns the number of bytes
// matched, or -1. It never errors; failure is silent backtracking. start
// must be <= len(s).
func rawMatch(s string, p *Node, start int, c *closure) int {
	if c.trace != nil {
		return tracedMatch(s, p, start, c)
	}
	return matchKind(s, p, start, c)
}

func matchKind(s string, p *Node, start int, c *closure) int { // nolint: gocyclo
	switch p.kind {
	case kEmpty:
		return 0

	case kAny:
		if at(s, start) != 0 {
			return 1
		}
		return -1

	case kAnyRune:
		if start < len(s) && s[start] != 0 {
			_, size := utf8.DecodeRuneInString(s[start:])
			return size
		}
		return -1

	case kGreedyAny:
		return len(s) - start

	case kNewline:
		switch at(s, start) {
		case '\r':
			if at(s, start+1) == '\n' {
				return 2
			}
			return 1
		case '\n':
			return 1
		}
		return -1

	case kTerminal:
		if len(s)-start >= len(p.term) && s[start:start+len(p.term)] == p.term {
			return len(p.term)
		}
		return -1

	case kTerminalIgnoreCase:
		i := start
		for j := 0; j < len(p.term); {
			if i >= len(s) {
				return -1
			}
			pr, pw := utf8.DecodeRuneInString(p.term[j:])
			sr, sw := utf8.DecodeRuneInString(s[i:])
			if unicode.ToLower(pr) != unicode.ToLower(sr) {
				return -1
			}
			j += pw
			i += sw
		}
		return i - start

	case kTerminalIgnoreStyle:
		i := start
		for j := 0; j < len(p.term); {
			for i < len(s) && s[i] == '_' {
				i++
			}
			for j < len(p.term) && p.term[j] == '_' {
				j++
			}
			if j >= len(p.term) {
				break
			}
			if i >= len(s) {
				return -1
			}
			pr, pw := utf8.DecodeRuneInString(p.term[j:])
			sr, sw := utf8.DecodeRuneInString(s[i:])
			if unicode.ToLower(pr) != unicode.ToLower(sr) {
				return -1
			}
			j += pw
			i += sw
		}
		return i - start

	case kChar:
		if at(s, start) == p.ch {
			return 1
		}
		return -1

	case kCharChoice:
		if p.set.Contains(at(s, start)) {
			return 1
		}
		return -1

	case kNonTerminal:
		if p.nt.Rule == nil {
			// An unset rule matches nothing.
			return -1
		}
		oldMl := c.ml
		result := rawMatch(s, p.nt.Rule, start, c)
		if result < 0 {
			c.ml = oldMl
		}
		return result

	case kSequence:
		oldMl := c.ml
		length := 0
		for _, son := range p.sons {
			x := rawMatch(s, son, start+length, c)
			if x < 0 {
				c.ml = oldMl
				return -1
			}
			length += x
		}
		return length

	case kOrderedChoice:
		oldMl := c.ml
		for _, son := range p.sons {
			x := rawMatch(s, son, start, c)
			if x >= 0 {
				return x
			}
			c.ml = oldMl
		}
		return -1

	case kSearch:
		oldMl := c.ml
		for k := 0; start+k <= len(s); k++ {
			x := rawMatch(s, p.sons[0], start+k, c)
			if x >= 0 {
				return k + x
			}
		}
		c.ml = oldMl
		return -1

	case kGreedyRep:
		// A zero-length iteration terminates the loop; this is the
		// standard protection against zero-width infinite repetition.
		length := 0
		for {
			x := rawMatch(s, p.sons[0], start+length, c)
			if x <= 0 {
				return length
			}
			length += x
		}

	case kGreedyRepChar:
		length := 0
		for at(s, start+length) == p.ch {
			length++
		}
		return length

	case kGreedyRepSet:
		length := 0
		for p.set.Contains(at(s, start+length)) {
			length++
		}
		return length

	case kOption:
		if x := rawMatch(s, p.sons[0], start, c); x > 0 {
			return x
		}
		return 0

	case kAndPredicate:
		oldMl := c.ml
		x := rawMatch(s, p.sons[0], start, c)
		c.ml = oldMl
		if x >= 0 {
			return 0
		}
		return -1

	case kNotPredicate:
		oldMl := c.ml
		x := rawMatch(s, p.sons[0], start, c)
		c.ml = oldMl
		if x < 0 {
			return 0
		}
		return -1

	case kCapture:
		// The slot is reserved on entry, not on success, so nested
		// captures keep a deterministic numbering.
		idx := c.ml
		c.ml++
		x := rawMatch(s, p.sons[0], start, c)
		if x < 0 {
			c.ml = idx
			return -1
		}
		if idx < MaxSubpatterns {
			c.matches[idx] = span{first: start, last: start + x - 1}
		}
		return x

	case kBackRef, kBackRefIgnoreCase, kBackRefIgnoreStyle:
		if p.index >= c.ml {
			return -1
		}
		m := c.matches[p.index]
		tmp := Node{term: s[m.first : m.last+1]}
		switch p.kind {
		case kBackRef:
			tmp.kind = kTerminal
		case kBackRefIgnoreCase:
			tmp.kind = kTerminalIgnoreCase
		default:
			tmp.kind = kTerminalIgnoreStyle
		}
		return rawMatch(s, &tmp, start, c)
	}

	// kRule and kList exist for parse-time trees only.
	return -1
}
