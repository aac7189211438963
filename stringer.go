package pegs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parsekit/pegs/charset"
)

// String renders the pattern back to canonical PEG text. Parsing the result
// yields a structurally identical pattern (rule references render as bare
// names, so a grammar of rules round-trips through its List form).
func (p *Node) String() string {
	var b strings.Builder
	toStrAux(&b, p)
	return b.String()
}

func toStrAux(b *strings.Builder, p *Node) { // nolint: gocyclo
	switch p.kind {
	case kEmpty:
		b.WriteString("()")
	case kAny:
		b.WriteByte('.')
	case kAnyRune:
		b.WriteByte('_')
	case kNewline:
		b.WriteString(`\n`)
	case kTerminal:
		writeQuoted(b, p.term)
	case kTerminalIgnoreCase:
		b.WriteByte('i')
		writeQuoted(b, p.term)
	case kTerminalIgnoreStyle:
		b.WriteByte('y')
		writeQuoted(b, p.term)
	case kChar:
		writeQuoted(b, string([]byte{p.ch}))
	case kCharChoice:
		writeClass(b, p.set)
	case kNonTerminal:
		b.WriteString(p.nt.Name)
	case kSequence:
		b.WriteByte('(')
		for i, son := range p.sons {
			if i > 0 {
				b.WriteByte(' ')
			}
			toStrAux(b, son)
		}
		b.WriteByte(')')
	case kOrderedChoice:
		b.WriteByte('(')
		for i, son := range p.sons {
			if i > 0 {
				b.WriteString(" / ")
			}
			toStrAux(b, son)
		}
		b.WriteByte(')')
	case kGreedyRep:
		toStrAux(b, p.sons[0])
		b.WriteByte('*')
	case kGreedyRepChar:
		writeQuoted(b, string([]byte{p.ch}))
		b.WriteByte('*')
	case kGreedyRepSet:
		writeClass(b, p.set)
		b.WriteByte('*')
	case kGreedyAny:
		b.WriteString(".*")
	case kOption:
		toStrAux(b, p.sons[0])
		b.WriteByte('?')
	case kAndPredicate:
		b.WriteByte('&')
		toStrAux(b, p.sons[0])
	case kNotPredicate:
		b.WriteByte('!')
		toStrAux(b, p.sons[0])
	case kSearch:
		b.WriteByte('@')
		toStrAux(b, p.sons[0])
	case kCapture:
		b.WriteByte('{')
		toStrAux(b, p.sons[0])
		b.WriteByte('}')
	case kBackRef:
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(p.index + 1))
	case kBackRefIgnoreCase:
		b.WriteString("i$")
		b.WriteString(strconv.Itoa(p.index + 1))
	case kBackRefIgnoreStyle:
		b.WriteString("y$")
		b.WriteString(strconv.Itoa(p.index + 1))
	case kRule:
		toStrAux(b, p.sons[0])
		b.WriteString(" <- ")
		toStrAux(b, p.sons[1])
	case kList:
		for i, son := range p.sons {
			if i > 0 {
				b.WriteByte('\n')
			}
			toStrAux(b, son)
		}
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		writeEscaped(b, s[i], '\'')
	}
	b.WriteByte('\'')
}

// writeEscaped emits one byte in a form the lexer reads back identically.
// reserved lists the bytes that need a backslash in the current context.
func writeEscaped(b *strings.Builder, c byte, reserved ...byte) {
	for _, r := range reserved {
		if c == r {
			b.WriteByte('\\')
			b.WriteByte(c)
			return
		}
	}
	switch {
	case c == '\\':
		b.WriteString(`\\`)
	case c == '\t':
		b.WriteString(`\t`)
	case c == '\n':
		b.WriteString(`\l`)
	case c == '\r':
		b.WriteString(`\c`)
	case c >= ' ' && c <= '~':
		b.WriteByte(c)
	default:
		// Zero-padded so a following literal digit cannot extend the
		// escape.
		fmt.Fprintf(b, `\%03d`, c)
	}
}

// writeClass renders a byte set. A set covering more than half the byte
// range is rendered through its complement with a leading ^.
func writeClass(b *strings.Builder, set *charset.Set) {
	cs := set
	neg := false
	if set.Len() > 128 {
		cs = set.Complement()
		neg = true
	}
	b.WriteByte('[')
	if neg {
		b.WriteByte('^')
	}
	for c := 1; c < 256; {
		if !cs.Contains(byte(c)) {
			c++
			continue
		}
		run := c
		for run < 256 && cs.Contains(byte(run)) {
			run++
		}
		if run-c >= 3 {
			writeClassChar(b, byte(c))
			b.WriteByte('-')
			writeClassChar(b, byte(run-1))
		} else {
			for ; c < run; c++ {
				writeClassChar(b, byte(c))
			}
		}
		c = run
	}
	b.WriteByte(']')
}

func writeClassChar(b *strings.Builder, c byte) {
	writeEscaped(b, c, ']', '^', '-')
}
