package pegs

import (
	"unicode"
	"unicode/utf8"

	"github.com/parsekit/pegs/lexer"
)

type ntFlag int

const (
	ntDeclared ntFlag = 1 << iota
	ntUsed
)

// NonTerminal is a named rule record. Records are created on first
// reference, forward references included, and have their Rule filled in when
// the "name <- expr" definition is parsed. Rule records reachable from a
// compiled pattern form a possibly cyclic graph and are read-only once
// compilation finishes.
type NonTerminal struct {
	Name  string
	Pos   lexer.Position
	Rule  *Node
	flags ntFlag
}

// NewNonTerminal returns an undeclared rule record. Assign Rule and pass it
// to NonTerm to build recursive grammars programmatically.
func NewNonTerminal(name string, pos lexer.Position) *NonTerminal {
	return &NonTerminal{Name: name, Pos: pos}
}

func (nt *NonTerminal) declared() bool { return nt.flags&ntDeclared != 0 }
func (nt *NonTerminal) used() bool     { return nt.flags&ntUsed != 0 }

func (nt *NonTerminal) markDeclared() { nt.flags |= ntDeclared }
func (nt *NonTerminal) markUsed()     { nt.flags |= ntUsed }

// symbolTable holds the rule records of one grammar in declaration/reference
// order. The first record is the start symbol.
type symbolTable struct {
	nonterms []*NonTerminal
}

// lookupOrCreate finds a record by style-insensitive name, inserting a
// forward reference when the name is unknown.
func (t *symbolTable) lookupOrCreate(name string, pos lexer.Position) *NonTerminal {
	for _, nt := range t.nonterms {
		if eqIgnoreStyle(nt.Name, name) {
			return nt
		}
	}
	nt := NewNonTerminal(name, pos)
	t.nonterms = append(t.nonterms, nt)
	return nt
}

// eqIgnoreStyle compares two names ignoring case and underscores.
func eqIgnoreStyle(a, b string) bool {
	i, j := 0, 0
	for {
		for i < len(a) && a[i] == '_' {
			i++
		}
		for j < len(b) && b[j] == '_' {
			j++
		}
		if i >= len(a) || j >= len(b) {
			return i >= len(a) && j >= len(b)
		}
		ar, aw := utf8.DecodeRuneInString(a[i:])
		br, bw := utf8.DecodeRuneInString(b[j:])
		if unicode.ToLower(ar) != unicode.ToLower(br) {
			return false
		}
		i += aw
		j += bw
	}
}
