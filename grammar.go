package pegs

import (
	"github.com/parsekit/pegs/lexer"
)

// GrammarError is the error reported for an invalid textual PEG: bad tokens,
// undeclared or unused rules, unknown built-ins, redefinitions and invalid
// back references. It carries the source position of the offending token.
type GrammarError = lexer.Error

// Parse compiles a textual PEG into a pattern. For a grammar of rules the
// returned pattern is the body of the first rule; the remaining rules are
// reachable through its non-terminal references.
func Parse(source string) (*Node, error) {
	return ParseNamed("", source)
}

// ParseNamed is Parse with a filename for error positions.
func ParseNamed(filename, source string) (p *Node, err error) {
	defer func() {
		switch msg := recover().(type) {
		case nil:
		case *GrammarError:
			err = msg
		case ConstructionError:
			err = msg
		default:
			panic(msg)
		}
	}()
	pp := &pegParser{lex: lexer.New(filename, source)}
	return pp.parse(), nil
}

// MustParse is Parse but panics on error.
func MustParse(source string) *Node {
	p, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return p
}

type pegParser struct {
	lex      *lexer.Lexer
	tok      lexer.Token
	ahead    *lexer.Token
	modifier lexer.Modifier // file-scoped \i or \y
	captures int
	table    symbolTable
}

func (p *pegParser) next() {
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
		return
	}
	p.tok = p.lex.Next()
}

func (p *pegParser) peek() lexer.Token {
	if p.ahead == nil {
		t := p.lex.Next()
		p.ahead = &t
	}
	return *p.ahead
}

func (p *pegParser) expect(k lexer.Kind) {
	if p.tok.Kind != k {
		p.unexpected(k.String())
	}
	p.next()
}

func (p *pegParser) unexpected(expected string) {
	if p.tok.Kind == lexer.Invalid {
		lexer.Panicf(p.tok.Pos, "invalid token %q", p.tok.Literal)
	}
	lexer.Panicf(p.tok.Pos, "%s expected, but found %q", expected, p.tok.Literal)
}

func (p *pegParser) parse() *Node {
	p.next()
	// A leading \i or \y applies to every string terminal and back
	// reference that has no modifier of its own.
	for p.tok.Kind == lexer.Builtin {
		if p.tok.Literal == "i" {
			p.modifier = lexer.ModIgnoreCase
		} else if p.tok.Literal == "y" {
			p.modifier = lexer.ModIgnoreStyle
		} else {
			break
		}
		p.next()
	}
	var result *Node
	if p.tok.Kind == lexer.Ident && p.peek().Kind == lexer.Arrow {
		for p.tok.Kind == lexer.Ident && p.peek().Kind == lexer.Arrow {
			nt := p.parseRule()
			if result == nil {
				result = nt.Rule
			}
		}
	} else {
		result = p.parseExpr()
	}
	if p.tok.Kind != lexer.EOF {
		p.unexpected("end of input")
	}
	p.checkRules()
	return result
}

func (p *pegParser) parseRule() *NonTerminal {
	nt := p.table.lookupOrCreate(p.tok.Literal, p.tok.Pos)
	if nt.declared() {
		lexer.Panicf(p.tok.Pos, "attempt to redefine rule %q", nt.Name)
	}
	nt.Pos = p.tok.Pos
	p.next()
	p.expect(lexer.Arrow)
	nt.Rule = p.parseExpr()
	// Declared only now, so references inside the body stay forward
	// references and recursive rules are never inlined.
	nt.markDeclared()
	return nt
}

// checkRules enforces that every referenced rule was declared and that every
// rule other than the start symbol is used.
func (p *pegParser) checkRules() {
	for i, nt := range p.table.nonterms {
		if !nt.declared() {
			lexer.Panicf(nt.Pos, "undeclared identifier %q", nt.Name)
		}
		if i > 0 && !nt.used() {
			lexer.Panicf(nt.Pos, "rule %q is declared but not used", nt.Name)
		}
	}
}

func (p *pegParser) parseExpr() *Node {
	alts := []*Node{p.parseSeq()}
	for p.tok.Kind == lexer.Slash {
		p.next()
		alts = append(alts, p.parseSeq())
	}
	return OrderedChoice(alts...)
}

func (p *pegParser) parseSeq() *Node {
	parts := []*Node{p.parsePrimary()}
	for p.startsPrimary() {
		parts = append(parts, p.parsePrimary())
	}
	return Sequence(parts...)
}

// startsPrimary reports whether the current token can begin a primary. An
// identifier followed by "<-" begins the next rule instead.
func (p *pegParser) startsPrimary() bool {
	switch p.tok.Kind {
	case lexer.Ident:
		return p.peek().Kind != lexer.Arrow
	case lexer.String, lexer.Class, lexer.LeftParen, lexer.LeftBrace,
		lexer.Amp, lexer.Bang, lexer.At, lexer.AnyChar, lexer.AnyRune,
		lexer.Builtin, lexer.Escaped, lexer.BackRef:
		return true
	}
	return false
}

func (p *pegParser) parsePrimary() *Node {
	switch p.tok.Kind {
	case lexer.Amp:
		p.next()
		return AndPred(p.parsePrimary())
	case lexer.Bang:
		p.next()
		return NotPred(p.parsePrimary())
	case lexer.At:
		p.next()
		return Search(p.parsePrimary())
	}
	a := p.parseAtom()
	for {
		switch p.tok.Kind {
		case lexer.Question:
			a = Option(a)
		case lexer.Star:
			p.checkRepeatable(a)
			a = GreedyRep(a)
		case lexer.Plus:
			p.checkRepeatable(a)
			a = GreedyPlus(a)
		default:
			return a
		}
		p.next()
	}
}

// checkRepeatable rejects repetition over patterns that match empty and
// cannot be collapsed; without this, GreedyRep would panic with a
// ConstructionError that carries no source position.
func (p *pegParser) checkRepeatable(a *Node) {
	switch a.kind {
	case kEmpty, kAndPredicate, kNotPredicate:
		lexer.Panicf(p.tok.Pos, "repetition of a pattern that matches the empty string")
	}
}

func (p *pegParser) parseAtom() *Node {
	tok := p.tok
	switch tok.Kind {
	case lexer.Ident:
		nt := p.table.lookupOrCreate(tok.Literal, tok.Pos)
		nt.markUsed()
		p.next()
		return NonTerm(nt)
	case lexer.String:
		p.next()
		return p.stringNode(tok)
	case lexer.Class:
		p.next()
		return Set(tok.Set)
	case lexer.LeftParen:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.RightParen)
		return e
	case lexer.LeftBrace:
		p.next()
		p.captures++
		e := p.parseExpr()
		p.expect(lexer.RightBrace)
		return Capture(e)
	case lexer.AnyChar:
		p.next()
		return Any()
	case lexer.AnyRune:
		p.next()
		return AnyRune()
	case lexer.Builtin:
		p.next()
		return p.builtin(tok)
	case lexer.Escaped:
		p.next()
		return Char(tok.Literal[0])
	case lexer.BackRef:
		p.next()
		return p.backRefNode(tok)
	}
	p.unexpected("expression")
	return nil
}

func (p *pegParser) effectiveModifier(m lexer.Modifier) lexer.Modifier {
	if m == lexer.ModNone {
		return p.modifier
	}
	return m
}

func (p *pegParser) stringNode(tok lexer.Token) *Node {
	switch p.effectiveModifier(tok.Modifier) {
	case lexer.ModIgnoreCase:
		return TermIgnoreCase(tok.Literal)
	case lexer.ModIgnoreStyle:
		return TermIgnoreStyle(tok.Literal)
	default:
		// v just shields the literal from a file-scoped \i or \y.
		return Term(tok.Literal)
	}
}

func (p *pegParser) backRefNode(tok lexer.Token) *Node {
	if tok.Index < 1 || tok.Index > p.captures || tok.Index > MaxSubpatterns {
		lexer.Panicf(tok.Pos, "invalid back reference index %d", tok.Index)
	}
	switch p.effectiveModifier(tok.Modifier) {
	case lexer.ModIgnoreCase:
		return BackRefIgnoreCase(tok.Index)
	case lexer.ModIgnoreStyle:
		return BackRefIgnoreStyle(tok.Index)
	default:
		return BackRef(tok.Index)
	}
}

func (p *pegParser) builtin(tok lexer.Token) *Node {
	switch tok.Literal {
	case "n":
		return Newline()
	case "d":
		return Digits()
	case "D":
		return Set(digitSet().Complement())
	case "s":
		return Whitespace()
	case "S":
		return Set(whitespaceSet().Complement())
	case "w":
		return Set(wordSet())
	case "W":
		return Set(wordSet().Complement())
	case "ident":
		return Identifier()
	}
	lexer.Panicf(tok.Pos, "unknown built-in: \\%s", tok.Literal)
	return nil
}
