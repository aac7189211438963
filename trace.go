package pegs

import (
	"fmt"
	"io"
	"strconv"
)

// TraceMatch is MatchLen with a trace of the engine's traversal written to
// w: one line per node entered, indented by recursion depth, and one line
// per result. Intended for debugging grammars, not for production matching.
func TraceMatch(w io.Writer, s string, p *Node, start int, matches []string) int {
	c := closure{trace: w}
	x := rawMatch(s, p, start, &c)
	if x >= 0 {
		fillMatches(s, &c, matches)
	}
	return x
}

func tracedMatch(s string, p *Node, start int, c *closure) int {
	fmt.Fprintf(c.trace, "%*s%s %q\n", c.depth*2, "", label(p), ahead(s, start))
	c.depth++
	x := matchKind(s, p, start, c)
	c.depth--
	if x < 0 {
		fmt.Fprintf(c.trace, "%*sfail\n", c.depth*2, "")
	} else {
		fmt.Fprintf(c.trace, "%*s= %d\n", c.depth*2, "", x)
	}
	return x
}

// ahead returns a short window of input after start for trace lines.
func ahead(s string, start int) string {
	const window = 12
	if len(s)-start > window {
		return s[start:start+window] + "..."
	}
	return s[start:]
}

// label is a one-line description of p without descending into children.
func label(p *Node) string {
	switch p.kind {
	case kEmpty:
		return "()"
	case kAny:
		return "."
	case kAnyRune:
		return "_"
	case kNewline:
		return `\n`
	case kTerminal:
		return strconv.Quote(p.term)
	case kTerminalIgnoreCase:
		return "i" + strconv.Quote(p.term)
	case kTerminalIgnoreStyle:
		return "y" + strconv.Quote(p.term)
	case kChar:
		return strconv.Quote(string(p.ch))
	case kCharChoice:
		return "[class]"
	case kNonTerminal:
		return p.nt.Name
	case kSequence:
		return "sequence"
	case kOrderedChoice:
		return "choice"
	case kGreedyRep:
		return "rep*"
	case kGreedyRepChar:
		return strconv.Quote(string(p.ch)) + "*"
	case kGreedyRepSet:
		return "[class]*"
	case kGreedyAny:
		return ".*"
	case kOption:
		return "option?"
	case kAndPredicate:
		return "&pred"
	case kNotPredicate:
		return "!pred"
	case kCapture:
		return "{capture}"
	case kBackRef:
		return "$" + strconv.Itoa(p.index+1)
	case kBackRefIgnoreCase:
		return "i$" + strconv.Itoa(p.index+1)
	case kBackRefIgnoreStyle:
		return "y$" + strconv.Itoa(p.index+1)
	case kSearch:
		return "@search"
	}
	return "?"
}
