package pegs

import (
	"github.com/parsekit/pegs/charset"
)

// MaxSubpatterns is the number of capture slots available to a match.
const MaxSubpatterns = 10

// inlineThreshold bounds the spaceCost of rule bodies inlined at their
// reference sites: a body is inlined only if its cost is below it.
const inlineThreshold = 5

type kind int

const (
	kEmpty kind = iota
	kAny
	kAnyRune
	kNewline
	kTerminal
	kTerminalIgnoreCase
	kTerminalIgnoreStyle
	kChar
	kCharChoice
	kNonTerminal
	kSequence
	kOrderedChoice
	kGreedyRep
	kGreedyRepChar
	kGreedyRepSet
	kGreedyAny
	kOption
	kAndPredicate
	kNotPredicate
	kCapture
	kBackRef
	kBackRefIgnoreCase
	kBackRefIgnoreStyle
	kSearch
	kRule
	kList
)

// Node is one node of a compiled PEG. The zero value is not meaningful;
// nodes are built by the combinator functions or by Parse. Nodes are
// read-only once built and may be shared freely between patterns and between
// concurrent matches.
type Node struct {
	kind  kind
	term  string       // kTerminal*
	ch    byte         // kChar, kGreedyRepChar
	set   *charset.Set // kCharChoice, kGreedyRepSet; shared by reference
	nt    *NonTerminal // kNonTerminal
	index int          // kBackRef*, zero-based
	sons  []*Node      // composite kinds
}

// ConstructionError reports illegal combinator nesting, such as a repetition
// over a pattern that matches the empty string.
type ConstructionError string

func (e ConstructionError) Error() string { return string(e) }

func constructionErrorf(msg string) {
	panic(ConstructionError(msg))
}

// Empty returns a pattern matching the empty string.
func Empty() *Node { return &Node{kind: kEmpty} }

// Any returns a pattern matching any single byte except NUL.
func Any() *Node { return &Node{kind: kAny} }

// AnyRune returns a pattern matching any single Unicode code point except
// NUL.
func AnyRune() *Node { return &Node{kind: kAnyRune} }

// Newline returns a pattern matching CR, LF or CRLF.
func Newline() *Node { return &Node{kind: kNewline} }

// Term returns a pattern matching s literally. A one-byte string yields the
// specialized single-char node.
func Term(s string) *Node {
	if len(s) == 1 {
		return Char(s[0])
	}
	return &Node{kind: kTerminal, term: s}
}

// TermIgnoreCase returns a pattern matching s with Unicode
// case-insensitivity.
func TermIgnoreCase(s string) *Node {
	return &Node{kind: kTerminalIgnoreCase, term: s}
}

// TermIgnoreStyle returns a pattern matching s ignoring case and underscores.
func TermIgnoreStyle(s string) *Node {
	return &Node{kind: kTerminalIgnoreStyle, term: s}
}

// Char returns a pattern matching the single byte c, which must not be NUL;
// NUL is the engine's end-of-input sentinel.
func Char(c byte) *Node {
	if c == 0 {
		constructionErrorf("NUL is not a matchable byte")
	}
	return &Node{kind: kChar, ch: c}
}

// Set returns a pattern matching any byte in cs. The set is referenced, not
// copied; it must not be mutated afterwards.
func Set(cs *charset.Set) *Node {
	return &Node{kind: kCharChoice, set: cs}
}

// NonTerm returns a reference to the rule nt. A small rule body that is
// already known is inlined in place of the reference; forward references,
// recursive rules and big bodies stay references.
func NonTerm(nt *NonTerminal) *Node {
	if nt.Rule != nil && spaceCost(nt.Rule) < inlineThreshold {
		return nt.Rule
	}
	return &Node{kind: kNonTerminal, nt: nt}
}

// spaceCost counts the leaf nodes of p. A NonTerminal reference exceeds the
// inline threshold outright so that recursive rules are never inlined.
func spaceCost(p *Node) int {
	switch p.kind {
	case kEmpty:
		return 0
	case kNonTerminal:
		return inlineThreshold + 1
	case kSequence, kOrderedChoice, kGreedyRep, kOption, kAndPredicate,
		kNotPredicate, kCapture, kSearch, kRule, kList:
		n := 0
		for _, son := range p.sons {
			n += spaceCost(son)
			if n >= inlineThreshold {
				break
			}
		}
		return n
	default:
		return 1
	}
}

// Sequence returns the concatenation of elements. Nested sequences are
// flattened and adjacent literals fused; a singleton is returned unwrapped.
func Sequence(elements ...*Node) *Node {
	sons := make([]*Node, 0, len(elements))
	for _, e := range elements {
		if e.kind == kSequence {
			sons = append(sons, e.sons...)
		} else {
			sons = append(sons, e)
		}
	}
	fused := make([]*Node, 0, len(sons))
	for _, e := range sons {
		if n := len(fused); n > 0 && fused[n-1].kind == kTerminal {
			prev := fused[n-1]
			switch e.kind {
			case kTerminal:
				fused[n-1] = &Node{kind: kTerminal, term: prev.term + e.term}
				continue
			case kChar:
				fused[n-1] = &Node{kind: kTerminal, term: prev.term + string([]byte{e.ch})}
				continue
			}
		}
		fused = append(fused, e)
	}
	if len(fused) == 1 {
		return fused[0]
	}
	return &Node{kind: kSequence, sons: fused}
}

// OrderedChoice returns the ordered choice over alternatives. Nested choices
// are flattened and adjacent single-byte alternatives merged into one
// character choice; a singleton is returned unwrapped.
func OrderedChoice(alternatives ...*Node) *Node {
	sons := make([]*Node, 0, len(alternatives))
	for _, a := range alternatives {
		if a.kind == kOrderedChoice {
			sons = append(sons, a.sons...)
		} else {
			sons = append(sons, a)
		}
	}
	merged := make([]*Node, 0, len(sons))
	for _, a := range sons {
		if n := len(merged); n > 0 && isCharClassy(merged[n-1]) && isCharClassy(a) {
			merged[n-1] = Set(unionOf(merged[n-1], a))
			continue
		}
		merged = append(merged, a)
	}
	if len(merged) == 1 {
		return merged[0]
	}
	return &Node{kind: kOrderedChoice, sons: merged}
}

func isCharClassy(p *Node) bool {
	return p.kind == kChar || p.kind == kCharChoice
}

// unionOf merges two char/set alternatives into a fresh set, leaving any
// shared payloads untouched.
func unionOf(a, b *Node) *charset.Set {
	out := &charset.Set{}
	for _, p := range []*Node{a, b} {
		if p.kind == kChar {
			out.Add(p.ch)
		} else {
			out.Union(p.set)
		}
	}
	return out
}

// matchesEmpty reports whether p trivially matches the empty string at every
// position.
func matchesEmpty(p *Node) bool {
	switch p.kind {
	case kEmpty, kOption, kGreedyRep, kGreedyRepChar, kGreedyRepSet,
		kGreedyAny:
		return true
	}
	return false
}

// GreedyRep returns the zero-or-more repetition of a. Single-byte and set
// operands specialize; repetition and option nesting collapses, so both
// GreedyRep(Option(x)) and GreedyRep(GreedyRep(x)) are equivalent to
// GreedyRep(x). Repetition over a pattern that always matches empty and
// cannot be collapsed panics with a ConstructionError.
func GreedyRep(a *Node) *Node {
	switch a.kind {
	case kGreedyRep, kGreedyRepChar, kGreedyRepSet, kGreedyAny:
		return a
	case kOption:
		return GreedyRep(a.sons[0])
	case kChar:
		return &Node{kind: kGreedyRepChar, ch: a.ch}
	case kCharChoice:
		// The set is aliased, not copied.
		return &Node{kind: kGreedyRepSet, set: a.set}
	case kAny, kAnyRune:
		return &Node{kind: kGreedyAny}
	case kEmpty, kAndPredicate, kNotPredicate:
		constructionErrorf("repetition of a pattern that matches the empty string")
	}
	return &Node{kind: kGreedyRep, sons: []*Node{a}}
}

// GreedyPlus returns the one-or-more repetition of a.
func GreedyPlus(a *Node) *Node {
	return Sequence(a, GreedyRep(a))
}

// Option returns a pattern matching a or the empty string. If a already
// matches empty it is returned unchanged.
func Option(a *Node) *Node {
	if matchesEmpty(a) {
		return a
	}
	return &Node{kind: kOption, sons: []*Node{a}}
}

// AndPred returns the positive lookahead &a.
func AndPred(a *Node) *Node {
	return &Node{kind: kAndPredicate, sons: []*Node{a}}
}

// NotPred returns the negative lookahead !a.
func NotPred(a *Node) *Node {
	return &Node{kind: kNotPredicate, sons: []*Node{a}}
}

// Search returns @a, which skips input until a matches.
func Search(a *Node) *Node {
	return &Node{kind: kSearch, sons: []*Node{a}}
}

// Capture returns {a}, recording the matched substring in the next capture
// slot.
func Capture(a *Node) *Node {
	return &Node{kind: kCapture, sons: []*Node{a}}
}

func backRef(k kind, n int) *Node {
	if n < 1 || n > MaxSubpatterns {
		constructionErrorf("back reference index out of range")
	}
	return &Node{kind: k, index: n - 1}
}

// BackRef returns $n, matching the text captured in slot n (1-based)
// literally.
func BackRef(n int) *Node { return backRef(kBackRef, n) }

// BackRefIgnoreCase is the case-insensitive variant of BackRef.
func BackRefIgnoreCase(n int) *Node { return backRef(kBackRefIgnoreCase, n) }

// BackRefIgnoreStyle is the style-insensitive variant of BackRef.
func BackRefIgnoreStyle(n int) *Node { return backRef(kBackRefIgnoreStyle, n) }

// Rule returns a parse-time head <- body pair. It is never executed by the
// engine; it exists so grammars can be rendered back to text.
func Rule(head, body *Node) *Node {
	return &Node{kind: kRule, sons: []*Node{head, body}}
}

// List returns a parse-time list of rules.
func List(rules ...*Node) *Node {
	return &Node{kind: kList, sons: rules}
}
