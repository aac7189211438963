package pegs

import "strings"

// fillMatches copies the recorded captures into the caller's slice. Slots
// the match did not record are left untouched.
func fillMatches(s string, c *closure, matches []string) {
	n := c.ml
	if n > MaxSubpatterns {
		n = MaxSubpatterns
	}
	if n > len(matches) {
		n = len(matches)
	}
	for i := 0; i < n; i++ {
		m := c.matches[i]
		matches[i] = s[m.first : m.last+1]
	}
}

// captured returns the recorded captures as substrings of s.
func captured(s string, c *closure) []string {
	n := c.ml
	if n > MaxSubpatterns {
		n = MaxSubpatterns
	}
	out := make([]string, n)
	fillMatches(s, c, out)
	return out
}

// MatchLen runs p against s at start and returns the number of bytes
// matched, or -1. On success the captured substrings are written to matches,
// which may be nil; on failure matches is left untouched.
func MatchLen(s string, p *Node, start int, matches []string) int {
	var c closure
	x := rawMatch(s, p, start, &c)
	if x >= 0 {
		fillMatches(s, &c, matches)
	}
	return x
}

// Match reports whether p matches s from start through the end of the
// string. Captures are written to matches on success only.
func Match(s string, p *Node, start int, matches []string) bool {
	var c closure
	if rawMatch(s, p, start, &c) == len(s)-start {
		fillMatches(s, &c, matches)
		return true
	}
	return false
}

// Find returns the first index >= start at which p matches, or -1.
func Find(s string, p *Node, start int) int {
	var c closure
	for i := start; i <= len(s); i++ {
		c.ml = 0
		if rawMatch(s, p, i, &c) >= 0 {
			return i
		}
	}
	return -1
}

// FindAll returns the non-overlapping matched substrings of p in s, in
// order. Zero-length matches yield empty strings and scanning advances one
// byte past them.
func FindAll(s string, p *Node) []string {
	var out []string
	var c closure
	for i := 0; i < len(s); {
		c.ml = 0
		x := rawMatch(s, p, i, &c)
		if x < 0 {
			i++
			continue
		}
		out = append(out, s[i:i+x])
		if x == 0 {
			i++
		} else {
			i += x
		}
	}
	return out
}

// Contains reports whether p matches anywhere in s.
func Contains(s string, p *Node) bool {
	return Find(s, p, 0) >= 0
}

// HasPrefix reports whether p matches at the start of s.
func HasPrefix(s string, p *Node) bool {
	var c closure
	return rawMatch(s, p, 0, &c) >= 0
}

// HasSuffix reports whether p matches some suffix of s through its end.
func HasSuffix(s string, p *Node) bool {
	var c closure
	for i := 0; i <= len(s); i++ {
		c.ml = 0
		if rawMatch(s, p, i, &c) == len(s)-i {
			return true
		}
	}
	return false
}

// Replace scans s, replacing every non-empty match of p with the template
// by. In the template $1..$n expand to the match's captures, $# to the next
// capture in sequence and $$ to a literal dollar. Positions with no match,
// and zero-length matches, copy one byte through.
func Replace(s string, p *Node, by string) string {
	var b strings.Builder
	var c closure
	for i := 0; i < len(s); {
		c.ml = 0
		x := rawMatch(s, p, i, &c)
		if x <= 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		appendTemplate(&b, by, captured(s, &c))
		i += x
	}
	return b.String()
}

// ReplaceMatches is Replace with a fixed replacement, no template expansion.
func ReplaceMatches(s string, p *Node, by string) string {
	var b strings.Builder
	var c closure
	for i := 0; i < len(s); {
		c.ml = 0
		x := rawMatch(s, p, i, &c)
		if x <= 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString(by)
		i += x
	}
	return b.String()
}

// A Substitution pairs a pattern with its replacement template.
type Substitution struct {
	Pattern *Node
	By      string
}

// ParallelReplace scans s once; at each position the first substitution
// whose pattern matches non-empty wins.
func ParallelReplace(s string, subs ...Substitution) string {
	var b strings.Builder
	var c closure
	for i := 0; i < len(s); {
		replaced := false
		for _, sub := range subs {
			c.ml = 0
			x := rawMatch(s, sub.Pattern, i, &c)
			if x > 0 {
				appendTemplate(&b, sub.By, captured(s, &c))
				i += x
				replaced = true
				break
			}
		}
		if !replaced {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// Split returns the non-empty substrings of s delimited by non-empty matches
// of sep. Zero-length separator matches are ignored.
func Split(s string, sep *Node) []string {
	var out []string
	var c closure
	first, last := 0, 0
	for last < len(s) {
		for last < len(s) {
			c.ml = 0
			x := rawMatch(s, sep, last, &c)
			if x <= 0 {
				break
			}
			last += x
		}
		first = last
		for last < len(s) {
			last++
			c.ml = 0
			if x := rawMatch(s, sep, last, &c); x > 0 {
				break
			}
		}
		if first < last {
			out = append(out, s[first:last])
		}
	}
	return out
}

// appendTemplate expands by into b: $$ is a literal dollar, $# the next
// capture in sequence, $N (N >= 1) capture N. Out-of-range references expand
// to nothing.
func appendTemplate(b *strings.Builder, by string, caps []string) {
	seq := 0
	for i := 0; i < len(by); {
		if by[i] != '$' || i+1 >= len(by) {
			b.WriteByte(by[i])
			i++
			continue
		}
		switch c := by[i+1]; {
		case c == '$':
			b.WriteByte('$')
			i += 2
		case c == '#':
			if seq < len(caps) {
				b.WriteString(caps[seq])
			}
			seq++
			i += 2
		case c >= '0' && c <= '9':
			n := 0
			i++
			for i < len(by) && by[i] >= '0' && by[i] <= '9' {
				n = n*10 + int(by[i]-'0')
				i++
			}
			if n >= 1 && n <= len(caps) {
				b.WriteString(caps[n-1])
			}
		default:
			b.WriteByte('$')
			i++
		}
	}
}
