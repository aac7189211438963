package pegs

// Walk calls fn for p and every node reachable from it in depth-first order.
// Rule bodies are visited once no matter how many references reach them, so
// the walk terminates on recursive grammars. fn returning false prunes the
// walk below its node.
func Walk(p *Node, fn func(*Node) bool) {
	walk(map[*NonTerminal]bool{}, p, fn)
}

func walk(seen map[*NonTerminal]bool, p *Node, fn func(*Node) bool) {
	if !fn(p) {
		return
	}
	if p.kind == kNonTerminal {
		if seen[p.nt] {
			return
		}
		seen[p.nt] = true
		if p.nt.Rule != nil {
			walk(seen, p.nt.Rule, fn)
		}
		return
	}
	for _, son := range p.sons {
		walk(seen, son, fn)
	}
}

// Size returns the number of nodes reachable from p, shared rule bodies
// counted once.
func Size(p *Node) int {
	n := 0
	Walk(p, func(*Node) bool { n++; return true })
	return n
}

// CaptureCount returns the number of capture groups in p, shared rule bodies
// counted once. Captures inside repetitions can record more slots than this
// at match time.
func CaptureCount(p *Node) int {
	n := 0
	Walk(p, func(q *Node) bool {
		if q.kind == kCapture {
			n++
		}
		return true
	})
	return n
}
