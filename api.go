package pegs

import "github.com/parsekit/pegs/charset"

func digitSet() *charset.Set {
	return charset.Range('0', '9')
}

func letterSet() *charset.Set {
	s := charset.Range('a', 'z')
	s.AddRange('A', 'Z')
	return s
}

func whitespaceSet() *charset.Set {
	return charset.New(' ', '\t', '\n', 11, '\f', '\r')
}

func wordSet() *charset.Set {
	s := letterSet()
	s.Add('_')
	return s
}

func identCharSet() *charset.Set {
	s := wordSet()
	s.AddRange('0', '9')
	return s
}

// Letters matches one ASCII letter.
func Letters() *Node { return Set(letterSet()) }

// Digits matches one decimal digit.
func Digits() *Node { return Set(digitSet()) }

// Whitespace matches one whitespace byte.
func Whitespace() *Node { return Set(whitespaceSet()) }

// IdentChars matches one identifier byte.
func IdentChars() *Node { return Set(identCharSet()) }

// IdentStartChars matches one byte that can begin an identifier.
func IdentStartChars() *Node { return Set(wordSet()) }

// Identifier matches an identifier: [A-Za-z_][A-Za-z0-9_]*.
func Identifier() *Node {
	return Sequence(IdentStartChars(), GreedyRep(IdentChars()))
}

// Natural matches one or more decimal digits.
func Natural() *Node {
	return GreedyPlus(Digits())
}
