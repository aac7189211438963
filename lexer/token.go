package lexer

import "github.com/parsekit/pegs/charset"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Invalid Kind = iota
	EOF
	Ident      // rule name or non-terminal reference
	String     // '...' or "..."
	Class      // [...]
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	Arrow      // <-
	Slash      // /
	Star       // *
	Plus       // +
	Amp        // &
	Bang       // !
	Question   // ?
	At         // @
	AnyChar    // .
	AnyRune    // _
	Builtin    // \ident
	Escaped    // \<non-letter>
	BackRef    // $N
)

var kindNames = map[Kind]string{
	Invalid:    "invalid token",
	EOF:        "end of input",
	Ident:      "identifier",
	String:     "string literal",
	Class:      "character class",
	LeftParen:  "'('",
	RightParen: "')'",
	LeftBrace:  "'{'",
	RightBrace: "'}'",
	Arrow:      "'<-'",
	Slash:      "'/'",
	Star:       "'*'",
	Plus:       "'+'",
	Amp:        "'&'",
	Bang:       "'!'",
	Question:   "'?'",
	At:         "'@'",
	AnyChar:    "'.'",
	AnyRune:    "'_'",
	Builtin:    "built-in",
	Escaped:    "escaped character",
	BackRef:    "back reference",
}

func (k Kind) String() string { return kindNames[k] }

// Modifier is attached by the lexer to string literals and back references
// that carry an i, y or v prefix.
type Modifier int

const (
	ModNone Modifier = iota
	ModIgnoreCase
	ModIgnoreStyle
	ModVerbatim
)

// A Token returned by the Lexer.
type Token struct {
	Kind     Kind
	Literal  string       // processed text: unescaped payload for String, name for Ident/Builtin
	Set      *charset.Set // payload of a Class token
	Modifier Modifier     // on String and BackRef tokens
	Index    int          // payload of a BackRef token, 1-based
	Pos      Position
}

// IsEOF reports whether the token marks the end of the source.
func (t Token) IsEOF() bool { return t.Kind == EOF }

func (t Token) String() string { return t.Literal }
