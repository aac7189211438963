package pegs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/pegs"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'abc'`, `'abc'`},
		{`"abc"`, `'abc'`},
		{`'a'`, `'a'`},
		{`[0-9]`, `[0-9]`},
		{`.`, `.`},
		{`_`, `_`},
		{`\n`, `\n`},
		{`\d`, `[0-9]`},
		{`\w`, `[A-Z_a-z]`},
		{`\-`, `'-'`},
		{`('a' / 'bb')`, `('a' / 'bb')`},
		{`{'ab'}`, `{'ab'}`},
	}
	for _, test := range tests {
		p, err := pegs.Parse(test.src)
		require.NoError(t, err, "%s", test.src)
		require.Equal(t, test.want, p.String(), "%s", test.src)
	}
}

func TestParsePrefixSuffix(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'ab'*`, `'ab'*`},
		{`'ab'+`, `('ab' 'ab'*)`},
		{`'ab'?`, `'ab'?`},
		{`&'ab'`, `&'ab'`},
		{`!'ab'`, `!'ab'`},
		{`@'ab'`, `@'ab'`},
		{`!'ab'?`, `!'ab'?`},
		{`'a'?*`, `'a'*`},
		{`'a'??`, `'a'?`},
		{`'a'**`, `'a'*`},
	}
	for _, test := range tests {
		p, err := pegs.Parse(test.src)
		require.NoError(t, err, "%s", test.src)
		require.Equal(t, test.want, p.String(), "%s", test.src)
	}
}

func TestParseSequenceAndChoice(t *testing.T) {
	p, err := pegs.Parse(`'foo' \d / 'bar'`)
	require.NoError(t, err)
	require.Equal(t, `(('foo' [0-9]) / 'bar')`, p.String())
}

func TestParseRules(t *testing.T) {
	p, err := pegs.Parse(`
		S <- A 'x' / B
		B <- 'b'
		A <- 'aaaaa' B  # B is declared by now, so it inlines and fuses
	`)
	require.NoError(t, err)
	// The result is the body of the first rule. Forward references stay
	// references.
	require.Equal(t, `((A 'x') / B)`, p.String())
	assert.Equal(t, 7, pegs.MatchLen("aaaaabx", p, 0, nil))
	assert.Equal(t, 1, pegs.MatchLen("b", p, 0, nil))
}

func TestParseRecursiveRule(t *testing.T) {
	p, err := pegs.Parse(`list <- '(' list ')' / \d+`)
	require.NoError(t, err)
	assert.Equal(t, 7, pegs.MatchLen("((123))", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("((123)", p, 0, nil))
}

func TestParseRuleNamesAreStyleInsensitive(t *testing.T) {
	p, err := pegs.Parse(`some_rule <- 'a' SomeRule / 'b'`)
	require.NoError(t, err)
	assert.Equal(t, 3, pegs.MatchLen("aab", p, 0, nil))
}

func TestParseGlobalModifier(t *testing.T) {
	p, err := pegs.Parse(`\i 'while'`)
	require.NoError(t, err)
	assert.Equal(t, 5, pegs.MatchLen("WHILE", p, 0, nil))

	p, err = pegs.Parse(`\y 'while'`)
	require.NoError(t, err)
	assert.Equal(t, 7, pegs.MatchLen("W_HI_Le", p, 0, nil))

	// v shields a literal from the global modifier.
	p, err = pegs.Parse(`\y v'while'`)
	require.NoError(t, err)
	assert.Equal(t, -1, pegs.MatchLen("W_HI_Le", p, 0, nil))
	assert.Equal(t, 5, pegs.MatchLen("while", p, 0, nil))
}

func TestParsePerTokenModifier(t *testing.T) {
	p, err := pegs.Parse(`i'abc'`)
	require.NoError(t, err)
	assert.Equal(t, 3, pegs.MatchLen("aBc", p, 0, nil))

	p, err = pegs.Parse(`y'abc' '!'`)
	require.NoError(t, err)
	assert.Equal(t, 5, pegs.MatchLen("A_bC!", p, 0, nil))
}

func TestParseBackRef(t *testing.T) {
	p, err := pegs.Parse(`{\ident} '=' $1`)
	require.NoError(t, err)
	assert.Equal(t, 7, pegs.MatchLen("abc=abc", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("abc=abd", p, 0, nil))

	p, err = pegs.Parse(`{\ident} '=' i$1`)
	require.NoError(t, err)
	assert.Equal(t, 7, pegs.MatchLen("abc=ABC", p, 0, nil))

	p, err = pegs.Parse(`{\ident} '=' y$1`)
	require.NoError(t, err)
	assert.Equal(t, 8, pegs.MatchLen("abc=A_BC", p, 0, nil))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		err string
	}{
		{`foo`, `<pattern>(1, 1) Error: undeclared identifier "foo"`},
		{"a <- 'x'\nb <- 'y'", `<pattern>(2, 1) Error: rule "b" is declared but not used`},
		{"a <- 'x'\na <- 'y'", `<pattern>(2, 1) Error: attempt to redefine rule "a"`},
		{`\q`, `<pattern>(1, 1) Error: unknown built-in: \q`},
		{`{'a'} $2`, `<pattern>(1, 7) Error: invalid back reference index 2`},
		{`{'a'} $0`, `<pattern>(1, 7) Error: invalid back reference index 0`},
		{`('a'`, `<pattern>(1, 5) Error: ')' expected, but found "<EOF>"`},
		{`'abc`, `<pattern>(1, 1) Error: invalid token "'abc"`},
		{`[\0]`, `<pattern>(1, 1) Error: invalid token "[\\0"`},
		{`(!'a')*`, `<pattern>(1, 7) Error: repetition of a pattern that matches the empty string`},
		{``, `<pattern>(1, 1) Error: expression expected, but found "<EOF>"`},
	}
	for _, test := range tests {
		_, err := pegs.Parse(test.src)
		require.EqualError(t, err, test.err, "%s", test.src)
		require.IsType(t, &pegs.GrammarError{}, err)
	}
}

func TestParseNamed(t *testing.T) {
	_, err := pegs.ParseNamed("g.peg", "foo")
	require.EqualError(t, err, `g.peg(1, 1) Error: undeclared identifier "foo"`)
}

func TestMustParse(t *testing.T) {
	require.NotNil(t, pegs.MustParse(`'a'`))
	require.Panics(t, func() { pegs.MustParse(`foo`) })
}

func FuzzParse(f *testing.F) {
	f.Add(`'abc' / [0-9]+`)
	f.Add(`S <- A 'x' / B
A <- 'aaaaa' B
B <- 'b'`)
	f.Add(`{\ident} '=' $1`)
	f.Add(`\y v'while' @(.)`)
	f.Fuzz(func(t *testing.T, src string) {
		p, err := pegs.Parse(src)
		if err != nil {
			return
		}
		for _, input := range []string{"", "abc=abc", "aaaaabx", "W_HI_Le"} {
			x := pegs.MatchLen(input, p, 0, nil)
			if x < -1 || x > len(input) {
				t.Fatalf("match length %d out of range for %q", x, input)
			}
		}
	})
}
