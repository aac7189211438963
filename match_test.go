package pegs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsekit/pegs"
	"github.com/parsekit/pegs/charset"
)

func TestMatchEmpty(t *testing.T) {
	assert.Equal(t, 0, pegs.MatchLen("abc", pegs.Empty(), 0, nil))
	assert.Equal(t, 0, pegs.MatchLen("", pegs.Empty(), 0, nil))
}

func TestMatchAny(t *testing.T) {
	assert.Equal(t, 1, pegs.MatchLen("abc", pegs.Any(), 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("abc", pegs.Any(), 3, nil))
	assert.Equal(t, -1, pegs.MatchLen("", pegs.Any(), 0, nil))
}

func TestMatchAnyRune(t *testing.T) {
	assert.Equal(t, 1, pegs.MatchLen("abc", pegs.AnyRune(), 0, nil))
	assert.Equal(t, 3, pegs.MatchLen("日x", pegs.AnyRune(), 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("", pegs.AnyRune(), 0, nil))
}

func TestMatchNewline(t *testing.T) {
	nl := pegs.Newline()
	assert.Equal(t, 1, pegs.MatchLen("\nx", nl, 0, nil))
	assert.Equal(t, 2, pegs.MatchLen("\r\nx", nl, 0, nil))
	assert.Equal(t, 1, pegs.MatchLen("\rx", nl, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("x", nl, 0, nil))
}

func TestMatchTerminal(t *testing.T) {
	p := pegs.Term("abc")
	assert.Equal(t, 3, pegs.MatchLen("abcdef", p, 0, nil))
	assert.Equal(t, 3, pegs.MatchLen("xabc", p, 1, nil))
	assert.Equal(t, -1, pegs.MatchLen("ab", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("abd", p, 0, nil))
}

func TestMatchTerminalIgnoreCase(t *testing.T) {
	p := pegs.TermIgnoreCase("straße")
	assert.Equal(t, len("STRAßE"), pegs.MatchLen("STRAßE", p, 0, nil))
	assert.Equal(t, 3, pegs.MatchLen("aBc", pegs.TermIgnoreCase("abc"), 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("ab", pegs.TermIgnoreCase("abc"), 0, nil))
}

func TestMatchTerminalIgnoreStyle(t *testing.T) {
	p := pegs.TermIgnoreStyle("while")
	assert.Equal(t, 7, pegs.MatchLen("W_HI_Le", p, 0, nil))
	assert.Equal(t, 5, pegs.MatchLen("WHILE", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("W_HI_L", p, 0, nil))
	// Underscores in the pattern are skipped too.
	assert.Equal(t, 5, pegs.MatchLen("while", pegs.TermIgnoreStyle("wh_ile"), 0, nil))
}

func TestMatchCharAndSet(t *testing.T) {
	assert.Equal(t, 1, pegs.MatchLen("abc", pegs.Char('a'), 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("abc", pegs.Char('b'), 0, nil))
	cs := pegs.Set(charset.Range('a', 'f'))
	assert.Equal(t, 1, pegs.MatchLen("cat", cs, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("zat", cs, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("", cs, 0, nil))
}

func TestMatchOrderedChoiceIsDeterministic(t *testing.T) {
	// The first alternative wins even when a later one would match more.
	p := pegs.OrderedChoice(pegs.Term("ab"), pegs.Term("abc"))
	assert.Equal(t, 2, pegs.MatchLen("abc", p, 0, nil))
}

func TestMatchGreedyRepStopsOnZeroWidth(t *testing.T) {
	// The child matches zero bytes, so repetition must terminate.
	p := pegs.GreedyRep(pegs.Sequence(pegs.Option(pegs.Char('a')), pegs.Option(pegs.Char('b'))))
	assert.Equal(t, 4, pegs.MatchLen("abab", p, 0, nil))
	assert.Equal(t, 0, pegs.MatchLen("zzz", p, 0, nil))
}

func TestMatchGreedySpecializedForms(t *testing.T) {
	// The specialized repetitions must behave exactly like the general
	// form over the same operands.
	inputs := []string{"", "a", "aaa", "aaab", "bbb", "abcabc"}
	set := charset.Range('a', 'b')
	for _, s := range inputs {
		want := 0
		for want < len(s) && s[want] == 'a' {
			want++
		}
		assert.Equal(t, want, pegs.MatchLen(s, pegs.GreedyRep(pegs.Char('a')), 0, nil), "%q", s)

		want = 0
		for want < len(s) && (s[want] == 'a' || s[want] == 'b') {
			want++
		}
		assert.Equal(t, want, pegs.MatchLen(s, pegs.GreedyRep(pegs.Set(set)), 0, nil), "%q", s)

		assert.Equal(t, len(s), pegs.MatchLen(s, pegs.GreedyRep(pegs.Any()), 0, nil), "%q", s)
	}
}

func TestMatchOption(t *testing.T) {
	p := pegs.Option(pegs.Term("ab"))
	assert.Equal(t, 2, pegs.MatchLen("ab", p, 0, nil))
	assert.Equal(t, 0, pegs.MatchLen("xy", p, 0, nil))
}

func TestMatchPredicates(t *testing.T) {
	and := pegs.Sequence(pegs.AndPred(pegs.Term("ab")), pegs.Term("abc"))
	assert.Equal(t, 3, pegs.MatchLen("abc", and, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("xbc", and, 0, nil))

	not := pegs.Sequence(pegs.NotPred(pegs.Term("ab")), pegs.Term("ax"))
	assert.Equal(t, 2, pegs.MatchLen("ax", not, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("ab", not, 0, nil))
}

func TestMatchPredicatesLeaveNoCaptures(t *testing.T) {
	// Captures made inside a predicate are discarded either way.
	p := pegs.Sequence(pegs.AndPred(pegs.Capture(pegs.Term("ab"))), pegs.Capture(pegs.Term("abc")))
	matches := make([]string, 1)
	require.Equal(t, 3, pegs.MatchLen("abc", p, 0, matches))
	require.Equal(t, "abc", matches[0])
}

func TestMatchSearch(t *testing.T) {
	p := pegs.Search(pegs.Term("needle"))
	assert.Equal(t, 9, pegs.MatchLen("hayneedle", p, 0, nil))
	assert.Equal(t, 6, pegs.MatchLen("needle", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("haystack", p, 0, nil))
}

func TestMatchCaptures(t *testing.T) {
	p := pegs.MustParse(`{\ident} '=' {\d+}`)
	matches := make([]string, 2)
	require.Equal(t, 6, pegs.MatchLen("ab=123", p, 0, matches))
	assert.Equal(t, "ab", matches[0])
	assert.Equal(t, "123", matches[1])
}

func TestMatchNestedCapturesNumberByEntry(t *testing.T) {
	// The outer capture takes the first slot even though it completes
	// last.
	p := pegs.Capture(pegs.Sequence(pegs.Char('a'), pegs.Capture(pegs.Term("bc"))))
	matches := make([]string, 2)
	require.Equal(t, 3, pegs.MatchLen("abc", p, 0, matches))
	assert.Equal(t, "abc", matches[0])
	assert.Equal(t, "bc", matches[1])
}

func TestMatchFailureLeavesMatchesUntouched(t *testing.T) {
	p := pegs.Sequence(pegs.Capture(pegs.Term("ab")), pegs.Term("zz"))
	matches := []string{"sentinel"}
	require.Equal(t, -1, pegs.MatchLen("abxx", p, 0, matches))
	require.Equal(t, "sentinel", matches[0])
}

func TestMatchCaptureOverflowIsSilent(t *testing.T) {
	// More than MaxSubpatterns captures succeed; the excess is dropped.
	p := pegs.GreedyPlus(pegs.Capture(pegs.Char('a')))
	s := strings.Repeat("a", pegs.MaxSubpatterns+5)
	matches := make([]string, pegs.MaxSubpatterns)
	require.Equal(t, len(s), pegs.MatchLen(s, p, 0, matches))
	for _, m := range matches {
		require.Equal(t, "a", m)
	}
}

func TestMatchBackRefBeforeCaptureFails(t *testing.T) {
	p := pegs.Sequence(pegs.BackRef(1), pegs.Capture(pegs.Char('a')))
	assert.Equal(t, -1, pegs.MatchLen("aa", p, 0, nil))
}

func TestMatchAtOffset(t *testing.T) {
	p := pegs.Term("bc")
	assert.Equal(t, 2, pegs.MatchLen("abc", p, 1, nil))
	assert.Equal(t, -1, pegs.MatchLen("abc", p, 0, nil))
	// Matching at the very end of the input is legal.
	assert.Equal(t, 0, pegs.MatchLen("abc", pegs.Empty(), 3, nil))
}

func TestTraceMatch(t *testing.T) {
	var b strings.Builder
	p := pegs.MustParse(`{'a'} 'bc'`)
	matches := make([]string, 1)
	require.Equal(t, 3, pegs.TraceMatch(&b, "abc", p, 0, matches))
	assert.Equal(t, "a", matches[0])
	out := b.String()
	assert.Contains(t, out, "sequence")
	assert.Contains(t, out, "{capture}")
	assert.Contains(t, out, `"bc"`)
	assert.Contains(t, out, "= 3")

	b.Reset()
	require.Equal(t, -1, pegs.TraceMatch(&b, "zzz", p, 0, nil))
	assert.Contains(t, b.String(), "fail")
}

// The concrete scenarios from the engine's contract.

func TestScenarioSearchParens(t *testing.T) {
	p := pegs.MustParse(`'(' @ ')'`)
	assert.Equal(t, 7, pegs.MatchLen("(a b c)", p, 0, nil))
}

func TestScenarioStyleInsensitive(t *testing.T) {
	p := pegs.MustParse(`\y 'while'`)
	assert.Equal(t, 7, pegs.MatchLen("W_HI_Le", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("W_HI_L", p, 0, nil))
	assert.Equal(t, -1, pegs.MatchLen("W_HI_Le", pegs.MustParse(`\y v'while'`), 0, nil))
}

func TestScenarioDigits(t *testing.T) {
	p := pegs.MustParse(`\d+`)
	require.True(t, pegs.Match("0158787", p, 0, nil))
}

func TestScenarioWordsAndDigits(t *testing.T) {
	p := pegs.MustParse(`\w+\s+\d+`)
	require.True(t, pegs.Match("ABC 0232", p, 0, nil))
}

func TestScenarioFind(t *testing.T) {
	assert.Equal(t, 5, pegs.Find("_____abc_______", pegs.Term("abc"), 0))
}

func TestScenarioChoiceWithCapture(t *testing.T) {
	p := pegs.MustParse(`{'a'}'bc' 'xyz' / {\ident}`)
	matches := make([]string, 1)
	require.Equal(t, 3, pegs.MatchLen("abc", p, 0, matches))
	assert.Equal(t, "abc", matches[0])
}

func TestScenarioRepeatedCapture(t *testing.T) {
	p := pegs.MustParse(`'aa' !. / ({'a'})+`)
	matches := make([]string, 1)
	require.Equal(t, 6, pegs.MatchLen("aaaaaa", p, 0, matches))
	assert.Equal(t, "a", matches[0])
}

func TestScenarioGrammar(t *testing.T) {
	p := pegs.MustParse(`
		S <- A B / C D
		A <- 'a'+
		B <- 'b'+
		C <- 'c'+
		D <- 'd'+
	`)
	require.True(t, pegs.Match("cccccdddddd", p, 0, nil))
	require.True(t, pegs.Match("aabbb", p, 0, nil))
	require.False(t, pegs.Match("ccd d", p, 0, nil))
}
