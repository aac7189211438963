// Package pegs compiles and matches Parsing Expression Grammars over
// strings. A pattern is written in a compact textual notation and compiled
// with Parse, or composed from the combinator functions. Matching is a
// deterministic backtracking interpretation: alternatives are tried in
// order, repetition is greedy and never reconsidered, and predicates look
// ahead without consuming input.
//
// The supported notation is:
//
//     - `name <- expr` Declare a rule; the first rule is the start symbol.
//     - `a b` Match a, then b.
//     - `a / b` Match a; only if it fails, match b.
//     - `a?` `a*` `a+` Optional, zero-or-more, one-or-more (greedy).
//     - `&a` `!a` Positive and negative lookahead, consuming nothing.
//     - `@a` Skip input until a matches.
//     - `{a}` Capture the text matched by a into the next numbered slot.
//     - `$1` Match the text of capture 1 again.
//     - `'...'` `"..."` Literal; i'...' ignores case, y'...' ignores case
//       and underscores, v'...' overrides a file-scoped \i or \y.
//     - `[a-z_]` `[^0-9]` Character class, optionally negated.
//     - `.` Any byte. `_` Any Unicode code point.
//     - `\d \D \s \S \w \W \n \ident` Built-in classes.
//     - `# ...` Comment to end of line.
//
// For example, rewriting assignments:
//
//     p := pegs.MustParse(`{\ident} '=' {\ident}`)
//     out := pegs.Replace("var1=key; var2=key2", p, "$1<-$2$2")
//     // out == "var1<-keykey; var2<-key2key2"
//
// Compiled patterns are immutable and may be shared between goroutines;
// each call to a matching function uses its own capture state.
package pegs
