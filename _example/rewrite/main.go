// Rewrites "name=value" assignments, swapping each name and value, and dumps
// the captures of the first match.
package main

import (
	"fmt"

	"github.com/alecthomas/repr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/parsekit/pegs"
)

var inputArg = kingpin.Arg("input", "Text to rewrite.").Default("var1=key; var2=key2").String()

func main() {
	kingpin.Parse()
	assignment := pegs.MustParse(`{\ident} '=' {\ident}`)

	matches := make([]string, pegs.CaptureCount(assignment))
	if i := pegs.Find(*inputArg, assignment, 0); i >= 0 {
		pegs.MatchLen(*inputArg, assignment, i, matches)
		repr.Println(matches)
	}

	fmt.Println(pegs.Replace(*inputArg, assignment, "$2=$1"))
}
