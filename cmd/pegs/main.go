// pegs is a command line front end for the pegs pattern library. It matches,
// searches, rewrites and splits text with PEG patterns, prints patterns in
// canonical form and offers an interactive REPL.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/parsekit/pegs"
)

var (
	verbose = kingpin.Flag("verbose", "Enable debug logging.").Short('v').Bool()

	matchCmd     = kingpin.Command("match", "Match a pattern against whole input strings and print captures.")
	matchPattern = matchCmd.Arg("pattern", "PEG pattern.").Required().String()
	matchInputs  = matchCmd.Arg("input", "Input strings; lines from stdin when absent.").Strings()
	matchTrace   = matchCmd.Flag("trace", "Trace the engine's traversal to stderr.").Bool()

	findCmd     = kingpin.Command("find", "Print the offset of every match of a pattern.")
	findPattern = findCmd.Arg("pattern", "PEG pattern.").Required().String()
	findFile    = findCmd.Arg("file", "Input file; stdin when absent.").String()

	replaceCmd      = kingpin.Command("replace", "Rewrite every match of a pattern through a template.")
	replacePattern  = replaceCmd.Arg("pattern", "PEG pattern.").Required().String()
	replaceTemplate = replaceCmd.Arg("template", "Replacement template; $1..$n, $# and $$ expand.").Required().String()
	replaceFile     = replaceCmd.Arg("file", "Input file; stdin when absent.").String()

	splitCmd     = kingpin.Command("split", "Split input on matches of a pattern, one piece per line.")
	splitPattern = splitCmd.Arg("pattern", "PEG pattern.").Required().String()
	splitFile    = splitCmd.Arg("file", "Input file; stdin when absent.").String()

	printCmd     = kingpin.Command("print", "Print a pattern in canonical form.")
	printIR      = printCmd.Flag("ir", "Dump the compiled pattern tree instead.").Bool()
	printPattern = printCmd.Arg("pattern", "PEG pattern.").Required().String()

	_ = kingpin.Command("repl", "Interactive pattern shell.")
)

var log = logrus.New()

func main() {
	kingpin.CommandLine.Help = `Match, search, rewrite and split text with PEG patterns.`
	cmd := kingpin.Parse()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	switch cmd {
	case "match":
		runMatch()
	case "find":
		runFind()
	case "replace":
		runReplace()
	case "split":
		runSplit()
	case "print":
		runPrint()
	case "repl":
		runREPL()
	}
}

func compile(source string) *pegs.Node {
	p, err := pegs.Parse(source)
	kingpin.FatalIfError(err, "")
	log.WithFields(logrus.Fields{
		"pattern":  p.String(),
		"nodes":    pegs.Size(p),
		"captures": pegs.CaptureCount(p),
	}).Debug("compiled pattern")
	return p
}

// input returns the contents of file, or of stdin when file is empty.
func input(file string) string {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		kingpin.FatalIfError(err, "stdin")
		return string(data)
	}
	data, err := os.ReadFile(file)
	kingpin.FatalIfError(err, "")
	return string(data)
}

// inputs yields the argument strings, or lines from stdin when none were
// given.
func inputs(args []string, f func(string)) {
	if len(args) > 0 {
		for _, s := range args {
			f(s)
		}
		return
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		f(scanner.Text())
	}
	kingpin.FatalIfError(scanner.Err(), "stdin")
}

func runMatch() {
	p := compile(*matchPattern)
	failed := false
	inputs(*matchInputs, func(s string) {
		matches := make([]string, pegs.MaxSubpatterns)
		var ok bool
		if *matchTrace {
			ok = pegs.TraceMatch(os.Stderr, s, p, 0, matches) == len(s)
		} else {
			ok = pegs.Match(s, p, 0, matches)
		}
		if !ok {
			log.WithField("input", s).Debug("no match")
			failed = true
			return
		}
		fmt.Println(s)
		for i := 0; i < pegs.CaptureCount(p); i++ {
			fmt.Printf("  $%d = %q\n", i+1, matches[i])
		}
	})
	if failed {
		os.Exit(1)
	}
}

func runFind() {
	p := compile(*findPattern)
	s := input(*findFile)
	found := false
	for i := 0; i <= len(s); {
		i = pegs.Find(s, p, i)
		if i < 0 {
			break
		}
		found = true
		fmt.Println(i)
		if n := pegs.MatchLen(s, p, i, nil); n > 0 {
			i += n
		} else {
			i++
		}
	}
	if !found {
		os.Exit(1)
	}
}

func runReplace() {
	p := compile(*replacePattern)
	os.Stdout.WriteString(pegs.Replace(input(*replaceFile), p, *replaceTemplate))
}

func runSplit() {
	p := compile(*splitPattern)
	for _, piece := range pegs.Split(input(*splitFile), p) {
		fmt.Println(piece)
	}
}

func runPrint() {
	p := compile(*printPattern)
	if *printIR {
		repr.New(os.Stdout, repr.Indent("  ")).Println(p)
		return
	}
	fmt.Println(p)
}
