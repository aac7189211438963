package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"

	"github.com/parsekit/pegs"
)

const banner = `pegs shell. Set a pattern and an input, then run commands against them.

  .pattern <peg>    compile a pattern
  .input <text>     set the input text
  match | find | split | print | exit

`

var replCommands = []string{".pattern", ".input", "match", "find", "split", "print", "exit", "help"}

type repl struct {
	pattern    *pegs.Node
	patternSrc string
	input      string
}

func runREPL() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) (c []string) {
		for _, cmd := range replCommands {
			if strings.HasPrefix(cmd, prefix) {
				c = append(c, cmd)
			}
		}
		return c
	})
	history := historyPath()
	loadHistory(line, history)
	fmt.Print(banner)

	r := &repl{}
	for {
		in, err := line.Prompt("pegs> ")
		if err != nil {
			fmt.Println("Exiting")
			break
		}
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		line.AppendHistory(in)
		if in == "exit" {
			break
		}
		if err := r.oneShot(in); err != nil {
			fmt.Println("error:", err)
		}
	}
	saveHistory(line, history)
}

func (r *repl) oneShot(in string) error {
	cmd, rest := in, ""
	if i := strings.IndexByte(in, ' '); i >= 0 {
		cmd, rest = in[:i], strings.TrimSpace(in[i+1:])
	}
	switch cmd {
	case ".pattern":
		p, err := pegs.Parse(rest)
		if err != nil {
			return err
		}
		r.pattern, r.patternSrc = p, rest
		fmt.Printf("compiled: %s (%d nodes)\n", p, pegs.Size(p))
		return nil
	case ".input":
		r.input = rest
		return nil
	case "help":
		fmt.Print(banner)
		return nil
	case "match":
		return r.match()
	case "find":
		return r.find()
	case "split":
		return r.split()
	case "print":
		if r.pattern == nil {
			return fmt.Errorf("no pattern set")
		}
		fmt.Println(r.pattern)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (r *repl) ready() error {
	if r.pattern == nil {
		return fmt.Errorf("no pattern set")
	}
	return nil
}

func (r *repl) match() error {
	if err := r.ready(); err != nil {
		return err
	}
	matches := make([]string, pegs.MaxSubpatterns)
	n := pegs.MatchLen(r.input, r.pattern, 0, matches)
	if n < 0 {
		fmt.Println("no match")
		return nil
	}
	fmt.Printf("matched %d byte(s): %q\n", n, r.input[:n])
	printCaptures(matches[:pegs.CaptureCount(r.pattern)])
	return nil
}

func (r *repl) find() error {
	if err := r.ready(); err != nil {
		return err
	}
	i := pegs.Find(r.input, r.pattern, 0)
	if i < 0 {
		fmt.Println("no match")
		return nil
	}
	n := pegs.MatchLen(r.input, r.pattern, i, nil)
	fmt.Printf("found at %d: %q\n", i, r.input[i:i+n])
	return nil
}

func (r *repl) split() error {
	if err := r.ready(); err != nil {
		return err
	}
	for _, piece := range pegs.Split(r.input, r.pattern) {
		fmt.Println(piece)
	}
	return nil
}

func printCaptures(caps []string) {
	if len(caps) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "capture"})
	for i, c := range caps {
		table.Append([]string{"$" + strconv.Itoa(i+1), c})
	}
	table.Render()
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".pegs_history")
}

func loadHistory(prompt *liner.State, path string) {
	if f, err := os.Open(path); err == nil {
		prompt.ReadHistory(f)
		f.Close()
	}
}

func saveHistory(prompt *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		prompt.WriteHistory(f)
		f.Close()
	}
}
