package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/pynav/pynav/internal/config"
	"github.com/pynav/pynav/internal/hover"
	"github.com/pynav/pynav/internal/modules"
	"github.com/pynav/pynav/internal/utils"
)

const usage = `pynav - Python code navigation

Usage:
  pynav hover <file>:<line>:<col> [root]   show what the name at a position means
  pynav def   <file>:<line>:<col> [root]   print the definition location of a name
  pynav load  <file> [root]                load a file and report its import graph

Positions are 1-based. The workspace root defaults to the current
directory; pynav.yaml at the root configures search paths. -v before the
command enables progress logging.
`

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "-v" {
		args = args[1:]
	} else {
		log.SetOutput(io.Discard)
	}
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := args[0]
	arg := args[1]
	root := "."
	if len(args) > 2 {
		root = args[2]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		fatal(err)
	}

	switch command {
	case "hover":
		runHover(root, arg)
	case "def":
		runDef(root, arg)
	case "load":
		runLoad(root, arg)
	case "help", "-help", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func newLoader(root string) *modules.Loader {
	cfg, err := config.Load(root)
	if err != nil {
		fatal(err)
	}
	log.Printf("workspace root %s, search paths %v", root, cfg.SearchPaths)
	loader := modules.NewLoader(root, cfg)
	if cfg.CachePath != "" {
		idx, err := modules.OpenPathIndex(filepath.Join(root, cfg.CachePath), root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: path index disabled: %v\n", err)
		} else {
			loader.SetIndex(idx)
		}
	}
	return loader
}

func runHover(root, arg string) {
	file, offset := resolvePosition(arg)
	loader := newLoader(root)
	mod, err := loader.LoadAbs(file)
	if err != nil {
		fatal(err)
	}

	result, ok := hover.At(mod.AST, mod.Env, loader.Project(), loader.Lookup, offset)
	if !ok {
		fmt.Println("no symbol at position")
		os.Exit(1)
	}

	label := result.Label()
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		label = "\x1b[1m" + label + "\x1b[0m"
	}
	fmt.Println(label)
	if result.DocString != "" {
		fmt.Println()
		fmt.Println(result.DocString)
	}
}

func runDef(root, arg string) {
	file, offset := resolvePosition(arg)
	loader := newLoader(root)
	mod, err := loader.LoadAbs(file)
	if err != nil {
		fatal(err)
	}

	loc, ok := hover.Definition(mod.AST, mod.Env, loader.Lookup, offset)
	if !ok {
		fmt.Println("no definition found")
		os.Exit(1)
	}
	fmt.Printf("%s:%d:%d\n", loc.Path, loc.Range.Start.Line, loc.Range.Start.Column)
}

func runLoad(root, arg string) {
	if !utils.HasSourceExt(arg) {
		fmt.Fprintf(os.Stderr, "not a recognized source file: %s\n", arg)
		os.Exit(2)
	}
	file, err := filepath.Abs(arg)
	if err != nil {
		fatal(err)
	}
	loader := newLoader(root)
	if _, err := loader.LoadAbs(file); err != nil {
		fatal(err)
	}
	for _, mod := range loader.Modules() {
		fmt.Println(mod.Path)
	}
}

// resolvePosition parses FILE:LINE:COL and maps the 1-based position to a
// byte offset into the file.
func resolvePosition(arg string) (string, int) {
	parts := strings.Split(arg, ":")
	if len(parts) < 3 {
		fmt.Fprintf(os.Stderr, "expected <file>:<line>:<col>, got %q\n", arg)
		os.Exit(2)
	}
	file := strings.Join(parts[:len(parts)-2], ":")
	line, err1 := strconv.Atoi(parts[len(parts)-2])
	col, err2 := strconv.Atoi(parts[len(parts)-1])
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		fmt.Fprintf(os.Stderr, "invalid position in %q\n", arg)
		os.Exit(2)
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		fatal(err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		fatal(err)
	}

	offset := 0
	for i := 1; i < line; i++ {
		next := strings.IndexByte(string(content[offset:]), '\n')
		if next < 0 {
			fmt.Fprintf(os.Stderr, "line %d is past the end of %s\n", line, file)
			os.Exit(2)
		}
		offset += next + 1
	}
	return abs, offset + col - 1
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "pynav: %v\n", err)
	os.Exit(1)
}
