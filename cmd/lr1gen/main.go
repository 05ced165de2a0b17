/*
Lr1gen builds a canonical LR(1) parser from a grammar specification file and
either parses a single input file or drops into an interactive session that
parses one line at a time.

Usage:

	lr1gen --grammar FILE --lex FILE [flags]

The flags are:

	-v, --version
		Print the version and exit.

	-g, --grammar FILE
		The grammar specification file (required).

	-l, --lex FILE
		The lexical specification file (required).

	-i, --input FILE
		Parse this file and exit, instead of starting an interactive session.

	-d, --direct
		Force reading interactive input directly from stdin instead of going
		through the readline line editor.

	--dump-grammar, --dump-first, --dump-states, --dump-transitions,
	--dump-table, --dump-conflicts, --dump-trace
		Print the named diagnostic to stdout before parsing begins (or, for
		--dump-trace, after each parse completes).

Once a session has started, each line of input is lexed and parsed against
the loaded grammar, and its parse tree (or error) is printed. Type an empty
line or EOF to exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/kestrelcode/lr1gen/internal/automaton"
	"github.com/kestrelcode/lr1gen/internal/diag"
	"github.com/kestrelcode/lr1gen/internal/driver"
	"github.com/kestrelcode/lr1gen/internal/grammar"
	"github.com/kestrelcode/lr1gen/internal/lrtable"
	"github.com/kestrelcode/lr1gen/internal/replio"
	"github.com/kestrelcode/lr1gen/internal/scanner"
	"github.com/kestrelcode/lr1gen/internal/version"
)

const (
	ExitSuccess = iota
	ExitInitError
	ExitParseError
)

var (
	returnCode = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "print the version and exit")
	grammarFile = pflag.StringP("grammar", "g", "", "grammar specification file")
	lexFile     = pflag.StringP("lex", "l", "", "lexical specification file")
	inputFile   = pflag.StringP("input", "i", "", "parse this file and exit instead of starting a session")
	forceDirect = pflag.BoolP("direct", "d", false, "force direct stdin reading instead of the readline line editor")

	dumpGrammar     = pflag.Bool("dump-grammar", false, "print every production before parsing")
	dumpFirst       = pflag.Bool("dump-first", false, "print FIRST sets before parsing")
	dumpStates      = pflag.Bool("dump-states", false, "print the canonical collection before parsing")
	dumpTransitions = pflag.Bool("dump-transitions", false, "print state transitions before parsing")
	dumpTable       = pflag.Bool("dump-table", false, "print the ACTION/GOTO table before parsing")
	dumpConflicts   = pflag.Bool("dump-conflicts", false, "print any shift/reduce or reduce/reduce conflicts")
	dumpTrace       = pflag.Bool("dump-trace", false, "print the shift/reduce/goto trace after each parse")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	if *grammarFile == "" || *lexFile == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --grammar and --lex are both required")
		returnCode = ExitInitError
		return
	}

	g, table, sc, err := build(*grammarFile, *lexFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	runDumps(g, table)

	if *inputFile != "" {
		if err := runFile(g, table, sc, *inputFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitParseError
		}
		return
	}

	if err := runSession(g, table, sc); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
	}
}

func build(grammarPath, lexPath string) (*grammar.Grammar, *lrtable.Table, *scanner.Scanner, error) {
	grammarSrc, err := os.ReadFile(grammarPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading grammar file: %w", err)
	}
	g, err := grammar.Load(string(grammarSrc))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading grammar: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("validating grammar: %w", err)
	}

	lexSrc, err := os.ReadFile(lexPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading lexical spec file: %w", err)
	}
	spec, err := scanner.LoadSpec(string(lexSrc))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading lexical spec: %w", err)
	}
	sc, err := spec.Compile()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("compiling lexical spec: %w", err)
	}

	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := lrtable.Build(g, coll)

	return g, table, sc, nil
}

func runDumps(g *grammar.Grammar, table *lrtable.Table) {
	if *dumpGrammar {
		fmt.Print(diag.Grammar(g))
	}
	if *dumpFirst {
		fs := grammar.ComputeFirst(g)
		fmt.Print(diag.First(g, fs))
	}
	if *dumpStates {
		fmt.Print(diag.Collection(g, table.Collection))
	}
	if *dumpTransitions {
		fmt.Print(diag.Transitions(g, table.Collection))
	}
	if *dumpTable {
		fmt.Println(diag.Table(g, table))
	}
	if *dumpConflicts {
		fmt.Print(diag.Conflicts(table))
	}
}

func runFile(g *grammar.Grammar, table *lrtable.Table, sc *scanner.Scanner, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	return parseAndPrint(g, table, sc, f)
}

func runSession(g *grammar.Grammar, table *lrtable.Table, sc *scanner.Scanner) error {
	var reader replio.LineReader
	var err error

	if *forceDirect || !isatty.IsTerminal(os.Stdin.Fd()) {
		reader = replio.NewDirectReader(os.Stdin)
	} else {
		reader, err = replio.NewInteractiveReader("lr1> ")
		if err != nil {
			return fmt.Errorf("starting interactive reader: %w", err)
		}
	}
	defer reader.Close()
	reader.AllowBlank(true)

	for {
		line, err := reader.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}

		if perr := parseAndPrint(g, table, sc, strings.NewReader(line)); perr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", perr.Error())
		}
	}
}

func parseAndPrint(g *grammar.Grammar, table *lrtable.Table, sc *scanner.Scanner, r io.Reader) error {
	stream := sc.Lex(r)

	d := driver.New(g, table)
	var trace *diag.Trace
	if *dumpTrace {
		trace = diag.NewTrace()
		d.RegisterTraceListener(trace.Listen)
	}

	tree, err := d.Parse(stream)
	if err != nil {
		if trace != nil {
			fmt.Print(trace.String())
		}
		return err
	}

	fmt.Print(tree.String())
	if trace != nil {
		fmt.Print(trace.String())
	}
	return nil
}
