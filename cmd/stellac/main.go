// Command stellac is the Stella front end: it lexes, parses, and
// type-checks one or more .stella source files and reports the first
// diagnostic found in each, Rust-style.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/parser"
	"github.com/stella-lang/stellac/internal/types"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stellac [flags] <file.stella>\n")
		fmt.Fprintf(os.Stderr, "       stellac check [flags] <file.stella> [<file.stella> ...]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  check    Type-check one or more files (default when no subcommand given)\n")
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "check" {
		args = args[1:]
	}
	os.Exit(runCheck(args))
}

// runCheck parses the check subcommand's flags and type-checks every
// named file, returning the process exit code: 0 if every file
// checked clean, 1 if any file failed to lex or parse, 2 if every
// file parsed but at least one failed to type-check.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	noColor := fs.Bool("no-color", false, "disable ANSI-colorized diagnostic output")
	jobs := fs.Int("jobs", 1, "number of files to type-check concurrently")
	fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		flag.Usage()
		return 1
	}

	fd := os.Stderr.Fd()
	color := !*noColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	formatter := diag.NewFormatter(color)

	results := checkFiles(files, *jobs)

	sawParseFailure := false
	sawTypeFailure := false
	for i, filename := range files {
		d := results[i]
		if d == nil {
			continue
		}
		if d.Stage == diag.StageLexer || d.Stage == diag.StageParser {
			sawParseFailure = true
		} else {
			sawTypeFailure = true
		}
		fmt.Fprintf(os.Stderr, "%s: ", filename)
		formatter.Format(d)
	}

	switch {
	case sawParseFailure:
		return 1
	case sawTypeFailure:
		return 2
	default:
		return 0
	}
}

// checkFiles runs checkFile over every entry in files using a bounded
// worker pool of size jobs (clamped to at least 1). Each file gets its
// own Parser and Checker, so no state is shared between workers.
func checkFiles(files []string, jobs int) []*diag.Diagnostic {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*diag.Diagnostic, len(files))

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = checkFile(files[i])
			}
		}()
	}
	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	return results
}

// checkFile lexes, parses, and type-checks a single source file,
// returning the first diagnostic encountered, or nil if the file
// checks clean.
func checkFile(filename string) *diag.Diagnostic {
	src, err := os.ReadFile(filename)
	if err != nil {
		return &diag.Diagnostic{
			Stage:    diag.StageParser,
			Severity: diag.SeverityError,
			Code:     diag.CodeParseUnexpectedEOF,
			Message:  err.Error(),
		}
	}

	p := parser.New(string(src), filename)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return errs[0]
	}

	_, checkErr := types.CheckProgram(prog)
	if checkErr == nil {
		return nil
	}
	d, ok := checkErr.(*diag.Diagnostic)
	if !ok {
		return &diag.Diagnostic{
			Stage:    diag.StageTypeCheck,
			Severity: diag.SeverityError,
			Code:     diag.CodeUnexpectedTypeForExpr,
			Message:  checkErr.Error(),
		}
	}
	return d
}
