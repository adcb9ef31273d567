package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter prints diagnostics with an optional source snippet.
type Formatter struct {
	// Color enables ANSI colorization of the severity/code header.
	// Callers decide this once, up front (cmd/stellac checks whether
	// stderr is a terminal before constructing the Formatter) rather
	// than re-probing per diagnostic.
	Color bool
	// Out is where diagnostics are written. Defaults to os.Stderr.
	Out io.Writer

	sourceCache map[string]string
}

// NewFormatter creates a diagnostic formatter that writes to os.Stderr.
func NewFormatter(color bool) *Formatter {
	return &Formatter{Color: color, Out: os.Stderr, sourceCache: make(map[string]string)}
}

// LoadSource loads and caches the source text for filename.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

const (
	ansiRed   = "\x1b[31;1m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Format prints a single diagnostic: a header line, an optional source
// snippet with a caret under the offending column, and any detail
// lines.
func (f *Formatter) Format(d *Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		if src, err := f.LoadSource(d.Span.Filename); err == nil && src != "" {
			f.printSnippet(src, d.Span)
		} else {
			fmt.Fprintf(f.Out, "  --> %s\n", d.Span.String())
		}
	}
	for _, line := range d.Details {
		fmt.Fprintf(f.Out, "  %s\n", line)
	}
}

func (f *Formatter) printHeader(d *Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	if f.Color {
		color := ansiBold
		if d.Severity == SeverityError || d.Severity == "" {
			color = ansiRed
		}
		fmt.Fprintf(f.Out, "%s%s[%s]%s: %s\n", color, severity, d.Code, ansiReset, d.Message)
	} else {
		fmt.Fprintf(f.Out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	}
}

func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		fmt.Fprintf(f.Out, "  --> %s\n", span.String())
		return
	}
	lineContent := lines[span.Line-1]
	lineNumStr := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineNumStr))

	fmt.Fprintf(f.Out, "  --> %s\n", span.String())
	fmt.Fprintf(f.Out, "%s |\n", pad)
	fmt.Fprintf(f.Out, "%s | %s\n", lineNumStr, lineContent)

	col := span.Column
	if col < 1 {
		col = 1
	}
	underline := strings.Repeat(" ", col-1) + "^"
	fmt.Fprintf(f.Out, "%s | %s\n", pad, underline)
}
