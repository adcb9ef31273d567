package diag_test

import (
	"strings"
	"testing"

	"github.com/stella-lang/stellac/internal/diag"
)

func TestDiagnosticString(t *testing.T) {
	d := &diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     diag.CodeUndefinedVariable,
		Message:  "undefined variable",
		Details:  []string{"x"},
	}

	got := d.String()
	want := "ERROR_UNDEFINED_VARIABLE\nx"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if d.Error() != got {
		t.Fatalf("Error() = %q, want %q", d.Error(), got)
	}
}

func TestFormatterPlain(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatter(false)
	f.Out = &buf

	d := &diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     diag.CodeNotAFunction,
		Message:  "applied a non-function",
	}
	f.Format(d)

	out := buf.String()
	if !strings.Contains(out, "ERROR_NOT_A_FUNCTION") {
		t.Fatalf("expected output to contain the code token, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes when Color is false, got %q", out)
	}
}

func TestFormatterColor(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatter(true)
	f.Out = &buf

	f.Format(&diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeMissingMain,
		Message:  "no function named main",
	})

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes when Color is true, got %q", buf.String())
	}
}
