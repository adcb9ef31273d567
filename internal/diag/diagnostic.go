// Package diag defines the diagnostics emitted by every stage of the
// Stella front end: the lexer, the parser, and the type checker.
package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageTypeCheck Stage = "typecheck"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable identifier for a diagnostic kind. The type-check
// codes are the closed taxonomy spec.md §7 defines; they are part of
// the external contract and must never be renamed.
type Code string

const (
	// Lexer stage.
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerIllegalCharacter   Code = "LEXER_ILLEGAL_CHARACTER"
	CodeLexerMalformedNumber    Code = "LEXER_MALFORMED_NUMBER"

	// Parser stage.
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEOF   Code = "PARSE_UNEXPECTED_EOF"

	// Type-check stage — the closed taxonomy from spec.md §7.
	CodeMissingMain                Code = "ERROR_MISSING_MAIN"
	CodeUndefinedVariable          Code = "ERROR_UNDEFINED_VARIABLE"
	CodeUnexpectedTypeForExpr      Code = "ERROR_UNEXPECTED_TYPE_FOR_EXPRESSION"
	CodeNotAFunction               Code = "ERROR_NOT_A_FUNCTION"
	CodeNotARecord                 Code = "ERROR_NOT_A_RECORD"
	CodeNotAList                   Code = "ERROR_NOT_A_LIST"
	CodeUnexpectedLambda           Code = "ERROR_UNEXPECTED_LAMBDA"
	CodeUnexpectedTuple            Code = "ERROR_UNEXPECTED_TUPLE"
	CodeUnexpectedTupleLength      Code = "ERROR_UNEXPECTED_TUPLE_LENGTH"
	CodeUnexpectedRecord           Code = "ERROR_UNEXPECTED_RECORD"
	CodeUnexpectedRecordFields     Code = "ERROR_UNEXPECTED_RECORD_FIELDS"
	CodeMissingRecordFields        Code = "ERROR_MISSING_RECORD_FIELDS"
	CodeUnexpectedList             Code = "ERROR_UNEXPECTED_LIST"
	CodeAmbiguousList              Code = "ERROR_AMBIGUOUS_LIST"
	CodeUnexpectedInjection        Code = "ERROR_UNEXPECTED_INJECTION"
	CodeAmbiguousSumType           Code = "ERROR_AMBIGUOUS_SUM_TYPE"
	CodeUnexpectedVariant          Code = "ERROR_UNEXPECTED_VARIANT"
	CodeUnexpectedVariantLabel     Code = "ERROR_UNEXPECTED_VARIANT_LABEL"
	CodeAmbiguousVariantType       Code = "ERROR_AMBIGUOUS_VARIANT_TYPE"
	CodeUnexpectedFieldAccess      Code = "ERROR_UNEXPECTED_FIELD_ACCESS"
	CodeTupleIndexOutOfBounds      Code = "ERROR_TUPLE_INDEX_OUT_OF_BOUNDS"
	CodeIncorrectNumberOfArguments Code = "ERROR_INCORRECT_NUMBER_OF_ARGUMENTS"
	CodeUnexpectedTypeForParameter Code = "ERROR_UNEXPECTED_TYPE_FOR_PARAMETER"
	CodeIllegalEmptyMatching       Code = "ERROR_ILLEGAL_EMPTY_MATCHING"
	CodeNonexhaustiveMatchPatterns Code = "ERROR_NONEXHAUSTIVE_MATCH_PATTERNS"
	CodeUnexpectedPatternForType   Code = "ERROR_UNEXPECTED_PATTERN_FOR_TYPE"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// IsValid reports whether the span carries real position information.
func (s Span) IsValid() bool {
	return s.Line > 0
}

func (s Span) String() string {
	if s.Filename == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
}

// Diagnostic is a compiler diagnostic surfaced to end users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	// Details holds extra lines printed after the code token, e.g. the
	// expected/actual type of a mismatch. Kept separate from Message
	// so callers that only care about the code token (tests, tooling
	// matching on it per spec.md §6) aren't forced to parse it back out.
	Details []string
}

// Error implements the error interface so a Diagnostic can be returned
// and propagated like any other Go error.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String renders the diagnostic in the plain-text form spec.md §6
// requires: the code token, optionally followed by detail lines.
func (d *Diagnostic) String() string {
	s := string(d.Code)
	for _, line := range d.Details {
		s += "\n" + line
	}
	return s
}
