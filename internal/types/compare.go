package types

import (
	"fmt"

	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/lexer"
)

// compareTypes checks expected and actual for structural equality,
// raising the most specific diagnostic the mismatch supports. A nil
// expected is always a no-op success: synthesis-only calls never
// compare against anything.
func compareTypes(expected, actual Type, sp lexer.Span) error {
	if expected == nil {
		return nil
	}
	if !sameShape(expected, actual) {
		return shapeMismatch(expected, actual, sp)
	}
	switch e := expected.(type) {
	case Bool, Nat, Unit:
		return nil
	case *List:
		a := actual.(*List)
		return compareTypes(e.Elem, a.Elem, sp)
	case *Tuple:
		a := actual.(*Tuple)
		if len(e.Components) != len(a.Components) {
			return newDiag(sp, diag.CodeUnexpectedTupleLength,
				fmt.Sprintf("Expected: %d", len(e.Components)),
				fmt.Sprintf("Actual: %d", len(a.Components)))
		}
		for i := range e.Components {
			if err := compareTypes(e.Components[i], a.Components[i], sp); err != nil {
				return err
			}
		}
		return nil
	case *Record:
		a := actual.(*Record)
		if len(e.Fields) > len(a.Fields) {
			return newDiag(sp, diag.CodeMissingRecordFields)
		}
		if len(e.Fields) < len(a.Fields) {
			return newDiag(sp, diag.CodeUnexpectedRecordFields)
		}
		for i := range e.Fields {
			if e.Fields[i].Label != a.Fields[i].Label {
				return newDiag(sp, diag.CodeUnexpectedRecordFields)
			}
			if err := compareTypes(e.Fields[i].Type, a.Fields[i].Type, sp); err != nil {
				return newDiag(sp, diag.CodeUnexpectedRecordFields)
			}
		}
		return nil
	case *Fun:
		a := actual.(*Fun)
		if len(e.Params) != len(a.Params) {
			return shapeMismatch(expected, actual, sp)
		}
		for i := range e.Params {
			if err := compareTypes(e.Params[i], a.Params[i], sp); err != nil {
				return err
			}
		}
		return compareTypes(e.Result, a.Result, sp)
	case *Sum:
		a := actual.(*Sum)
		if err := compareTypes(e.Left, a.Left, sp); err != nil {
			return err
		}
		return compareTypes(e.Right, a.Right, sp)
	case *Variant:
		a := actual.(*Variant)
		if len(e.Cases) != len(a.Cases) {
			return shapeMismatch(expected, actual, sp)
		}
		for _, ec := range e.Cases {
			ac, ok := a.Case(ec.Label)
			if !ok {
				return shapeMismatch(expected, actual, sp)
			}
			if err := compareTypes(ec.Type, ac, sp); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// shapeMismatch raises the diagnostic the mismatch table in §4.1
// names, keyed off the expected constructor.
func shapeMismatch(expected, actual Type, sp lexer.Span) error {
	details := []string{"Expected: " + expected.String(), "Actual: " + actual.String()}
	switch expected.(type) {
	case *Fun:
		return newDiag(sp, diag.CodeUnexpectedLambda, details...)
	case *Tuple:
		return newDiag(sp, diag.CodeUnexpectedTuple, details...)
	case *Record:
		return newDiag(sp, diag.CodeUnexpectedRecord, details...)
	case *List:
		return newDiag(sp, diag.CodeUnexpectedList, details...)
	default:
		return newDiag(sp, diag.CodeUnexpectedTypeForExpr, details...)
	}
}

func newDiag(sp lexer.Span, code diag.Code, details ...string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Details:  details,
		Span:     diag.Span{Filename: sp.Filename, Line: sp.Line, Column: sp.Column, Start: sp.Start, End: sp.End},
	}
}
