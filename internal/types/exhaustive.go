package types

import (
	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/lexer"
)

// checkExhaustive validates a match's patterns against its scrutinee
// type: every pattern must have the shape the scrutinee allows, and
// together the patterns must cover it (inl and inr for a Sum, every
// label for a Variant — duplicates are tolerated, coverage is a set
// property). It returns each case's binder type, in case order, for
// the checker to bind before checking the case body.
func checkExhaustive(scrutinee Type, cases []*ast.MatchCase, sp lexer.Span) ([]Type, error) {
	switch st := scrutinee.(type) {
	case *Sum:
		return checkExhaustiveSum(st, cases, sp)
	case *Variant:
		return checkExhaustiveVariant(st, cases, sp)
	default:
		return nil, newDiag(sp, diag.CodeUnexpectedPatternForType,
			"match scrutinee must have a Sum or Variant type, got "+scrutinee.String())
	}
}

func checkExhaustiveSum(st *Sum, cases []*ast.MatchCase, sp lexer.Span) ([]Type, error) {
	binderTypes := make([]Type, len(cases))
	haveInl, haveInr := false, false
	for i, c := range cases {
		switch c.Pattern.(type) {
		case *ast.InlPattern:
			binderTypes[i] = st.Left
			haveInl = true
		case *ast.InrPattern:
			binderTypes[i] = st.Right
			haveInr = true
		default:
			return nil, newDiag(sp, diag.CodeUnexpectedPatternForType,
				"expected an inl(...) or inr(...) pattern for sum type "+st.String())
		}
	}
	if !haveInl || !haveInr {
		return nil, newDiag(sp, diag.CodeNonexhaustiveMatchPatterns,
			"match over "+st.String()+" must cover both inl and inr")
	}
	return binderTypes, nil
}

func checkExhaustiveVariant(st *Variant, cases []*ast.MatchCase, sp lexer.Span) ([]Type, error) {
	binderTypes := make([]Type, len(cases))
	covered := make(map[string]bool, len(st.Cases))
	for i, c := range cases {
		vp, ok := c.Pattern.(*ast.VariantPattern)
		if !ok {
			return nil, newDiag(sp, diag.CodeUnexpectedPatternForType,
				"expected a variant pattern for variant type "+st.String())
		}
		ct, ok := st.Case(vp.Label)
		if !ok {
			return nil, newDiag(sp, diag.CodeUnexpectedPatternForType,
				"label <"+vp.Label+"> is not a case of "+st.String())
		}
		binderTypes[i] = ct
		covered[vp.Label] = true
	}
	for _, c := range st.Cases {
		if !covered[c.Label] {
			return nil, newDiag(sp, diag.CodeNonexhaustiveMatchPatterns,
				"match over "+st.String()+" does not cover label <"+c.Label+">")
		}
	}
	return binderTypes, nil
}
