package types

import (
	"fmt"

	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
)

// Checker runs the bidirectional elaborator over a program's function
// bodies. It is not reentrant across goroutines: create one per
// program being checked.
type Checker struct {
	// ExprTypes records, for every expression successfully checked,
	// the type it was given — a side table for tooling built on top
	// of the checker (a hover provider, a pretty-printer) that wants
	// resolved types without re-running elaboration.
	ExprTypes map[ast.Expr]Type
}

// NewChecker returns a Checker ready to check one program.
func NewChecker() *Checker {
	return &Checker{ExprTypes: make(map[ast.Expr]Type)}
}

// check is the single ternary-signature entry point every expression
// form recurses through: synthesize (or check) the expression's type,
// then — when an expected type was supplied — reconcile the two with
// the structural comparator. This mirrors doing the deep comparison at
// every level of recursion rather than only at the call sites that
// happen to remember to ask for it.
func (c *Checker) check(e ast.Expr, env *Env, expected Type) (Type, error) {
	actual, err := c.synthesize(e, env, expected)
	if err != nil {
		return nil, err
	}
	if expected != nil {
		if err := compareTypes(expected, actual, e.Span()); err != nil {
			return nil, err
		}
	}
	c.ExprTypes[e] = actual
	return actual, nil
}

func (c *Checker) d(e ast.Expr, code diag.Code, details ...string) error {
	return newDiag(e.Span(), code, details...)
}

func (c *Checker) synthesize(e ast.Expr, env *Env, expected Type) (Type, error) {
	switch e := e.(type) {
	case *ast.BoolLit:
		return Bool{}, nil
	case *ast.NatLit:
		return Nat{}, nil
	case *ast.UnitLit:
		return Unit{}, nil
	case *ast.Var:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, c.d(e, diag.CodeUndefinedVariable, "undefined variable: "+e.Name)
		}
		return t, nil
	case *ast.Succ:
		if _, err := c.check(e.Arg, env, Nat{}); err != nil {
			return nil, err
		}
		return Nat{}, nil
	case *ast.Pred:
		if _, err := c.check(e.Arg, env, Nat{}); err != nil {
			return nil, err
		}
		return Nat{}, nil
	case *ast.IsZero:
		if _, err := c.check(e.Arg, env, Nat{}); err != nil {
			return nil, err
		}
		return Bool{}, nil
	case *ast.NatRec:
		return c.synthesizeNatRec(e, env, expected)
	case *ast.If:
		return c.synthesizeIf(e, env, expected)
	case *ast.Abs:
		return c.synthesizeAbs(e, env, expected)
	case *ast.App:
		return c.synthesizeApp(e, env)
	case *ast.Paren:
		return c.check(e.Inner, env, expected)
	case *ast.Let:
		return c.synthesizeLet(e, env, expected)
	case *ast.ListLit:
		return c.synthesizeListLit(e, env, expected)
	case *ast.Cons:
		return c.synthesizeCons(e, env, expected)
	case *ast.Head:
		return c.synthesizeHead(e, env)
	case *ast.Tail:
		return c.synthesizeTail(e, env)
	case *ast.IsEmpty:
		return c.synthesizeIsEmpty(e, env)
	case *ast.RecordLit:
		return c.synthesizeRecordLit(e, env)
	case *ast.FieldAccess:
		return c.synthesizeFieldAccess(e, env)
	case *ast.TupleLit:
		return c.synthesizeTupleLit(e, env)
	case *ast.TupleIndex:
		return c.synthesizeTupleIndex(e, env)
	case *ast.Ascription:
		return c.synthesizeAscription(e, env)
	case *ast.Inl:
		return c.synthesizeInl(e, env, expected)
	case *ast.Inr:
		return c.synthesizeInr(e, env, expected)
	case *ast.VariantLit:
		return c.synthesizeVariantLit(e, env, expected)
	case *ast.Match:
		return c.synthesizeMatch(e, env, expected)
	case *ast.Fix:
		return c.synthesizeFix(e, env)
	default:
		return nil, fmt.Errorf("types: unhandled expression node %T", e)
	}
}

func (c *Checker) synthesizeNatRec(e *ast.NatRec, env *Env, expected Type) (Type, error) {
	if _, err := c.check(e.N, env, Nat{}); err != nil {
		return nil, err
	}
	z, err := c.check(e.Z, env, expected)
	if err != nil {
		return nil, err
	}
	step := &Fun{Params: []Type{Nat{}}, Result: &Fun{Params: []Type{z}, Result: z}}
	if _, err := c.check(e.S, env, step); err != nil {
		return nil, err
	}
	return z, nil
}

func (c *Checker) synthesizeIf(e *ast.If, env *Env, expected Type) (Type, error) {
	if _, err := c.check(e.Cond, env, Bool{}); err != nil {
		return nil, err
	}
	thenT, err := c.check(e.Then, env, expected)
	if err != nil {
		return nil, err
	}
	elseT, err := c.check(e.Else, env, expected)
	if err != nil {
		return nil, err
	}
	if expected == nil {
		if err := compareTypes(thenT, elseT, e.Else.Span()); err != nil {
			return nil, err
		}
	}
	return thenT, nil
}

func (c *Checker) synthesizeAbs(e *ast.Abs, env *Env, expected Type) (Type, error) {
	var expectedResult Type
	if expected != nil {
		fn, ok := expected.(*Fun)
		if !ok {
			return nil, c.d(e, diag.CodeUnexpectedLambda, "expected: "+expected.String())
		}
		if len(fn.Params) == len(e.Params) {
			expectedResult = fn.Result
		}
	}
	inner := env.NewChild()
	paramTypes := make([]Type, len(e.Params))
	for i, p := range e.Params {
		paramTypes[i] = resolveType(p.Type)
		inner.Insert(p.Name.Name, paramTypes[i])
	}
	bodyType, err := c.check(e.Body, inner, expectedResult)
	if err != nil {
		return nil, err
	}
	return &Fun{Params: paramTypes, Result: bodyType}, nil
}

func (c *Checker) synthesizeApp(e *ast.App, env *Env) (Type, error) {
	fnType, err := c.check(e.Fn, env, nil)
	if err != nil {
		return nil, err
	}
	fn, ok := fnType.(*Fun)
	if !ok {
		return nil, c.d(e, diag.CodeNotAFunction, "applied a non-function of type "+fnType.String())
	}
	if len(fn.Params) != len(e.Args) {
		return nil, c.d(e, diag.CodeIncorrectNumberOfArguments,
			fmt.Sprintf("expected %d argument(s)", len(fn.Params)),
			fmt.Sprintf("got %d", len(e.Args)))
	}
	for i, arg := range e.Args {
		if _, err := c.check(arg, env, fn.Params[i]); err != nil {
			return nil, err
		}
	}
	return fn.Result, nil
}

func (c *Checker) synthesizeLet(e *ast.Let, env *Env, expected Type) (Type, error) {
	inner := env.NewChild()
	for _, b := range e.Bindings {
		t, err := c.check(b.RHS, inner, nil)
		if err != nil {
			return nil, err
		}
		inner.Insert(b.Name.Name, t)
	}
	return c.check(e.Body, inner, expected)
}

func (c *Checker) synthesizeListLit(e *ast.ListLit, env *Env, expected Type) (Type, error) {
	if expected == nil {
		return nil, c.d(e, diag.CodeAmbiguousList, "list literal needs an expected list type")
	}
	lt, ok := expected.(*List)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedList, "expected: "+expected.String())
	}
	for _, el := range e.Elems {
		if _, err := c.check(el, env, lt.Elem); err != nil {
			return nil, err
		}
	}
	return lt, nil
}

func (c *Checker) synthesizeCons(e *ast.Cons, env *Env, expected Type) (Type, error) {
	if expected == nil {
		return nil, c.d(e, diag.CodeAmbiguousList, "cons needs an expected list type")
	}
	lt, ok := expected.(*List)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedList, "expected: "+expected.String())
	}
	if _, err := c.check(e.Tail, env, lt); err != nil {
		return nil, err
	}
	if _, err := c.check(e.Head, env, lt.Elem); err != nil {
		return nil, err
	}
	return lt, nil
}

func (c *Checker) synthesizeHead(e *ast.Head, env *Env) (Type, error) {
	lt, err := c.check(e.List, env, nil)
	if err != nil {
		return nil, err
	}
	l, ok := lt.(*List)
	if !ok {
		return nil, c.d(e, diag.CodeNotAList, "head of non-list type "+lt.String())
	}
	return l.Elem, nil
}

func (c *Checker) synthesizeTail(e *ast.Tail, env *Env) (Type, error) {
	lt, err := c.check(e.List, env, nil)
	if err != nil {
		return nil, err
	}
	l, ok := lt.(*List)
	if !ok {
		return nil, c.d(e, diag.CodeNotAList, "tail of non-list type "+lt.String())
	}
	return l, nil
}

func (c *Checker) synthesizeIsEmpty(e *ast.IsEmpty, env *Env) (Type, error) {
	lt, err := c.check(e.List, env, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := lt.(*List); !ok {
		return nil, c.d(e, diag.CodeNotAList, "isEmpty of non-list type "+lt.String())
	}
	return Bool{}, nil
}

func (c *Checker) synthesizeRecordLit(e *ast.RecordLit, env *Env) (Type, error) {
	fields := make([]RecordField, len(e.Fields))
	for i, f := range e.Fields {
		t, err := c.check(f.RHS, env, nil)
		if err != nil {
			return nil, err
		}
		fields[i] = RecordField{Label: f.Label, Type: t}
	}
	return &Record{Fields: fields}, nil
}

func (c *Checker) synthesizeFieldAccess(e *ast.FieldAccess, env *Env) (Type, error) {
	rt, err := c.check(e.Record, env, nil)
	if err != nil {
		return nil, err
	}
	rec, ok := rt.(*Record)
	if !ok {
		return nil, c.d(e, diag.CodeNotARecord, "field access on non-record type "+rt.String())
	}
	ft, ok := rec.Field(e.Label)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedFieldAccess, "no field "+e.Label+" in "+rt.String())
	}
	return ft, nil
}

func (c *Checker) synthesizeTupleLit(e *ast.TupleLit, env *Env) (Type, error) {
	components := make([]Type, len(e.Elems))
	for i, el := range e.Elems {
		t, err := c.check(el, env, nil)
		if err != nil {
			return nil, err
		}
		components[i] = t
	}
	return &Tuple{Components: components}, nil
}

func (c *Checker) synthesizeTupleIndex(e *ast.TupleIndex, env *Env) (Type, error) {
	tt, err := c.check(e.Tuple, env, nil)
	if err != nil {
		return nil, err
	}
	tup, ok := tt.(*Tuple)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedTypeForExpr,
			"expected: tuple", "actual: "+tt.String())
	}
	if e.Index < 1 || e.Index > len(tup.Components) {
		return nil, c.d(e, diag.CodeTupleIndexOutOfBounds,
			fmt.Sprintf("index %d out of bounds for %s", e.Index, tup.String()))
	}
	return tup.Components[e.Index-1], nil
}

func (c *Checker) synthesizeAscription(e *ast.Ascription, env *Env) (Type, error) {
	t := resolveType(e.Type)
	if _, err := c.check(e.Expr, env, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Checker) synthesizeInl(e *ast.Inl, env *Env, expected Type) (Type, error) {
	if expected == nil {
		return nil, c.d(e, diag.CodeAmbiguousSumType, "inl needs an expected sum type")
	}
	st, ok := expected.(*Sum)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedInjection, "expected: "+expected.String())
	}
	if _, err := c.check(e.Arg, env, st.Left); err != nil {
		return nil, err
	}
	return st, nil
}

func (c *Checker) synthesizeInr(e *ast.Inr, env *Env, expected Type) (Type, error) {
	if expected == nil {
		return nil, c.d(e, diag.CodeAmbiguousSumType, "inr needs an expected sum type")
	}
	st, ok := expected.(*Sum)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedInjection, "expected: "+expected.String())
	}
	if _, err := c.check(e.Arg, env, st.Right); err != nil {
		return nil, err
	}
	return st, nil
}

func (c *Checker) synthesizeVariantLit(e *ast.VariantLit, env *Env, expected Type) (Type, error) {
	if expected == nil {
		return nil, c.d(e, diag.CodeAmbiguousVariantType, "variant construction needs an expected variant type")
	}
	vt, ok := expected.(*Variant)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedVariant, "expected: "+expected.String())
	}
	ct, ok := vt.Case(e.Label)
	if !ok {
		return nil, c.d(e, diag.CodeUnexpectedVariantLabel, "label <"+e.Label+"> is not a case of "+vt.String())
	}
	if _, err := c.check(e.Arg, env, ct); err != nil {
		return nil, err
	}
	return vt, nil
}

func (c *Checker) synthesizeMatch(e *ast.Match, env *Env, expected Type) (Type, error) {
	scrutineeType, err := c.check(e.Scrutinee, env, nil)
	if err != nil {
		return nil, err
	}
	if len(e.Cases) == 0 {
		return nil, c.d(e, diag.CodeIllegalEmptyMatching, "match has no cases")
	}
	binderTypes, err := checkExhaustive(scrutineeType, e.Cases, e.Span())
	if err != nil {
		return nil, err
	}
	var result Type
	if expected != nil {
		result = expected
	}
	for i, mc := range e.Cases {
		inner := env.NewChild()
		if binder := mc.Pattern.Binder(); binder != nil {
			inner.Insert(binder.Name, binderTypes[i])
		}
		bodyType, err := c.check(mc.Body, inner, expected)
		if err != nil {
			return nil, err
		}
		if expected == nil {
			if result == nil {
				result = bodyType
			} else if err := compareTypes(result, bodyType, mc.Body.Span()); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (c *Checker) synthesizeFix(e *ast.Fix, env *Env) (Type, error) {
	ft, err := c.check(e.Arg, env, nil)
	if err != nil {
		return nil, err
	}
	fn, ok := ft.(*Fun)
	if !ok || len(fn.Params) != 1 {
		return nil, c.d(e, diag.CodeNotAFunction, "fix requires a single-parameter function, got "+ft.String())
	}
	if err := compareTypes(fn.Params[0], fn.Result, e.Span()); err != nil {
		return nil, c.d(e, diag.CodeUnexpectedTypeForExpr,
			"fix requires param = result", "param: "+fn.Params[0].String(), "result: "+fn.Result.String())
	}
	return fn.Params[0], nil
}
