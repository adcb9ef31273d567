package types_test

import (
	"testing"

	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/parser"
	"github.com/stella-lang/stellac/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(src, "test.stella")
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	prog := mustParse(t, src)
	_, err := types.CheckProgram(prog)
	return err
}

func wantCode(t *testing.T, src string, want diag.Code) {
	t.Helper()
	err := checkSrc(t, src)
	if err == nil {
		t.Fatalf("expected error %s for %q, got none", want, src)
	}
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		t.Fatalf("error is %T, not *diag.Diagnostic: %v", err, err)
	}
	if d.Code != want {
		t.Fatalf("got code %s, want %s (message: %s)", d.Code, want, d)
	}
}

func wantOK(t *testing.T, src string) {
	t.Helper()
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error for %q: %v", src, err)
	}
}

// Concrete scenarios, spec.md §8.

func TestScenarioSuccAccepts(t *testing.T) {
	wantOK(t, `fn main(x: Nat): Nat { return succ(x); }`)
}

func TestScenarioSuccWrongReturnType(t *testing.T) {
	wantCode(t, `fn main(x: Nat): Bool { return succ(x); }`, diag.CodeUnexpectedTypeForExpr)
}

func TestScenarioApplyNonFunction(t *testing.T) {
	wantCode(t, `fn main(x: Nat): Nat { return x(x); }`, diag.CodeNotAFunction)
}

func TestScenarioFunctionWhereNatExpected(t *testing.T) {
	wantCode(t, `fn id(x: Nat): Nat { return x; } fn main(n: Nat): Nat { return id; }`,
		diag.CodeUnexpectedTypeForExpr)
}

func TestScenarioListWhereNatExpected(t *testing.T) {
	wantCode(t, `fn main(n: Nat): Nat { return [1, 2, 3]; }`, diag.CodeUnexpectedList)
}

func TestScenarioEmptyListAccepts(t *testing.T) {
	wantOK(t, `fn main(n: Nat): [Nat] { return []; }`)
}

func TestScenarioConsWithEmptyListAccepts(t *testing.T) {
	wantOK(t, `fn main(n: Nat): [Nat] { return cons(0, []); }`)
}

func TestScenarioMatchMissingInrArm(t *testing.T) {
	wantCode(t, `fn main(s: Nat + Bool): Nat { return match s { inl(n) => n }; }`,
		diag.CodeNonexhaustiveMatchPatterns)
}

func TestScenarioUnexpectedFieldAccess(t *testing.T) {
	wantCode(t, `fn main(): Nat { return {a = 1, b = true}.c; }`, diag.CodeUnexpectedFieldAccess)
}

// Boundary conditions, spec.md §8.

func TestBoundaryMissingMain(t *testing.T) {
	wantCode(t, `fn notMain(x: Nat): Nat { return x; }`, diag.CodeMissingMain)
}

func TestBoundaryArityMismatchTooFew(t *testing.T) {
	wantCode(t, `fn f(a: Nat, b: Nat): Nat { return a; } fn main(n: Nat): Nat { return f(n); }`,
		diag.CodeIncorrectNumberOfArguments)
}

func TestBoundaryArityMismatchTooMany(t *testing.T) {
	wantCode(t, `fn f(a: Nat): Nat { return a; } fn main(n: Nat): Nat { return f(n, n); }`,
		diag.CodeIncorrectNumberOfArguments)
}

func TestBoundaryTupleIndexZero(t *testing.T) {
	wantCode(t, `fn main(t: (Nat, Nat)): Nat { return t.0; }`, diag.CodeTupleIndexOutOfBounds)
}

func TestBoundaryTupleIndexTooLarge(t *testing.T) {
	wantCode(t, `fn main(t: (Nat, Nat)): Nat { return t.3; }`, diag.CodeTupleIndexOutOfBounds)
}

// Further per-form coverage.

func TestIfBranchesMustAgree(t *testing.T) {
	wantOK(t, `fn main(b: Bool): Nat { return if b then 0 else 1; }`)
}

func TestUndefinedVariable(t *testing.T) {
	wantCode(t, `fn main(): Nat { return y; }`, diag.CodeUndefinedVariable)
}

func TestAbstractionAgainstNonFunctionExpected(t *testing.T) {
	wantCode(t, `fn main(): Nat { return (fun(x: Nat) { return x; }) as Nat; }`, diag.CodeUnexpectedLambda)
}

func TestCurriedApplication(t *testing.T) {
	wantOK(t, `fn main(g: fn(Nat) -> fn(Nat) -> Nat, x: Nat): Nat { return g(x)(x); }`)
}

func TestLetBindingsSeePreviousBindings(t *testing.T) {
	wantOK(t, `fn main(): Nat { return let x = 1, y = succ(x) in y; }`)
}

func TestRecordFieldAccess(t *testing.T) {
	wantOK(t, `fn main(): Nat { return {a = 1, b = true}.a; }`)
}

func TestRecordMissingFieldsRewritten(t *testing.T) {
	wantCode(t, `fn main(): {a: Nat, b: Bool} { return {a = 1} as {a: Nat, b: Bool}; }`,
		diag.CodeMissingRecordFields)
}

func TestRecordExtraFieldsRewritten(t *testing.T) {
	wantCode(t, `fn main(): {a: Nat} { return {a = 1, b = true} as {a: Nat}; }`,
		diag.CodeUnexpectedRecordFields)
}

func TestVariantMatchCoveringAllLabels(t *testing.T) {
	wantOK(t, `fn main(v: <a: Nat, b: Bool>): Nat {
		return match v { <a = n> => n | <b = bb> => 0 };
	}`)
}

func TestVariantUnknownLabel(t *testing.T) {
	wantCode(t, `fn main(): <a: Nat> { return <b = 1> as <a: Nat>; }`, diag.CodeUnexpectedVariantLabel)
}

func TestAmbiguousListWithoutExpectedType(t *testing.T) {
	wantCode(t, `fn main(): Nat { return head([]); }`, diag.CodeAmbiguousList)
}

func TestAmbiguousSumTypeWithoutExpected(t *testing.T) {
	wantCode(t, `fn main(): Nat { return head(inl(0)); }`, diag.CodeAmbiguousSumType)
}

func TestFixStrictShape(t *testing.T) {
	wantOK(t, `fn main(): Nat {
		return fix(fun(self: fn(Nat) -> Nat) { return self; })(0);
	}`)
}

func TestAscriptionReconciledWithOuterExpected(t *testing.T) {
	wantOK(t, `fn main(): Nat { return 0 as Nat; }`)
}

func TestNatRecReturnsAccumulatorType(t *testing.T) {
	wantOK(t, `fn main(n: Nat): Nat {
		return Nat::rec(n, 0, fun(m: Nat) { return fun(acc: Nat) { return succ(acc); }; });
	}`)
}

func TestMutualRecursionForwardReference(t *testing.T) {
	wantOK(t, `fn isEven(n: Nat): Bool { return if isZero(n) then true else isOdd(pred(n)); }
	          fn isOdd(n: Nat): Bool { return if isZero(n) then false else isEven(pred(n)); }
	          fn main(n: Nat): Bool { return isEven(n); }`)
}
