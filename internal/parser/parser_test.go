package parser_test

import (
	"testing"

	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/parser"
)

func parseOneDecl(t *testing.T, src string) *ast.FnDecl {
	t.Helper()
	p := parser.New(src, "test.stella")
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected exactly one decl, got %d", len(prog.Decls))
	}
	return prog.Decls[0]
}

func TestParseSimpleFunction(t *testing.T) {
	d := parseOneDecl(t, `fn main(x: Nat): Nat { return succ(x); }`)
	if d.Name.Name != "main" {
		t.Fatalf("name = %q, want main", d.Name.Name)
	}
	if len(d.Params) != 1 || d.Params[0].Name.Name != "x" {
		t.Fatalf("unexpected params: %+v", d.Params)
	}
	if _, ok := d.Body.(*ast.Succ); !ok {
		t.Fatalf("body = %T, want *ast.Succ", d.Body)
	}
}

func TestParsePreStmts(t *testing.T) {
	d := parseOneDecl(t, `fn main(x: Nat): Nat { isZero(x); succ(x); return x; }`)
	if len(d.PreStmts) != 2 {
		t.Fatalf("expected 2 pre-statements, got %d", len(d.PreStmts))
	}
}

func TestParsePostfixChain(t *testing.T) {
	// a.b.1 as T parses as ((a.b).1) as T
	d := parseOneDecl(t, `fn f(a: {b: (Nat, Nat)}): Nat { return a.b.1 as Nat; }`)
	asc, ok := d.Body.(*ast.Ascription)
	if !ok {
		t.Fatalf("body = %T, want *ast.Ascription", d.Body)
	}
	idx, ok := asc.Expr.(*ast.TupleIndex)
	if !ok {
		t.Fatalf("ascribed expr = %T, want *ast.TupleIndex", asc.Expr)
	}
	if idx.Index != 1 {
		t.Fatalf("index = %d, want 1", idx.Index)
	}
	fa, ok := idx.Tuple.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("tuple expr = %T, want *ast.FieldAccess", idx.Tuple)
	}
	if fa.Label != "b" {
		t.Fatalf("label = %q, want b", fa.Label)
	}
}

func TestParseApplicationChain(t *testing.T) {
	d := parseOneDecl(t, `fn f(g: fn(Nat) -> fn(Nat) -> Nat, x: Nat): Nat { return g(x)(x); }`)
	outer, ok := d.Body.(*ast.App)
	if !ok {
		t.Fatalf("body = %T, want *ast.App", d.Body)
	}
	if _, ok := outer.Fn.(*ast.App); !ok {
		t.Fatalf("outer.Fn = %T, want *ast.App", outer.Fn)
	}
}

func TestParseTupleLiteralAndType(t *testing.T) {
	d := parseOneDecl(t, `fn f(): (Nat, Bool) { return (0, true); }`)
	tt, ok := d.ReturnType.(*ast.TupleType)
	if !ok || len(tt.Components) != 2 {
		t.Fatalf("return type = %+v, want 2-component tuple type", d.ReturnType)
	}
	tl, ok := d.Body.(*ast.TupleLit)
	if !ok || len(tl.Elems) != 2 {
		t.Fatalf("body = %+v, want 2-element tuple literal", d.Body)
	}
}

func TestParseRecordLiteralAndType(t *testing.T) {
	d := parseOneDecl(t, `fn f(): {a: Nat, b: Bool} { return {a = 0, b = true}; }`)
	rt, ok := d.ReturnType.(*ast.RecordType)
	if !ok || len(rt.Fields) != 2 {
		t.Fatalf("return type = %+v, want 2-field record type", d.ReturnType)
	}
	rl, ok := d.Body.(*ast.RecordLit)
	if !ok || len(rl.Fields) != 2 {
		t.Fatalf("body = %+v, want 2-field record literal", d.Body)
	}
}

func TestParseSumTypeAndInjection(t *testing.T) {
	d := parseOneDecl(t, `fn f(): Nat + Bool { return inl(0); }`)
	st, ok := d.ReturnType.(*ast.SumType)
	if !ok {
		t.Fatalf("return type = %+v, want sum type", d.ReturnType)
	}
	if _, ok := st.Left.(*ast.NamedType); !ok {
		t.Fatalf("left = %+v, want Nat", st.Left)
	}
	if _, ok := d.Body.(*ast.Inl); !ok {
		t.Fatalf("body = %T, want *ast.Inl", d.Body)
	}
}

func TestParseVariantTypeAndMatch(t *testing.T) {
	d := parseOneDecl(t, `fn f(x: <a: Nat, b: Bool>): Nat { return match x { <a = n> => n | <b = bb> => 0 }; }`)
	vt, ok := d.Params[0].Type.(*ast.VariantType)
	if !ok || len(vt.Cases) != 2 {
		t.Fatalf("param type = %+v, want 2-case variant type", d.Params[0].Type)
	}
	m, ok := d.Body.(*ast.Match)
	if !ok || len(m.Cases) != 2 {
		t.Fatalf("body = %+v, want 2-case match", d.Body)
	}
	vp, ok := m.Cases[0].Pattern.(*ast.VariantPattern)
	if !ok || vp.Label != "a" {
		t.Fatalf("first pattern = %+v, want label a", m.Cases[0].Pattern)
	}
}

func TestParseListAndBuiltins(t *testing.T) {
	d := parseOneDecl(t, `fn f(): [Nat] { return cons(0, [1, 2]); }`)
	lt, ok := d.ReturnType.(*ast.ListType)
	if !ok {
		t.Fatalf("return type = %+v, want list type", d.ReturnType)
	}
	if _, ok := lt.Elem.(*ast.NamedType); !ok {
		t.Fatalf("elem type = %+v, want Nat", lt.Elem)
	}
	c, ok := d.Body.(*ast.Cons)
	if !ok {
		t.Fatalf("body = %T, want *ast.Cons", d.Body)
	}
	if _, ok := c.Tail.(*ast.ListLit); !ok {
		t.Fatalf("tail = %T, want *ast.ListLit", c.Tail)
	}
}

func TestParseLetAndFix(t *testing.T) {
	d := parseOneDecl(t, `fn f(): Nat { return let x = 0, y = 1 in fix(fun(self: fn(Nat) -> Nat) { return self; }); }`)
	let, ok := d.Body.(*ast.Let)
	if !ok || len(let.Bindings) != 2 {
		t.Fatalf("body = %+v, want 2-binding let", d.Body)
	}
	if _, ok := let.Body.(*ast.Fix); !ok {
		t.Fatalf("let body = %T, want *ast.Fix", let.Body)
	}
}

func TestParseNatRec(t *testing.T) {
	d := parseOneDecl(t, `fn f(n: Nat): Nat { return Nat::rec(n, 0, fun(m: Nat) { return fun(acc: Nat) { return succ(acc); }; }); }`)
	nr, ok := d.Body.(*ast.NatRec)
	if !ok {
		t.Fatalf("body = %T, want *ast.NatRec", d.Body)
	}
	if _, ok := nr.S.(*ast.Abs); !ok {
		t.Fatalf("S = %T, want *ast.Abs", nr.S)
	}
}

func TestParseErrorsCollectedNotAborted(t *testing.T) {
	p := parser.New(`fn f(: Nat { return 0; } fn g(: Bool { return true; }`, "test.stella")
	p.ParseProgram()
	if len(p.Errors()) < 2 {
		t.Fatalf("expected at least 2 parse errors to accumulate, got %d: %v", len(p.Errors()), p.Errors())
	}
}
