// Package ast defines the syntax tree the type checker consumes: type
// annotations, expressions, and top-level function declarations.
package ast

import (
	"fmt"
	"strings"

	"github.com/stella-lang/stellac/internal/lexer"
)

// Node is any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a syntax-level type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

// Ident is an identifier occurrence.
type Ident struct {
	Name string
	span lexer.Span
}

func NewIdent(name string, span lexer.Span) *Ident { return &Ident{Name: name, span: span} }
func (i *Ident) Span() lexer.Span                   { return i.span }

// Program is the full parsed compilation unit: a sequence of top-level
// function declarations (spec.md §6).
type Program struct {
	Decls []*FnDecl
	span  lexer.Span
}

func NewProgram(decls []*FnDecl, span lexer.Span) *Program { return &Program{Decls: decls, span: span} }
func (p *Program) Span() lexer.Span                        { return p.span }

// ParamDecl is a single function or abstraction parameter: a name and
// its declared type.
type ParamDecl struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

func NewParamDecl(name *Ident, typ TypeExpr, span lexer.Span) *ParamDecl {
	return &ParamDecl{Name: name, Type: typ, span: span}
}
func (p *ParamDecl) Span() lexer.Span { return p.span }

// FnDecl is a top-level function declaration: name, parameters,
// declared return type, any number of terminating-semicolon
// expressions evaluated before the body, and the returned expression.
type FnDecl struct {
	Name       *Ident
	Params     []*ParamDecl
	ReturnType TypeExpr
	PreStmts   []Expr
	Body       Expr
	span       lexer.Span
}

func NewFnDecl(name *Ident, params []*ParamDecl, returnType TypeExpr, preStmts []Expr, body Expr, span lexer.Span) *FnDecl {
	return &FnDecl{Name: name, Params: params, ReturnType: returnType, PreStmts: preStmts, Body: body, span: span}
}
func (f *FnDecl) Span() lexer.Span { return f.span }

// ---------------------------------------------------------------------------
// Type syntax (spec.md §3 "Types")
// ---------------------------------------------------------------------------

// NamedType is a nullary built-in type reference: Bool, Nat, or Unit.
type NamedType struct {
	Name string
	span lexer.Span
}

func NewNamedType(name string, span lexer.Span) *NamedType { return &NamedType{Name: name, span: span} }
func (t *NamedType) Span() lexer.Span                       { return t.span }
func (t *NamedType) typeNode()                              {}
func (t *NamedType) String() string                         { return t.Name }

// FunType is an arrow type: fn(T1, T2, ...) -> R.
type FunType struct {
	Params []TypeExpr
	Result TypeExpr
	span   lexer.Span
}

func NewFunType(params []TypeExpr, result TypeExpr, span lexer.Span) *FunType {
	return &FunType{Params: params, Result: result, span: span}
}
func (t *FunType) Span() lexer.Span { return t.span }
func (t *FunType) typeNode()        {}

// ListType is [T].
type ListType struct {
	Elem TypeExpr
	span lexer.Span
}

func NewListType(elem TypeExpr, span lexer.Span) *ListType { return &ListType{Elem: elem, span: span} }
func (t *ListType) Span() lexer.Span                       { return t.span }
func (t *ListType) typeNode()                              {}

// TupleType is (T1, T2, ...) with arity >= 2.
type TupleType struct {
	Components []TypeExpr
	span       lexer.Span
}

func NewTupleType(components []TypeExpr, span lexer.Span) *TupleType {
	return &TupleType{Components: components, span: span}
}
func (t *TupleType) Span() lexer.Span { return t.span }
func (t *TupleType) typeNode()        {}

// RecordFieldType is a single label:type entry of a record type.
type RecordFieldType struct {
	Label string
	Type  TypeExpr
}

// RecordType is { label1: T1, label2: T2, ... }.
type RecordType struct {
	Fields []RecordFieldType
	span   lexer.Span
}

func NewRecordType(fields []RecordFieldType, span lexer.Span) *RecordType {
	return &RecordType{Fields: fields, span: span}
}
func (t *RecordType) Span() lexer.Span { return t.span }
func (t *RecordType) typeNode()        {}

// SumType is Left + Right, an anonymous binary sum.
type SumType struct {
	Left, Right TypeExpr
	span        lexer.Span
}

func NewSumType(left, right TypeExpr, span lexer.Span) *SumType {
	return &SumType{Left: left, Right: right, span: span}
}
func (t *SumType) Span() lexer.Span { return t.span }
func (t *SumType) typeNode()        {}

// VariantCaseType is a single label:type entry of a variant type.
type VariantCaseType struct {
	Label string
	Type  TypeExpr
}

// VariantType is <label1: T1, label2: T2, ...>.
type VariantType struct {
	Cases []VariantCaseType
	span  lexer.Span
}

func NewVariantType(cases []VariantCaseType, span lexer.Span) *VariantType {
	return &VariantType{Cases: cases, span: span}
}
func (t *VariantType) Span() lexer.Span { return t.span }
func (t *VariantType) typeNode()        {}

// ParenType is a parenthesized type; transparent to structural
// comparisons but kept in the tree so spans line up with source text.
type ParenType struct {
	Inner TypeExpr
	span  lexer.Span
}

func NewParenType(inner TypeExpr, span lexer.Span) *ParenType {
	return &ParenType{Inner: inner, span: span}
}
func (t *ParenType) Span() lexer.Span { return t.span }
func (t *ParenType) typeNode()        {}

// ---------------------------------------------------------------------------
// Expressions (spec.md §3 "Expressions")
// ---------------------------------------------------------------------------

type baseExpr struct{ span lexer.Span }

func (b baseExpr) Span() lexer.Span { return b.span }
func (b baseExpr) exprNode()        {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	baseExpr
	Value bool
}

func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{baseExpr: baseExpr{span}, Value: value}
}

// NatLit is a natural number literal.
type NatLit struct {
	baseExpr
	Value int
}

func NewNatLit(value int, span lexer.Span) *NatLit {
	return &NatLit{baseExpr: baseExpr{span}, Value: value}
}

// UnitLit is the single value of type Unit.
type UnitLit struct{ baseExpr }

func NewUnitLit(span lexer.Span) *UnitLit { return &UnitLit{baseExpr{span}} }

// Var is a variable reference.
type Var struct {
	baseExpr
	Name string
}

func NewVar(name string, span lexer.Span) *Var { return &Var{baseExpr: baseExpr{span}, Name: name} }

// Succ/Pred/IsZero are the Nat primitives.
type Succ struct {
	baseExpr
	Arg Expr
}

func NewSucc(arg Expr, span lexer.Span) *Succ { return &Succ{baseExpr{span}, arg} }

type Pred struct {
	baseExpr
	Arg Expr
}

func NewPred(arg Expr, span lexer.Span) *Pred { return &Pred{baseExpr{span}, arg} }

type IsZero struct {
	baseExpr
	Arg Expr
}

func NewIsZero(arg Expr, span lexer.Span) *IsZero { return &IsZero{baseExpr{span}, arg} }

// NatRec is Nat::rec(n, z, s): primitive recursion over naturals.
type NatRec struct {
	baseExpr
	N, Z, S Expr
}

func NewNatRec(n, z, s Expr, span lexer.Span) *NatRec { return &NatRec{baseExpr{span}, n, z, s} }

// If is if c then t else e.
type If struct {
	baseExpr
	Cond, Then, Else Expr
}

func NewIf(cond, then, els Expr, span lexer.Span) *If { return &If{baseExpr{span}, cond, then, els} }

// Abs is a lambda abstraction: fun(p1: T1, ...) { return body }.
type Abs struct {
	baseExpr
	Params []*ParamDecl
	Body   Expr
}

func NewAbs(params []*ParamDecl, body Expr, span lexer.Span) *Abs {
	return &Abs{baseExpr{span}, params, body}
}

// App is function application: f(a1, ..., an).
type App struct {
	baseExpr
	Fn   Expr
	Args []Expr
}

func NewApp(fn Expr, args []Expr, span lexer.Span) *App { return &App{baseExpr{span}, fn, args} }

// Paren is a parenthesized expression; transparent to checking.
type Paren struct {
	baseExpr
	Inner Expr
}

func NewParen(inner Expr, span lexer.Span) *Paren { return &Paren{baseExpr{span}, inner} }

// Binding is a single `name = rhs` clause of a let-expression.
type Binding struct {
	Name *Ident
	RHS  Expr
}

// Let is let x1 = e1, ... in body.
type Let struct {
	baseExpr
	Bindings []Binding
	Body     Expr
}

func NewLet(bindings []Binding, body Expr, span lexer.Span) *Let {
	return &Let{baseExpr{span}, bindings, body}
}

// ListLit is [e1, ..., en].
type ListLit struct {
	baseExpr
	Elems []Expr
}

func NewListLit(elems []Expr, span lexer.Span) *ListLit { return &ListLit{baseExpr{span}, elems} }

// Cons is cons(h, t).
type Cons struct {
	baseExpr
	Head, Tail Expr
}

func NewCons(head, tail Expr, span lexer.Span) *Cons { return &Cons{baseExpr{span}, head, tail} }

// Head/Tail/IsEmpty are list primitives.
type Head struct {
	baseExpr
	List Expr
}

func NewHead(list Expr, span lexer.Span) *Head { return &Head{baseExpr{span}, list} }

type Tail struct {
	baseExpr
	List Expr
}

func NewTail(list Expr, span lexer.Span) *Tail { return &Tail{baseExpr{span}, list} }

type IsEmpty struct {
	baseExpr
	List Expr
}

func NewIsEmpty(list Expr, span lexer.Span) *IsEmpty { return &IsEmpty{baseExpr{span}, list} }

// RecordField is a single `label = rhs` clause of a record literal.
type RecordField struct {
	Label string
	RHS   Expr
}

// RecordLit is { label1 = e1, ... }.
type RecordLit struct {
	baseExpr
	Fields []RecordField
}

func NewRecordLit(fields []RecordField, span lexer.Span) *RecordLit {
	return &RecordLit{baseExpr{span}, fields}
}

// FieldAccess is e.label.
type FieldAccess struct {
	baseExpr
	Record Expr
	Label  string
}

func NewFieldAccess(record Expr, label string, span lexer.Span) *FieldAccess {
	return &FieldAccess{baseExpr{span}, record, label}
}

// TupleLit is (e1, e2, ...) with arity >= 2.
type TupleLit struct {
	baseExpr
	Elems []Expr
}

func NewTupleLit(elems []Expr, span lexer.Span) *TupleLit { return &TupleLit{baseExpr{span}, elems} }

// TupleIndex is e.i, 1-based.
type TupleIndex struct {
	baseExpr
	Tuple Expr
	Index int
}

func NewTupleIndex(tuple Expr, index int, span lexer.Span) *TupleIndex {
	return &TupleIndex{baseExpr{span}, tuple, index}
}

// Ascription is e as T.
type Ascription struct {
	baseExpr
	Expr Expr
	Type TypeExpr
}

func NewAscription(expr Expr, typ TypeExpr, span lexer.Span) *Ascription {
	return &Ascription{baseExpr{span}, expr, typ}
}

// Inl/Inr are the two sum injections.
type Inl struct {
	baseExpr
	Arg Expr
}

func NewInl(arg Expr, span lexer.Span) *Inl { return &Inl{baseExpr{span}, arg} }

type Inr struct {
	baseExpr
	Arg Expr
}

func NewInr(arg Expr, span lexer.Span) *Inr { return &Inr{baseExpr{span}, arg} }

// VariantLit is <label = e>.
type VariantLit struct {
	baseExpr
	Label string
	Arg   Expr
}

func NewVariantLit(label string, arg Expr, span lexer.Span) *VariantLit {
	return &VariantLit{baseExpr{span}, label, arg}
}

// Match is match e { case1 | case2 | ... }.
type Match struct {
	baseExpr
	Scrutinee Expr
	Cases     []*MatchCase
}

func NewMatch(scrutinee Expr, cases []*MatchCase, span lexer.Span) *Match {
	return &Match{baseExpr{span}, scrutinee, cases}
}

// Fix is fix(e).
type Fix struct {
	baseExpr
	Arg Expr
}

func NewFix(arg Expr, span lexer.Span) *Fix { return &Fix{baseExpr{span}, arg} }

// ---------------------------------------------------------------------------
// String forms, used for type-mismatch diagnostic detail lines.
// ---------------------------------------------------------------------------

func (t *FunType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("fn(%s) -> %v", strings.Join(parts, ", "), t.Result)
}

func (t *ListType) String() string  { return fmt.Sprintf("[%v]", t.Elem) }
func (t *ParenType) String() string { return fmt.Sprint(t.Inner) }

func (t *TupleType) String() string {
	parts := make([]string, len(t.Components))
	for i, c := range t.Components {
		parts[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t *RecordType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("%s: %v", f.Label, f.Type)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (t *SumType) String() string { return fmt.Sprintf("%v + %v", t.Left, t.Right) }

func (t *VariantType) String() string {
	parts := make([]string, len(t.Cases))
	for i, c := range t.Cases {
		parts[i] = fmt.Sprintf("%s: %v", c.Label, c.Type)
	}
	return fmt.Sprintf("<%s>", strings.Join(parts, ", "))
}
