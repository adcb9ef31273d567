// Package types implements the Stella type algebra, the scoped type
// environment, the structural type comparator, match exhaustiveness
// analysis, and the bidirectional type checker built on top of them.
package types

import (
	"fmt"
	"strings"
)

// Type represents a Stella type. Every concrete type carries a
// String() form used in diagnostic detail lines, and the isType
// marker keeps the interface closed to this package's own types.
type Type interface {
	String() string
	isType()
}

// Bool, Nat, and Unit are the three nullary base types.
type Bool struct{}

func (Bool) String() string { return "Bool" }
func (Bool) isType()        {}

type Nat struct{}

func (Nat) String() string { return "Nat" }
func (Nat) isType()        {}

type Unit struct{}

func (Unit) String() string { return "Unit" }
func (Unit) isType()        {}

// Fun is an arrow type over zero or more parameters.
type Fun struct {
	Params []Type
	Result Type
}

func (t *Fun) isType() {}
func (t *Fun) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Result)
}

// List is a homogeneous list type.
type List struct {
	Elem Type
}

func (t *List) isType()        {}
func (t *List) String() string { return fmt.Sprintf("[%s]", t.Elem) }

// Tuple is a fixed-arity product type, arity >= 2.
type Tuple struct {
	Components []Type
}

func (t *Tuple) isType() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Components))
	for i, c := range t.Components {
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// RecordField is one label:type entry of a Record.
type RecordField struct {
	Label string
	Type  Type
}

// Record is a labeled product type.
type Record struct {
	Fields []RecordField
}

func (t *Record) isType() {}
func (t *Record) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Type)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// Field looks up a field by label, returning (type, true) if present.
func (t *Record) Field(label string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Label == label {
			return f.Type, true
		}
	}
	return nil, false
}

// Sum is an anonymous binary sum type: Left + Right.
type Sum struct {
	Left, Right Type
}

func (t *Sum) isType()        {}
func (t *Sum) String() string { return fmt.Sprintf("%s + %s", t.Left, t.Right) }

// VariantCase is one label:type entry of a Variant.
type VariantCase struct {
	Label string
	Type  Type
}

// Variant is a labeled sum type.
type Variant struct {
	Cases []VariantCase
}

func (t *Variant) isType() {}
func (t *Variant) String() string {
	parts := make([]string, len(t.Cases))
	for i, c := range t.Cases {
		parts[i] = fmt.Sprintf("%s: %s", c.Label, c.Type)
	}
	return fmt.Sprintf("<%s>", strings.Join(parts, ", "))
}

// Case looks up a variant case by label, returning (type, true) if present.
func (t *Variant) Case(label string) (Type, bool) {
	for _, c := range t.Cases {
		if c.Label == label {
			return c.Type, true
		}
	}
	return nil, false
}

// sameShape reports whether a and b are built from the same type
// constructor, ignoring their contents. There is no parenthesized
// Type: resolveType strips ast.ParenType before a Type is built.
func sameShape(a, b Type) bool {
	switch a.(type) {
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Nat:
		_, ok := b.(Nat)
		return ok
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *Fun:
		_, ok := b.(*Fun)
		return ok
	case *List:
		_, ok := b.(*List)
		return ok
	case *Tuple:
		_, ok := b.(*Tuple)
		return ok
	case *Record:
		_, ok := b.(*Record)
		return ok
	case *Sum:
		_, ok := b.(*Sum)
		return ok
	case *Variant:
		_, ok := b.(*Variant)
		return ok
	default:
		return false
	}
}
