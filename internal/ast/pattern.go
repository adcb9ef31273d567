package ast

import "github.com/stella-lang/stellac/internal/lexer"

// Pattern is a match-case pattern: inl(x), inr(x), or <label = x>.
type Pattern interface {
	Node
	patternNode()
	// Binder is the identifier the pattern binds in the case body.
	Binder() *Ident
}

type basePattern struct {
	span   lexer.Span
	binder *Ident
}

func (p basePattern) Span() lexer.Span { return p.span }
func (p basePattern) patternNode()     {}
func (p basePattern) Binder() *Ident   { return p.binder }

// InlPattern matches inl(x).
type InlPattern struct{ basePattern }

func NewInlPattern(binder *Ident, span lexer.Span) *InlPattern {
	return &InlPattern{basePattern{span, binder}}
}

// InrPattern matches inr(x).
type InrPattern struct{ basePattern }

func NewInrPattern(binder *Ident, span lexer.Span) *InrPattern {
	return &InrPattern{basePattern{span, binder}}
}

// VariantPattern matches <label = x>.
type VariantPattern struct {
	basePattern
	Label string
}

func NewVariantPattern(label string, binder *Ident, span lexer.Span) *VariantPattern {
	return &VariantPattern{basePattern{span, binder}, label}
}

// MatchCase is one `pattern => expr` arm of a match expression.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
	span    lexer.Span
}

func NewMatchCase(pattern Pattern, body Expr, span lexer.Span) *MatchCase {
	return &MatchCase{Pattern: pattern, Body: body, span: span}
}
func (c *MatchCase) Span() lexer.Span { return c.span }
