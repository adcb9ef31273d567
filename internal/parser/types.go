package parser

import (
	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/lexer"
)

// parseType parses a type annotation, then checks for a trailing "+"
// to form an anonymous binary sum — the grammar's one infix type
// operator.
func (p *Parser) parseType() ast.TypeExpr {
	left := p.parseAtomType()
	if left == nil {
		return nil
	}
	for p.curIs(lexer.PLUS) {
		start := left.Span()
		p.nextToken()
		right := p.parseAtomType()
		if right == nil {
			return nil
		}
		left = ast.NewSumType(left, right, mergeSpan(start, right.Span()))
	}
	return left
}

func (p *Parser) parseAtomType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.BOOLTY:
		t := ast.NewNamedType("Bool", p.curTok.Span)
		p.nextToken()
		return t
	case lexer.NATTY:
		t := ast.NewNamedType("Nat", p.curTok.Span)
		p.nextToken()
		return t
	case lexer.UNITTY:
		t := ast.NewNamedType("Unit", p.curTok.Span)
		p.nextToken()
		return t
	case lexer.FN:
		return p.parseFunType()
	case lexer.LBRACKET:
		return p.parseListType()
	case lexer.LPAREN:
		return p.parseParenOrTupleType()
	case lexer.LBRACE:
		return p.parseRecordType()
	case lexer.LANGLE:
		return p.parseVariantType()
	default:
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected type, found '%s'", p.curTok.Type)
		return nil
	}
}

func (p *Parser) parseFunType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // past "fn"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var params []ast.TypeExpr
	for !p.curIs(lexer.RPAREN) {
		t := p.parseType()
		if t == nil {
			return nil
		}
		params = append(params, t)
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.ARROW) {
		return nil
	}
	result := p.parseType()
	if result == nil {
		return nil
	}
	return ast.NewFunType(params, result, mergeSpan(start, result.Span()))
}

func (p *Parser) parseListType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // past "["
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewListType(elem, mergeSpan(start, end))
}

// parseParenOrTupleType disambiguates "(" type ")" from a tuple type of
// arity >= 2 by counting commas at the top level of the parenthesized
// list.
func (p *Parser) parseParenOrTupleType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // past "("
	first := p.parseType()
	if first == nil {
		return nil
	}
	if !p.curIs(lexer.COMMA) {
		end := p.curTok.Span
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewParenType(first, mergeSpan(start, end))
	}
	components := []ast.TypeExpr{first}
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		t := p.parseType()
		if t == nil {
			return nil
		}
		components = append(components, t)
	}
	end := p.curTok.Span
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewTupleType(components, mergeSpan(start, end))
}

func (p *Parser) parseRecordType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // past "{"
	var fields []ast.RecordFieldType
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected field label, found '%s'", p.curTok.Type)
			return nil
		}
		label := p.curTok.Lit
		p.nextToken()
		if !p.expect(lexer.COLON) {
			return nil
		}
		t := p.parseType()
		if t == nil {
			return nil
		}
		fields = append(fields, ast.RecordFieldType{Label: label, Type: t})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return ast.NewRecordType(fields, mergeSpan(start, end))
}

func (p *Parser) parseVariantType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // past "<"
	var cases []ast.VariantCaseType
	for !p.curIs(lexer.RANGLE) {
		if !p.curIs(lexer.IDENT) {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected case label, found '%s'", p.curTok.Type)
			return nil
		}
		label := p.curTok.Lit
		p.nextToken()
		if !p.expect(lexer.COLON) {
			return nil
		}
		t := p.parseType()
		if t == nil {
			return nil
		}
		cases = append(cases, ast.VariantCaseType{Label: label, Type: t})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	end := p.curTok.Span
	if !p.expect(lexer.RANGLE) {
		return nil
	}
	return ast.NewVariantType(cases, mergeSpan(start, end))
}
