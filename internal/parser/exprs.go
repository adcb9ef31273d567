package parser

import (
	"strconv"

	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/lexer"
)

// parseExpr parses one expression, including a trailing ascription.
// Ascription binds loosest: "a.b.1(c) as T" parses as the postfix
// chain "a.b.1(c)" ascribed to T, not "a.b.1(c as T)".
func (p *Parser) parseExpr() ast.Expr {
	e := p.parsePostfix()
	if e == nil {
		return nil
	}
	for p.curIs(lexer.AS) {
		start := e.Span()
		p.nextToken()
		t := p.parseType()
		if t == nil {
			return nil
		}
		e = ast.NewAscription(e, t, mergeSpan(start, t.Span()))
	}
	return e
}

// parsePostfix parses a primary expression followed by any chain of
// application, field access, and tuple index, left to right.
func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	if e == nil {
		return nil
	}
	for {
		switch {
		case p.curIs(lexer.LPAREN):
			start := e.Span()
			p.nextToken()
			var args []ast.Expr
			for !p.curIs(lexer.RPAREN) {
				a := p.parseExpr()
				if a == nil {
					return nil
				}
				args = append(args, a)
				if p.curIs(lexer.COMMA) {
					p.nextToken()
					continue
				}
				break
			}
			end := p.curTok.Span
			if !p.expect(lexer.RPAREN) {
				return nil
			}
			e = ast.NewApp(e, args, mergeSpan(start, end))
		case p.curIs(lexer.DOT):
			start := e.Span()
			p.nextToken()
			if p.curIs(lexer.INT) {
				n, err := strconv.Atoi(p.curTok.Lit)
				if err != nil {
					p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "invalid tuple index '%s'", p.curTok.Lit)
					return nil
				}
				end := p.curTok.Span
				p.nextToken()
				e = ast.NewTupleIndex(e, n, mergeSpan(start, end))
				continue
			}
			if !p.curIs(lexer.IDENT) {
				p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected field label or tuple index, found '%s'", p.curTok.Type)
				return nil
			}
			label := p.curTok.Lit
			end := p.curTok.Span
			p.nextToken()
			e = ast.NewFieldAccess(e, label, mergeSpan(start, end))
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.curTok.Type {
	case lexer.TRUE:
		e := ast.NewBoolLit(true, p.curTok.Span)
		p.nextToken()
		return e
	case lexer.FALSE:
		e := ast.NewBoolLit(false, p.curTok.Span)
		p.nextToken()
		return e
	case lexer.INT:
		n, err := strconv.Atoi(p.curTok.Lit)
		if err != nil {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "invalid integer literal '%s'", p.curTok.Lit)
			return nil
		}
		e := ast.NewNatLit(n, p.curTok.Span)
		p.nextToken()
		return e
	case lexer.UNIT:
		e := ast.NewUnitLit(p.curTok.Span)
		p.nextToken()
		return e
	case lexer.IDENT:
		e := ast.NewVar(p.curTok.Lit, p.curTok.Span)
		p.nextToken()
		return e
	case lexer.SUCC:
		return parseUnaryBuiltin(p, lexer.SUCC, ast.NewSucc)
	case lexer.PRED:
		return parseUnaryBuiltin(p, lexer.PRED, ast.NewPred)
	case lexer.ISZERO:
		return parseUnaryBuiltin(p, lexer.ISZERO, ast.NewIsZero)
	case lexer.HEAD:
		return parseUnaryBuiltin(p, lexer.HEAD, ast.NewHead)
	case lexer.TAIL:
		return parseUnaryBuiltin(p, lexer.TAIL, ast.NewTail)
	case lexer.ISEMPTY:
		return parseUnaryBuiltin(p, lexer.ISEMPTY, ast.NewIsEmpty)
	case lexer.INL:
		return parseUnaryBuiltin(p, lexer.INL, ast.NewInl)
	case lexer.INR:
		return parseUnaryBuiltin(p, lexer.INR, ast.NewInr)
	case lexer.FIX:
		return parseUnaryBuiltin(p, lexer.FIX, ast.NewFix)
	case lexer.NATREC:
		return p.parseNatRec()
	case lexer.CONS:
		return p.parseCons()
	case lexer.IF:
		return p.parseIf()
	case lexer.FUN:
		return p.parseAbs()
	case lexer.LET:
		return p.parseLet()
	case lexer.LBRACKET:
		return p.parseListLit()
	case lexer.LBRACE:
		return p.parseRecordLit()
	case lexer.LANGLE:
		return p.parseVariantLit()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.LPAREN:
		return p.parseParenOrTupleLit()
	default:
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected expression, found '%s'", p.curTok.Type)
		return nil
	}
}

// parseUnaryBuiltin parses "<kw>(" expr ")" for the builtins that take
// exactly one argument: succ, pred, isZero, head, tail, isEmpty, inl,
// inr, fix.
func parseUnaryBuiltin[T ast.Expr](p *Parser, kw lexer.TokenType, build func(ast.Expr, lexer.Span) T) ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past keyword
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	arg := p.parseExpr()
	if arg == nil {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return build(arg, mergeSpan(start, end))
}

func (p *Parser) parseNatRec() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "Nat::rec"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	n := p.parseExpr()
	if n == nil {
		return nil
	}
	if !p.expect(lexer.COMMA) {
		return nil
	}
	z := p.parseExpr()
	if z == nil {
		return nil
	}
	if !p.expect(lexer.COMMA) {
		return nil
	}
	s := p.parseExpr()
	if s == nil {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewNatRec(n, z, s, mergeSpan(start, end))
}

func (p *Parser) parseCons() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "cons"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	head := p.parseExpr()
	if head == nil {
		return nil
	}
	if !p.expect(lexer.COMMA) {
		return nil
	}
	tail := p.parseExpr()
	if tail == nil {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewCons(head, tail, mergeSpan(start, end))
}

func (p *Parser) parseIf() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "if"
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.THEN) {
		return nil
	}
	then := p.parseExpr()
	if then == nil {
		return nil
	}
	if !p.expect(lexer.ELSE) {
		return nil
	}
	els := p.parseExpr()
	if els == nil {
		return nil
	}
	return ast.NewIf(cond, then, els, mergeSpan(start, els.Span()))
}

func (p *Parser) parseAbs() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "fun"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var params []*ast.ParamDecl
	for !p.curIs(lexer.RPAREN) {
		pd := p.parseParamDecl()
		if pd == nil {
			return nil
		}
		params = append(params, pd)
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	if !p.expect(lexer.RETURN) {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	if !p.expect(lexer.SEMI) {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return ast.NewAbs(params, body, mergeSpan(start, end))
}

func (p *Parser) parseLet() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "let"
	var bindings []ast.Binding
	for {
		if !p.curIs(lexer.IDENT) {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected binding name, found '%s'", p.curTok.Type)
			return nil
		}
		name := ast.NewIdent(p.curTok.Lit, p.curTok.Span)
		p.nextToken()
		if !p.expect(lexer.ASSIGN) {
			return nil
		}
		rhs := p.parseExpr()
		if rhs == nil {
			return nil
		}
		bindings = append(bindings, ast.Binding{Name: name, RHS: rhs})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.IN) {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return ast.NewLet(bindings, body, mergeSpan(start, body.Span()))
}

func (p *Parser) parseListLit() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "["
	var elems []ast.Expr
	for !p.curIs(lexer.RBRACKET) {
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewListLit(elems, mergeSpan(start, end))
}

func (p *Parser) parseRecordLit() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "{"
	var fields []ast.RecordField
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected field label, found '%s'", p.curTok.Type)
			return nil
		}
		label := p.curTok.Lit
		p.nextToken()
		if !p.expect(lexer.ASSIGN) {
			return nil
		}
		rhs := p.parseExpr()
		if rhs == nil {
			return nil
		}
		fields = append(fields, ast.RecordField{Label: label, RHS: rhs})
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
	return ast.NewRecordLit(fields, mergeSpan(start, end))
}

// parseVariantLit parses "<" ident "=" expr ">", the only use of
// angle brackets in expression position.
func (p *Parser) parseVariantLit() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "<"
	if !p.curIs(lexer.IDENT) {
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected variant label, found '%s'", p.curTok.Type)
		return nil
	}
	label := p.curTok.Lit
	p.nextToken()
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	arg := p.parseExpr()
	if arg == nil {
		return nil
	}
	end := p.curTok.Span
	if !p.expect(lexer.RANGLE) {
		return nil
	}
	return ast.NewVariantLit(label, arg, mergeSpan(start, end))
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "match"
	scrutinee := p.parseExpr()
	if scrutinee == nil {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	var cases []*ast.MatchCase
	for !p.curIs(lexer.RBRACE) {
		c := p.parseMatchCase()
		if c == nil {
			return nil
		}
		cases = append(cases, c)
		if p.curIs(lexer.PIPE) {
			p.nextToken()
			continue
		}
		break
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return ast.NewMatch(scrutinee, cases, mergeSpan(start, end))
}

func (p *Parser) parseMatchCase() *ast.MatchCase {
	pat := p.parsePattern()
	if pat == nil {
		return nil
	}
	if !p.expect(lexer.FATARROW) {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return ast.NewMatchCase(pat, body, mergeSpan(pat.Span(), body.Span()))
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curTok.Type {
	case lexer.INL:
		start := p.curTok.Span
		p.nextToken()
		if !p.expect(lexer.LPAREN) {
			return nil
		}
		binder, ok := p.parseBinderIdent()
		if !ok {
			return nil
		}
		end := p.curTok.Span
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewInlPattern(binder, mergeSpan(start, end))
	case lexer.INR:
		start := p.curTok.Span
		p.nextToken()
		if !p.expect(lexer.LPAREN) {
			return nil
		}
		binder, ok := p.parseBinderIdent()
		if !ok {
			return nil
		}
		end := p.curTok.Span
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewInrPattern(binder, mergeSpan(start, end))
	case lexer.LANGLE:
		start := p.curTok.Span
		p.nextToken()
		if !p.curIs(lexer.IDENT) {
			p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected variant label, found '%s'", p.curTok.Type)
			return nil
		}
		label := p.curTok.Lit
		p.nextToken()
		if !p.expect(lexer.ASSIGN) {
			return nil
		}
		binder, ok := p.parseBinderIdent()
		if !ok {
			return nil
		}
		end := p.curTok.Span
		if !p.expect(lexer.RANGLE) {
			return nil
		}
		return ast.NewVariantPattern(label, binder, mergeSpan(start, end))
	default:
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected match pattern, found '%s'", p.curTok.Type)
		return nil
	}
}

func (p *Parser) parseBinderIdent() (*ast.Ident, bool) {
	if !p.curIs(lexer.IDENT) {
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected pattern binder, found '%s'", p.curTok.Type)
		return nil, false
	}
	id := ast.NewIdent(p.curTok.Lit, p.curTok.Span)
	p.nextToken()
	return id, true
}

// parseParenOrTupleLit disambiguates "(" expr ")" from a tuple literal
// of arity >= 2 by the presence of a top-level comma.
func (p *Parser) parseParenOrTupleLit() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // past "("
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	if !p.curIs(lexer.COMMA) {
		end := p.curTok.Span
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewParen(first, mergeSpan(start, end))
	}
	elems := []ast.Expr{first}
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	end := p.curTok.Span
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return ast.NewTupleLit(elems, mergeSpan(start, end))
}
