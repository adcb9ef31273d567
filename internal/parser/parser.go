// Package parser turns a token stream from internal/lexer into the
// internal/ast tree the type checker consumes.
package parser

import (
	"fmt"

	"github.com/stella-lang/stellac/internal/ast"
	"github.com/stella-lang/stellac/internal/diag"
	"github.com/stella-lang/stellac/internal/lexer"
)

// Parser is a recursive-descent, one-token-of-lookahead parser for the
// grammar in SPEC_FULL.md §3. There is no Pratt/precedence machinery:
// the grammar has no competing infix operators besides the left-to-right
// chain of application, field access, tuple index, and ascription, which
// parsePostfix handles directly, and the single infix "+" of sum types,
// which parseType handles directly.
type Parser struct {
	lx       *lexer.Lexer
	filename string

	curTok  lexer.Token
	peekTok lexer.Token

	errors []*diag.Diagnostic
}

// New returns a parser over src, attributing spans to filename.
func New(src, filename string) *Parser {
	p := &Parser{lx: lexer.New(src, filename), filename: filename}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every lexical and syntax diagnostic collected while
// parsing. Unlike the checker, the parser does not abort on the first
// error: it keeps going so one run can report every syntax problem in
// a file.
func (p *Parser) Errors() []*diag.Diagnostic {
	if len(p.lx.Errors) == 0 {
		return p.errors
	}
	all := make([]*diag.Diagnostic, 0, len(p.lx.Errors)+len(p.errors))
	all = append(all, p.lx.Errors...)
	all = append(all, p.errors...)
	return all
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curTok.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekTok.Type == tt }

// expect checks the current token, and if it matches advances past it.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span,
		"expected '%s', found '%s'", tt, p.curTok.Type)
	return false
}

func (p *Parser) errorf(code diag.Code, sp lexer.Span, format string, args ...any) {
	p.errors = append(p.errors, &diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     diag.Span{Filename: sp.Filename, Line: sp.Line, Column: sp.Column, Start: sp.Start, End: sp.End},
	})
}

// ParseProgram parses a full compilation unit: every top-level function
// declaration in the input, in source order.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.curTok.Span
	var decls []*ast.FnDecl
	for !p.curIs(lexer.EOF) {
		prev := p.curTok
		d := p.parseFnDecl()
		if d != nil {
			decls = append(decls, d)
			continue
		}
		if p.curTok == prev {
			p.nextToken()
		}
	}
	return ast.NewProgram(decls, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseFnDecl() *ast.FnDecl {
	start := p.curTok.Span
	if !p.expect(lexer.FN) {
		return nil
	}
	if !p.curIs(lexer.IDENT) {
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected function name, found '%s'", p.curTok.Type)
		return nil
	}
	name := ast.NewIdent(p.curTok.Lit, p.curTok.Span)
	p.nextToken()

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
	if !p.expect(lexer.COLON) {
		return nil
	}
	retType := p.parseType()
	if retType == nil {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}

	var preStmts []ast.Expr
	var body ast.Expr
	for {
		if p.curIs(lexer.RETURN) {
			p.nextToken()
			body = p.parseExpr()
			if body == nil {
				return nil
			}
			if !p.expect(lexer.SEMI) {
				return nil
			}
			break
		}
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		if !p.expect(lexer.SEMI) {
			return nil
		}
		preStmts = append(preStmts, e)
	}
	end := p.curTok.Span
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return ast.NewFnDecl(name, params, retType, preStmts, body, mergeSpan(start, end))
}

func (p *Parser) parseParamDecl() *ast.ParamDecl {
	start := p.curTok.Span
	if !p.curIs(lexer.IDENT) {
		p.errorf(diag.CodeParseUnexpectedToken, p.curTok.Span, "expected parameter name, found '%s'", p.curTok.Type)
		return nil
	}
	name := ast.NewIdent(p.curTok.Lit, p.curTok.Span)
	p.nextToken()
	if !p.expect(lexer.COLON) {
		return nil
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	return ast.NewParamDecl(name, typ, mergeSpan(start, p.curTok.Span))
}

func mergeSpan(start, end lexer.Span) lexer.Span {
	s := start
	if end.End > s.End {
		s.End = end.End
	}
	return s
}
