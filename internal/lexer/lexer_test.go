package lexer_test

import (
	"testing"

	"github.com/stella-lang/stellac/internal/lexer"
)

func scanAll(src string) []lexer.Token {
	lx := lexer.New(src, "test.stella")
	var toks []lexer.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			return toks
		}
	}
}

func assertTypes(t *testing.T, src string, want ...lexer.TokenType) {
	t.Helper()
	toks := scanAll(src)
	if len(toks) != len(want)+1 { // +1 for the trailing EOF
		t.Fatalf("scanning %q: got %d tokens, want %d (+EOF): %v", src, len(toks), len(want)+1, toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("scanning %q: token %d is %s, want %s", src, i, toks[i].Type, w)
		}
	}
}

func TestKeywordsAndIdent(t *testing.T) {
	assertTypes(t, "fn main let in if then else true false unit succ pred isEmpty",
		lexer.FN, lexer.IDENT, lexer.LET, lexer.IN, lexer.IF, lexer.THEN, lexer.ELSE,
		lexer.TRUE, lexer.FALSE, lexer.UNIT, lexer.SUCC, lexer.PRED, lexer.ISEMPTY)
}

func TestTypeKeywords(t *testing.T) {
	assertTypes(t, "Bool Nat Unit", lexer.BOOLTY, lexer.NATTY, lexer.UNITTY)
}

func TestNatRecIsASingleToken(t *testing.T) {
	toks := scanAll("Nat::rec")
	if len(toks) != 2 || toks[0].Type != lexer.NATREC || toks[0].Lit != "Nat::rec" {
		t.Fatalf("expected a single NATREC token, got %v", toks)
	}
}

func TestPunctuation(t *testing.T) {
	assertTypes(t, "( ) { } [ ] < > , : ; . = => -> + |",
		lexer.LPAREN, lexer.RPAREN, lexer.LBRACE, lexer.RBRACE, lexer.LBRACKET, lexer.RBRACKET,
		lexer.LANGLE, lexer.RANGLE, lexer.COMMA, lexer.COLON, lexer.SEMI, lexer.DOT,
		lexer.ASSIGN, lexer.FATARROW, lexer.ARROW, lexer.PLUS, lexer.PIPE)
}

func TestNumberLiteral(t *testing.T) {
	toks := scanAll("0 42 1000")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4 (+EOF)", len(toks))
	}
	for i, lit := range []string{"0", "42", "1000"} {
		if toks[i].Type != lexer.INT || toks[i].Lit != lit {
			t.Fatalf("token %d: got %s %q, want INT %q", i, toks[i].Type, toks[i].Lit, lit)
		}
	}
}

func TestMalformedNumberIsAnError(t *testing.T) {
	lx := lexer.New("42abc", "test.stella")
	tok := lx.NextToken()
	if tok.Type != lexer.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(lx.Errors) != 1 || lx.Errors[0].Code != "LEXER_MALFORMED_NUMBER" {
		t.Fatalf("expected a LEXER_MALFORMED_NUMBER diagnostic, got %v", lx.Errors)
	}
}

func TestIllegalCharacterIsAnError(t *testing.T) {
	lx := lexer.New("@", "test.stella")
	tok := lx.NextToken()
	if tok.Type != lexer.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(lx.Errors) != 1 || lx.Errors[0].Code != "LEXER_ILLEGAL_CHARACTER" {
		t.Fatalf("expected a LEXER_ILLEGAL_CHARACTER diagnostic, got %v", lx.Errors)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := scanAll("fn // this is a comment\nmain")
	if len(toks) != 3 || toks[0].Type != lexer.FN || toks[1].Type != lexer.IDENT {
		t.Fatalf("expected FN, IDENT, EOF, got %v", toks)
	}
}

func TestSpansTrackLineAndColumn(t *testing.T) {
	toks := scanAll("fn\nmain")
	if toks[0].Span.Line != 1 || toks[0].Span.Column != 1 {
		t.Fatalf("first token span: got %+v", toks[0].Span)
	}
	if toks[1].Span.Line != 2 || toks[1].Span.Column != 1 {
		t.Fatalf("second token span: got %+v", toks[1].Span)
	}
}

func TestBatchErrorCollectionDoesNotAbort(t *testing.T) {
	lx := lexer.New("@ # 42xyz", "test.stella")
	for {
		tok := lx.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
	}
	if len(lx.Errors) != 3 {
		t.Fatalf("expected 3 lexical errors collected in one pass, got %d: %v", len(lx.Errors), lx.Errors)
	}
}
