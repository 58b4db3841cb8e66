package lang

import "testing"

func tokenKinds(t *testing.T, toks []Token) []TokenKind {
	t.Helper()
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func assertKinds(t *testing.T, source string, want []TokenKind) {
	t.Helper()
	toks, err := NewLexer(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	got := tokenKinds(t, toks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", source, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %s, want %s", source, i, got[i], want[i])
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	assertKinds(t, "(){}[],;:.? #", []TokenKind{
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
		TokenLBracket, TokenRBracket, TokenComma, TokenSemicolon,
		TokenColon, TokenDot, TokenQuestion, TokenHash, TokenEOF,
	})
}

func TestLexer_Operators(t *testing.T) {
	assertKinds(t, "+ - * / % ! = == != < <= > >= && ||", []TokenKind{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenBang, TokenEqual, TokenEqEq, TokenNotEq, TokenLess,
		TokenLessEq, TokenGreater, TokenGreaterEq, TokenAndAnd, TokenOrOr,
		TokenEOF,
	})
}

func TestLexer_Keywords(t *testing.T) {
	assertKinds(t, "true false undef module function", []TokenKind{
		TokenTrue, TokenFalse, TokenUndef, TokenModule, TokenFunction, TokenEOF,
	})
}

func TestLexer_IfElseForAreOrdinaryIdentifiers(t *testing.T) {
	assertKinds(t, "if else for assign echo", []TokenKind{
		TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenEOF,
	})
}

func TestLexer_Numbers(t *testing.T) {
	toks, err := NewLexer("1 2.5 .0 1e3 1.5e-2").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Lexeme != "1" {
		t.Errorf("got %q, want %q", toks[0].Lexeme, "1")
	}
	if toks[1].Lexeme != "2.5" {
		t.Errorf("got %q, want %q", toks[1].Lexeme, "2.5")
	}
}

func TestLexer_SpecialVariableIdentifier(t *testing.T) {
	toks, err := NewLexer("$fn $fs _private").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	for i, want := range []string{"$fn", "$fs", "_private"} {
		if toks[i].Kind != TokenIdent {
			t.Errorf("token %d kind = %s, want Ident", i, toks[i].Kind)
		}
		if toks[i].Lexeme != want {
			t.Errorf("token %d lexeme = %q, want %q", i, toks[i].Lexeme, want)
		}
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks, err := NewLexer(`"a\nb\t\"c\""`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := "a\nb\t\"c\""
	if toks[0].Lexeme != want {
		t.Errorf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestLexer_UnterminatedStringIsError(t *testing.T) {
	toks, err := NewLexer(`"abc`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokenError {
		t.Errorf("got %s, want Error", toks[0].Kind)
	}
}

func TestLexer_LineAndBlockComments(t *testing.T) {
	assertKinds(t, "1 // trailing comment\n2 /* block\ncomment */ 3", []TokenKind{
		TokenNumber, TokenNumber, TokenNumber, TokenEOF,
	})
}

func TestLexer_IncludeUsePathLiteral(t *testing.T) {
	toks, err := NewLexer(`include <foo/bar.scad>;`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokenInclude {
		t.Fatalf("token 0 = %s, want include", toks[0].Kind)
	}
	if toks[1].Kind != TokenPathLiteral {
		t.Fatalf("token 1 = %s, want PathLiteral", toks[1].Kind)
	}
	if toks[1].Lexeme != "foo/bar.scad" {
		t.Errorf("path lexeme = %q, want %q", toks[1].Lexeme, "foo/bar.scad")
	}
	if toks[2].Kind != TokenSemicolon {
		t.Errorf("token 2 = %s, want ';'", toks[2].Kind)
	}
}

func TestLexer_UnterminatedPathLiteralIsError(t *testing.T) {
	toks, err := NewLexer(`use <foo.scad`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[1].Kind != TokenError {
		t.Errorf("got %s, want Error", toks[1].Kind)
	}
}

func TestLexer_AmpersandWithoutPairIsError(t *testing.T) {
	toks, err := NewLexer("&").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokenError {
		t.Errorf("got %s, want Error", toks[0].Kind)
	}
}
