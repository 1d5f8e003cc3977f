package sgsl

import (
	"testing"
)

func TestTokenizeDeclaration(t *testing.T) {
	tokens, err := NewLexer("var x: float = 1.0;").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []TokenKind{
		TokenVar, TokenIdent, TokenColon, TokenIdent,
		TokenEqual, TokenNumber, TokenSemicolon, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Kind, kind)
		}
	}

	if tokens[1].Lexeme != "x" {
		t.Errorf("identifier lexeme = %q, want %q", tokens[1].Lexeme, "x")
	}
	if tokens[5].Lexeme != "1.0" {
		t.Errorf("number lexeme = %q, want %q", tokens[5].Lexeme, "1.0")
	}
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		source string
		want   []TokenKind
	}{
		{"a + b", []TokenKind{TokenIdent, TokenPlus, TokenIdent, TokenEOF}},
		{"a == b", []TokenKind{TokenIdent, TokenEqualEqual, TokenIdent, TokenEOF}},
		{"a != b", []TokenKind{TokenIdent, TokenBangEqual, TokenIdent, TokenEOF}},
		{"a <= b", []TokenKind{TokenIdent, TokenLessEqual, TokenIdent, TokenEOF}},
		{"a && b || !c", []TokenKind{TokenIdent, TokenAmpAmp, TokenIdent, TokenPipePipe, TokenBang, TokenIdent, TokenEOF}},
		{"c ? a : b", []TokenKind{TokenIdent, TokenQuestion, TokenIdent, TokenColon, TokenIdent, TokenEOF}},
		{"fn f() -> float", []TokenKind{TokenFn, TokenIdent, TokenLeftParen, TokenRightParen, TokenArrow, TokenIdent, TokenEOF}},
		{"v.xyz", []TokenKind{TokenIdent, TokenDot, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		tokens, err := NewLexer(tt.source).Tokenize()
		if err != nil {
			t.Fatalf("%q: %v", tt.source, err)
		}
		if len(tokens) != len(tt.want) {
			t.Fatalf("%q: got %d tokens, want %d", tt.source, len(tokens), len(tt.want))
		}
		for i, kind := range tt.want {
			if tokens[i].Kind != kind {
				t.Errorf("%q token %d = %s, want %s", tt.source, i, tokens[i].Kind, kind)
			}
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		source string
		lexeme string
	}{
		{"42", "42"},
		{"1.5", "1.5"},
		{"1.", "1."},
		{"2e10", "2e10"},
		{"1.5e-3", "1.5e-3"},
		{"7u", "7u"},
	}

	for _, tt := range tests {
		tokens, err := NewLexer(tt.source).Tokenize()
		if err != nil {
			t.Fatalf("%q: %v", tt.source, err)
		}
		if tokens[0].Kind != TokenNumber || tokens[0].Lexeme != tt.lexeme {
			t.Errorf("%q = (%s, %q), want (Number, %q)", tt.source, tokens[0].Kind, tokens[0].Lexeme, tt.lexeme)
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens, err := NewLexer("a // comment\n+ /* block\ncomment */ b").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []TokenKind{TokenIdent, TokenPlus, TokenIdent, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, err := NewLexer("a /* no end").Tokenize()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	srcErr, ok := err.(*SourceError)
	if !ok {
		t.Fatalf("error type = %T, want *SourceError", err)
	}
	if srcErr.Code != ErrLex {
		t.Errorf("code = %s, want LexError", srcErr.Code)
	}
	if srcErr.Span.Start.Line != 1 || srcErr.Span.Start.Column != 3 {
		t.Errorf("position = %d:%d, want 1:3", srcErr.Span.Start.Line, srcErr.Span.Start.Column)
	}
}

func TestTokenizeFailsFastOnUnrecognizedCharacter(t *testing.T) {
	_, err := NewLexer("a + $b").Tokenize()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	srcErr, ok := err.(*SourceError)
	if !ok {
		t.Fatalf("error type = %T, want *SourceError", err)
	}
	if srcErr.Code != ErrLex {
		t.Errorf("code = %s, want LexError", srcErr.Code)
	}
	if srcErr.Span.Start.Line != 1 || srcErr.Span.Start.Column != 5 {
		t.Errorf("position = %d:%d, want 1:5", srcErr.Span.Start.Line, srcErr.Span.Start.Column)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := NewLexer("a\n  bb").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	if tokens[1].Line != 2 || tokens[1].Column != 3 {
		t.Errorf("second token at %d:%d, want 2:3", tokens[1].Line, tokens[1].Column)
	}
}
