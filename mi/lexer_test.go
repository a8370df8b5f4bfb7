package mi

import "testing"

func tokenKinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexPrompt(t *testing.T) {
	toks := Lexer{}.Lex([]byte("(gdb)\n"))
	kinds := tokenKinds(toks)
	want := []TokenKind{OpenParen, Identifier, CloseParen, Newline}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
	if toks[1].Text != "gdb" {
		t.Errorf("identifier text = %q, want gdb", toks[1].Text)
	}
}

func TestLexAsyncWithToken(t *testing.T) {
	toks := Lexer{}.Lex([]byte(`111*stopped,reason="breakpoint-hit"` + "\n"))
	if toks[0].Kind != Integer || toks[0].Text != "111" {
		t.Fatalf("expected leading integer token, got %+v", toks[0])
	}
	if toks[1].Kind != Star {
		t.Fatalf("expected star token, got %+v", toks[1])
	}
	if toks[2].Kind != Identifier || toks[2].Text != "stopped" {
		t.Fatalf("expected identifier 'stopped', got %+v", toks[2])
	}
}

func TestLexIdentifierAllowsHyphen(t *testing.T) {
	toks := Lexer{}.Lex([]byte("thread-id=\"1\"\n"))
	if toks[0].Kind != Identifier || toks[0].Text != "thread-id" {
		t.Fatalf("expected hyphenated identifier, got %+v", toks[0])
	}
}

func TestLexCStringIncludesQuotesAndEscapes(t *testing.T) {
	toks := Lexer{}.Lex([]byte(`~"line\n\042done\042"` + "\n"))
	if toks[0].Kind != Tilde {
		t.Fatalf("expected tilde, got %+v", toks[0])
	}
	if toks[1].Kind != CString {
		t.Fatalf("expected cstring, got %+v", toks[1])
	}
	if toks[1].Text != `"line\n\042done\042"` {
		t.Fatalf("unexpected cstring lexeme: %q", toks[1].Text)
	}
}

func TestLexColumnPositions(t *testing.T) {
	toks := Lexer{}.Lex([]byte("*stopped,[key=\"value\", key2= \" \"value2]\n"))
	var value2 Token
	for _, tok := range toks {
		if tok.Kind == Identifier && tok.Text == "value2" {
			value2 = tok
		}
	}
	if value2.Pos.Start != 33 || value2.Pos.End != 38 {
		t.Fatalf("unexpected position for value2: %+v", value2.Pos)
	}
}

func TestLexUnknownByte(t *testing.T) {
	toks := Lexer{}.Lex([]byte("$error\n"))
	if toks[0].Kind != Unknown || toks[0].Text != "$" {
		t.Fatalf("expected unknown token for '$', got %+v", toks[0])
	}
	if toks[0].Pos != (Position{Start: 1, End: 1}) {
		t.Fatalf("unexpected position: %+v", toks[0].Pos)
	}
}

func TestLexCRLFProducesSingleNewline(t *testing.T) {
	toks := Lexer{}.Lex([]byte("(gdb)\r\n"))
	last := toks[len(toks)-1]
	if last.Kind != Newline || last.Text != "\r\n" {
		t.Fatalf("expected combined CRLF newline token, got %+v", last)
	}
}
