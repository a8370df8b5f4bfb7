package mi

// Grammar drives a deterministic, hand-rolled recursive-descent parse
// of one line's tokens into exactly one OutputRecord (spec §4.3). The
// grammar is small and LL(1) apart from a single token of lookahead
// to tell "IDENT = value" apart from a bare value and to tell a
// leading correlation token apart from a malformed line — a generated
// LR table would be overkill here (spec §9 design note).
type Grammar struct{}

// Parse consumes toks (which must end in a Newline token, as Lexer
// guarantees) and produces the OutputRecord for line. On any syntax
// error, parsing stops at the offending token and the result is a
// ParseError record carrying that token's lexeme and Position —
// never a Go error, per the spec §7 separation between wire syntax
// errors and programmer-contract violations.
func (Grammar) Parse(line []byte, toks []Token) OutputRecord {
	c := &cursor{toks: toks}
	rec, errTok := parseOutputRecord(c)
	if errTok != nil {
		rec = OutputRecord{
			Kind: OutputParseError,
			ParseError: ParseErrorInfo{
				Token: errTok.Text,
				Pos:   errTok.Pos,
			},
		}
	}
	rec.Line = string(line)
	return rec
}

type cursor struct {
	toks []Token
	pos  int
}

func (c *cursor) peek() Token { return c.peekAt(0) }

// peekAt returns the token off positions ahead of the cursor. Past the
// end of the token slice it returns a synthetic Newline token whose
// lexeme is "\n" — the "empty-line token" the spec's recovery policy
// (§4.3) names for an error detected at end-of-line.
func (c *cursor) peekAt(off int) Token {
	i := c.pos + off
	if i >= len(c.toks) {
		last := c.toks[len(c.toks)-1]
		return Token{Kind: Newline, Text: "\n", Pos: last.Pos}
	}
	return c.toks[i]
}

func (c *cursor) advance() {
	if c.pos < len(c.toks) {
		c.pos++
	}
}

func parseOutputRecord(c *cursor) (OutputRecord, *Token) {
	tok := c.peek()

	var token string
	hasToken := false

	if tok.Kind == Integer {
		switch c.peekAt(1).Kind {
		case Star, Plus, Equals, Caret:
			token = tok.Text
			hasToken = true
			c.advance()
			tok = c.peek()
		default:
			errTok := tok
			return OutputRecord{}, &errTok
		}
	}

	switch tok.Kind {
	case Tilde, At, Ampersand:
		return parseStream(c, tok.Kind)
	case Star, Plus, Equals:
		return parseAsync(c, tok.Kind, token, hasToken)
	case Caret:
		return parseResultRecord(c, token, hasToken)
	case OpenParen:
		return parsePrompt(c)
	default:
		errTok := tok
		return OutputRecord{}, &errTok
	}
}

func parseStream(c *cursor, sym TokenKind) (OutputRecord, *Token) {
	c.advance() // consume ~ @ &

	str := c.peek()
	if str.Kind != CString {
		return OutputRecord{}, &str
	}
	c.advance()

	nl := c.peek()
	if nl.Kind != Newline {
		return OutputRecord{}, &nl
	}
	c.advance()

	var kind StreamKind
	switch sym {
	case Tilde:
		kind = StreamConsole
	case At:
		kind = StreamTarget
	case Ampersand:
		kind = StreamLog
	}

	return OutputRecord{
		Kind: OutputOob,
		Oob: OobRecord{
			Kind:   OobStream,
			Stream: StreamRecord{Kind: kind, Text: dequote(str.Text)},
		},
	}, nil
}

func parseAsync(c *cursor, sym TokenKind, token string, hasToken bool) (OutputRecord, *Token) {
	c.advance() // consume * + =

	ident := c.peek()
	if ident.Kind != Identifier {
		return OutputRecord{}, &ident
	}
	c.advance()

	results, errTok := parseOptionalResultList(c)
	if errTok != nil {
		return OutputRecord{}, errTok
	}

	nl := c.peek()
	if nl.Kind != Newline {
		return OutputRecord{}, &nl
	}
	c.advance()

	var kind AsyncKind
	switch sym {
	case Star:
		kind = AsyncExec
	case Plus:
		kind = AsyncStatus
	case Equals:
		kind = AsyncNotify
	}

	rec := AsyncRecord{
		Token:     token,
		HasToken:  hasToken,
		Kind:      kind,
		Class:     classifyAsync(ident.Text),
		ClassName: ident.Text,
		Results:   results,
	}
	return OutputRecord{Kind: OutputOob, Oob: OobRecord{Kind: OobAsync, Async: rec}}, nil
}

func parseResultRecord(c *cursor, token string, hasToken bool) (OutputRecord, *Token) {
	c.advance() // consume ^

	ident := c.peek()
	if ident.Kind != Identifier {
		return OutputRecord{}, &ident
	}
	c.advance()

	results, errTok := parseOptionalResultList(c)
	if errTok != nil {
		return OutputRecord{}, errTok
	}

	nl := c.peek()
	if nl.Kind != Newline {
		return OutputRecord{}, &nl
	}
	c.advance()

	rec := ResultRecord{
		Token:     token,
		HasToken:  hasToken,
		Class:     classifyResult(ident.Text),
		ClassName: ident.Text,
		Results:   results,
	}
	return OutputRecord{Kind: OutputResult, Result: rec}, nil
}

func parsePrompt(c *cursor) (OutputRecord, *Token) {
	c.advance() // consume (

	ident := c.peek()
	if ident.Kind != Identifier || ident.Text != "gdb" {
		return OutputRecord{}, &ident
	}
	c.advance()

	closeTok := c.peek()
	if closeTok.Kind != CloseParen {
		return OutputRecord{}, &closeTok
	}
	c.advance()

	nl := c.peek()
	if nl.Kind != Newline {
		return OutputRecord{}, &nl
	}
	c.advance()

	return OutputRecord{Kind: OutputPrompt}, nil
}

// parseOptionalResultList handles the "," result-list suffix that
// follows the class identifier of an async or result record. Its
// absence is not an error — results default to empty.
func parseOptionalResultList(c *cursor) ([]Result, *Token) {
	if c.peek().Kind != Comma {
		return nil, nil
	}
	c.advance()
	return parseResultList(c)
}

func parseResultList(c *cursor) ([]Result, *Token) {
	var out []Result
	for {
		r, errTok := parseResultItem(c)
		if errTok != nil {
			return nil, errTok
		}
		out = append(out, r)

		if c.peek().Kind != Comma {
			break
		}
		c.advance()
	}
	return out, nil
}

// parseResultItem implements `result := IDENT "=" value | value`. The
// value-only form is tolerated (spec §4.3) so a keyless tuple/list
// element round-trips instead of erroring.
func parseResultItem(c *cursor) (Result, *Token) {
	tok := c.peek()
	if tok.Kind == Identifier && c.peekAt(1).Kind == Equals {
		c.advance() // ident
		c.advance() // =
		val, errTok := parseValue(c)
		if errTok != nil {
			return Result{}, errTok
		}
		val.Variable = tok.Text
		val.HasVariable = true
		return val, nil
	}
	return parseValue(c)
}

func parseValue(c *cursor) (Result, *Token) {
	tok := c.peek()
	switch tok.Kind {
	case CString:
		c.advance()
		return Result{Kind: ValueCString, String: dequote(tok.Text)}, nil
	case OpenBrace:
		return parseTuple(c)
	case OpenBracket:
		return parseList(c)
	default:
		return Result{}, &tok
	}
}

func parseTuple(c *cursor) (Result, *Token) {
	c.advance() // {

	if c.peek().Kind == CloseBrace {
		c.advance()
		return Result{Kind: ValueTuple}, nil
	}

	children, errTok := parseResultList(c)
	if errTok != nil {
		return Result{}, errTok
	}

	closeTok := c.peek()
	if closeTok.Kind != CloseBrace {
		return Result{}, &closeTok
	}
	c.advance()

	return Result{Kind: ValueTuple, Children: children}, nil
}

// parseList implements both the bracketed-value-list and
// bracketed-result-list alternatives of the spec's BNF in one pass:
// parseResultList already accepts bare values as unkeyed results, so
// a single production handles the documented mixed-keying case.
func parseList(c *cursor) (Result, *Token) {
	c.advance() // [

	if c.peek().Kind == CloseBracket {
		c.advance()
		return Result{Kind: ValueList}, nil
	}

	children, errTok := parseResultList(c)
	if errTok != nil {
		return Result{}, errTok
	}

	closeTok := c.peek()
	if closeTok.Kind != CloseBracket {
		return Result{}, &closeTok
	}
	c.advance()

	return Result{Kind: ValueList, Children: children}, nil
}
