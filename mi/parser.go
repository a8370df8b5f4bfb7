package mi

import (
	"go.uber.org/zap"

	"github.com/brasko/gdbmi/buffer"
	"github.com/brasko/gdbmi/gdberr"
)

// Metrics is the narrow surface Parser needs from an observability
// backend. A nil Metrics is valid and every call site on it is
// guarded, so embedding prometheus counters is opt-in.
type Metrics interface {
	LinesProcessed(n int)
	ParseErrorsRecovered(n int)
}

// Sink receives one OutputRecord per complete line, in the order the
// lines were pushed (spec §4.4 strict ordering guarantee).
type Sink func(OutputRecord)

// Parser is the push-style, restartable MI stream parser (spec §4,
// §4.4). Bytes are fed incrementally via PushBytes; Parser buffers any
// partial trailing line across calls and never blocks waiting for
// more input. The zero value is not usable — construct with NewParser.
type Parser struct {
	buf     buffer.Buffer
	lexer   Lexer
	grammar Grammar
	sink    Sink

	Metrics Metrics
	Logger  *zap.Logger
}

// NewParser returns a Parser that delivers one OutputRecord per
// complete line to sink. sink must not be nil.
func NewParser(sink Sink) *Parser {
	if sink == nil {
		panic(gdberr.New(gdberr.Assert, "NewParser: sink must not be nil"))
	}
	return &Parser{sink: sink}
}

// PushBytes appends data to the parser's internal buffer and drains
// every complete line it now contains, invoking the sink once per
// line. Lines are only consumed up to and including their terminator;
// a trailing partial line is retained for the next call. Feeding the
// same overall byte stream through PushBytes in any chunking produces
// the same sequence of sink calls (spec §8 chunk invariance).
func (p *Parser) PushBytes(data []byte) error {
	if data == nil {
		return gdberr.New(gdberr.Assert, "PushBytes: data must not be nil")
	}
	p.buf.Append(data)

	count := 0
	for {
		buffered := p.buf.Bytes()
		n, ok := findLineEnd(buffered)
		if !ok {
			break
		}
		line := append([]byte(nil), buffered[:n]...)
		if err := p.buf.Erase(0, n); err != nil {
			return gdberr.New(gdberr.Logic, "erase consumed line: %v", err)
		}
		p.emit(line)
		count++
	}

	if p.Metrics != nil && count > 0 {
		p.Metrics.LinesProcessed(count)
	}
	return nil
}

// Flush resolves a trailing lone '\r' held back because PushBytes
// could not yet tell whether a '\n' would follow it in a later push.
// Call it once the caller knows no more data is coming (e.g. the
// inferior's stdout closed). It is a no-op if no such byte is
// pending.
func (p *Parser) Flush() {
	data := p.buf.Bytes()
	if len(data) == 0 || data[len(data)-1] != '\r' {
		return
	}
	line := append([]byte(nil), data...)
	p.buf.Clear()
	p.emit(line)
}

func (p *Parser) emit(line []byte) {
	toks := p.lexer.Lex(line)
	rec := p.grammar.Parse(line, toks)
	if rec.Kind == OutputParseError {
		if p.Metrics != nil {
			p.Metrics.ParseErrorsRecovered(1)
		}
		if p.Logger != nil {
			p.Logger.Debug("mi: recovered from parse error",
				zap.String("token", rec.ParseError.Token),
				zap.Int("start", rec.ParseError.Pos.Start),
				zap.Int("end", rec.ParseError.Pos.End),
			)
		}
	}
	p.sink(rec)
}

// findLineEnd reports the length of the earliest complete line-plus-
// terminator prefix of data, and whether one was found. "\r\n" and
// "\n" both terminate immediately. A lone "\r" terminates only when
// followed by a byte that is not "\n"; if "\r" is the last byte
// currently buffered, the call reports no line found rather than
// guessing, since a "\n" may still arrive in the next push and the
// two bytes must combine into a single terminator (spec §6.1).
func findLineEnd(data []byte) (int, bool) {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, true
		case '\r':
			if i+1 >= len(data) {
				return 0, false
			}
			if data[i+1] == '\n' {
				return i + 2, true
			}
			return i + 1, true
		}
	}
	return 0, false
}
