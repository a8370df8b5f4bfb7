// Package facade provides a narrow-callback demultiplexer over the mi
// package's OutputRecord stream, plus a one-shot helper for the
// common "send one command, get one typed result" interaction.
package facade

import (
	"github.com/brasko/gdbmi/command"
	"github.com/brasko/gdbmi/gdberr"
	"github.com/brasko/gdbmi/mi"
)

// Callbacks is the set of narrow handlers a Facade dispatches to. Any
// field left nil is simply not called for that event kind.
type Callbacks struct {
	OnStream     func(mi.StreamRecord)
	OnAsync      func(mi.AsyncRecord)
	OnResult     func(mi.ResultRecord)
	OnPrompt     func()
	OnParseError func(mi.ParseErrorInfo)
}

// Facade owns an mi.Parser wired to dispatch each OutputRecord to the
// matching Callbacks field.
type Facade struct {
	parser *mi.Parser
	cb     Callbacks
}

// New constructs a Facade that demultiplexes onto cb.
func New(cb Callbacks) *Facade {
	f := &Facade{cb: cb}
	f.parser = mi.NewParser(f.dispatch)
	return f
}

// PushBytes feeds bytes into the underlying parser. See mi.Parser.PushBytes.
func (f *Facade) PushBytes(data []byte) error {
	return f.parser.PushBytes(data)
}

// Flush resolves any buffered trailing line-terminator ambiguity. See
// mi.Parser.Flush.
func (f *Facade) Flush() {
	f.parser.Flush()
}

// SetMetrics wires an observability backend into the underlying
// mi.Parser. Optional; a Facade with no Metrics set behaves exactly
// as before.
func (f *Facade) SetMetrics(m mi.Metrics) {
	f.parser.Metrics = m
}

func (f *Facade) dispatch(rec mi.OutputRecord) {
	switch rec.Kind {
	case mi.OutputOob:
		switch rec.Oob.Kind {
		case mi.OobStream:
			if f.cb.OnStream != nil {
				f.cb.OnStream(rec.Oob.Stream)
			}
		case mi.OobAsync:
			if f.cb.OnAsync != nil {
				f.cb.OnAsync(rec.Oob.Async)
			}
		}
	case mi.OutputResult:
		if f.cb.OnResult != nil {
			f.cb.OnResult(rec.Result)
		}
	case mi.OutputPrompt:
		if f.cb.OnPrompt != nil {
			f.cb.OnPrompt()
		}
	case mi.OutputParseError:
		if f.cb.OnParseError != nil {
			f.cb.OnParseError(rec.ParseError)
		}
	}
}

// InterpretSingle pushes bytes through a fresh parser, requires that
// it produce exactly one ResultRecord event and no other event, and
// decodes that record as kind. Any other event observed during the
// call — a stream record, an async record, a prompt, or a parse
// error — is a Logic error: the caller promised bytes containing
// exactly one clean result line.
func InterpretSingle(data []byte, kind command.Kind) (command.Command, error) {
	var (
		result   mi.ResultRecord
		gotOne   bool
		violated error
	)

	f := New(Callbacks{
		OnStream: func(mi.StreamRecord) {
			if violated == nil {
				violated = gdberr.New(gdberr.Logic, "InterpretSingle: unexpected stream record")
			}
		},
		OnAsync: func(mi.AsyncRecord) {
			if violated == nil {
				violated = gdberr.New(gdberr.Logic, "InterpretSingle: unexpected async record")
			}
		},
		OnResult: func(rr mi.ResultRecord) {
			if gotOne {
				if violated == nil {
					violated = gdberr.New(gdberr.Logic, "InterpretSingle: more than one result record")
				}
				return
			}
			result = rr
			gotOne = true
		},
		OnPrompt: func() {
			if violated == nil {
				violated = gdberr.New(gdberr.Logic, "InterpretSingle: unexpected prompt")
			}
		},
		OnParseError: func(mi.ParseErrorInfo) {
			if violated == nil {
				violated = gdberr.New(gdberr.Logic, "InterpretSingle: unexpected parse error")
			}
		},
	})

	if err := f.PushBytes(data); err != nil {
		return command.Command{}, err
	}
	f.Flush()

	if violated != nil {
		return command.Command{}, violated
	}
	if !gotOne {
		return command.Command{}, gdberr.New(gdberr.Logic, "InterpretSingle: no result record produced")
	}

	return command.Decoder{}.Decode(kind, result)
}
