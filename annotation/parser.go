package annotation

import "strings"

const controlZ = 0x1a

type state int

const (
	stateGdbData state = iota
	stateNewLine
	stateControlZ
	stateText
)

// Sink receives one Output event at a time, in emission order.
type Sink func(Output)

// Metrics is the narrow observability surface a Parser reports to. A
// nil Metrics is valid and every call site on it is nil-checked.
type Metrics interface {
	MarkerRecognized(name string)
	MarkerUnknown(name string)
}

// Parser implements the four-state annotation automaton (spec §4.6).
// Bytes are fed via PushBytes; the zero value is not usable, build
// with NewParser.
type Parser struct {
	sink    Sink
	Metrics Metrics

	// ExtraNames extends the recognized marker table beyond the
	// compiled-in kindByName map: a name found here (and nowhere in
	// kindByName) classifies as Extension instead of Unknown. The
	// value is an operator-facing description, not consulted by the
	// automaton itself. Nil means no extension is configured.
	ExtraNames map[string]string

	state           state
	consoleAccum    []byte
	annotationAccum []byte
}

// NewParser returns a Parser that delivers events to sink. sink must
// not be nil.
func NewParser(sink Sink) *Parser {
	if sink == nil {
		panic("annotation.NewParser: sink must not be nil")
	}
	return &Parser{sink: sink}
}

// PushBytes feeds data through the automaton. '\r' bytes are
// discarded unconditionally in every state. If the automaton ends
// this call in the quiescent GdbData state, any accumulated console
// output is flushed as one Output event. If it ends mid-deferral
// (NewLine or ControlZ, i.e. a possible marker prefix is still
// unresolved), nothing is flushed — not even console text that was
// already confirmed before the deferral began — so that a marker
// split across two pushes is recognized correctly and the console
// text on either side of it is not emitted out of order. Call Flush
// once no more data is coming to force that resolution.
func (p *Parser) PushBytes(data []byte) {
	for _, c := range data {
		if c == '\r' {
			continue
		}
		p.step(c)
	}
	if p.state == stateGdbData {
		p.flushConsole()
	}
}

// Flush resolves any deferred newline/control-Z state by treating it
// as ordinary console output, then flushes the console accumulator.
// Call it once the caller knows no further bytes are coming.
func (p *Parser) Flush() {
	switch p.state {
	case stateNewLine:
		p.appendConsole('\n')
		p.state = stateGdbData
	case stateControlZ:
		p.appendConsole('\n')
		p.appendConsole(controlZ)
		p.state = stateGdbData
	}
	p.flushConsole()
}

func (p *Parser) step(c byte) {
	switch p.state {
	case stateGdbData:
		if c == '\n' {
			p.state = stateNewLine
			return
		}
		p.appendConsole(c)

	case stateNewLine:
		if c == controlZ {
			p.state = stateControlZ
			return
		}
		p.appendConsole('\n')
		if c == '\n' {
			return
		}
		p.appendConsole(c)
		p.state = stateGdbData

	case stateControlZ:
		if c == controlZ {
			p.state = stateText
			return
		}
		p.appendConsole('\n')
		p.appendConsole(controlZ)
		if c == '\n' {
			p.state = stateNewLine
			return
		}
		p.appendConsole(c)
		p.state = stateGdbData

	case stateText:
		if c == '\n' {
			p.finalizeAnnotation()
			p.state = stateGdbData
			return
		}
		p.annotationAccum = append(p.annotationAccum, c)
	}
}

func (p *Parser) appendConsole(c byte) {
	p.consoleAccum = append(p.consoleAccum, c)
}

func (p *Parser) flushConsole() {
	if len(p.consoleAccum) == 0 {
		return
	}
	text := string(p.consoleAccum)
	p.consoleAccum = p.consoleAccum[:0]
	p.sink(Output{Kind: OutputConsole, ConsoleText: text})
}

func (p *Parser) finalizeAnnotation() {
	text := string(p.annotationAccum)
	p.annotationAccum = p.annotationAccum[:0]

	name := text
	if i := strings.IndexByte(text, ' '); i >= 0 {
		name = text[:i]
	}

	kind := p.classify(name)
	if p.Metrics != nil {
		if kind == Unknown {
			p.Metrics.MarkerUnknown(name)
		} else {
			p.Metrics.MarkerRecognized(name)
		}
	}

	// An annotation event is only ever reported once we know for
	// certain a marker occurred, so any console text queued up before
	// it goes out first, preserving overall emission order.
	p.flushConsole()
	p.sink(Output{Kind: OutputAnnotationEvent, Annotation: Annotation{
		Kind: kind,
		Name: name,
		Text: text,
	}})
}
