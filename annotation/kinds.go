// Package annotation implements the GDB annotation protocol: a
// sideband embedded in the console output stream of older
// (non-MI) GDB front ends, delimited by "\n\032\032NAME\n" markers.
package annotation

// Kind enumerates the recognized annotation names. Unknown is the
// catch-all for anything not in the table — the raw name is still
// available on Annotation.Name.
type Kind int

const (
	Unknown Kind = iota
	BreakpointsInvalid
	Source
	FrameEnd
	FramesInvalid
	PreCommands
	Commands
	PostCommands
	PreOverloadChoice
	OverloadChoice
	PostOverloadChoice
	PreInstanceChoice
	InstanceChoice
	PostInstanceChoice
	PreQuery
	Query
	PostQuery
	PrePromptForContinue
	PromptForContinue
	PostPromptForContinue
	PrePrompt
	Prompt
	PostPrompt
	ErrorBegin
	Error
	Quit
	Exited

	// Extension marks a name absent from kindByName but present in a
	// Parser's ExtraNames table (an operator-supplied extension loaded
	// from config, not compiled into this package).
	Extension
)

var kindByName = map[string]Kind{
	"breakpoints-invalid":      BreakpointsInvalid,
	"source":                   Source,
	"frame-end":                FrameEnd,
	"frames-invalid":           FramesInvalid,
	"pre-commands":             PreCommands,
	"commands":                 Commands,
	"post-commands":            PostCommands,
	"pre-overload-choice":      PreOverloadChoice,
	"overload-choice":          OverloadChoice,
	"post-overload-choice":     PostOverloadChoice,
	"pre-instance-choice":      PreInstanceChoice,
	"instance-choice":          InstanceChoice,
	"post-instance-choice":     PostInstanceChoice,
	"pre-query":                PreQuery,
	"query":                    Query,
	"post-query":               PostQuery,
	"pre-prompt-for-continue":  PrePromptForContinue,
	"prompt-for-continue":      PromptForContinue,
	"post-prompt-for-continue": PostPromptForContinue,
	"pre-prompt":               PrePrompt,
	"prompt":                   Prompt,
	"post-prompt":              PostPrompt,
	"error-begin":              ErrorBegin,
	"error":                    Error,
	"quit":                     Quit,
	"exited":                   Exited,
}

// classify resolves name against the built-in table first, then
// against p.ExtraNames, so an operator-supplied extension can turn a
// name this package doesn't know about into a recognized Extension
// marker instead of Unknown.
func (p *Parser) classify(name string) Kind {
	if k, ok := kindByName[name]; ok {
		return k
	}
	if _, ok := p.ExtraNames[name]; ok {
		return Extension
	}
	return Unknown
}

// Annotation is one parsed marker: Name is the verbatim first word
// that followed the "\n\032\032", Text is the full payload collected
// up to (not including) the terminating newline.
type Annotation struct {
	Kind Kind
	Name string
	Text string
}

// OutputKind discriminates the two Output shapes a Parser emits.
type OutputKind int

const (
	OutputConsole OutputKind = iota
	OutputAnnotationEvent
)

// Output is one event from Parser: either a run of console output or
// one recognized (or Unknown) Annotation.
type Output struct {
	Kind        OutputKind
	ConsoleText string
	Annotation  Annotation
}
