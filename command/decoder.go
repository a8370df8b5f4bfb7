package command

import (
	"strconv"
	"strings"

	"github.com/brasko/gdbmi/gdberr"
	"github.com/brasko/gdbmi/mi"
)

// Kind names which typed shape Decoder.Decode should materialize.
type Kind int

const (
	KindSourceFile Kind = iota
	KindSourceFiles
	KindStackFrame
	KindBreakInfo
)

// Command is the tagged result of a successful decode. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Command struct {
	Kind        Kind
	SourceFile  SourceFile
	SourceFiles SourceFiles
	StackFrame  StackFrame
	BreakInfo   BreakInfo
}

// Decoder validates that a ResultRecord has the shape expected for a
// given Kind and materializes the typed Command.
type Decoder struct{}

// Decode requires rr.Class == mi.ResultDone; anything else is a
// structural mismatch reported as an Assert error. Malformed field
// values (bad numbers, unrecognized enums) are reported as Logic
// errors. Decode never allocates in a way that can partially fail, so
// NoMem is reserved for callers wrapping it with their own allocating
// steps.
func (Decoder) Decode(kind Kind, rr mi.ResultRecord) (Command, error) {
	if rr.Class != mi.ResultDone {
		return Command{}, gdberr.New(gdberr.Assert, "decode: result record class must be Done, got %v", rr.ClassName)
	}

	root := mi.Result{Children: rr.Results}

	switch kind {
	case KindSourceFile:
		return decodeSourceFile(root)
	case KindSourceFiles:
		return decodeSourceFiles(root)
	case KindStackFrame:
		return decodeStackFrame(root)
	case KindBreakInfo:
		return decodeBreakInfo(root)
	default:
		return Command{}, gdberr.New(gdberr.Assert, "decode: unrecognized command kind %d", kind)
	}
}

func decodeSourceFile(root mi.Result) (Command, error) {
	file, ok := lookupString(root, "file")
	if !ok {
		return Command{}, gdberr.New(gdberr.Assert, "SourceFile: missing required field \"file\"")
	}
	lineStr, ok := lookupString(root, "line")
	if !ok {
		return Command{}, gdberr.New(gdberr.Assert, "SourceFile: missing required field \"line\"")
	}
	line, err := parseUnsigned(lineStr)
	if err != nil {
		return Command{}, gdberr.New(gdberr.Logic, "SourceFile: line: %v", err)
	}

	sf := SourceFile{Line: uint32(line), File: file}
	if fullname, ok := lookupString(root, "fullname"); ok {
		sf.Fullname = fullname
		sf.HasFullname = true
	}
	if raw, ok := lookupString(root, "macro-info"); ok {
		switch raw {
		case "0":
			sf.MacroInfo = false
		case "1":
			sf.MacroInfo = true
		default:
			return Command{}, gdberr.New(gdberr.Logic, "SourceFile: macro-info must be \"0\" or \"1\", got %q", raw)
		}
		sf.HasMacroInfo = true
	}
	return Command{Kind: KindSourceFile, SourceFile: sf}, nil
}

func decodeSourceFiles(root mi.Result) (Command, error) {
	files, ok := root.Lookup("files")
	if !ok || files.Kind != mi.ValueList {
		return Command{}, gdberr.New(gdberr.Assert, "SourceFiles: missing \"files\" list")
	}

	entries := make([]SourceFileEntry, 0, len(files.Children))
	for _, elem := range files.Children {
		if elem.Kind != mi.ValueTuple || len(elem.Children) == 0 || len(elem.Children) > 2 {
			return Command{}, gdberr.New(gdberr.Assert, "SourceFiles: each element must be a one- or two-field tuple")
		}
		first := elem.Children[0]
		if !first.HasVariable || first.Variable != "file" || first.Kind != mi.ValueCString {
			return Command{}, gdberr.New(gdberr.Assert, "SourceFiles: first tuple field must be \"file\"")
		}
		entry := SourceFileEntry{File: first.String}
		if len(elem.Children) == 2 {
			second := elem.Children[1]
			if !second.HasVariable || second.Variable != "fullname" || second.Kind != mi.ValueCString {
				return Command{}, gdberr.New(gdberr.Assert, "SourceFiles: second tuple field must be \"fullname\"")
			}
			entry.Fullname = second.String
			entry.HasFullname = true
		}
		entries = append(entries, entry)
	}
	return Command{Kind: KindSourceFiles, SourceFiles: SourceFiles{Files: entries}}, nil
}

func decodeStackFrame(root mi.Result) (Command, error) {
	frame, ok := root.Lookup("frame")
	if !ok || frame.Kind != mi.ValueTuple {
		return Command{}, gdberr.New(gdberr.Assert, "StackFrame: missing \"frame\" tuple")
	}

	levelStr, ok := lookupString(frame, "level")
	if !ok {
		return Command{}, gdberr.New(gdberr.Assert, "StackFrame: missing required field \"level\"")
	}
	level, err := parseSigned(levelStr)
	if err != nil {
		return Command{}, gdberr.New(gdberr.Logic, "StackFrame: level: %v", err)
	}

	addr, ok := lookupString(frame, "addr")
	if !ok {
		return Command{}, gdberr.New(gdberr.Assert, "StackFrame: missing required field \"addr\"")
	}

	sf := StackFrame{Level: int32(level)}
	if addr != "<unavailable>" {
		sf.Address = addr
		sf.HasAddress = true
	}
	if v, ok := lookupString(frame, "func"); ok {
		sf.Func = v
		sf.HasFunc = true
	}
	if v, ok := lookupString(frame, "file"); ok {
		sf.File = v
		sf.HasFile = true
	}
	if v, ok := lookupString(frame, "fullname"); ok {
		sf.Fullname = v
		sf.HasFullname = true
	}
	if v, ok := lookupString(frame, "line"); ok {
		n, err := parseSigned(v)
		if err != nil {
			return Command{}, gdberr.New(gdberr.Logic, "StackFrame: line: %v", err)
		}
		sf.Line = int32(n)
		sf.HasLine = true
	}
	if v, ok := lookupString(frame, "from"); ok {
		sf.From = v
		sf.HasFrom = true
	}
	return Command{Kind: KindStackFrame, StackFrame: sf}, nil
}

func decodeBreakInfo(root mi.Result) (Command, error) {
	table, ok := root.Lookup("BreakpointTable")
	if !ok || table.Kind != mi.ValueTuple {
		return Command{}, gdberr.New(gdberr.Assert, "BreakInfo: missing \"BreakpointTable\" tuple")
	}
	body, ok := table.Lookup("body")
	if !ok || body.Kind != mi.ValueList {
		return Command{}, gdberr.New(gdberr.Assert, "BreakInfo: missing \"body\" list")
	}

	var roots []*Breakpoint
	var lastRoot *Breakpoint

	// Each body element's own label (bkpt= on the first, often
	// unlabelled thereafter) is never consulted here — the fields
	// that matter live inside the element's children regardless of
	// whether the element itself carries a key, so the historical
	// first-labelled/rest-unlabelled quirk is accepted for free.
	for _, elem := range body.Children {
		if elem.Kind != mi.ValueTuple {
			return Command{}, gdberr.New(gdberr.Assert, "BreakInfo: body element must be a tuple")
		}
		bp, err := decodeBreakpointTuple(elem)
		if err != nil {
			return Command{}, err
		}

		if strings.Contains(bp.Number, ".") {
			if lastRoot == nil {
				return Command{}, gdberr.New(gdberr.Logic, "BreakInfo: location %q has no preceding multi-breakpoint", bp.Number)
			}
			bp.FromMulti = true
			bp.Parent = lastRoot
			lastRoot.Children = append(lastRoot.Children, bp)
			continue
		}
		roots = append(roots, bp)
		lastRoot = bp
	}

	return Command{Kind: KindBreakInfo, BreakInfo: BreakInfo{Roots: roots}}, nil
}

func decodeBreakpointTuple(elem mi.Result) (*Breakpoint, error) {
	number, ok := lookupString(elem, "number")
	if !ok {
		return nil, gdberr.New(gdberr.Assert, "Breakpoint: missing required field \"number\"")
	}
	bp := &Breakpoint{Number: number}

	if v, ok := lookupString(elem, "enabled"); ok {
		switch v {
		case "y":
			bp.Enabled = true
		case "n":
			bp.Enabled = false
		default:
			return nil, gdberr.New(gdberr.Logic, "Breakpoint %s: enabled must be \"y\" or \"n\", got %q", number, v)
		}
	}

	if v, ok := lookupString(elem, "addr"); ok {
		switch v {
		case "<MULTIPLE>":
			bp.Multi = true
		case "<PENDING>":
			bp.Pending = true
		default:
			bp.Address = v
			bp.HasAddress = true
		}
	}

	if v, ok := lookupString(elem, "catch-type"); ok {
		bp.CatchType = v
		bp.HasCatchType = true
	}
	if v, ok := lookupString(elem, "type"); ok {
		bp.Type = v
		bp.HasType = true
	}

	if v, ok := lookupString(elem, "disp"); ok {
		switch v {
		case "del":
			bp.Disposition = DispositionDelete
		case "dstp":
			bp.Disposition = DispositionDeleteNextStop
		case "dis":
			bp.Disposition = DispositionDisable
		case "keep":
			bp.Disposition = DispositionKeep
		default:
			return nil, gdberr.New(gdberr.Logic, "Breakpoint %s: unrecognized disp %q", number, v)
		}
	}

	if v, ok := lookupString(elem, "func"); ok {
		bp.Func = v
		bp.HasFunc = true
	}
	if v, ok := lookupString(elem, "file"); ok {
		bp.File = v
		bp.HasFile = true
	}
	if v, ok := lookupString(elem, "fullname"); ok {
		bp.Fullname = v
		bp.HasFullname = true
	}
	if v, ok := lookupString(elem, "line"); ok {
		n, err := parseUnsigned(v)
		if err != nil {
			return nil, gdberr.New(gdberr.Logic, "Breakpoint %s: line: %v", number, err)
		}
		bp.Line = n
	}
	if v, ok := lookupString(elem, "times"); ok {
		n, err := parseUnsigned(v)
		if err != nil {
			return nil, gdberr.New(gdberr.Logic, "Breakpoint %s: times: %v", number, err)
		}
		bp.Times = n
	}
	if v, ok := lookupString(elem, "original-location"); ok {
		bp.OriginalLocation = v
		bp.HasOriginalLocation = true
	}

	return bp, nil
}

func lookupString(parent mi.Result, key string) (string, bool) {
	child, ok := parent.Lookup(key)
	if !ok {
		return "", false
	}
	return child.String, true
}

// parseUnsigned implements the decimal-only, no-sign, whole-string,
// no-whitespace numeric rule for unsigned fields (line, times).
func parseUnsigned(s string) (uint64, error) {
	if s == "" {
		return 0, strconvError(s, "empty numeric field")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconvError(s, "not a decimal digit string")
		}
	}
	return strconv.ParseUint(s, 10, 64)
}

// parseSigned implements the same rule for signed fields (level,
// line), additionally permitting a single leading '-'.
func parseSigned(s string) (int64, error) {
	if s == "" {
		return 0, strconvError(s, "empty numeric field")
	}
	body := s
	if body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, strconvError(s, "not a decimal digit string")
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return 0, strconvError(s, "not a decimal digit string")
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

type numericError struct {
	value string
	msg   string
}

func (e *numericError) Error() string {
	return e.msg + ": " + strconv.Quote(e.value)
}

func strconvError(value, msg string) error {
	return &numericError{value: value, msg: msg}
}
