// Package command decodes ResultRecord payloads into the typed
// command results a front end actually wants to work with, instead
// of the generic Result tree the mi package hands back.
package command

// SourceFile is the decoded response to a "list current source file"
// style query.
type SourceFile struct {
	Line     uint32
	File     string
	Fullname string
	HasFullname bool
	// MacroInfo distinguishes "field absent" from "field present and
	// false" — the wire only sends the single character "0" or "1".
	MacroInfo    bool
	HasMacroInfo bool
}

// SourceFileEntry is one element of a SourceFiles listing.
type SourceFileEntry struct {
	File        string
	Fullname    string
	HasFullname bool
}

// SourceFiles is the decoded response to a "list source files" query.
type SourceFiles struct {
	Files []SourceFileEntry
}

// StackFrame is one decoded frame of a backtrace.
type StackFrame struct {
	Level int32

	Address    string
	HasAddress bool

	Func    string
	HasFunc bool

	File    string
	HasFile bool

	Fullname    string
	HasFullname bool

	Line    int32
	HasLine bool

	From    string
	HasFrom bool
}

// Disposition is a breakpoint's action on the next stop. Unknown is
// the zero value; Decoder leaves it in place only when the disp field
// is absent. An unrecognized wire value is a decode failure, not a
// silent Unknown.
type Disposition int

const (
	DispositionUnknown Disposition = iota
	DispositionDelete
	DispositionDeleteNextStop
	DispositionDisable
	DispositionKeep
)

func (d Disposition) String() string {
	switch d {
	case DispositionDelete:
		return "delete"
	case DispositionDeleteNextStop:
		return "delete-next-stop"
	case DispositionDisable:
		return "disable"
	case DispositionKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// Breakpoint is one node of a BreakInfo tree. Parent is a non-owning
// back-reference: ownership flows strictly from a breakpoint to its
// Children, never the other way, so walking up via Parent must never
// be used to free or otherwise take ownership of an ancestor.
type Breakpoint struct {
	Number     string
	Multi      bool
	FromMulti  bool
	Enabled    bool
	Pending    bool

	Address    string
	HasAddress bool

	CatchType    string
	HasCatchType bool

	Type    string
	HasType bool

	Disposition Disposition

	Func    string
	HasFunc bool

	File    string
	HasFile bool

	Fullname    string
	HasFullname bool

	Line  uint64
	Times uint64

	OriginalLocation    string
	HasOriginalLocation bool

	Children []*Breakpoint
	Parent   *Breakpoint
}

// BreakInfo is the decoded response to a "break-list" style query: a
// forest of top-level breakpoints, each optionally carrying children
// that belong to the same multi-location breakpoint.
type BreakInfo struct {
	Roots []*Breakpoint
}
