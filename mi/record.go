package mi

// StreamKind distinguishes the three out-of-band stream records (spec
// §3, §6.2).
type StreamKind int

const (
	StreamConsole StreamKind = iota
	StreamTarget
	StreamLog
)

func (k StreamKind) String() string {
	switch k {
	case StreamConsole:
		return "console"
	case StreamTarget:
		return "target"
	case StreamLog:
		return "log"
	default:
		return "unknown"
	}
}

// StreamRecord carries raw console/inferior/log text. Text is the
// dequoted payload with escape sequences preserved verbatim, exactly
// as emitted on the wire (spec §6.2, §8 round-trip property).
type StreamRecord struct {
	Kind StreamKind
	Text string
}

// AsyncKind distinguishes the three async record wire prefixes
// (`*`, `+`, `=`).
type AsyncKind int

const (
	AsyncExec AsyncKind = iota
	AsyncStatus
	AsyncNotify
)

// AsyncClass enumerates the recognized async reason strings of spec
// §6.2. AsyncUnsupported is the catch-all; the original identifier is
// always available on AsyncRecord.ClassName regardless of whether it
// was recognized.
type AsyncClass int

const (
	AsyncUnsupported AsyncClass = iota
	AsyncClassStopped
	AsyncClassRunning
	AsyncClassDownload
	AsyncClassThreadGroupAdded
	AsyncClassThreadGroupRemoved
	AsyncClassThreadGroupStarted
	AsyncClassThreadGroupExited
	AsyncClassThreadCreated
	AsyncClassThreadExited
	AsyncClassThreadSelected
	AsyncClassLibraryLoaded
	AsyncClassLibraryUnloaded
	AsyncClassTraceframeChanged
	AsyncClassTsvCreated
	AsyncClassTsvModified
	AsyncClassTsvDeleted
	AsyncClassBreakpointCreated
	AsyncClassBreakpointModified
	AsyncClassBreakpointDeleted
	AsyncClassRecordStarted
	AsyncClassRecordStopped
	AsyncClassCmdParamChanged
	AsyncClassMemoryChanged
)

var asyncClassByName = map[string]AsyncClass{
	"stopped":              AsyncClassStopped,
	"running":              AsyncClassRunning,
	"download":             AsyncClassDownload,
	"thread-group-added":   AsyncClassThreadGroupAdded,
	"thread-group-removed": AsyncClassThreadGroupRemoved,
	"thread-group-started": AsyncClassThreadGroupStarted,
	"thread-group-exited":  AsyncClassThreadGroupExited,
	"thread-created":       AsyncClassThreadCreated,
	"thread-exited":        AsyncClassThreadExited,
	"thread-selected":      AsyncClassThreadSelected,
	"library-loaded":       AsyncClassLibraryLoaded,
	"library-unloaded":     AsyncClassLibraryUnloaded,
	"traceframe-changed":   AsyncClassTraceframeChanged,
	"tsv-created":          AsyncClassTsvCreated,
	"tsv-modified":         AsyncClassTsvModified,
	"tsv-deleted":          AsyncClassTsvDeleted,
	"breakpoint-created":   AsyncClassBreakpointCreated,
	"breakpoint-modified":  AsyncClassBreakpointModified,
	"breakpoint-deleted":   AsyncClassBreakpointDeleted,
	"record-started":       AsyncClassRecordStarted,
	"record-stopped":       AsyncClassRecordStopped,
	"cmd-param-changed":    AsyncClassCmdParamChanged,
	"memory-changed":       AsyncClassMemoryChanged,
}

func classifyAsync(name string) AsyncClass {
	if c, ok := asyncClassByName[name]; ok {
		return c
	}
	return AsyncUnsupported
}

// AsyncRecord is an out-of-band asynchronous notification (spec §3).
// Token is the optional caller-chosen correlation string; modern GDB
// emissions never set it, but it is retained when present rather than
// silently dropped (spec §9 open question — callers that want the
// stricter historical policy of always ignoring it can do so at the
// call site).
type AsyncRecord struct {
	Token     string
	HasToken  bool
	Kind      AsyncKind
	Class     AsyncClass
	ClassName string
	Results   []Result
}

// ResultClass enumerates the result-record completion classes of spec
// §6.2. ResultUnsupported is the catch-all.
type ResultClass int

const (
	ResultUnsupported ResultClass = iota
	ResultDone
	ResultRunning
	ResultConnected
	ResultError
	ResultExit
)

var resultClassByName = map[string]ResultClass{
	"done":      ResultDone,
	"running":   ResultRunning,
	"connected": ResultConnected,
	"error":     ResultError,
	"exit":      ResultExit,
}

func classifyResult(name string) ResultClass {
	if c, ok := resultClassByName[name]; ok {
		return c
	}
	return ResultUnsupported
}

// ResultRecord is a synchronous response to a caller-issued command
// (spec §3).
type ResultRecord struct {
	Token     string
	HasToken  bool
	Class     ResultClass
	ClassName string
	Results   []Result
}

// OobKind discriminates the two out-of-band record shapes.
type OobKind int

const (
	OobStream OobKind = iota
	OobAsync
)

// OobRecord is one of {Stream, Async} (spec §3).
type OobRecord struct {
	Kind   OobKind
	Stream StreamRecord
	Async  AsyncRecord
}

// OutputKind discriminates the four OutputRecord shapes.
type OutputKind int

const (
	OutputOob OutputKind = iota
	OutputResult
	OutputPrompt
	OutputParseError
)

// ParseErrorInfo carries the offending lexeme and its position for a
// ParseError OutputRecord (spec §4.3).
type ParseErrorInfo struct {
	Token string
	Pos   Position
}

// OutputRecord is the unit of output the Grammar produces for every
// complete line (spec §3): one of {Oob, Result, Prompt, ParseError},
// always paired with the literal line that produced it.
type OutputRecord struct {
	Kind       OutputKind
	Line       string
	Oob        OobRecord
	Result     ResultRecord
	ParseError ParseErrorInfo
}
