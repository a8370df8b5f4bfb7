package mi

import "testing"

func parseLine(line string) OutputRecord {
	toks := Lexer{}.Lex([]byte(line))
	return Grammar{}.Parse([]byte(line), toks)
}

func TestGrammarStreamRecord(t *testing.T) {
	rec := parseLine(`~"hello world\n"` + "\n")
	if rec.Kind != OutputOob || rec.Oob.Kind != OobStream {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Oob.Stream.Kind != StreamConsole {
		t.Fatalf("expected console stream, got %v", rec.Oob.Stream.Kind)
	}
	if rec.Oob.Stream.Text != `hello world\n` {
		t.Fatalf("unexpected text: %q", rec.Oob.Stream.Text)
	}
}

func TestGrammarAsyncRecordWithResults(t *testing.T) {
	rec := parseLine(`*stopped,reason="breakpoint-hit",bkptno="1",thread-id="1"` + "\n")
	if rec.Kind != OutputOob || rec.Oob.Kind != OobAsync {
		t.Fatalf("unexpected record: %+v", rec)
	}
	a := rec.Oob.Async
	if a.Kind != AsyncExec || a.Class != AsyncClassStopped {
		t.Fatalf("unexpected async class/kind: %+v", a)
	}
	if len(a.Results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(a.Results), a.Results)
	}
	if a.Results[0].Variable != "reason" || a.Results[0].String != "breakpoint-hit" {
		t.Fatalf("unexpected first result: %+v", a.Results[0])
	}
}

func TestGrammarResultRecordWithToken(t *testing.T) {
	rec := parseLine(`42^done,value="ok"` + "\n")
	if rec.Kind != OutputResult {
		t.Fatalf("unexpected record: %+v", rec)
	}
	r := rec.Result
	if !r.HasToken || r.Token != "42" {
		t.Fatalf("expected token 42, got %+v", r)
	}
	if r.Class != ResultDone {
		t.Fatalf("expected done class, got %v", r.Class)
	}
}

func TestGrammarPrompt(t *testing.T) {
	rec := parseLine("(gdb)\n")
	if rec.Kind != OutputPrompt {
		t.Fatalf("expected prompt, got %+v", rec)
	}
}

func TestGrammarTupleAndList(t *testing.T) {
	rec := parseLine(`^done,frame={level="0",addr="0x08048564"},args=[{name="x"},{name="y"}]` + "\n")
	if rec.Kind != OutputResult {
		t.Fatalf("unexpected record: %+v", rec)
	}
	frame, ok := Result{Children: rec.Result.Results}.Lookup("frame")
	if !ok || frame.Kind != ValueTuple {
		t.Fatalf("expected frame tuple, got %+v", frame)
	}
	level, ok := frame.Lookup("level")
	if !ok || level.String != "0" {
		t.Fatalf("expected level 0, got %+v", level)
	}
	args, ok := Result{Children: rec.Result.Results}.Lookup("args")
	if !ok || args.Kind != ValueList || len(args.Children) != 2 {
		t.Fatalf("expected 2-element args list, got %+v", args)
	}
}

func TestGrammarListMixedKeyedAndBareElements(t *testing.T) {
	rec := parseLine(`^done,list=["bare",name="keyed"]` + "\n")
	if rec.Kind != OutputResult {
		t.Fatalf("unexpected record: %+v", rec)
	}
	list, ok := Result{Children: rec.Result.Results}.Lookup("list")
	if !ok || list.Kind != ValueList || len(list.Children) != 2 {
		t.Fatalf("expected mixed 2-element list, got %+v", list)
	}
	if list.Children[0].HasVariable || list.Children[0].String != "bare" {
		t.Fatalf("unexpected bare element: %+v", list.Children[0])
	}
	if !list.Children[1].HasVariable || list.Children[1].Variable != "name" {
		t.Fatalf("unexpected keyed element: %+v", list.Children[1])
	}
}

func TestGrammarUnrecognizedLeadingByteIsParseError(t *testing.T) {
	rec := parseLine("$error\n")
	if rec.Kind != OutputParseError {
		t.Fatalf("expected parse error, got %+v", rec)
	}
	if rec.ParseError.Token != "$" {
		t.Fatalf("unexpected error token: %q", rec.ParseError.Token)
	}
	if rec.ParseError.Pos != (Position{Start: 1, End: 1}) {
		t.Fatalf("unexpected error position: %+v", rec.ParseError.Pos)
	}
}

func TestGrammarRecoversAndParsesNextLine(t *testing.T) {
	first := parseLine("$error\n")
	second := parseLine("(gdb)\n")
	if first.Kind != OutputParseError {
		t.Fatalf("expected parse error on first line, got %+v", first)
	}
	if second.Kind != OutputPrompt {
		t.Fatalf("expected prompt on second line, got %+v", second)
	}
}

func TestGrammarErrorInsideResultList(t *testing.T) {
	rec := parseLine(`*stopped,[key="value", key2= " "value2]` + "\n")
	if rec.Kind != OutputParseError {
		t.Fatalf("expected parse error, got %+v", rec)
	}
	if rec.ParseError.Token != "value2" {
		t.Fatalf("unexpected error token: %q", rec.ParseError.Token)
	}
	if rec.ParseError.Pos != (Position{Start: 33, End: 38}) {
		t.Fatalf("unexpected error position: %+v", rec.ParseError.Pos)
	}
}

func TestGrammarPromptRejectsWrongIdentifier(t *testing.T) {
	rec := parseLine("(notgdb)\n")
	if rec.Kind != OutputParseError {
		t.Fatalf("expected parse error, got %+v", rec)
	}
	if rec.ParseError.Token != "notgdb" {
		t.Fatalf("unexpected error token: %q", rec.ParseError.Token)
	}
}

func TestGrammarEmptyTupleAndList(t *testing.T) {
	rec := parseLine(`^done,a={},b=[]` + "\n")
	if rec.Kind != OutputResult {
		t.Fatalf("unexpected record: %+v", rec)
	}
	a, _ := Result{Children: rec.Result.Results}.Lookup("a")
	if a.Kind != ValueTuple || len(a.Children) != 0 {
		t.Fatalf("expected empty tuple, got %+v", a)
	}
	b, _ := Result{Children: rec.Result.Results}.Lookup("b")
	if b.Kind != ValueList || len(b.Children) != 0 {
		t.Fatalf("expected empty list, got %+v", b)
	}
}
