package annotation

import "testing"

func TestAnnotationSourceMarkerWithSurroundingText(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("A\n\032\032source foo\nB\n"))
	p.Flush()

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(got), got)
	}
	if got[0].Kind != OutputConsole || got[0].ConsoleText != "A" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Kind != OutputAnnotationEvent || got[1].Annotation.Kind != Source {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
	if got[1].Annotation.Text != "source foo" {
		t.Fatalf("unexpected annotation text: %q", got[1].Annotation.Text)
	}
	if got[2].Kind != OutputConsole || got[2].ConsoleText != "B\n" {
		t.Fatalf("unexpected third event: %+v", got[2])
	}
}

func TestAnnotationUnescapesNonMarkerControlZ(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("A\n\032X"))

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(got), got)
	}
	if got[0].Kind != OutputConsole || got[0].ConsoleText != "A\n\032X" {
		t.Fatalf("unexpected event: %+v", got[0])
	}
}

func TestAnnotationUnescapesBareNewlineAfterNewlineState(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	// "A\n\nB" - a newline that turns out not to start a marker, and
	// is itself followed by another bare newline before resolving.
	p.PushBytes([]byte("A\n\nB"))
	p.Flush()

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(got), got)
	}
	if got[0].ConsoleText != "A\n\nB" {
		t.Fatalf("unexpected event: %+v", got[0])
	}
}

func TestAnnotationMarkerSplitAcrossPushBoundary(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("A\n\032"))
	if len(got) != 0 {
		t.Fatalf("expected no events yet while the marker is ambiguous, got %+v", got)
	}

	p.PushBytes([]byte("\032source\n"))
	if len(got) != 2 {
		t.Fatalf("expected 2 events total, got %d: %+v", len(got), got)
	}
	if got[0].Kind != OutputConsole || got[0].ConsoleText != "A" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Kind != OutputAnnotationEvent || got[1].Annotation.Kind != Source {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
}

func TestAnnotationUnknownName(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("\n\032\032totally-made-up extra\n"))

	if len(got) != 1 || got[0].Kind != OutputAnnotationEvent {
		t.Fatalf("expected a single annotation event, got %+v", got)
	}
	if got[0].Annotation.Kind != Unknown {
		t.Fatalf("expected Unknown kind, got %v", got[0].Annotation.Kind)
	}
	if got[0].Annotation.Name != "totally-made-up" {
		t.Fatalf("unexpected name: %q", got[0].Annotation.Name)
	}
}

func TestAnnotationWithNoPayload(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("\n\032\032prompt\n"))

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(got), got)
	}
	if got[0].Annotation.Kind != Prompt || got[0].Annotation.Text != "prompt" {
		t.Fatalf("unexpected annotation: %+v", got[0].Annotation)
	}
}

type fakeMetrics struct {
	recognized []string
	unknown    []string
}

func (f *fakeMetrics) MarkerRecognized(name string) { f.recognized = append(f.recognized, name) }
func (f *fakeMetrics) MarkerUnknown(name string)    { f.unknown = append(f.unknown, name) }

func TestAnnotationReportsMetricsForRecognizedAndUnknownMarkers(t *testing.T) {
	m := &fakeMetrics{}
	p := NewParser(func(Output) {})
	p.Metrics = m

	p.PushBytes([]byte("\n\032\032source foo\n\n\032\032totally-made-up\n"))

	if len(m.recognized) != 1 || m.recognized[0] != "source" {
		t.Fatalf("expected one recognized marker \"source\", got %+v", m.recognized)
	}
	if len(m.unknown) != 1 || m.unknown[0] != "totally-made-up" {
		t.Fatalf("expected one unknown marker \"totally-made-up\", got %+v", m.unknown)
	}
}

func TestAnnotationExtraNamesClassifyAsExtension(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })
	p.ExtraNames = map[string]string{"vendor-marker": "Vendor Marker"}

	p.PushBytes([]byte("\n\032\032vendor-marker extra\n"))

	if len(got) != 1 || got[0].Kind != OutputAnnotationEvent {
		t.Fatalf("expected a single annotation event, got %+v", got)
	}
	if got[0].Annotation.Kind != Extension {
		t.Fatalf("expected Extension kind, got %v", got[0].Annotation.Kind)
	}
	if got[0].Annotation.Name != "vendor-marker" {
		t.Fatalf("unexpected name: %q", got[0].Annotation.Name)
	}
}

func TestAnnotationExtraNamesReportAsRecognizedMetric(t *testing.T) {
	m := &fakeMetrics{}
	p := NewParser(func(Output) {})
	p.Metrics = m
	p.ExtraNames = map[string]string{"vendor-marker": "Vendor Marker"}

	p.PushBytes([]byte("\n\032\032vendor-marker\n"))

	if len(m.recognized) != 1 || m.recognized[0] != "vendor-marker" {
		t.Fatalf("expected vendor-marker to count as recognized, got %+v", m.recognized)
	}
	if len(m.unknown) != 0 {
		t.Fatalf("expected no unknown markers, got %+v", m.unknown)
	}
}

func TestAnnotationCarriageReturnsDiscardedEverywhere(t *testing.T) {
	var got []Output
	p := NewParser(func(o Output) { got = append(got, o) })

	p.PushBytes([]byte("A\r\n\r\032\r\032source\r\n\r"))
	p.Flush()

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(got), got)
	}
	if got[0].Kind != OutputConsole || got[0].ConsoleText != "A" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Annotation.Kind != Source {
		t.Fatalf("unexpected annotation: %+v", got[1].Annotation)
	}
}
