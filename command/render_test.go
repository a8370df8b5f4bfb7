package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBreakInfoIncludesChildRows(t *testing.T) {
	root := &Breakpoint{Number: "1", Enabled: true, Disposition: DispositionKeep, Multi: true}
	child := &Breakpoint{Number: "1.1", Enabled: true, Disposition: DispositionKeep, HasAddress: true, Address: "0x1000", Parent: root, FromMulti: true}
	root.Children = []*Breakpoint{child}

	out := RenderBreakInfo(BreakInfo{Roots: []*Breakpoint{root}})
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "1.1")
	assert.Contains(t, out, "0x1000")
}

func TestRenderBreakInfoPendingAndMultipleAddresses(t *testing.T) {
	pending := &Breakpoint{Number: "2", Enabled: false, Disposition: DispositionDisable, Pending: true}
	multi := &Breakpoint{Number: "3", Enabled: true, Disposition: DispositionKeep, Multi: true}
	out := RenderBreakInfo(BreakInfo{Roots: []*Breakpoint{pending, multi}})
	assert.Contains(t, out, "<PENDING>")
	assert.Contains(t, out, "<MULTIPLE>")
}

func TestRenderSourceFilesListsEveryFile(t *testing.T) {
	files := SourceFiles{Files: []SourceFileEntry{
		{File: "a.c", Fullname: "/src/a.c", HasFullname: true},
		{File: "longer_name.c"},
	}}
	out := RenderSourceFiles(files)
	assert.True(t, strings.Contains(out, "a.c") && strings.Contains(out, "longer_name.c"))
}
