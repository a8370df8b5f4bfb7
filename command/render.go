/*
 * ChatCLI - Command Line Interface for LLM interaction
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

// RenderBreakInfo formats a BreakInfo as a Markdown table of its
// breakpoints, suitable for a terminal front end. Multi-location
// children are rendered as indented rows (number prefixed with "↳")
// directly under their parent, rather than a separate table.
func RenderBreakInfo(info BreakInfo) string {
	var b strings.Builder
	b.WriteString("| number | enabled | disp | address |\n")
	b.WriteString("|---|---|---|---|\n")

	for _, bp := range info.Roots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			bp.Number, enabledMark(bp.Enabled), bp.Disposition, addressText(bp))
		for _, child := range bp.Children {
			fmt.Fprintf(&b, "| ↳ %s | %s | %s | %s |\n",
				child.Number, enabledMark(child.Enabled), child.Disposition, addressText(child))
		}
	}

	return renderMarkdown(b.String())
}

func enabledMark(enabled bool) string {
	if enabled {
		return "y"
	}
	return "n"
}

func addressText(bp *Breakpoint) string {
	switch {
	case bp.Multi:
		return "<MULTIPLE>"
	case bp.Pending:
		return "<PENDING>"
	case bp.HasAddress:
		return bp.Address
	default:
		return ""
	}
}

// RenderSourceFiles formats the given source list as a Markdown table,
// padding the File column to the widest display width present so a
// monospace terminal lines the Fullname column up evenly even when
// filenames contain wide runes.
func RenderSourceFiles(files SourceFiles) string {
	width := 0
	for _, f := range files.Files {
		if w := runewidth.StringWidth(f.File); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString("| file | fullname |\n")
	b.WriteString("|---|---|\n")
	for _, f := range files.Files {
		fullname := ""
		if f.HasFullname {
			fullname = f.Fullname
		}
		fmt.Fprintf(&b, "| %s | %s |\n", runewidth.FillRight(f.File, width), fullname)
	}

	return renderMarkdown(b.String())
}

func renderMarkdown(input string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return input
	}
	out, err := renderer.Render(input)
	if err != nil {
		return input
	}
	return out
}
