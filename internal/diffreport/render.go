package diffreport

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	rangeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	inlineDeleted = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	inlineAdded   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Underline(true)
)

// Render formats a report for terminal output: each changed section with
// its line ranges and an inline diff, then the unchanged ranges.
func Render(report Report, label string) string {
	var b strings.Builder

	if !report.HasChanges() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s: no differences", label)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headingStyle.Render(fmt.Sprintf("Changes in %s", label)))
	b.WriteString("\n\n")

	for i, sec := range report.Sections {
		b.WriteString(rangeStyle.Render(fmt.Sprintf("--- section %d: current %s, incoming %s",
			i+1, formatRange(sec.Current), formatRange(sec.Incoming))))
		b.WriteString("\n")
		b.WriteString(inlineDiff(sec.Current.Content, sec.Incoming.Content))
		b.WriteString("\n\n")
	}

	if len(report.Unchanged) > 0 {
		var parts []string
		for _, r := range report.Unchanged {
			parts = append(parts, formatRange(r))
		}
		b.WriteString(dimStyle.Render("unchanged: " + strings.Join(parts, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatConflictBlock renders a whole-document two-sided conflict region
// for small files, using the same marker contract as the semantic merger
// but without a base side.
func FormatConflictBlock(current, incoming, label string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<<<<<<< Current (%s)\n", label))
	b.WriteString(current)
	b.WriteString("\n=======\n")
	b.WriteString(incoming)
	b.WriteString(fmt.Sprintf("\n>>>>>>> Incoming (%s)", label))
	return b.String()
}

func formatRange(r Range) string {
	if r.StartLine == 0 {
		return "(none)"
	}
	if r.StartLine == r.EndLine {
		return fmt.Sprintf("line %d", r.StartLine)
	}
	return fmt.Sprintf("lines %d-%d", r.StartLine, r.EndLine)
}

// inlineDiff renders old/new side by side with a character-level diff of
// the changed region for readability.
func inlineDiff(current, incoming string) string {
	var b strings.Builder
	for _, line := range strings.Split(current, "\n") {
		b.WriteString(removedStyle.Render("- " + line))
		b.WriteString("\n")
	}
	for _, line := range strings.Split(incoming, "\n") {
		b.WriteString(addedStyle.Render("+ " + line))
		b.WriteString("\n")
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(current, incoming, false))
	var inline strings.Builder
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\n", "⏎")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			inline.WriteString(inlineDeleted.Render(text))
		case diffmatchpatch.DiffInsert:
			inline.WriteString(inlineAdded.Render(text))
		default:
			inline.WriteString(dimStyle.Render(text))
		}
	}
	b.WriteString("  " + inline.String())
	return b.String()
}
