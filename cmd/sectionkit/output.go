package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/diff"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/validation"
)

// styles renders for one writer so colour is only emitted to terminals.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	danger  lipgloss.Style
	warning lipgloss.Style
	faint   lipgloss.Style
	add     lipgloss.Style
	remove  lipgloss.Style
	hunk    lipgloss.Style
	column  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Bold(true),
		danger:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "221"}),
		faint:   r.NewStyle().Faint(true),
		add:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}),
		remove:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}),
		hunk:    r.NewStyle().Foreground(lipgloss.Color("#3D6DFF")),
		column:  r.NewStyle().Width(12),
	}
}

func (s styles) printReport(w io.Writer, name string, result validation.SchemaValidationResult) {
	status := s.success.Render("valid")
	if !result.Valid {
		status = s.danger.Render("invalid")
	}
	fmt.Fprintf(w, "%s: %s\n", s.title.Render(name), status)
	for _, issue := range result.Errors {
		s.printIssue(w, s.danger.Render("error"), issue)
	}
	for _, issue := range result.Warnings {
		s.printIssue(w, s.warning.Render("warning"), issue)
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
}

func (s styles) printIssue(w io.Writer, label string, issue validation.Issue) {
	location := ""
	if issue.Line > 0 {
		location = fmt.Sprintf(" (line %d)", issue.Line)
	}
	fmt.Fprintf(w, "  %s [%s] %s%s\n", label, issue.RuleID, issue.Message, location)
	if issue.Suggestion != "" {
		fmt.Fprintf(w, "    %s\n", s.faint.Render(issue.Suggestion))
	}
}

func (s styles) printDiff(w io.Writer, result diff.Result) {
	if !result.HasDiff {
		fmt.Fprintln(w, s.faint.Render("No changes"))
		return
	}
	for _, hunk := range result.Hunks {
		fmt.Fprintln(w, s.hunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)))
		for _, line := range hunk.Lines {
			switch line.Type {
			case diff.LineAdd:
				fmt.Fprintln(w, s.add.Render("+"+line.Content))
			case diff.LineRemove:
				fmt.Fprintln(w, s.remove.Render("-"+line.Content))
			default:
				fmt.Fprintln(w, " "+line.Content)
			}
		}
	}
	fmt.Fprintf(w, "%s, %s\n",
		s.add.Render(fmt.Sprintf("%d addition(s)", result.Stats.Additions)),
		s.remove.Render(fmt.Sprintf("%d deletion(s)", result.Stats.Deletions)))
}

func (s styles) printFonts(w io.Writer, options []fonts.Option) {
	for _, opt := range options {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			s.column.Render(opt.Value),
			s.column.Width(18).Render(opt.Label),
			s.faint.Render(opt.Stack)))
	}
}

func (s styles) printPresets(w io.Writer, presets []mockdata.Preset) {
	for _, p := range presets {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			s.column.Width(24).Render(p.ID),
			s.column.Render(string(p.Category)),
			p.Description))
	}
}
