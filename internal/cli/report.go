package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"domain-migrator/internal/diagnostic"
	"domain-migrator/internal/migrate"
)

// reporter renders user-facing messages. Colors are only used when w is a
// terminal and color is not disabled.
type reporter struct {
	w       io.Writer
	warning lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	detail  lipgloss.Style
}

func newReporter(w io.Writer, noColor bool) *reporter {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &reporter{
		w:       w,
		warning: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		detail:  r.NewStyle().Faint(true),
	}
}

// Diagnostic prints one record, labelled by its severity.
func (r *reporter) Diagnostic(d diagnostic.Diagnostic) {
	msg := d.Message
	if d.File != "" {
		msg += " " + r.detail.Render("("+d.File+")")
	}

	label := r.info.Render("Note:")
	if d.Severity == diagnostic.SeverityWarning {
		label = r.warning.Render("Warning:")
	}

	fmt.Fprintf(r.w, "%s %s\n", label, msg)
}

func (r *reporter) Success(res *migrate.Result) {
	fmt.Fprintf(r.w, "%s Your domain '%s' was successfully migrated!\n", r.success.Render("Done:"), res.DomainPath)
	fmt.Fprintf(r.w, "  The migrated version is now '%s'.\n", res.OutPath)
	fmt.Fprintf(r.w, "  The original domain is backed up at '%s'.\n", res.BackupPath)
}

func (r *reporter) Error(err error) {
	fmt.Fprintf(r.w, "%s %v\n", r.failure.Render("Error:"), err)
}
