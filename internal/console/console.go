// Package console prints user-facing status lines, colorized when STDOUT is
// a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Printer writes status lines to a single destination.
type Printer struct {
	out   io.Writer
	color bool
}

// New returns a Printer writing to STDOUT, with color enabled only when
// STDOUT is a terminal.
func New() *Printer {
	return &Printer{
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewWriter returns a Printer writing uncolored lines to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{out: w}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(infoStyle, fmt.Sprintf(format, args...)))
}

// Warnf prints a non-fatal anomaly.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(warnStyle, "WARN: "+fmt.Sprintf(format, args...)))
}

// Errorf prints a failure line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(errorStyle, "ERROR: "+fmt.Sprintf(format, args...)))
}
