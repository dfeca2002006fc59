// Package console writes user-facing output: status lines, JSON documents
// and interactive prompts.
//
// Styling is applied only when the output is a terminal and NO_COLOR is
// not set.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/dshills/playground/internal/config"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))
)

// Printer writes messages to an output and an error stream.
// It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	color  bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithColor forces styling on or off.
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.color = enabled
	}
}

// NewPrinter creates a printer. Styling defaults to on when out is a
// terminal.
func NewPrinter(out, errOut io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		color:  IsTerminal(out),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether styled output should be written to w.
// noColor reflects the NO_COLOR convention.
func ColorEnabled(w io.Writer, noColor bool) bool {
	return !noColor && IsTerminal(w)
}

// Status prints a step message.
func (p *Printer) Status(msg string) {
	p.println(p.out, statusStyle, msg)
}

// Detail prints an indented item message.
func (p *Printer) Detail(msg string) {
	p.println(p.out, detailStyle, "\t"+msg)
}

// Success prints the outcome of a command.
func (p *Printer) Success(msg string) {
	p.println(p.out, successStyle, msg)
}

// Error prints a failure message to the error stream.
func (p *Printer) Error(msg string) {
	p.println(p.errOut, errorStyle, msg)
}

// Println prints an unstyled line.
func (p *Printer) Println(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, msg)
}

// Lines prints each line unstyled.
func (p *Printer) Lines(lines []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

// JSON prints v as indented JSON with sorted keys, syntax-highlighted
// when styling is on.
func (p *Printer) JSON(v any) error {
	data, err := config.Marshal(v)
	if err != nil {
		return err
	}
	if p.color {
		data = pretty.Color(data, nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.out.Write(data)
	return err
}

func (p *Printer) println(w io.Writer, style lipgloss.Style, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.color {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
