package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Output writes command results. Results go out verbatim so they can be piped;
// notices are decorated only when styled.
type Output struct {
	out    io.Writer
	styled bool
}

// NewOutput creates an Output on out. styled enables colors and symbols.
func NewOutput(out io.Writer, styled bool) *Output {
	if out == nil {
		panic("out cannot be nil")
	}
	return &Output{out: out, styled: styled}
}

// Result prints one result line, undecorated.
func (o *Output) Result(line string) {
	fmt.Fprintln(o.out, line)
}

// Results prints each line with a bullet when styled, plain otherwise.
func (o *Output) Results(lines []string) {
	for _, line := range lines {
		if o.styled {
			fmt.Fprintf(o.out, "%s %s\n", MutedStyle.Render(SymbolBullet), line)
			continue
		}
		fmt.Fprintln(o.out, line)
	}
}

// Heading prints a section title.
func (o *Output) Heading(format string, args ...any) {
	o.line(TitleStyle, "", format, args...)
}

// Success prints a completion notice.
func (o *Output) Success(format string, args ...any) {
	o.line(SuccessStyle, SymbolCheck, format, args...)
}

// Notice prints a soft "nothing found" message.
func (o *Output) Notice(format string, args ...any) {
	o.line(MutedStyle, "", format, args...)
}

// Warning prints a warning.
func (o *Output) Warning(format string, args ...any) {
	o.line(WarningStyle, SymbolWarn, format, args...)
}

func (o *Output) line(style lipgloss.Style, symbol, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !o.styled {
		fmt.Fprintln(o.out, msg)
		return
	}
	if symbol != "" {
		msg = symbol + " " + msg
	}
	fmt.Fprintln(o.out, style.Render(msg))
}
