package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Status writes the color coded console lines operators watch while a
// provisioning run is in progress. Log records go through logrus separately.
type Status struct {
	out     io.Writer
	success *color.Color
	notice  *color.Color
	failure *color.Color
	info    *color.Color
}

// NewStatus returns a Status writing to out. A nil out writes to color.Output.
func NewStatus(out io.Writer) *Status {
	if out == nil {
		out = color.Output
	}
	return &Status{
		out:     out,
		success: color.New(color.FgGreen),
		notice:  color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
	}
}

func (s *Status) Success(format string, args ...interface{}) {
	s.line(s.success, format, args...)
}

func (s *Status) Notice(format string, args ...interface{}) {
	s.line(s.notice, format, args...)
}

func (s *Status) Failure(format string, args ...interface{}) {
	s.line(s.failure, format, args...)
}

func (s *Status) Info(format string, args ...interface{}) {
	s.line(s.info, format, args...)
}

// Plain writes an uncolored line.
func (s *Status) Plain(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Status) line(c *color.Color, format string, args ...interface{}) {
	c.Fprintf(s.out, format+"\n", args...)
}
