package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Style decorates the segments of a report line. The plain style returns its
// input untouched so both render modes share one traversal.
type Style interface {
	Heading(s string) string
	ID(s string) string
	Label(s string) string
	Payload(s string) string
	Arrow(s string) string
}

type plainStyle struct{}

func (plainStyle) Heading(s string) string { return s }
func (plainStyle) ID(s string) string      { return s }
func (plainStyle) Label(s string) string   { return s }
func (plainStyle) Payload(s string) string { return s }
func (plainStyle) Arrow(s string) string   { return s }

// ansiStyle forces escape codes on each color so an explicit colorized
// render is not silenced by color.NoColor.
type ansiStyle struct {
	heading *color.Color
	id      *color.Color
	label   *color.Color
	payload *color.Color
	arrow   *color.Color
}

func newANSIStyle() ansiStyle {
	s := ansiStyle{
		heading: color.New(color.FgGreen, color.Bold, color.BgBlack),
		id:      color.New(color.FgMagenta),
		label:   color.New(color.FgGreen, color.BgBlack),
		payload: color.New(color.FgBlue),
		arrow:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{s.heading, s.id, s.label, s.payload, s.arrow} {
		c.EnableColor()
	}
	return s
}

func (s ansiStyle) Heading(v string) string { return s.heading.Sprint(v) }
func (s ansiStyle) ID(v string) string      { return s.id.Sprint(v) }
func (s ansiStyle) Label(v string) string   { return s.label.Sprint(v) }
func (s ansiStyle) Payload(v string) string { return s.payload.Sprint(v) }
func (s ansiStyle) Arrow(v string) string   { return s.arrow.Sprint(v) }

// StyleFor returns the ANSI style when colorized is set and the plain style otherwise.
func StyleFor(colorized bool) Style {
	if colorized {
		return newANSIStyle()
	}
	return plainStyle{}
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// DisableColors turns off color output (for non-TTY or JSON mode)
func DisableColors() {
	color.NoColor = true
}
