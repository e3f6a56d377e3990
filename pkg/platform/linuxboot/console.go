package linuxboot

import (
	"bytes"
	"io"

	"github.com/fatih/color"

	"github.com/systemboot/enterprise/pkg/platform"
)

var foreground = map[platform.Attribute]color.Attribute{
	platform.Black:     color.FgBlack,
	platform.Blue:      color.FgBlue,
	platform.Green:     color.FgGreen,
	platform.Cyan:      color.FgCyan,
	platform.Red:       color.FgRed,
	platform.Magenta:   color.FgMagenta,
	platform.Brown:     color.FgYellow,
	platform.LightGray: color.FgWhite,
	platform.DarkGray:  color.FgHiBlack,
	platform.Yellow:    color.FgHiYellow,
	platform.White:     color.FgHiWhite,
}

// Console is a terminal driven with ANSI escape sequences.
type Console struct {
	w io.Writer
	// CRLF translates line feeds for terminals in raw mode.
	CRLF    bool
	current *color.Color
}

// NewConsole returns a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	if !c.CRLF {
		return c.w.Write(p)
	}
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetAttribute switches the foreground color. Unknown colors fall back to
// the terminal default.
func (c *Console) SetAttribute(attr platform.Attribute) error {
	if c.current != nil {
		c.current.UnsetWriter(c.w)
		c.current = nil
	}
	fg, ok := foreground[attr.Foreground()]
	if !ok {
		return nil
	}
	c.current = color.New(fg)
	c.current.SetWriter(c.w)
	return nil
}

func (c *Console) ClearScreen() error {
	_, err := io.WriteString(c.w, "\x1b[2J\x1b[H")
	return err
}

func (c *Console) EnableCursor(visible bool) error {
	seq := "\x1b[?25l"
	if visible {
		seq = "\x1b[?25h"
	}
	_, err := io.WriteString(c.w, seq)
	return err
}
