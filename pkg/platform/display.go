package platform

import (
	"fmt"
	"io"
)

// Text attributes used by the boot menu.
const (
	NormalText    = LightGray | BackgroundBlack
	HighlightText = Yellow | BackgroundBlack
	ErrorText     = Red | BackgroundBlack
)

// Print writes s in the normal attribute.
func Print(c Console, s string) {
	_, _ = io.WriteString(c, s)
}

// Printf formats according to a format specifier and writes to the console.
func Printf(c Console, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c, format, args...)
}

// DisplayColoredText writes s highlighted and restores the normal attribute.
func DisplayColoredText(c Console, s string) {
	displayWith(c, HighlightText, s)
}

// DisplayErrorText writes s in the error color and restores the normal
// attribute.
func DisplayErrorText(c Console, s string) {
	displayWith(c, ErrorText, s)
}

func displayWith(c Console, attr Attribute, s string) {
	_ = c.SetAttribute(attr)
	Print(c, s)
	_ = c.SetAttribute(NormalText)
}
