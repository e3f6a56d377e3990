package linuxboot

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/systemboot/enterprise/pkg/platform"
)

const (
	esc    = 0x1b
	escSeq = '['
)

var arrows = map[byte]uint16{
	'A': platform.ScanUp,
	'B': platform.ScanDown,
	'C': platform.ScanRight,
	'D': platform.ScanLeft,
}

// Keyboard decodes terminal input into keystrokes. It implements
// platform.ExtendedKeyInput: control characters are reported with the
// control modifier and ESC-prefixed characters with the alt modifier.
type Keyboard struct {
	r *bufio.Reader

	fd    int
	state *term.State
}

// NewKeyboard reads keystrokes from r.
func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{r: bufio.NewReader(r), fd: -1}
}

// OpenTerminal puts f in raw mode, if it is a terminal, and reads keystrokes
// from it. Close restores the terminal.
func OpenTerminal(f *os.File) (*Keyboard, error) {
	k := NewKeyboard(f)
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return k, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	k.fd, k.state = fd, state
	return k, nil
}

// Raw reports whether the keyboard put a terminal in raw mode.
func (k *Keyboard) Raw() bool {
	return k.state != nil
}

// Close restores the terminal.
func (k *Keyboard) Close() error {
	if k.state == nil {
		return nil
	}
	err := term.Restore(k.fd, k.state)
	k.state = nil
	return err
}

// Reset drops buffered input.
func (k *Keyboard) Reset() error {
	_, err := k.r.Discard(k.r.Buffered())
	return err
}

func (k *Keyboard) WaitForKey() error {
	_, err := k.r.Peek(1)
	return err
}

func (k *Keyboard) WaitForKeyEx() error {
	return k.WaitForKey()
}

func (k *Keyboard) ReadKeyStroke() (platform.InputKey, error) {
	data, err := k.ReadKeyStrokeEx()
	if err != nil {
		return platform.InputKey{}, err
	}
	key := data.Key
	if data.ShiftState&platform.ControlPressed != 0 && key.UnicodeChar >= 'a' && key.UnicodeChar <= 'z' {
		key.UnicodeChar = key.UnicodeChar - 'a' + 1
	}
	return key, nil
}

func (k *Keyboard) ReadKeyStrokeEx() (platform.KeyData, error) {
	c, err := k.r.ReadByte()
	if err != nil {
		return platform.KeyData{}, err
	}
	switch {
	case c == esc:
		return k.readEscape()
	case c >= 0x01 && c <= 0x1a && c != '\t' && c != '\n' && c != '\r' && c != '\b':
		return keyData(platform.LeftControlPressed, 0, uint16('a'+c-1)), nil
	}
	_ = k.r.UnreadByte()
	r, _, err := k.r.ReadRune()
	if err != nil {
		return platform.KeyData{}, err
	}
	// keys carry a single UTF-16 code unit
	if r > 0xffff {
		r = utf8.RuneError
	}
	return keyData(0, 0, uint16(r)), nil
}

func (k *Keyboard) readEscape() (platform.KeyData, error) {
	// a lone escape has nothing queued behind it
	if k.r.Buffered() == 0 {
		return keyData(0, platform.ScanEscape, 0), nil
	}
	next, err := k.r.ReadByte()
	if err != nil {
		return platform.KeyData{}, err
	}
	if next == escSeq && k.r.Buffered() > 0 {
		final, err := k.r.ReadByte()
		if err != nil {
			return platform.KeyData{}, err
		}
		if scan, ok := arrows[final]; ok {
			return keyData(0, scan, 0), nil
		}
		return keyData(0, platform.ScanNull, 0), nil
	}
	return keyData(platform.LeftAltPressed, 0, uint16(next)), nil
}

func keyData(shift uint32, scan, char uint16) platform.KeyData {
	return platform.KeyData{
		Key:        platform.InputKey{ScanCode: scan, UnicodeChar: char},
		ShiftState: platform.ShiftStateValid | shift,
	}
}
