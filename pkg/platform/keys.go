package platform

import (
	"errors"
	"fmt"
)

// ErrKeyRead is returned when the keyboard cannot be read.
var ErrKeyRead = errors.New("could not read from keyboard")

// Shift state bits reported by the extended input protocol.
const (
	ShiftStateValid     uint32 = 0x80000000
	RightControlPressed uint32 = 0x00000004
	LeftControlPressed  uint32 = 0x00000008
	RightAltPressed     uint32 = 0x00000010
	LeftAltPressed      uint32 = 0x00000020

	ControlPressed = RightControlPressed | LeftControlPressed
	AltPressed     = RightAltPressed | LeftAltPressed
)

// Scan codes for non-printable keys.
const (
	ScanNull   uint16 = 0x00
	ScanUp     uint16 = 0x01
	ScanDown   uint16 = 0x02
	ScanRight  uint16 = 0x03
	ScanLeft   uint16 = 0x04
	ScanEscape uint16 = 0x17
)

// Key packs a keystroke as 32 bit modifiers, 16 bit scan code and 16 bit
// character.
type Key uint64

// KeyPress builds a Key.
func KeyPress(modifiers uint32, scan, char uint16) Key {
	return Key(uint64(modifiers)<<32 | uint64(scan)<<16 | uint64(char))
}

// Char returns the character of the key, 0 for non-printable keys.
func (k Key) Char() rune {
	return rune(k & 0xffff)
}

// Scan returns the scan code of the key.
func (k Key) Scan() uint16 {
	return uint16(k >> 16)
}

// Modifiers returns the folded modifier bits of the key.
func (k Key) Modifiers() uint32 {
	return uint32(k >> 32)
}

func (k Key) String() string {
	if c := k.Char(); c >= 0x20 && c < 0x7f {
		return fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("scan=%#x mod=%#x", k.Scan(), k.Modifiers())
}

// ReadKey blocks until a key is pressed and returns it. The extended input
// path is used when the keyboard supports it; the plain path is the fallback,
// also when the extended read yields nothing, since some firmware offers the
// extended protocol but never delivers keys through it.
func ReadKey(in KeyInput) (Key, error) {
	ex, hasEx := in.(ExtendedKeyInput)

	var err error
	if hasEx {
		err = ex.WaitForKeyEx()
	} else {
		err = in.WaitForKey()
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrKeyRead, err)
	}

	if hasEx {
		data, err := ex.ReadKeyStrokeEx()
		if err == nil {
			// left and right modifiers are not distinguished
			var shift uint32
			if data.ShiftState&ShiftStateValid != 0 {
				if data.ShiftState&ControlPressed != 0 {
					shift |= ControlPressed
				}
				if data.ShiftState&AltPressed != 0 {
					shift |= AltPressed
				}
			}
			if k := KeyPress(shift, data.Key.ScanCode, data.Key.UnicodeChar); k > 0 {
				return k, nil
			}
		}
	}

	k, err := in.ReadKeyStroke()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrKeyRead, err)
	}
	return KeyPress(0, k.ScanCode, k.UnicodeChar), nil
}
