// Package platform describes the firmware services the boot menu depends on.
// The menu, parser and chainloader only ever talk to these interfaces; an
// adapter (see linuxboot) or a test fake (see platformtest) implements them.
package platform

import (
	"io"
	"time"

	"github.com/ecks/uefi/efi/efiguid"
)

// Handle is an opaque firmware handle (image handle, device handle).
type Handle uintptr

// DevicePath is a file path resolved against a device. It is what the image
// loader consumes.
type DevicePath struct {
	Device Handle
	Path   string
}

// Attribute is a console text attribute (foreground | background).
type Attribute uint8

// Console colors, using the firmware's numbering.
const (
	Black     Attribute = 0x00
	Blue      Attribute = 0x01
	Green     Attribute = 0x02
	Cyan      Attribute = 0x03
	Red       Attribute = 0x04
	Magenta   Attribute = 0x05
	Brown     Attribute = 0x06
	LightGray Attribute = 0x07
	DarkGray  Attribute = 0x08
	Yellow    Attribute = 0x0e
	White     Attribute = 0x0f

	BackgroundBlack Attribute = 0x00
)

// Foreground returns the foreground part of the attribute.
func (a Attribute) Foreground() Attribute {
	return a & 0x0f
}

// Console is the text output device.
type Console interface {
	io.Writer
	SetAttribute(attr Attribute) error
	ClearScreen() error
	EnableCursor(visible bool) error
}

// InputKey is a plain keystroke as reported by the simple input protocol.
type InputKey struct {
	ScanCode    uint16
	UnicodeChar uint16
}

// KeyData is a keystroke as reported by the extended input protocol.
type KeyData struct {
	Key         InputKey
	ShiftState  uint32
	ToggleState uint8
}

// KeyInput is the plain keyboard device.
type KeyInput interface {
	// Reset clears any pending keystrokes.
	Reset() error
	// WaitForKey blocks until a keystroke is available.
	WaitForKey() error
	ReadKeyStroke() (InputKey, error)
}

// ExtendedKeyInput is implemented by keyboards that report modifier state.
type ExtendedKeyInput interface {
	KeyInput
	WaitForKeyEx() error
	ReadKeyStrokeEx() (KeyData, error)
}

// File is an open file on the boot volume.
type File interface {
	io.ReadCloser
}

// FileSystem gives access to the boot volume's root directory. Paths use
// backslashes, e.g. `\efi\boot\boot.efi`.
type FileSystem interface {
	Open(path string) (File, error)
}

// LoadedImage is the invocation record of an image that was loaded but not
// started yet.
type LoadedImage struct {
	Handle Handle
	Path   DevicePath
	// LoadOptions is the UTF-16LE encoded parameter string including its
	// terminator, LoadOptionsSize its length in bytes.
	LoadOptions     []byte
	LoadOptionsSize uint32
}

// ImageLoader loads and starts other boot programs.
type ImageLoader interface {
	// FileDevicePath resolves path on device.
	FileDevicePath(device Handle, path string) (DevicePath, error)
	// LoadImage loads the image into memory without starting it.
	LoadImage(parent Handle, path DevicePath) (*LoadedImage, error)
	// StartImage transfers control to the image. On real firmware it only
	// returns if the image fails to start or exits.
	StartImage(image *LoadedImage) error
	UnloadImage(image *LoadedImage) error
}

// VariableAttributes are the storage flags of a firmware variable.
type VariableAttributes uint32

// Variable attributes.
const (
	NonVolatile       VariableAttributes = 0x00000001
	BootServiceAccess VariableAttributes = 0x00000002
	RuntimeAccess     VariableAttributes = 0x00000004
)

// VariableStore is the firmware's vendor-namespaced persistent storage.
type VariableStore interface {
	GetVariable(vendor efiguid.GUID, name string) ([]byte, VariableAttributes, error)
	SetVariable(vendor efiguid.GUID, name string, attrs VariableAttributes, data []byte) error
}

// ResetType selects how the machine is reset.
type ResetType int

// Reset types.
const (
	ResetCold ResetType = iota
	ResetWarm
	ResetShutdown
)

// Resetter resets the machine. It does not return on success.
type Resetter interface {
	ResetSystem(kind ResetType, status Status) error
}

// Staller blocks for a fixed time.
type Staller interface {
	Stall(d time.Duration)
}

// Services is everything the boot menu needs from the firmware.
type Services interface {
	Console
	KeyInput
	FileSystem
	ImageLoader
	VariableStore
	Resetter
	Staller

	// ImageHandle is the handle of the running boot menu.
	ImageHandle() Handle
	// DeviceHandle is the device the boot menu was loaded from.
	DeviceHandle() Handle
}
