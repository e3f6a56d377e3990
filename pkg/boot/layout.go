package boot

import (
	"errors"
	"fmt"

	"github.com/systemboot/enterprise/pkg/platform"
)

// ErrMissingFile is returned when a required file is not on the boot volume.
var ErrMissingFile = errors.New("required file missing")

// Default boot volume paths.
const (
	// MarkerPath gates the menu and holds the configuration.
	MarkerPath = `\efi\boot\.MLUL-Live-USB`
	// LoaderPath is the next stage loader.
	LoaderPath = `\efi\boot\boot.efi`
	// PayloadPath is the distribution image.
	PayloadPath = `\efi\boot\boot.iso`
)

// Layout is where the boot menu expects its files on the boot volume.
type Layout struct {
	Marker  string
	Loader  string
	Payload string
	// RequirePayload makes a missing payload fatal. Otherwise it is only
	// reported and the loader is left to deal with it.
	RequirePayload bool
}

// DefaultLayout returns the standard layout.
func DefaultLayout() Layout {
	return Layout{
		Marker:         MarkerPath,
		Loader:         LoaderPath,
		Payload:        PayloadPath,
		RequirePayload: true,
	}
}

// MissingFileError tells which required file is absent and what to tell the
// operator about it.
type MissingFileError struct {
	Path    string
	Message string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingFile, e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return ErrMissingFile
}

// Check verifies the files of the layout exist on fs. The first missing
// required file is returned as a *MissingFileError; a missing optional
// payload is returned as the warning.
func (l Layout) Check(fs platform.FileSystem) (warning string, err error) {
	if !platform.FileExists(fs, l.Marker) {
		return "", &MissingFileError{Path: l.Marker, Message: "Error: can't find configuration file."}
	}
	if !platform.FileExists(fs, l.Loader) {
		return "", &MissingFileError{Path: l.Loader, Message: "Error: can't find GRUB bootloader!"}
	}
	if !platform.FileExists(fs, l.Payload) {
		msg := "Error: can't find ISO file to boot!\nIt should be located under /efi/boot/ on this device."
		if l.RequirePayload {
			return "", &MissingFileError{Path: l.Payload, Message: msg}
		}
		return msg, nil
	}
	return "", nil
}
