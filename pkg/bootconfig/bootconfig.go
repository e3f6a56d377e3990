// Package bootconfig reads the boot menu's configuration file: plain text,
// one `key value` pair per line, `#` comments.
package bootconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systemboot/enterprise/pkg/platform"
)

// ErrConfigRead is returned when the configuration file exists but cannot be
// read or is empty.
var ErrConfigRead = errors.New("cannot read configuration file")

// Recognized keys.
const (
	KeyFamily    = "family"
	KeyKernel    = "kernel"
	KeyInitrd    = "initrd"
	KeyInitramfs = "initramfs" // alias of KeyInitrd
	KeyRoot      = "root"
)

// KnownKeys lists every key the boot menu understands.
var KnownKeys = []string{KeyFamily, KeyKernel, KeyInitrd, KeyInitramfs, KeyRoot}

// BootConfig is what the boot menu takes from its configuration file.
// Fields are empty when the corresponding key is absent; later lines win.
type BootConfig struct {
	// Family is the distribution name, e.g. "Ubuntu".
	Family string
	// Kernel overrides the distribution's kernel path.
	Kernel string
	// KernelArgs are the words following the kernel path.
	KernelArgs string
	// Initrd overrides the distribution's initrd path.
	Initrd string
	// Root names the device the next stage should use as its root.
	Root string
}

// IsEmpty reports whether no recognized key was found.
func (bc BootConfig) IsEmpty() bool {
	return bc == BootConfig{}
}

// FromEntries builds a BootConfig from parsed entries. Unknown keys are
// ignored.
func FromEntries(entries []Entry) BootConfig {
	var bc BootConfig
	for _, e := range entries {
		switch e.Key {
		case KeyFamily:
			bc.Family = e.Value
		case KeyKernel:
			fields := strings.FieldsFunc(e.Value, isWhitespace)
			if len(fields) == 0 {
				continue
			}
			bc.Kernel = fields[0]
			bc.KernelArgs = strings.Join(fields[1:], " ")
		case KeyInitrd, KeyInitramfs:
			bc.Initrd = e.Value
		case KeyRoot:
			bc.Root = e.Value
		}
	}
	return bc
}

// NewBootConfig parses configuration file content.
func NewBootConfig(data []byte) BootConfig {
	return FromEntries(Parse(data))
}

// Read reads and parses the configuration file at path. A missing, unreadable
// or empty file yields an empty BootConfig and an error wrapping
// ErrConfigRead; callers treat that as "no configuration".
func Read(fs platform.FileSystem, path string) (BootConfig, error) {
	data, err := platform.ReadFile(fs, path)
	if err != nil {
		return BootConfig{}, fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}
	if len(data) == 0 {
		return BootConfig{}, fmt.Errorf("%w %s: file is empty", ErrConfigRead, path)
	}
	return NewBootConfig(data), nil
}
