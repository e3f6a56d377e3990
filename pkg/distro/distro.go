// Package distro maps distribution names to where their live images keep the
// kernel and initrd.
package distro

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDistribution is returned by Require for unknown names.
var ErrUnsupportedDistribution = errors.New("distribution not supported")

// Profile describes the boot files of a live distribution image.
type Profile struct {
	Name       string
	KernelPath string
	InitrdPath string
	// BootFolder is the folder of the live image holding the boot files.
	BootFolder string
}

// IsValid reports whether the profile names a supported distribution.
func (p Profile) IsValid() bool {
	return p.KernelPath != "" && p.InitrdPath != ""
}

var (
	debianLive = Profile{
		KernelPath: "/live/vmlinuz",
		InitrdPath: "/live/initrd.img",
		BootFolder: "live",
	}
	casper = Profile{
		KernelPath: "/casper/vmlinuz",
		InitrdPath: "/casper/initrd.lz",
		BootFolder: "casper",
	}

	profiles = map[string]Profile{
		"Debian": debianLive,
		"Ubuntu": casper,
		"Mint":   casper,
	}
)

// Resolve returns the profile for name, matched case-sensitively. Unknown
// names yield a Profile whose paths are empty.
func Resolve(name string) Profile {
	p, ok := profiles[name]
	if !ok {
		return Profile{Name: name}
	}
	p.Name = name
	return p
}

// Paths returns the kernel and initrd paths for name, both empty if the
// distribution is not supported.
func Paths(name string) (kernel, initrd string) {
	p := Resolve(name)
	return p.KernelPath, p.InitrdPath
}

// Require is like Resolve but reports unknown names as an error.
func Require(name string) (Profile, error) {
	p := Resolve(name)
	if !p.IsValid() {
		return p, fmt.Errorf("%w: %q", ErrUnsupportedDistribution, name)
	}
	return p, nil
}

// Supported returns the supported distribution names.
func Supported() []string {
	return []string{"Debian", "Ubuntu", "Mint"}
}
