package booter

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/systemboot/enterprise/pkg/efivar"
	"github.com/systemboot/enterprise/pkg/platform"
)

// DefaultErrorDelay is how long a start failure stays on screen.
const DefaultErrorDelay = 3 * time.Second

// ErrInvalidPath is returned when the target path cannot be resolved on its
// device.
var ErrInvalidPath = errors.New("invalid device path")

// LoadError is returned when the firmware refuses to load the image.
type LoadError struct {
	Path   string
	Status platform.Status
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Status)
}

func (e *LoadError) Unwrap() error {
	return e.Status
}

// StartError is returned when the loaded image cannot be started.
type StartError struct {
	Path   string
	Status platform.Status
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cannot start image %s: %v", e.Path, e.Status)
}

func (e *StartError) Unwrap() error {
	return e.Status
}

// Target is a program to hand control to.
type Target struct {
	Device platform.Handle
	Path   string
	// Params is the parameter string passed to the program, may be empty.
	Params string
}

// Platform is the part of the firmware the chainloader uses.
type Platform interface {
	platform.ImageLoader
	platform.VariableStore
	platform.Staller
	ImageHandle() platform.Handle
}

// Chainloader loads programs from the boot volume and starts them.
type Chainloader struct {
	Platform   Platform
	Log        *zap.Logger
	ErrorDelay time.Duration
}

// NewChainloader returns a Chainloader with the default error delay.
func NewChainloader(p Platform, log *zap.Logger) *Chainloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chainloader{Platform: p, Log: log, ErrorDelay: DefaultErrorDelay}
}

// EncodeLoadOptions encodes params as a NUL terminated UTF-16LE string, the
// form images expect in their load options.
func EncodeLoadOptions(params string) ([]byte, error) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := encoder.Bytes([]byte(params))
	if err != nil {
		return nil, err
	}
	return append(out, 0, 0), nil
}

var encodeLoadOptions = EncodeLoadOptions

// Chainload loads the target and starts it. If the image starts, control
// normally never comes back; a nil return means the image ran and exited.
//
// The parameter string is handed over twice: in the image's load options
// (only when non-empty) and in the Enterprise-LinuxBootOptions variable, as
// some loaders only read one of them.
func (c *Chainloader) Chainload(t Target) error {
	log := c.Log.With(zap.String("path", t.Path), zap.String("params", t.Params))

	devicePath, err := c.Platform.FileDevicePath(t.Device, t.Path)
	if err != nil {
		log.Error("cannot resolve path", zap.Error(err))
		return fmt.Errorf("%w %s: %w", ErrInvalidPath, t.Path, err)
	}

	image, err := c.Platform.LoadImage(c.Platform.ImageHandle(), devicePath)
	if err != nil {
		log.Error("cannot load image", zap.Error(err))
		return &LoadError{Path: t.Path, Status: platform.StatusOf(err)}
	}

	if t.Params != "" {
		options, err := encodeLoadOptions(t.Params)
		if err != nil {
			log.Error("cannot encode parameters", zap.Error(err))
			if uerr := c.Platform.UnloadImage(image); uerr != nil {
				log.Warn("cannot unload image", zap.Error(uerr))
			}
			return fmt.Errorf("cannot encode parameters %q: %w", t.Params, err)
		}
		image.LoadOptions = options
		image.LoadOptionsSize = uint32(len(options))
	}

	if err := efivar.Set(c.Platform, efivar.BootOptionsName, t.Params); err != nil {
		// the load options still carry the parameters
		log.Warn("cannot persist boot options", zap.Error(err))
	}

	log.Info("starting image")
	if err := c.Platform.StartImage(image); err != nil {
		log.Error("cannot start image", zap.Error(err))
		if uerr := c.Platform.UnloadImage(image); uerr != nil {
			log.Warn("cannot unload image", zap.Error(uerr))
		}
		c.Platform.Stall(c.ErrorDelay)
		return &StartError{Path: t.Path, Status: platform.StatusOf(err)}
	}

	log.Warn("image returned")
	return nil
}
