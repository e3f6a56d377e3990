// Package platformtest provides an in-memory implementation of the platform
// services for tests.
package platformtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ecks/uefi/efi/efiguid"

	"github.com/systemboot/enterprise/pkg/platform"
)

// ErrNoInput is returned by the key reads once all scripted keys are used up.
var ErrNoInput = errors.New("no more scripted keys")

// Segment is a piece of console output with the attribute it was written in.
type Segment struct {
	Attr platform.Attribute
	Text string
}

// Variable is a recorded variable store entry.
type Variable struct {
	Attrs platform.VariableAttributes
	Data  []byte
}

// Fake implements platform.Services in memory. Zero values are usable after
// New; exported fields may be set to inject content and failures.
type Fake struct {
	// Files maps boot volume paths to their content.
	Files map[string][]byte
	// Keys are returned in order by the key reads.
	Keys []platform.Key

	// Failure injection.
	KeyErr     error
	PathErr    error
	LoadErr    error
	StartErr   error
	UnloadErr  error
	SetVarErr  error
	Unreadable map[string]bool

	// Recorded calls.
	Segments   []Segment
	Clears     int
	CursorOn   bool
	Loaded     []*platform.LoadedImage
	Started    []*platform.LoadedImage
	Unloaded   []*platform.LoadedImage
	Variables  map[string]Variable
	Resets     []platform.ResetType
	Stalls     []time.Duration
	KeyResets  int
	nextHandle platform.Handle
	attr       platform.Attribute
}

var _ platform.Services = (*Fake)(nil)

// New returns a Fake with the given boot volume files.
func New(files map[string][]byte) *Fake {
	if files == nil {
		files = map[string][]byte{}
	}
	return &Fake{
		Files:      files,
		Variables:  map[string]Variable{},
		Unreadable: map[string]bool{},
		nextHandle: 0x100,
		attr:       platform.NormalText,
	}
}

// PressKeys appends characters to the scripted key sequence.
func (f *Fake) PressKeys(chars string) {
	for _, c := range chars {
		f.Keys = append(f.Keys, platform.KeyPress(0, 0, uint16(c)))
	}
}

// Output returns everything written to the console.
func (f *Fake) Output() string {
	var sb strings.Builder
	for _, s := range f.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// OutputIn returns everything written to the console in attribute attr.
func (f *Fake) OutputIn(attr platform.Attribute) string {
	var sb strings.Builder
	for _, s := range f.Segments {
		if s.Attr == attr {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func varKey(vendor efiguid.GUID, name string) string {
	return fmt.Sprintf("%v-%s", vendor, name)
}

// Variable returns the recorded variable, if any.
func (f *Fake) Variable(vendor efiguid.GUID, name string) (Variable, bool) {
	v, ok := f.Variables[varKey(vendor, name)]
	return v, ok
}

// Console

func (f *Fake) Write(p []byte) (int, error) {
	f.Segments = append(f.Segments, Segment{Attr: f.attr, Text: string(p)})
	return len(p), nil
}

func (f *Fake) SetAttribute(attr platform.Attribute) error {
	f.attr = attr
	return nil
}

func (f *Fake) ClearScreen() error {
	f.Clears++
	return nil
}

func (f *Fake) EnableCursor(visible bool) error {
	f.CursorOn = visible
	return nil
}

// Keyboard

func (f *Fake) Reset() error {
	f.KeyResets++
	return nil
}

func (f *Fake) WaitForKey() error {
	if f.KeyErr != nil {
		return f.KeyErr
	}
	if len(f.Keys) == 0 {
		return ErrNoInput
	}
	return nil
}

func (f *Fake) ReadKeyStroke() (platform.InputKey, error) {
	if err := f.WaitForKey(); err != nil {
		return platform.InputKey{}, err
	}
	k := f.Keys[0]
	f.Keys = f.Keys[1:]
	return platform.InputKey{ScanCode: k.Scan(), UnicodeChar: uint16(k.Char())}, nil
}

// ExtendedInput returns a view of f that also implements
// platform.ExtendedKeyInput.
func (f *Fake) ExtendedInput() *ExtendedFake {
	return &ExtendedFake{Fake: f}
}

// ExtendedFake adds the extended key path to a Fake.
type ExtendedFake struct {
	*Fake
}

var _ platform.ExtendedKeyInput = (*ExtendedFake)(nil)

func (e *ExtendedFake) WaitForKeyEx() error {
	return e.WaitForKey()
}

func (e *ExtendedFake) ReadKeyStrokeEx() (platform.KeyData, error) {
	if err := e.WaitForKey(); err != nil {
		return platform.KeyData{}, err
	}
	k := e.Keys[0]
	e.Keys = e.Keys[1:]
	return platform.KeyData{
		Key:        platform.InputKey{ScanCode: k.Scan(), UnicodeChar: uint16(k.Char())},
		ShiftState: platform.ShiftStateValid | k.Modifiers(),
	}, nil
}

// File system

type file struct {
	io.Reader
}

func (file) Close() error { return nil }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, platform.DeviceError
}

func (f *Fake) Open(path string) (platform.File, error) {
	data, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, platform.NotFound)
	}
	if f.Unreadable[path] {
		return file{failingReader{}}, nil
	}
	return file{bytes.NewReader(data)}, nil
}

// Images

func (f *Fake) FileDevicePath(device platform.Handle, path string) (platform.DevicePath, error) {
	if f.PathErr != nil {
		return platform.DevicePath{}, f.PathErr
	}
	return platform.DevicePath{Device: device, Path: path}, nil
}

func (f *Fake) LoadImage(parent platform.Handle, path platform.DevicePath) (*platform.LoadedImage, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	if _, ok := f.Files[path.Path]; !ok {
		return nil, platform.NotFound
	}
	f.nextHandle++
	img := &platform.LoadedImage{Handle: f.nextHandle, Path: path}
	f.Loaded = append(f.Loaded, img)
	return img, nil
}

func (f *Fake) StartImage(img *platform.LoadedImage) error {
	f.Started = append(f.Started, img)
	return f.StartErr
}

func (f *Fake) UnloadImage(img *platform.LoadedImage) error {
	f.Unloaded = append(f.Unloaded, img)
	return f.UnloadErr
}

// Variables

func (f *Fake) GetVariable(vendor efiguid.GUID, name string) ([]byte, platform.VariableAttributes, error) {
	v, ok := f.Variables[varKey(vendor, name)]
	if !ok {
		return nil, 0, platform.NotFound
	}
	return v.Data, v.Attrs, nil
}

func (f *Fake) SetVariable(vendor efiguid.GUID, name string, attrs platform.VariableAttributes, data []byte) error {
	if f.SetVarErr != nil {
		return f.SetVarErr
	}
	f.Variables[varKey(vendor, name)] = Variable{Attrs: attrs, Data: append([]byte(nil), data...)}
	return nil
}

// Reset and timing

func (f *Fake) ResetSystem(kind platform.ResetType, _ platform.Status) error {
	f.Resets = append(f.Resets, kind)
	// real firmware does not return here
	return nil
}

func (f *Fake) Stall(d time.Duration) {
	f.Stalls = append(f.Stalls, d)
}

func (f *Fake) ImageHandle() platform.Handle  { return 0x10 }
func (f *Fake) DeviceHandle() platform.Handle { return 0x20 }
