package linuxboot

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/systemboot/enterprise/pkg/platform"
)

// Images loads boot programs from the boot volume. Starting one replaces the
// running kernel through kexec.
type Images struct {
	Dir Dir
	// Initrd is the boot volume path of an initramfs passed along with the
	// image, empty for none.
	Initrd string
	Log    *zap.Logger

	loaded map[platform.Handle]*os.File
	next   platform.Handle
}

// NewImages returns an image loader for the volume at dir.
func NewImages(dir Dir, log *zap.Logger) *Images {
	if log == nil {
		log = zap.NewNop()
	}
	return &Images{
		Dir:    dir,
		Log:    log,
		loaded: map[platform.Handle]*os.File{},
		next:   0x1000,
	}
}

func (i *Images) FileDevicePath(device platform.Handle, path string) (platform.DevicePath, error) {
	if !strings.HasPrefix(path, `\`) || len(path) < 2 {
		return platform.DevicePath{}, fmt.Errorf("path %q: %w", path, platform.InvalidParameter)
	}
	return platform.DevicePath{Device: device, Path: path}, nil
}

func (i *Images) LoadImage(parent platform.Handle, path platform.DevicePath) (*platform.LoadedImage, error) {
	f, err := os.Open(i.Dir.HostPath(path.Path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", path.Path, statusOf(err), err)
	}
	i.next++
	i.loaded[i.next] = f
	i.Log.Debug("image loaded", zap.String("path", path.Path), zap.String("file", f.Name()))
	return &platform.LoadedImage{Handle: i.next, Path: path}, nil
}

func (i *Images) UnloadImage(image *platform.LoadedImage) error {
	f, ok := i.loaded[image.Handle]
	if !ok {
		return platform.InvalidParameter
	}
	delete(i.loaded, image.Handle)
	return f.Close()
}

// DecodeLoadOptions turns NUL terminated UTF-16LE load options back into a
// string.
func DecodeLoadOptions(options []byte) (string, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(options)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(out, 0); i >= 0 {
		out = out[:i]
	}
	return string(out), nil
}
