package linuxboot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/systemboot/enterprise/pkg/platform"
)

// Dir is a boot volume mounted at a directory.
type Dir string

// HostPath maps a boot volume path such as `\efi\boot\boot.efi` to a path
// below d. The result never leaves d.
func (d Dir) HostPath(path string) string {
	slashed := strings.ReplaceAll(path, `\`, "/")
	return filepath.Join(string(d), filepath.FromSlash(filepath.Clean("/"+slashed)))
}

func (d Dir) Open(path string) (platform.File, error) {
	f, err := os.Open(d.HostPath(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, statusOf(err), err)
	}
	return f, nil
}

func statusOf(err error) platform.Status {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return platform.NotFound
	case errors.Is(err, fs.ErrPermission):
		return platform.SecurityViolation
	}
	return platform.DeviceError
}
