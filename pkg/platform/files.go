package platform

import (
	"io"
)

// ReadFile reads the whole file at path from the boot volume.
func ReadFile(fs FileSystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// FileExists reports whether path can be opened on the boot volume.
func FileExists(fs FileSystem, path string) bool {
	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
