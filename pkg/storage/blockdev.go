// Package storage looks up where block devices are mounted.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LinuxMountsPath is the standard mountpoint list path
var LinuxMountsPath = "/proc/mounts"

// ErrNotMounted is returned when a device has no mountpoint.
var ErrNotMounted = errors.New("device not mounted")

// GetMountpointByDevice gets the mountpoint by given
// device name. Returns nil and ErrNotMounted if no
// mountpoint was found.
func GetMountpointByDevice(devicePath string) (*string, error) {
	file, err := os.Open(LinuxMountsPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if fields[0] == devicePath {
			mountpoint := unescape(fields[1])
			return &mountpoint, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s", ErrNotMounted, devicePath)
}

// unescape decodes the octal escapes the kernel uses for blanks in paths.
func unescape(path string) string {
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(path)
}
