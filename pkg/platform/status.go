package platform

import (
	"errors"
	"fmt"
)

// Status is a firmware status code. The zero value is success.
type Status uint64

const errorBit Status = 1 << 63

// Firmware status codes used by the boot menu.
const (
	Success          Status = 0
	LoadErrorStatus         = errorBit | 1
	InvalidParameter        = errorBit | 2
	Unsupported             = errorBit | 3
	DeviceError             = errorBit | 7
	OutOfResources          = errorBit | 9
	NotFound                = errorBit | 14
	Aborted                 = errorBit | 21
	SecurityViolation       = errorBit | 26
)

var statusNames = map[Status]string{
	Success:           "success",
	LoadErrorStatus:   "load error",
	InvalidParameter:  "invalid parameter",
	Unsupported:       "unsupported",
	DeviceError:       "device error",
	OutOfResources:    "out of resources",
	NotFound:          "not found",
	Aborted:           "aborted",
	SecurityViolation: "security violation",
}

// IsError reports whether the status is an error status.
func (s Status) IsError() bool {
	return s&errorBit != 0
}

func (s Status) Error() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	if s.IsError() {
		return fmt.Sprintf("error status %d", uint64(s&^errorBit))
	}
	return fmt.Sprintf("warning status %d", uint64(s))
}

// StatusOf extracts the firmware status carried by err. Errors that do not
// wrap a Status map to LoadErrorStatus.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return LoadErrorStatus
}
