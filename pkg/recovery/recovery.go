// Package recovery handles unrecoverable boot failures: the operator gets to
// read the error, then the machine is reset or control is handed back.
package recovery

import (
	"time"

	"github.com/systemboot/enterprise/pkg/platform"
)

// DefaultDelay is how long an error stays on screen before recovering.
const DefaultDelay = 3 * time.Second

// Recoverer offers the ability to recover
// from a boot failure
type Recoverer interface {
	Recover(message string) error
}

// Platform is the part of the firmware a Recoverer uses.
type Platform interface {
	platform.Console
	platform.Staller
	platform.Resetter
}
