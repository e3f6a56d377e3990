package recovery

import (
	"time"

	"github.com/systemboot/enterprise/pkg/platform"
)

// PermissiveRecoverer shows the message and waits, then returns so the caller
// can hand control back to the firmware.
type PermissiveRecoverer struct {
	Platform Platform
	Delay    time.Duration
}

// Recover never fails.
func (pr PermissiveRecoverer) Recover(message string) error {
	if message != "" {
		platform.DisplayErrorText(pr.Platform, message+"\n")
	}
	pr.Platform.Stall(pr.Delay)
	return nil
}
