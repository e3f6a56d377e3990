package recovery

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/systemboot/enterprise/pkg/platform"
)

// SecureRecoverer shows the message, waits and resets the machine.
// Reboot: cold reset if true, shutdown otherwise
// Delay: how long the message stays on screen
type SecureRecoverer struct {
	Platform Platform
	Reboot   bool
	Delay    time.Duration
	Log      *zap.Logger
}

// Recover by reset or shutdown. It only returns if the firmware could not
// reset the machine.
func (sr SecureRecoverer) Recover(message string) error {
	if sr.Log != nil {
		sr.Log.Error("recovering", zap.String("message", message), zap.Bool("reboot", sr.Reboot))
	}
	if message != "" {
		platform.DisplayErrorText(sr.Platform, message+"\n")
	}
	sr.Platform.Stall(sr.Delay)

	kind := platform.ResetShutdown
	if sr.Reboot {
		kind = platform.ResetCold
	}
	if err := sr.Platform.ResetSystem(kind, platform.Success); err != nil {
		platform.DisplayErrorText(sr.Platform, fmt.Sprintf("Error calling ResetSystem: %v\n", err))
		sr.Platform.Stall(sr.Delay)
		return err
	}
	return nil
}
