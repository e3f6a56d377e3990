package recovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/systemboot/enterprise/pkg/platform"
	"github.com/systemboot/enterprise/pkg/platform/platformtest"
)

type failingReset struct {
	*platformtest.Fake
}

func (failingReset) ResetSystem(platform.ResetType, platform.Status) error {
	return platform.Unsupported
}

func TestSecureRecovererReboots(t *testing.T) {
	fake := platformtest.New(nil)
	sr := SecureRecoverer{Platform: fake, Reboot: true, Delay: DefaultDelay, Log: zaptest.NewLogger(t)}
	require.NoError(t, sr.Recover("Error: boom"))
	require.Equal(t, "Error: boom\n", fake.OutputIn(platform.ErrorText))
	require.Equal(t, []platform.ResetType{platform.ResetCold}, fake.Resets)
	require.Equal(t, DefaultDelay, fake.Stalls[0])
}

func TestSecureRecovererShutdown(t *testing.T) {
	fake := platformtest.New(nil)
	sr := SecureRecoverer{Platform: fake}
	require.NoError(t, sr.Recover(""))
	require.Empty(t, fake.Output())
	require.Equal(t, []platform.ResetType{platform.ResetShutdown}, fake.Resets)
}

func TestSecureRecovererResetFails(t *testing.T) {
	fake := platformtest.New(nil)
	sr := SecureRecoverer{Platform: failingReset{fake}, Reboot: true, Delay: DefaultDelay}
	err := sr.Recover("Error: boom")
	require.ErrorIs(t, err, platform.Unsupported)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "Error calling ResetSystem")
	require.Len(t, fake.Stalls, 2)
}

func TestPermissiveRecoverer(t *testing.T) {
	fake := platformtest.New(nil)
	pr := PermissiveRecoverer{Platform: fake, Delay: DefaultDelay}
	require.NoError(t, pr.Recover("Error: missing file"))
	require.Equal(t, "Error: missing file\n", fake.OutputIn(platform.ErrorText))
	require.Empty(t, fake.Resets)
	require.Equal(t, []time.Duration{DefaultDelay}, fake.Stalls)
}
