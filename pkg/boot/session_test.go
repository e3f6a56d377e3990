package boot

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/systemboot/enterprise/pkg/booter"
	"github.com/systemboot/enterprise/pkg/efivar"
	"github.com/systemboot/enterprise/pkg/platform"
	"github.com/systemboot/enterprise/pkg/platform/platformtest"
)

func bootVolume(config string) map[string][]byte {
	return map[string][]byte{
		MarkerPath:  []byte(config),
		LoaderPath:  []byte("MZ"),
		PayloadPath: []byte("CD001"),
	}
}

func newSession(t *testing.T, files map[string][]byte, keys string) (*Session, *platformtest.Fake) {
	fake := platformtest.New(files)
	fake.PressKeys(keys)
	return NewSession(fake, zaptest.NewLogger(t)), fake
}

func TestSessionBanner(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "x")
	require.NoError(t, s.Run())
	require.Contains(t, fake.Output(), "Welcome to Enterprise! - Version 0.1\n")
	require.Equal(t, 1, fake.KeyResets)
	require.False(t, fake.CursorOn)
}

func TestSessionPayloadMissing(t *testing.T) {
	files := bootVolume("")
	delete(files, PayloadPath)
	s, fake := newSession(t, files, "1")

	err := s.Run()
	require.ErrorIs(t, err, ErrMissingFile)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "can't find ISO file to boot!")
	require.NotContains(t, fake.Output(), "Available boot options")
	// the key is never read
	require.Len(t, fake.Keys, 1)
	require.Empty(t, fake.Loaded)
	require.Empty(t, fake.Resets)
	require.Equal(t, s.Delay, fake.Stalls[0])
}

func TestSessionMarkerMissing(t *testing.T) {
	files := bootVolume("")
	delete(files, MarkerPath)
	s, fake := newSession(t, files, "1")

	var mf *MissingFileError
	require.ErrorAs(t, s.Run(), &mf)
	require.Equal(t, MarkerPath, mf.Path)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "can't find configuration file")
	require.Empty(t, fake.Loaded)
}

func TestSessionLoaderMissing(t *testing.T) {
	files := bootVolume("")
	delete(files, LoaderPath)
	s, fake := newSession(t, files, "1")

	require.ErrorIs(t, s.Run(), ErrMissingFile)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "can't find GRUB bootloader!")
	require.Empty(t, fake.Loaded)
}

func TestSessionPayloadOptional(t *testing.T) {
	files := bootVolume("")
	delete(files, PayloadPath)
	s, fake := newSession(t, files, "1")
	s.Layout.RequirePayload = false

	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "can't find ISO file to boot!")
	require.Len(t, fake.Started, 1)
}

func TestSessionDirectBoot(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "1")

	// the fake firmware returns from the loader, so the session resets
	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.Len(t, fake.Started, 1)
	img := fake.Started[0]
	require.Equal(t, platform.DevicePath{Device: fake.DeviceHandle(), Path: LoaderPath}, img.Path)
	require.Nil(t, img.LoadOptions)

	got, err := efivar.Get(fake, efivar.BootOptionsName)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, []platform.ResetType{platform.ResetCold}, fake.Resets)
}

func TestSessionBootWithOptions(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "210")

	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.Len(t, fake.Started, 1)

	want, err := booter.EncodeLoadOptions("nomodeset ")
	require.NoError(t, err)
	require.Equal(t, want, fake.Started[0].LoadOptions)

	got, err := efivar.Get(fake, efivar.BootOptionsName)
	require.NoError(t, err)
	require.Equal(t, "nomodeset ", got)
}

func TestSessionReboot(t *testing.T) {
	for _, keys := range []string{"x", "3", "0", " "} {
		t.Run(keys, func(t *testing.T) {
			s, fake := newSession(t, bootVolume(""), keys)
			require.NoError(t, s.Run())
			require.Equal(t, []platform.ResetType{platform.ResetCold}, fake.Resets)
			require.Empty(t, fake.Loaded)
			require.Empty(t, fake.Started)
			_, ok := fake.Variable(efivar.VendorGUID, efivar.BootOptionsName)
			require.False(t, ok)
		})
	}
}

func TestSessionKeyboardFailure(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "")
	fake.KeyErr = platform.DeviceError

	err := s.Run()
	require.ErrorIs(t, err, platform.ErrKeyRead)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "could not read from keyboard")
	require.Empty(t, fake.Resets)
	require.Empty(t, fake.Loaded)
}

func TestSessionLoadFailureResets(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "1")
	fake.LoadErr = platform.SecurityViolation

	err := s.Run()
	var lerr *booter.LoadError
	require.ErrorAs(t, err, &lerr)
	require.Contains(t, fake.OutputIn(platform.ErrorText), "Error: cannot load image")
	require.Equal(t, []platform.ResetType{platform.ResetCold}, fake.Resets)
}

func TestSessionStartFailureResets(t *testing.T) {
	s, fake := newSession(t, bootVolume(""), "20")
	fake.StartErr = platform.Aborted

	var serr *booter.StartError
	require.ErrorAs(t, s.Run(), &serr)
	require.Len(t, fake.Unloaded, 1)
	// one stall in the chainloader, one before the reset
	require.Len(t, fake.Stalls, 2)
	require.Equal(t, []platform.ResetType{platform.ResetCold}, fake.Resets)
}

func TestSessionPersistsDistributionProfile(t *testing.T) {
	config := "family Ubuntu\nkernel /casper/vmlinuz.efi boot=casper quiet\nroot /dev/sdb1\n"
	s, fake := newSession(t, bootVolume(config), "210")

	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.Equal(t, map[string]string{
		efivar.BootOptionsName: "nomodeset boot=casper quiet",
		efivar.KernelPathName:  "/casper/vmlinuz.efi",
		efivar.InitrdPathName:  "/casper/initrd.lz",
		efivar.BootFolderName:  "casper",
		efivar.RootDeviceName:  "/dev/sdb1",
	}, efivar.GetAll(fake))
}

func TestSessionUnsupportedDistribution(t *testing.T) {
	s, fake := newSession(t, bootVolume("family Fedora\n"), "1")

	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.Equal(t, map[string]string{efivar.BootOptionsName: ""}, efivar.GetAll(fake))
	require.Len(t, fake.Started, 1)
}

func TestSessionUnreadableConfig(t *testing.T) {
	s, fake := newSession(t, bootVolume("family Debian\n"), "1")
	fake.Unreadable[MarkerPath] = true

	require.ErrorIs(t, s.Run(), ErrLoaderReturned)
	require.True(t, s.Config.IsEmpty())
	require.Len(t, fake.Started, 1)
}

func TestParams(t *testing.T) {
	s := NewSession(platformtest.New(nil), nil)
	require.Equal(t, "", s.Params(""))
	require.Equal(t, "acpi=off ", s.Params("acpi=off "))
	s.Config.KernelArgs = "quiet"
	require.Equal(t, "acpi=off quiet", s.Params("acpi=off "))
}
