package efivar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/systemboot/enterprise/pkg/platform"
	"github.com/systemboot/enterprise/pkg/platform/platformtest"
)

func TestSetWritesSingleTerminator(t *testing.T) {
	fake := platformtest.New(nil)
	require.NoError(t, Set(fake, BootOptionsName, "nomodeset "))

	v, ok := fake.Variable(VendorGUID, BootOptionsName)
	require.True(t, ok)
	require.Equal(t, []byte("nomodeset \x00"), v.Data)
	require.Equal(t, platform.NonVolatile|platform.BootServiceAccess|platform.RuntimeAccess, v.Attrs)
}

func TestSetEmpty(t *testing.T) {
	fake := platformtest.New(nil)
	require.NoError(t, Set(fake, BootOptionsName, ""))
	v, _ := fake.Variable(VendorGUID, BootOptionsName)
	require.Equal(t, []byte{0}, v.Data)
}

func TestSetOverwrites(t *testing.T) {
	fake := platformtest.New(nil)
	require.NoError(t, Set(fake, BootOptionsName, "acpi=off "))
	require.NoError(t, Set(fake, BootOptionsName, "nomodeset "))
	got, err := Get(fake, BootOptionsName)
	require.NoError(t, err)
	require.Equal(t, "nomodeset ", got)
}

func TestGetMissing(t *testing.T) {
	fake := platformtest.New(nil)
	_, err := Get(fake, KernelPathName)
	require.ErrorIs(t, err, platform.NotFound)
}

func TestGetAll(t *testing.T) {
	fake := platformtest.New(nil)
	require.NoError(t, Set(fake, KernelPathName, "/live/vmlinuz"))
	require.NoError(t, Set(fake, BootFolderName, "live"))
	require.Equal(t, map[string]string{
		KernelPathName: "/live/vmlinuz",
		BootFolderName: "live",
	}, GetAll(fake))
}
