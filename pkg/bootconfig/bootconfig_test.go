package bootconfig

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/systemboot/enterprise/pkg/platform/platformtest"
)

const configPath = `\efi\boot\.MLUL-Live-USB`

func TestNewBootConfig(t *testing.T) {
	bc := NewBootConfig([]byte(sampleConfig))
	require.Equal(t, BootConfig{
		Family:     "Ubuntu",
		Kernel:     "/casper/vmlinuz",
		KernelArgs: "boot=casper quiet",
		Initrd:     "/casper/initrd.lz",
		Root:       "/dev/sdb1",
	}, bc)
}

func TestNewBootConfigInitramfsAlias(t *testing.T) {
	bc := NewBootConfig([]byte("initramfs /live/initrd.img\nfoo bar\n"))
	require.Equal(t, "/live/initrd.img", bc.Initrd)
	require.Empty(t, bc.Family)
}

func TestNewBootConfigLaterLinesWin(t *testing.T) {
	bc := NewBootConfig([]byte("family Debian\nfamily Mint\n"))
	require.Equal(t, "Mint", bc.Family)
}

func TestReadMissingFile(t *testing.T) {
	fake := platformtest.New(nil)
	bc, err := Read(fake, configPath)
	require.ErrorIs(t, err, ErrConfigRead)
	require.True(t, bc.IsEmpty())
}

func TestReadEmptyFile(t *testing.T) {
	fake := platformtest.New(map[string][]byte{configPath: {}})
	bc, err := Read(fake, configPath)
	require.ErrorIs(t, err, ErrConfigRead)
	require.True(t, bc.IsEmpty())
}

func TestReadUnreadableFile(t *testing.T) {
	fake := platformtest.New(map[string][]byte{configPath: []byte("family Debian\n")})
	fake.Unreadable[configPath] = true
	_, err := Read(fake, configPath)
	require.ErrorIs(t, err, ErrConfigRead)
}

func TestRead(t *testing.T) {
	fake := platformtest.New(map[string][]byte{configPath: []byte("family Debian\n")})
	bc, err := Read(fake, configPath)
	require.NoError(t, err)
	require.Equal(t, "Debian", bc.Family)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]byte(`# comment
family Debian

kernel /live/vmlinuz
initrd /live/initrd.img
root /dev/sda
`)))

	err := Validate([]byte("family Debian\nbogus 1\n  # ok\ncolour red\n"))
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var serr *SyntaxError
	require.True(t, errors.As(merr.Errors[0], &serr))
	require.Equal(t, 2, serr.Line)
	require.Equal(t, "bogus", serr.Key)
	require.True(t, errors.As(merr.Errors[1], &serr))
	require.Equal(t, 4, serr.Line)
	require.Equal(t, "colour", serr.Key)
}

func TestNewBootConfigOtherWhitespace(t *testing.T) {
	for _, tt := range []struct {
		name   string
		config string
		want   BootConfig
	}{
		{"nbsp value", "kernel \u00a0\n", BootConfig{Kernel: "\u00a0"}},
		{"vertical tab value", "kernel \v\n", BootConfig{Kernel: "\v"}},
		{"form feed in args", "kernel /live/vmlinuz \fquiet\n", BootConfig{Kernel: "/live/vmlinuz", KernelArgs: "\fquiet"}},
		{"args keep single spaces", "kernel /live/vmlinuz  boot=live\tquiet\n", BootConfig{Kernel: "/live/vmlinuz", KernelArgs: "boot=live quiet"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var bc BootConfig
			require.NotPanics(t, func() { bc = NewBootConfig([]byte(tt.config)) })
			require.Equal(t, tt.want, bc)
		})
	}
}

func TestValidateOtherWhitespace(t *testing.T) {
	for _, line := range []string{"\v", "\f", "\u00a0", "kernel\v/live/vmlinuz"} {
		var err error
		require.NotPanics(t, func() { err = Validate([]byte("family Debian\n" + line + "\n")) })

		var serr *SyntaxError
		require.True(t, errors.As(err, &serr), "line %q", line)
		require.Equal(t, 2, serr.Line)
		require.Equal(t, line, serr.Key)
	}
}
