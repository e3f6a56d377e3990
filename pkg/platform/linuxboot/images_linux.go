package linuxboot

import (
	"fmt"
	"os"
	"strings"

	"github.com/u-root/u-root/pkg/boot/kexec"
	"go.uber.org/zap"

	"github.com/systemboot/enterprise/pkg/platform"
)

// StartImage kexecs into the image with its load options as command line.
// It only returns on failure.
func (i *Images) StartImage(image *platform.LoadedImage) error {
	kernel, ok := i.loaded[image.Handle]
	if !ok {
		return platform.InvalidParameter
	}
	cmdline, err := DecodeLoadOptions(image.LoadOptions)
	if err != nil {
		return fmt.Errorf("load options: %w: %w", platform.InvalidParameter, err)
	}
	cmdline = strings.TrimSpace(cmdline)

	var ramfs *os.File
	if i.Initrd != "" {
		ramfs, err = os.Open(i.Dir.HostPath(i.Initrd))
		if err != nil {
			return fmt.Errorf("initrd %s: %w: %w", i.Initrd, statusOf(err), err)
		}
		defer ramfs.Close()
	}

	i.Log.Info("kexec", zap.String("kernel", kernel.Name()), zap.String("cmdline", cmdline))
	if err := kexec.FileLoad(kernel, ramfs, cmdline); err != nil {
		return fmt.Errorf("kexec load %s: %w: %w", image.Path.Path, platform.LoadErrorStatus, err)
	}
	if err := kexec.Reboot(); err != nil {
		return fmt.Errorf("kexec reboot: %w: %w", platform.DeviceError, err)
	}
	return nil
}
