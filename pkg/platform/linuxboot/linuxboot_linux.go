// Package linuxboot runs the boot menu on a Linux kernel, LinuxBoot style:
// the boot volume is a mounted directory, the console a terminal, and the
// next program is started through kexec.
package linuxboot

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/systemboot/enterprise/pkg/platform"
	"github.com/systemboot/enterprise/pkg/storage"
)

// Config selects the boot volume and terminal.
type Config struct {
	// Root is the directory the boot volume is mounted at.
	Root string
	// Device is the boot volume's block device. If set, Root is looked up
	// in the mount table.
	Device string
	// Initrd is the boot volume path of an initramfs to kexec with.
	Initrd string

	In  *os.File
	Out io.Writer
	Log *zap.Logger
}

// Platform implements platform.Services on Linux.
type Platform struct {
	*Console
	*Keyboard
	Dir
	*Images
	*Variables

	log *zap.Logger
}

var _ platform.Services = (*Platform)(nil)

// New sets up the terminal and the boot volume. Close must be called to
// restore the terminal.
func New(cfg Config) (*Platform, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	root := cfg.Root
	if cfg.Device != "" {
		mountpoint, err := storage.GetMountpointByDevice(cfg.Device)
		if err != nil {
			return nil, fmt.Errorf("cannot find boot volume: %w", err)
		}
		root = *mountpoint
	}
	if root == "" {
		return nil, fmt.Errorf("no boot volume given")
	}
	log.Info("boot volume", zap.String("root", root), zap.String("device", cfg.Device))

	kb, err := OpenTerminal(cfg.In)
	if err != nil {
		return nil, fmt.Errorf("cannot open terminal: %w", err)
	}
	console := NewConsole(cfg.Out)
	console.CRLF = kb.Raw()

	images := NewImages(Dir(root), log)
	images.Initrd = cfg.Initrd

	return &Platform{
		Console:   console,
		Keyboard:  kb,
		Dir:       Dir(root),
		Images:    images,
		Variables: NewVariables(),
		log:       log,
	}, nil
}

// Close restores the terminal.
func (p *Platform) Close() error {
	return p.Keyboard.Close()
}

// ResetSystem reboots or powers off the machine.
func (p *Platform) ResetSystem(kind platform.ResetType, status platform.Status) error {
	p.log.Info("reset", zap.Int("kind", int(kind)), zap.String("status", status.Error()))
	_ = p.Close()

	cmd := unix.LINUX_REBOOT_CMD_RESTART
	if kind == platform.ResetShutdown {
		cmd = unix.LINUX_REBOOT_CMD_POWER_OFF
	}
	unix.Sync()
	if err := unix.Reboot(cmd); err != nil {
		return fmt.Errorf("reboot: %w: %w", platform.Unsupported, err)
	}
	return nil
}

func (p *Platform) Stall(d time.Duration) {
	time.Sleep(d)
}

func (p *Platform) ImageHandle() platform.Handle  { return 1 }
func (p *Platform) DeviceHandle() platform.Handle { return 2 }
