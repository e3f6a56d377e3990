// Package boot runs one boot menu session: it checks the boot volume, shows
// the menu and chainloads the loader or resets the machine.
package boot

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/systemboot/enterprise/pkg/bootconfig"
	"github.com/systemboot/enterprise/pkg/booter"
	"github.com/systemboot/enterprise/pkg/bootoptions"
	"github.com/systemboot/enterprise/pkg/distro"
	"github.com/systemboot/enterprise/pkg/efivar"
	"github.com/systemboot/enterprise/pkg/menu"
	"github.com/systemboot/enterprise/pkg/platform"
	"github.com/systemboot/enterprise/pkg/recovery"
)

// Version of the boot menu shown in the banner.
const (
	VersionMajor = 0
	VersionMinor = 1
)

// ErrLoaderReturned is returned when the loader ran and gave control back.
var ErrLoaderReturned = errors.New("loader returned")

// Session holds everything one run of the boot menu needs.
type Session struct {
	Platform platform.Services
	Layout   Layout
	Log      *zap.Logger
	// Delay is how long fatal errors stay on screen.
	Delay time.Duration

	// Config is filled in by Run from the marker file.
	Config  bootconfig.BootConfig
	options bootoptions.Set
}

// NewSession returns a session with the default layout and delay.
func NewSession(p platform.Services, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		Platform: p,
		Layout:   DefaultLayout(),
		Log:      log,
		Delay:    recovery.DefaultDelay,
	}
}

// Run performs the whole session. It returns only if the machine could not be
// handed to the loader or reset: on a missing file, a keyboard failure, or a
// failed reset. If the firmware resets the machine, the returned error is the
// reason for the reset.
func (s *Session) Run() error {
	s.setupConsole()

	warning, err := s.Layout.Check(s.Platform)
	if err != nil {
		var mf *MissingFileError
		message := err.Error()
		if errors.As(err, &mf) {
			message = mf.Message
		}
		s.Log.Error("boot volume incomplete", zap.Error(err))
		_ = s.permissive().Recover(message)
		return err
	}
	if warning != "" {
		s.Log.Warn("payload missing, continuing", zap.String("path", s.Layout.Payload))
		platform.DisplayErrorText(s.Platform, warning+"\n")
	}

	s.Config = s.readConfig()

	m := menu.New(s.Platform, s.Platform, &s.options, s.Log)
	result, err := m.Run()
	if err != nil {
		_ = s.permissive().Recover(fmt.Sprintf("Error: %v", err))
		return err
	}

	switch result.State {
	case menu.Booting:
		return s.boot(result.Params)
	default:
		return s.reboot()
	}
}

func (s *Session) setupConsole() {
	c := s.Platform
	if err := c.SetAttribute(platform.NormalText); err != nil {
		s.Log.Debug("cannot set console attribute", zap.Error(err))
	}
	if err := c.ClearScreen(); err != nil {
		s.Log.Debug("cannot clear screen", zap.Error(err))
	}
	platform.Printf(c, "Welcome to Enterprise! - Version %d.%d\n", VersionMajor, VersionMinor)
	if err := s.Platform.Reset(); err != nil {
		s.Log.Debug("cannot reset input", zap.Error(err))
	}
	if err := c.EnableCursor(false); err != nil {
		s.Log.Debug("cannot hide cursor", zap.Error(err))
	}
}

func (s *Session) readConfig() bootconfig.BootConfig {
	bc, err := bootconfig.Read(s.Platform, s.Layout.Marker)
	if err != nil {
		s.Log.Info("no configuration", zap.Error(err))
		return bootconfig.BootConfig{}
	}
	s.Log.Debug("configuration", zap.String("family", bc.Family),
		zap.String("kernel", bc.Kernel), zap.String("initrd", bc.Initrd))
	return bc
}

// Params returns the parameter string the loader is started with: the menu
// selection followed by the kernel arguments from the configuration.
func (s *Session) Params(selected string) string {
	return selected + s.Config.KernelArgs
}

// persistProfile stores where the loader finds the kernel and initrd of the
// configured distribution. Nothing is stored for an unsupported one.
func (s *Session) persistProfile() {
	if s.Config.Family == "" {
		return
	}
	profile := distro.Resolve(s.Config.Family)
	if !profile.IsValid() {
		s.Log.Warn("unsupported distribution", zap.String("family", s.Config.Family))
		return
	}
	if s.Config.Kernel != "" {
		profile.KernelPath = s.Config.Kernel
	}
	if s.Config.Initrd != "" {
		profile.InitrdPath = s.Config.Initrd
	}

	vars := [][2]string{
		{efivar.KernelPathName, profile.KernelPath},
		{efivar.InitrdPathName, profile.InitrdPath},
		{efivar.BootFolderName, profile.BootFolder},
	}
	if s.Config.Root != "" {
		vars = append(vars, [2]string{efivar.RootDeviceName, s.Config.Root})
	}
	for _, v := range vars {
		if err := efivar.Set(s.Platform, v[0], v[1]); err != nil {
			s.Log.Warn("cannot persist variable", zap.String("name", v[0]), zap.Error(err))
		}
	}
}

func (s *Session) boot(selected string) error {
	s.persistProfile()

	loader := booter.NewChainloader(s.Platform, s.Log)
	loader.ErrorDelay = s.Delay
	var b booter.Booter = &booter.ChainBooter{
		Loader: loader,
		Target: booter.Target{
			Device: s.Platform.DeviceHandle(),
			Path:   s.Layout.Loader,
			Params: s.Params(selected),
		},
	}
	s.Log.Info("booting", zap.String("booter", b.TypeName()), zap.String("path", s.Layout.Loader))

	err := b.Boot()
	message := ""
	if err != nil {
		message = fmt.Sprintf("Error: %v", err)
	} else {
		err = ErrLoaderReturned
	}
	if rerr := s.secure().Recover(message); rerr != nil {
		return fmt.Errorf("%w, reset failed: %w", err, rerr)
	}
	return err
}

func (s *Session) reboot() error {
	s.Log.Info("rebooting")
	if err := s.Platform.ResetSystem(platform.ResetCold, platform.Success); err != nil {
		platform.DisplayErrorText(s.Platform, fmt.Sprintf("Error calling ResetSystem: %v\n", err))
		s.Platform.Stall(s.Delay)
		return err
	}
	return nil
}

func (s *Session) secure() recovery.Recoverer {
	return recovery.SecureRecoverer{Platform: s.Platform, Reboot: true, Delay: s.Delay, Log: s.Log}
}

func (s *Session) permissive() recovery.Recoverer {
	return recovery.PermissiveRecoverer{Platform: s.Platform, Delay: s.Delay}
}
