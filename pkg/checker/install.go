package checker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/systemboot/enterprise/pkg/bootconfig"
	"github.com/systemboot/enterprise/pkg/distro"
)

// Paths checked on an installation, relative to the root of the boot volume.
var (
	BootFiles  = []string{"efi/boot/boot.efi", "efi/boot/bootX64.efi"}
	ConfigFile = "efi/boot/.MLUL-Live-USB"
)

func init() {
	registerCheckFun(FileExists)
	registerCheckFun(AnyFileExists)
	registerCheckFun(ConfigValid)
	registerCheckFun(DistributionSupported)
}

func argPath(args CheckArgs, key string) string {
	return filepath.Join(args["root"], filepath.FromSlash(args[key]))
}

// FileExists checks that args["path"] below args["root"] is a regular file.
func FileExists(args CheckArgs) error {
	path := argPath(args, "path")
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

// AnyFileExists checks that at least one of the comma separated
// args["paths"] below args["root"] exists.
func AnyFileExists(args CheckArgs) error {
	paths := strings.Split(args["paths"], ",")
	for _, p := range paths {
		if FileExists(CheckArgs{"root": args["root"], "path": p}) == nil {
			return nil
		}
	}
	return fmt.Errorf("none of %s exists", strings.Join(paths, ", "))
}

// ConfigValid checks that every line of the configuration file at
// args["path"] starts with a known key.
func ConfigValid(args CheckArgs) error {
	data, err := os.ReadFile(argPath(args, "path"))
	if err != nil {
		return err
	}
	return bootconfig.Validate(data)
}

// DistributionSupported checks that the configuration file at args["path"]
// names a supported distribution, if it names one at all.
func DistributionSupported(args CheckArgs) error {
	data, err := os.ReadFile(argPath(args, "path"))
	if err != nil {
		return err
	}
	bc := bootconfig.NewBootConfig(data)
	if bc.Family == "" {
		return nil
	}
	if _, err := distro.Require(bc.Family); err != nil {
		return fmt.Errorf("%w, supported: %s", err, strings.Join(distro.Supported(), ", "))
	}
	return nil
}

// InstallChecklist returns the checks for an Enterprise installation on the
// boot volume mounted at root.
func InstallChecklist(root string) []Check {
	return []Check{
		{
			Description:   "EFI boot files present",
			CheckFunName:  "AnyFileExists",
			CheckFunArgs:  CheckArgs{"root": root, "paths": strings.Join(BootFiles, ",")},
			StopOnFailure: true,
		},
		{
			Description:   "configuration file present",
			CheckFunName:  "FileExists",
			CheckFunArgs:  CheckArgs{"root": root, "path": ConfigFile},
			StopOnFailure: true,
		},
		{
			Description:  "configuration file syntax",
			CheckFunName: "ConfigValid",
			CheckFunArgs: CheckArgs{"root": root, "path": ConfigFile},
		},
		{
			Description:  "distribution supported",
			CheckFunName: "DistributionSupported",
			CheckFunArgs: CheckArgs{"root": root, "path": ConfigFile},
		},
	}
}
