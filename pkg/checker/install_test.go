package checker

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, path, content string) {
	full := filepath.Join(root, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func install(t *testing.T, config string) string {
	root := t.TempDir()
	writeFile(t, root, "efi/boot/bootX64.efi", "MZ")
	writeFile(t, root, ConfigFile, config)
	return root
}

func TestInstallChecksRegistered(t *testing.T) {
	registered := ListRegistered()
	for _, check := range InstallChecklist("/") {
		require.Contains(t, registered, check.CheckFunName)
	}
}

func TestInstallValid(t *testing.T) {
	root := install(t, "# live stick\nfamily Ubuntu\nkernel /casper/vmlinuz boot=casper\ninitrd /casper/initrd.lz\n")
	results, numErrors := Run(InstallChecklist(root))
	require.Equal(t, 0, numErrors)
	require.Len(t, results, 4)
}

func TestInstallMissingBootFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ConfigFile, "family Debian\n")
	results, numErrors := Run(InstallChecklist(root))
	require.Equal(t, 1, numErrors)
	require.Len(t, results, 1)
	require.True(t, results[0].StoppedOnFailure)
	require.Contains(t, results[0].Error, "none of")
}

func TestInstallMissingConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "efi/boot/boot.efi", "MZ")
	results, numErrors := Run(InstallChecklist(root))
	require.Equal(t, 1, numErrors)
	require.Len(t, results, 2)
	require.Equal(t, ResultOK, results[0].Result)
	require.True(t, results[1].StoppedOnFailure)
}

func TestInstallBadConfig(t *testing.T) {
	root := install(t, "family Debian\nlabel Live\nkernel /live/vmlinuz\n")
	results, numErrors := Run(InstallChecklist(root))
	require.Equal(t, 1, numErrors)
	require.Len(t, results, 4)
	require.Equal(t, ResultError, results[2].Result)
	require.Contains(t, results[2].Error, `line 2: key "label" is not valid`)
}

func TestConfigValidReportsEveryLine(t *testing.T) {
	root := install(t, "family Debian\nlabel Live\nboot now\n")
	err := ConfigValid(CheckArgs{"root": root, "path": ConfigFile})
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
}

func TestDistributionUnsupported(t *testing.T) {
	root := install(t, "family Fedora\n")
	err := DistributionSupported(CheckArgs{"root": root, "path": ConfigFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Debian, Ubuntu, Mint")

	root = install(t, "# no family\n")
	require.NoError(t, DistributionSupported(CheckArgs{"root": root, "path": ConfigFile}))
}

func TestFileExistsRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "efi", "boot"), 0755))
	require.Error(t, FileExists(CheckArgs{"root": root, "path": "efi/boot"}))
}

func TestReport(t *testing.T) {
	color.NoColor = true
	results := []CheckResult{
		{Description: "boot files", Result: ResultOK},
		{
			Description: "config",
			Result:      ResultError,
			Error:       "bad key",
			RemediationResults: []CheckResult{
				{CheckFunName: "Fix", Result: ResultOK},
			},
		},
	}
	var buf bytes.Buffer
	Report(&buf, results)
	require.Equal(t, "[OK] boot files\n[ERROR] config: bad key\n    [OK] Fix\n", buf.String())
}
