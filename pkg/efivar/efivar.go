// Package efivar stores the boot menu's choices in firmware variables under
// the Enterprise vendor GUID, where the next stage loader picks them up.
package efivar

import (
	"bytes"

	"github.com/ecks/uefi/efi/efiguid"

	"github.com/systemboot/enterprise/pkg/platform"
)

// VendorGUIDString is the vendor GUID of all Enterprise variables.
const VendorGUIDString = "2c5ec2b2-9c0d-4a4e-8f7b-7a1e4d3f6b90"

// VendorGUID is the vendor GUID of all Enterprise variables.
var VendorGUID = efiguid.MustFromString(VendorGUIDString)

// Variable names read by the next stage loader.
const (
	BootOptionsName = "Enterprise-LinuxBootOptions"
	KernelPathName  = "Enterprise-LinuxKernelPath"
	InitrdPathName  = "Enterprise-LinuxInitRDPath"
	BootFolderName  = "Enterprise-LinuxBootFolder"
	RootDeviceName  = "Enterprise-LinuxRootDevice"
)

// DefaultAttributes makes variables survive a reset and stay readable after
// the boot services are gone.
const DefaultAttributes = platform.NonVolatile | platform.BootServiceAccess | platform.RuntimeAccess

// Get returns the string value of an Enterprise variable.
func Get(store platform.VariableStore, name string) (string, error) {
	data, _, err := store.GetVariable(VendorGUID, name)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(data, []byte{0})), nil
}

// Set stores value as raw bytes followed by a single NUL terminator.
func Set(store platform.VariableStore, name, value string) error {
	data := make([]byte, 0, len(value)+1)
	data = append(data, value...)
	data = append(data, 0)
	return store.SetVariable(VendorGUID, name, DefaultAttributes, data)
}

// GetAll returns every Enterprise variable that is set, keyed by name.
func GetAll(store platform.VariableStore) map[string]string {
	vars := make(map[string]string)
	for _, name := range []string{BootOptionsName, KernelPathName, InitrdPathName, BootFolderName, RootDeviceName} {
		value, err := Get(store, name)
		if err != nil {
			continue
		}
		vars[name] = value
	}
	return vars
}
