package linuxboot

import (
	"errors"
	"fmt"

	"github.com/ecks/uefi/efi/efiguid"
	"github.com/ecks/uefi/efi/efivario"

	"github.com/systemboot/enterprise/pkg/platform"
)

// Variables is the firmware variable store as exposed by efivarfs.
type Variables struct {
	ctx efivario.Context
}

// NewVariables uses the running kernel's efivarfs.
func NewVariables() *Variables {
	return &Variables{ctx: efivario.NewDefaultContext()}
}

func (v *Variables) GetVariable(vendor efiguid.GUID, name string) ([]byte, platform.VariableAttributes, error) {
	attrs, data, err := efivario.ReadAll(v.ctx, name, vendor)
	if err != nil {
		if errors.Is(err, efivario.ErrNotFound) {
			return nil, 0, fmt.Errorf("variable %s: %w", name, platform.NotFound)
		}
		return nil, 0, fmt.Errorf("variable %s: %w: %w", name, platform.DeviceError, err)
	}
	return data, platform.VariableAttributes(attrs), nil
}

func (v *Variables) SetVariable(vendor efiguid.GUID, name string, attrs platform.VariableAttributes, data []byte) error {
	if err := v.ctx.Set(name, vendor, efivario.Attributes(attrs), data); err != nil {
		return fmt.Errorf("variable %s: %w: %w", name, platform.DeviceError, err)
	}
	return nil
}
