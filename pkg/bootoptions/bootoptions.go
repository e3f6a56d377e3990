// Package bootoptions holds the kernel flags the operator can toggle from the
// boot menu.
package bootoptions

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when toggling an index that does not exist.
var ErrOutOfRange = errors.New("boot option index out of range")

// Flag is a kernel parameter with a human readable description.
type Flag struct {
	Text        string
	Description string
}

// Flags are the toggleable kernel parameters, in menu order.
var Flags = [...]Flag{
	{Text: "nomodeset", Description: "Disable kernel mode setting."},
	{Text: "acpi=off", Description: "Disable ACPI."},
}

// Count is the number of toggleable flags.
const Count = len(Flags)

// Set records which flags are enabled. The zero value has every flag off.
type Set struct {
	enabled [Count]bool
}

// Toggle flips flag i. Out-of-range indexes leave the set unchanged.
func (s *Set) Toggle(i int) error {
	if i < 0 || i >= Count {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	s.enabled[i] = !s.enabled[i]
	return nil
}

// Enabled reports whether flag i is set.
func (s *Set) Enabled(i int) bool {
	return i >= 0 && i < Count && s.enabled[i]
}

// Reset turns every flag off.
func (s *Set) Reset() {
	s.enabled = [Count]bool{}
}

// Render returns the enabled flags in index order, each followed by a single
// space, or the empty string when nothing is enabled.
func (s *Set) Render() string {
	var sb strings.Builder
	for i, on := range s.enabled {
		if on {
			sb.WriteString(Flags[i].Text)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
