package menu

import (
	"fmt"

	"github.com/systemboot/enterprise/pkg/bootoptions"
	"github.com/systemboot/enterprise/pkg/platform"
)

func (m *Menu) drawMain() {
	platform.DisplayColoredText(m.console, "\n\n    Available boot options:\n")
	platform.Print(m.console, "    Press the key corresponding to the number of the option that you want.\n")
	platform.Print(m.console, "\n    1) Boot Linux from ISO file\n")
	platform.Print(m.console, "    2) Modify Linux kernel boot options (advanced!)\n")
	platform.Print(m.console, "\n    Press any other key to reboot the system.\n")
}

func (m *Menu) drawOptions() {
	_ = m.console.ClearScreen()

	platform.DisplayColoredText(m.console, "\n\n    Configure Kernel Options:\n")
	platform.Print(m.console, "    Press the key corresponding to the number of the option to toggle.\n")
	for i, flag := range bootoptions.Flags {
		line := fmt.Sprintf("\n    %d) %s - %s", i+1, flag.Text, flag.Description)
		if m.options.Enabled(i) {
			platform.DisplayColoredText(m.console, line)
		} else {
			platform.Print(m.console, line)
		}
	}
	platform.Print(m.console, "\n\n    0) Boot with selected options.\n")
}
