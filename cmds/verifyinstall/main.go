package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/systemboot/enterprise/pkg/checker"
)

const (
	// HelpText is the command line help
	HelpText = "Verifies an Enterprise installation on a USB drive"
)

var goversion string

var (
	root   = kingpin.Flag("root", "Root directory of the USB drive").Default(".").ExistingDir()
	asJSON = kingpin.Flag("json", "Print the results as JSON").Bool()
)

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version(goversion)
	kingpin.CommandLine.Help = HelpText
	kingpin.Parse()

	results, numErrors := checker.Run(checker.InstallChecklist(*root))

	if *asJSON {
		resultsJSON, _ := json.MarshalIndent(results, "", "    ")
		fmt.Printf("%s\n", resultsJSON)
	} else {
		checker.Report(color.Output, results)
		if numErrors == 0 {
			color.Green("The installation is valid. All's good. :)")
		} else {
			color.Red("The installation is invalid: %d check(s) failed.", numErrors)
		}
	}

	if numErrors > 0 {
		os.Exit(1)
	}
}
