package checker

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
)

// Report writes one line per result, and one per remediation below it.
func Report(w io.Writer, results []CheckResult) {
	for _, r := range results {
		report(w, r, "")
	}
}

func report(w io.Writer, r CheckResult, indent string) {
	name := r.Description
	if name == "" {
		name = r.CheckFunName
	}
	if r.Result == ResultOK {
		fmt.Fprintf(w, "%s[%s] %s\n", indent, okColor.Sprint(r.Result), name)
	} else {
		fmt.Fprintf(w, "%s[%s] %s: %s\n", indent, errorColor.Sprint(r.Result), name, r.Error)
	}
	for _, rr := range r.RemediationResults {
		report(w, rr, indent+"    ")
	}
}
