// Package checker runs named checks with optional remediations. Checks are
// plain functions registered by name, so checklists can be written as data.
package checker

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
)

// CheckArgs are the named arguments of a check function.
type CheckArgs map[string]string

// CheckFun is a check or remediation. A nil return means success.
type CheckFun func(args CheckArgs) error

// Check results.
const (
	ResultOK    = "OK"
	ResultError = "ERROR"
)

// Check is a single check to run, with the remediations to try if it fails.
type Check struct {
	Description  string    `json:"description"`
	CheckFunName string    `json:"check_fun_name"`
	CheckFunArgs CheckArgs `json:"check_fun_args"`
	Remediations []Check   `json:"remediations,omitempty"`
	// StopOnFailure skips the remediations and every following check.
	StopOnFailure bool `json:"stop_on_failure"`
}

// CheckResult is the outcome of a Check.
type CheckResult struct {
	Description        string        `json:"description"`
	CheckFunName       string        `json:"check_fun_name"`
	CheckFunArgs       CheckArgs     `json:"check_fun_args"`
	Result             string        `json:"result"`
	Error              string        `json:"error,omitempty"`
	RemediationResults []CheckResult `json:"remediation_results,omitempty"`
	StoppedOnFailure   bool          `json:"stopped_on_failure"`
}

var registry = map[string]CheckFun{}

func funName(f CheckFun) string {
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// registerCheckFun makes f available to checklists under its function name.
func registerCheckFun(f CheckFun) {
	registry[funName(f)] = f
}

// ListRegistered returns the names of the registered check functions.
func ListRegistered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Check) call() error {
	f, ok := registry[c.CheckFunName]
	if !ok {
		return fmt.Errorf("check function %q not registered", c.CheckFunName)
	}
	return f(c.CheckFunArgs)
}

// Run runs the check. If it fails and StopOnFailure is not set, every
// remediation is run and, if any of them succeeded, the check is run again.
func (c Check) Run() CheckResult {
	result := CheckResult{
		Description:  c.Description,
		CheckFunName: c.CheckFunName,
		CheckFunArgs: c.CheckFunArgs,
		Result:       ResultOK,
	}

	err := c.call()
	if err == nil {
		return result
	}
	if c.StopOnFailure {
		result.Result = ResultError
		result.Error = err.Error()
		result.StoppedOnFailure = true
		return result
	}

	remediated := false
	for _, r := range c.Remediations {
		rr := r.Run()
		result.RemediationResults = append(result.RemediationResults, rr)
		if rr.Result == ResultOK {
			remediated = true
		}
	}
	if remediated {
		err = c.call()
	}
	if err != nil {
		result.Result = ResultError
		result.Error = err.Error()
	}
	return result
}

// Run runs the checklist in order and returns the results and the number of
// failed checks. It stops after a failed check with StopOnFailure.
func Run(checklist []Check) ([]CheckResult, int) {
	var (
		results   []CheckResult
		numErrors int
	)
	for _, check := range checklist {
		result := check.Run()
		results = append(results, result)
		if result.Result != ResultOK {
			numErrors++
		}
		if result.StoppedOnFailure {
			break
		}
	}
	return results, numErrors
}
