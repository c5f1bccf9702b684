package check

import "errors"

var ErrChecksFailed = errors.New("some checks did not pass")

type Result struct {
	Name    string
	Passed  bool
	Message string
}

// Report collects the outcome of a run, Aborted being set
// when the configuration file could not be found
type Report struct {
	Results []Result
	Aborted bool
}

func (report *Report) Failed() bool {
	if report.Aborted {
		return true
	}
	for _, result := range report.Results {
		if !result.Passed {
			return true
		}
	}
	return false
}

func (report *Report) Result(name string) (Result, bool) {
	for _, result := range report.Results {
		if result.Name == name {
			return result, true
		}
	}
	return Result{}, false
}
