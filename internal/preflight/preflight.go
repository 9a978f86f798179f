package preflight

import (
	"fmt"
	"strings"

	"stacks/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for a run against target.
func RunAll(cfg *config.Config, target string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Target directory", target)}

	// State directory holds the run lock
	if strings.TrimSpace(cfg.Paths.StateDir) != "" {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	}
	return results
}

// FirstFailure converts the first failed result into an error.
func FirstFailure(results []Result) error {
	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("%s: %s", strings.ToLower(r.Name), r.Detail)
		}
	}
	return nil
}
