package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrUnmetRequirements is wrapped by Report.Err when a required livery is
// not installed.
var ErrUnmetRequirements = errors.New("unmet livery requirements")

// Result describes one vehicle type whose required liveries are not all
// installed.
type Result struct {
	// Type is the lower-cased vehicle type.
	Type string `json:"type" yaml:"type"`

	// NoStockLiveries is true when the installation has no entry for Type.
	NoStockLiveries bool `json:"no_stock_liveries" yaml:"no_stock_liveries"`

	// Missing lists the required livery ids not installed, sorted.
	// Every required id is listed when NoStockLiveries is true.
	Missing []string `json:"missing" yaml:"missing"`
}

// Message is the human readable failure for r.
func (r Result) Message() string {
	if r.NoStockLiveries {
		return "no stock liveries for " + r.Type
	}
	return fmt.Sprintf("missing liveries for %s: %s", r.Type, strings.Join(r.Missing, ", "))
}

// Summary provides aggregate counts for a report.
type Summary struct {
	// RequiredTypes counts the vehicle types the mission uses.
	RequiredTypes int `json:"required_types" yaml:"required_types"`

	// RequiredLiveries counts the distinct (type, livery) pairs required.
	RequiredLiveries int `json:"required_liveries" yaml:"required_liveries"`

	// MissingTypes counts the types with at least one unmet livery.
	MissingTypes int `json:"missing_types" yaml:"missing_types"`

	// MissingLiveries counts the unmet (type, livery) pairs.
	MissingLiveries int `json:"missing_liveries" yaml:"missing_liveries"`
}

// Report is the outcome of a reconciliation.
type Report struct {
	// Results holds the unmet types, sorted by type.
	Results []Result `json:"results" yaml:"results"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`
}

// OK reports whether every required livery is installed.
func (r *Report) OK() bool {
	return len(r.Results) == 0
}

// Status is "ok" or "failed".
func (r *Report) Status() string {
	if r.OK() {
		return "ok"
	}
	return "failed"
}

// Err returns nil when r is OK, otherwise one error per unmet type combined
// into a single error. Each of them wraps ErrUnmetRequirements.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrUnmetRequirements, res.Message()))
	}
	return err
}
