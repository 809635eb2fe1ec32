// Package reconcile compares the liveries a mission requires against the
// liveries an installation provides.
//
// Reconciliation is a pure function of two livery maps. Every required livery
// id must be installed under the same vehicle type; a type with no installed
// entry at all is reported as having no stock liveries, otherwise each
// missing id is listed. Results are sorted by vehicle type so that repeated
// runs over the same inputs produce identical reports.
//
// # Usage Example
//
//	report := reconcile.Reconcile(required, installed)
//	if err := report.Err(); err != nil {
//	    // err wraps ErrUnmetRequirements, one error per unmet type
//	}
//
// # Cache
//
// Scanning an installation is the expensive half of an audit. Cache holds
// built maps for a TTL and collapses concurrent builds of the same key into
// one, so a server answering many audits scans the installation once per TTL.
package reconcile
