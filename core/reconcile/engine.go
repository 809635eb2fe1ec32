package reconcile

import "livery-audit/core/livery"

// Reconcile checks every required livery against installed. Neither map is
// modified.
func Reconcile(required, installed livery.Map) *Report {
	report := &Report{Results: []Result{}}

	for _, vehicleType := range required.Types() {
		ids := required.Liveries(vehicleType)
		report.Summary.RequiredTypes++
		report.Summary.RequiredLiveries += len(ids)

		result, ok := check(vehicleType, ids, installed)
		if ok {
			continue
		}
		report.Results = append(report.Results, result)
		report.Summary.MissingTypes++
		report.Summary.MissingLiveries += len(result.Missing)
	}

	return report
}

// check returns the unmet result for vehicleType, or false when every id is
// installed.
func check(vehicleType string, ids []string, installed livery.Map) (Result, bool) {
	if !installed.HasType(vehicleType) {
		return Result{Type: vehicleType, NoStockLiveries: true, Missing: ids}, false
	}

	missing := []string{}
	for _, id := range ids {
		if !installed.Has(vehicleType, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return Result{}, true
	}
	return Result{Type: vehicleType, Missing: missing}, false
}
