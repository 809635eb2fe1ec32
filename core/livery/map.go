package livery

import (
	"encoding/json"
	"sort"
	"strings"
)

// Map is a set of livery ids per vehicle type.
type Map map[string]map[string]struct{}

// Add records liveryID for vehicleType, creating the entry if needed.
func (m Map) Add(vehicleType, liveryID string) {
	set := m.ensure(vehicleType)
	set[strings.ToLower(liveryID)] = struct{}{}
}

// AddType records vehicleType with no livery ids.
// An existing entry is left untouched.
func (m Map) AddType(vehicleType string) {
	m.ensure(vehicleType)
}

func (m Map) ensure(vehicleType string) map[string]struct{} {
	key := strings.ToLower(vehicleType)
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	return set
}

// HasType reports whether vehicleType has an entry, even an empty one.
func (m Map) HasType(vehicleType string) bool {
	_, ok := m[strings.ToLower(vehicleType)]
	return ok
}

// Has reports whether liveryID is recorded for vehicleType.
func (m Map) Has(vehicleType, liveryID string) bool {
	set, ok := m[strings.ToLower(vehicleType)]
	if !ok {
		return false
	}
	_, ok = set[strings.ToLower(liveryID)]
	return ok
}

// Merge adds every entry of other to m.
func (m Map) Merge(other Map) {
	for vehicleType, ids := range other {
		set := m.ensure(vehicleType)
		for id := range ids {
			set[id] = struct{}{}
		}
	}
}

// Types returns the vehicle types in sorted order.
func (m Map) Types() []string {
	types := make([]string, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Liveries returns the livery ids recorded for vehicleType in sorted order.
func (m Map) Liveries(vehicleType string) []string {
	set := m[strings.ToLower(vehicleType)]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the total number of (type, livery) pairs.
func (m Map) Count() int {
	n := 0
	for _, ids := range m {
		n += len(ids)
	}
	return n
}

// Sorted returns the map as vehicle type -> sorted livery ids.
func (m Map) Sorted() map[string][]string {
	out := make(map[string][]string, len(m))
	for _, t := range m.Types() {
		out[t] = m.Liveries(t)
	}
	return out
}

// MarshalJSON encodes the map as an object of sorted id arrays.
func (m Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Sorted())
}

// MarshalYAML encodes the map like MarshalJSON.
func (m Map) MarshalYAML() (any, error) {
	return m.Sorted(), nil
}
