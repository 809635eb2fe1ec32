// Package mission extracts the liveries a mission requires.
//
// The mission script is decoded into a nested table (see core/script) and
// walked depth-first from every coalition under mission.coalition. Any table
// holding both a "livery_id" and a "type" string is a unit record: its pair
// is added to the required map and the walk stops there. Every other table is
// a container whose table values are searched in turn, whatever their key or
// nesting depth (country, category, group and unit levels all look alike).
//
// # Errors
//
// Decode failures and tables that cannot be read abort the extraction; no
// partial map is returned. Errors carry the dotted path of the table being
// read, for example "couldn't parse `blue.country.1.plane.group.2`".
//
// # Usage
//
//	required, err := mission.Extract(ctx, "strike.miz", log)
package mission
