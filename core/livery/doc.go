// Package livery defines the livery map shared by the mission extractor,
// the installation scanner and the reconciler.
//
// # Map
//
// A Map associates a vehicle type with the set of livery ids seen for it.
// Both keys and ids are lower-cased on insertion, so "F-16C_50" and
// "f-16c_50" name the same entry and lookups never compare raw input.
//
// Entries are created lazily. A vehicle type only appears once something was
// found for it; an absent key means "nothing found anywhere", which is not the
// same as an empty set (a vehicle folder without any livery folder in it).
//
// # Usage
//
//	required := livery.Map{}
//	required.Add("F-16C_50", "Aggressor")
//	required.Has("f-16c_50", "aggressor") // true
package livery
