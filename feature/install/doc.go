// Package install finds the liveries installed in a simulator asset tree.
//
// An installation root is walked depth-first looking for directories named
// "liveries" (any case). Such a directory holds one folder per vehicle type,
// each holding one folder per livery:
//
//	Bazar/Liveries/F-16C_50/aggressor/
//	CoreMods/aircraft/F-16C/Liveries/F-16C_50/default/
//
// Vehicle type and livery folder names are recorded lower-cased; files at
// either level are ignored and nothing below a livery folder is visited.
//
// Roots are local directories or s3://bucket/prefix URLs pointing at a mirror
// of the installation in object storage. A root that does not exist yields an
// empty result; a root that cannot be read aborts the scan, since a partial
// result would under-report installed liveries.
//
// Symbolic links to directories are followed. Link cycles are not detected.
package install
