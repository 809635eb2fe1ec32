// Package miz reads mission archives.
//
// A DCS mission (.miz) is a zip archive whose "mission" entry holds the
// mission script. Bare script files (an extracted "mission" entry) are
// accepted as well and are detected by the absence of the zip header.
//
// Files are memory-mapped read-only for the lifetime of an Archive, so bare
// scripts are decoded straight from the mapping without copying.
package miz
