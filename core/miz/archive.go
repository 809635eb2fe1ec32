package miz

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// ScriptEntry is the archive entry holding the mission script.
const ScriptEntry = "mission"

// ErrNoMissionScript is returned when a zip archive has no ScriptEntry.
var ErrNoMissionScript = errors.New(`mission archive has no "mission" entry`)

var zipMagic = []byte("PK\x03\x04")

// Archive is a memory-mapped mission file.
type Archive struct {
	path string
	r    *mmap.ReaderAt
}

// Open maps the mission file at path.
func Open(path string) (*Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open mission file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("couldn't open mission file: %s is a directory", path)
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't map mission file: %w", err)
	}

	return &Archive{path: path, r: r}, nil
}

// Path returns the mapped file path.
func (a *Archive) Path() string {
	return a.path
}

// Script returns a reader over the mission script.
// The reader is only valid until Close.
func (a *Archive) Script() (io.ReadCloser, error) {
	return script(a.r, int64(a.r.Len()))
}

// Close releases the mapping.
func (a *Archive) Close() error {
	return a.r.Close()
}

// Script returns a reader over the mission script held in data,
// which is either a zip archive or a bare script.
func Script(data []byte) (io.ReadCloser, error) {
	return script(bytes.NewReader(data), int64(len(data)))
}

// IsZip reports whether the content starts with a zip local file header.
func IsZip(r io.ReaderAt, size int64) bool {
	if size < int64(len(zipMagic)) {
		return false
	}
	header := make([]byte, len(zipMagic))
	if _, err := r.ReadAt(header, 0); err != nil {
		return false
	}
	return bytes.Equal(header, zipMagic)
}

func script(r io.ReaderAt, size int64) (io.ReadCloser, error) {
	if !IsZip(r, size) {
		return io.NopCloser(io.NewSectionReader(r, 0, size)), nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("couldn't read mission archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != ScriptEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("couldn't open %s entry: %w", ScriptEntry, err)
		}
		return rc, nil
	}

	return nil, ErrNoMissionScript
}
