package install

import (
	"context"
	"errors"
	"fmt"

	"livery-audit/core/livery"
	"livery-audit/core/storage"

	"go.uber.org/zap"
)

// ErrNoStorage is returned when a bucket root is scanned without a client.
var ErrNoStorage = errors.New("object storage is not configured")

// Root is an installation root: a local directory or a bucket prefix.
type Root struct {
	Path   string
	Bucket string
	Prefix string
}

// ParseRoot resolves s into a local or bucket root.
func ParseRoot(s string) Root {
	if bucket, prefix, ok := storage.ParseURL(s); ok {
		return Root{Bucket: bucket, Prefix: prefix}
	}
	return Root{Path: s}
}

// ParseRoots resolves every entry of roots, skipping empty ones.
func ParseRoots(roots []string) []Root {
	out := make([]Root, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		out = append(out, ParseRoot(r))
	}
	return out
}

// IsBucket reports whether r lives in object storage.
func (r Root) IsBucket() bool {
	return r.Bucket != ""
}

func (r Root) String() string {
	if r.IsBucket() {
		if r.Prefix == "" {
			return storage.Scheme + r.Bucket
		}
		return storage.Scheme + r.Bucket + "/" + r.Prefix
	}
	return r.Path
}

// Scanner scans several installation roots and merges their liveries.
type Scanner struct {
	client storage.Client
	logger *zap.Logger
}

// NewScanner creates a scanner. client may be nil when no root is a bucket.
func NewScanner(client storage.Client, logger *zap.Logger) *Scanner {
	return &Scanner{client: client, logger: logger}
}

// Scan scans every root in order and returns the union of their liveries.
// The first failing root aborts the scan.
func (s *Scanner) Scan(ctx context.Context, roots []Root) (livery.Map, error) {
	installed := livery.Map{}

	for _, root := range roots {
		found, err := s.scanRoot(ctx, root)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Scanned installation root",
			zap.Stringer("root", root),
			zap.Int("types", len(found)),
			zap.Int("liveries", found.Count()),
		)
		installed.Merge(found)
	}

	return installed, nil
}

// ScanAll parses roots and scans them.
func (s *Scanner) ScanAll(ctx context.Context, roots []string) (livery.Map, error) {
	return s.Scan(ctx, ParseRoots(roots))
}

func (s *Scanner) scanRoot(ctx context.Context, root Root) (livery.Map, error) {
	if !root.IsBucket() {
		return Scan(root.Path, s.logger)
	}
	if s.client == nil {
		return nil, fmt.Errorf("couldn't scan %s: %w", root, ErrNoStorage)
	}
	return ScanBucket(ctx, s.client, root.Bucket, root.Prefix, s.logger)
}
