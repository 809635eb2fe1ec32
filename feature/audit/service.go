package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"livery-audit/core/livery"
	"livery-audit/core/reconcile"
	"livery-audit/core/storage"
	"livery-audit/feature/install"
	"livery-audit/feature/mission"

	"go.uber.org/zap"
)

// Service runs extractions, scans and audits.
type Service struct {
	roots   []install.Root
	client  storage.Client
	scanner *install.Scanner
	cache   *reconcile.Cache
	history *History
	logger  *zap.Logger
}

// NewService creates a new audit service. client is only needed for s3://
// roots and missions; cache and history may be nil.
func NewService(roots []string, client storage.Client, cache *reconcile.Cache, history *History, logger *zap.Logger) *Service {
	return &Service{
		roots:   install.ParseRoots(roots),
		client:  client,
		scanner: install.NewScanner(client, logger),
		cache:   cache,
		history: history,
		logger:  logger,
	}
}

// Roots returns the configured installation roots.
func (s *Service) Roots() []install.Root {
	return s.roots
}

// Client returns the storage client, nil when no bucket is involved.
func (s *Service) Client() storage.Client {
	return s.client
}

// History returns the audit history, nil when disabled.
func (s *Service) History() *History {
	return s.history
}

// cacheKey identifies the configured roots.
func (s *Service) cacheKey() string {
	parts := make([]string, len(s.roots))
	for i, r := range s.roots {
		parts[i] = r.String()
	}
	return strings.Join(parts, "|")
}

// Installed returns the merged liveries of every root, reusing a cached
// scan while it is fresh. The returned map must not be modified.
func (s *Service) Installed(ctx context.Context) (livery.Map, error) {
	if s.cache == nil {
		return s.scanner.Scan(ctx, s.roots)
	}
	return s.cache.GetOrBuild(ctx, s.cacheKey(), func(ctx context.Context) (livery.Map, error) {
		s.logger.Info("Scanning installation", zap.Int("roots", len(s.roots)))
		return s.scanner.Scan(ctx, s.roots)
	})
}

// Refresh drops the cached scan.
func (s *Service) Refresh() {
	if s.cache != nil {
		s.cache.Invalidate(s.cacheKey())
	}
}

// Extract returns the required liveries of an in-memory mission.
func (s *Service) Extract(ctx context.Context, data []byte, name string) (livery.Map, error) {
	return mission.ExtractBytes(ctx, data, name, s.logger)
}

// ExtractFile returns the required liveries of the mission at path, a local
// file or an s3://bucket/key URL.
func (s *Service) ExtractFile(ctx context.Context, path string) (livery.Map, error) {
	bucket, key, ok := storage.ParseURL(path)
	if !ok {
		return mission.Extract(ctx, path, s.logger)
	}
	if s.client == nil {
		return nil, fmt.Errorf("couldn't open mission file %s: %w", path, install.ErrNoStorage)
	}

	data, err := storage.ReadObject(ctx, s.client, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("couldn't open mission file: %w", err)
	}
	return s.Extract(ctx, data, filepath.Base(key))
}

// Audit checks an in-memory mission against the installation.
func (s *Service) Audit(ctx context.Context, data []byte, name string) (*reconcile.Report, error) {
	required, err := s.Extract(ctx, data, name)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, name, required)
}

// AuditFile checks the mission at path against the installation.
func (s *Service) AuditFile(ctx context.Context, path string) (*reconcile.Report, error) {
	required, err := s.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, path, required)
}

func (s *Service) reconcile(ctx context.Context, name string, required livery.Map) (*reconcile.Report, error) {
	installed, err := s.Installed(ctx)
	if err != nil {
		return nil, err
	}

	report := reconcile.Reconcile(required, installed)

	l := s.logger.With(zap.String("mission", name))
	for _, res := range report.Results {
		l.Debug("Unmet livery requirement",
			zap.String("type", res.Type),
			zap.Bool("no_stock_liveries", res.NoStockLiveries),
			zap.Strings("missing", res.Missing),
		)
	}
	l.Info("Audit completed",
		zap.String("status", report.Status()),
		zap.Int("required_types", report.Summary.RequiredTypes),
		zap.Int("missing_types", report.Summary.MissingTypes),
	)

	if s.history.Enabled() {
		if _, err := s.history.Record(ctx, name, report); err != nil {
			l.Warn("Failed to record audit", zap.Error(err))
		}
	}

	return report, nil
}
