package integrity

import (
	"context"

	"livery-audit/core/storage"
	"livery-audit/feature/audit"
	"livery-audit/feature/install"
	"livery-audit/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	roots  []install.Root
	client storage.Client
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. db may be nil.
func NewService(roots []install.Root, client storage.Client, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		roots:  roots,
		client: client,
		db:     db,
		logger: logger,
	}
}

// CheckRoots checks every installation root.
func (s *Service) CheckRoots(ctx context.Context) ([]checks.RootReport, bool) {
	return checks.CheckRoots(ctx, s.roots, s.client)
}

// HasHistory reports whether a database is configured.
func (s *Service) HasHistory() bool {
	return s.db != nil
}

// CheckHistory checks the audit history table.
func (s *Service) CheckHistory() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, &audit.AuditRecord{})
}
