package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"livery-audit/core/database"
	"livery-audit/core/reconcile"

	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned by history operations without a database.
var ErrHistoryDisabled = errors.New("audit history is not configured")

// AuditRecord is one stored audit.
type AuditRecord struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Mission          string          `gorm:"size:255;index" json:"mission"`
	Status           string          `gorm:"size:16" json:"status"`
	RequiredTypes    int             `json:"required_types"`
	RequiredLiveries int             `json:"required_liveries"`
	MissingTypes     int             `json:"missing_types"`
	MissingLiveries  int             `json:"missing_liveries"`
	Results          json.RawMessage `gorm:"type:text" json:"results"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
}

// TableName pins the table name regardless of the naming strategy.
func (AuditRecord) TableName() string {
	return "audit_records"
}

// historyColumns are the columns History reads and writes.
var historyColumns = []string{
	"id", "mission", "status",
	"required_types", "required_liveries", "missing_types", "missing_liveries",
	"results", "created_at",
}

// History stores audit records. A nil *History is valid and disabled.
type History struct {
	db *gorm.DB
}

// NewHistory returns a history backed by db, or nil when db is nil.
func NewHistory(db *gorm.DB) *History {
	if db == nil {
		return nil
	}
	return &History{db: db}
}

// Enabled reports whether records are stored.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// DB returns the underlying database, nil when disabled.
func (h *History) DB() *gorm.DB {
	if h == nil {
		return nil
	}
	return h.db
}

// Prepare creates the records table, or with migrate false checks that an
// existing one has every column.
func (h *History) Prepare(migrate bool) error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}
	if migrate {
		return h.AutoMigrate()
	}

	table := AuditRecord{}.TableName()
	missing, err := database.MissingColumns(h.db, table, historyColumns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("history table %s is missing columns: %s", table, strings.Join(missing, ", "))
	}
	return nil
}

// AutoMigrate creates or updates the records table.
func (h *History) AutoMigrate() error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}
	if err := h.db.AutoMigrate(&AuditRecord{}); err != nil {
		return fmt.Errorf("failed to migrate audit history: %w", err)
	}
	return nil
}

// Record stores the outcome of auditing mission.
func (h *History) Record(ctx context.Context, mission string, report *reconcile.Report) (*AuditRecord, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}

	results, err := json.Marshal(report.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit results: %w", err)
	}

	rec := &AuditRecord{
		Mission:          mission,
		Status:           report.Status(),
		RequiredTypes:    report.Summary.RequiredTypes,
		RequiredLiveries: report.Summary.RequiredLiveries,
		MissingTypes:     report.Summary.MissingTypes,
		MissingLiveries:  report.Summary.MissingLiveries,
		Results:          results,
	}
	if err := h.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to record audit: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]AuditRecord, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}

	records := []AuditRecord{}
	err := h.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit history: %w", err)
	}
	return records, nil
}
