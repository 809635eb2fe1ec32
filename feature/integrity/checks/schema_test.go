package checks

import (
	"testing"

	"livery-audit/core/database"
	"livery-audit/feature/audit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, &audit.AuditRecord{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Migrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, audit.NewHistory(db).AutoMigrate())

	report, err := CheckSchema(db, &audit.AuditRecord{})

	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "audit_records", report.Table)
	assert.Empty(t, report.MissingColumns)
	assert.Empty(t, report.TypeMismatches)
}

func TestCheckSchema_MySQLMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("mission", "varchar(255)", "YES", "MUL", nil, "").
		AddRow("status", "varchar(16)", "YES", "", nil, "").
		AddRow("required_types", "bigint", "YES", "", nil, "").
		AddRow("required_liveries", "bigint", "YES", "", nil, "").
		AddRow("missing_types", "bigint", "YES", "", nil, "").
		AddRow("results", "varchar(255)", "YES", "", nil, "").
		AddRow("created_at", "datetime(3)", "YES", "MUL", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `audit_records`").WillReturnRows(rows)

	report, err := CheckSchema(db, &audit.AuditRecord{})

	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"missing_liveries"}, report.MissingColumns)
	assert.Equal(t, []string{"results: expected text, got varchar(255)"}, report.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `audit_records`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db, &audit.AuditRecord{})

	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Failed to inspect table audit_records")
}
