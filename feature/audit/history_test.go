package audit

import (
	"context"
	"encoding/json"
	"testing"

	"livery-audit/core/database"
	"livery-audit/core/livery"
	"livery-audit/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func report(t *testing.T, installed livery.Map) *reconcile.Report {
	t.Helper()
	required := livery.Map{}
	required.Add("f-16c_50", "aggressor")
	required.Add("mig-29a", "default")
	return reconcile.Reconcile(required, installed)
}

func TestHistory_RecordAndRecent(t *testing.T) {
	history, _ := setupHistory(t)
	ctx := context.Background()

	_, err := history.Record(ctx, "first.miz", report(t, livery.Map{}))
	require.NoError(t, err)
	ok := livery.Map{}
	ok.Add("f-16c_50", "aggressor")
	ok.Add("mig-29a", "default")
	rec, err := history.Record(ctx, "second.miz", report(t, ok))
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)

	records, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second.miz", records[0].Mission)
	assert.Equal(t, "ok", records[0].Status)
	assert.Equal(t, "first.miz", records[1].Mission)
	assert.Equal(t, "failed", records[1].Status)
	assert.Equal(t, 2, records[1].MissingLiveries)

	var results []reconcile.Result
	require.NoError(t, json.Unmarshal(records[1].Results, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "mig-29a", results[1].Type)

	limited, err := history.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistory_Disabled(t *testing.T) {
	history := NewHistory(nil)
	ctx := context.Background()

	assert.Nil(t, history)
	assert.False(t, history.Enabled())
	_, err := history.Record(ctx, "m", report(t, livery.Map{}))
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = history.Recent(ctx, 1)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	assert.ErrorIs(t, history.Prepare(true), ErrHistoryDisabled)
}

func TestHistory_PrepareWithoutMigration(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE audit_records (id INTEGER PRIMARY KEY, mission TEXT, status TEXT)").Error)

	err = NewHistory(db).Prepare(false)

	assert.EqualError(t, err, "history table audit_records is missing columns: "+
		"required_types, required_liveries, missing_types, missing_liveries, results, created_at")
}

func TestHistory_PrepareExistingTable(t *testing.T) {
	history, db := setupHistory(t)

	assert.NoError(t, NewHistory(db).Prepare(false))
	assert.True(t, history.Enabled())
}

func TestHistory_RecentMySQLError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `audit_records` ORDER BY created_at DESC,id DESC LIMIT").
		WillReturnError(assert.AnError)

	_, err = NewHistory(db).Recent(context.Background(), 5)

	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to list audit history")
	assert.NoError(t, mock.ExpectationsWereMet())
}
