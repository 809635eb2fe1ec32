// Package database opens the optional audit history database.
//
// It wraps GORM with the sqlite and mysql drivers. A Config with an empty
// Name means no database is configured; the CLI and the HTTP server then run
// without history.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema of a table so a
// pre-existing history table can be checked before use.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
package database
