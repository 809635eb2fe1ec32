package checks

import (
	"fmt"
	"strings"

	"livery-audit/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckSchema verifies the table of model using its GORM definition as the
// source of truth. Declared `type:` tags are checked loosely: the live type
// must contain the declared one.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	report := &SchemaReport{
		Table:          stmt.Schema.Table,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actualCols, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		report.Matched = false
		return report, nil // Partial fail
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" {
			continue
		}
		col, ok := actual[strings.ToLower(field.DBName)]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, field.DBName)
			report.Matched = false
			continue
		}

		expType := strings.ToLower(field.TagSettings["TYPE"])
		if expType != "" && !strings.Contains(col.Type, expType) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", field.DBName, expType, col.Type))
			report.Matched = false
		}
	}

	return report, nil
}
