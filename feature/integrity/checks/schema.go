package checks

import (
	"fmt"
	"reflect"

	"warehouse-manager/core/database"
	"warehouse-manager/feature/audit"
	"warehouse-manager/feature/catalog"
	cyclemodels "warehouse-manager/feature/cyclecount/models"
	"warehouse-manager/feature/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one inspected table.
type TableReport struct {
	Present        bool     `json:"present"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// requiredModels are the gorm models the cycle count engine reads or writes.
// Their declared fields are the source of truth for the expected schema.
var requiredModels = []any{
	catalog.Product{},
	inventory.Inventory{},
	audit.ActionLog{},
	cyclemodels.CycleCount{},
	cyclemodels.CycleCountDetail{},
	cyclemodels.CycleCountAdjustment{},
}

// CheckSchema verifies that every warehouse table the engine depends on
// exists with the columns its model declares.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	namer := schema.NamingStrategy{}
	for _, model := range requiredModels {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := tabler.TableName()

		tblReport := TableReport{
			Present:        true,
			MissingColumns: []string{},
			Status:         "ok",
		}

		if !database.TableExists(db, tableName) {
			tblReport.Present = false
			tblReport.Status = "error"
			report.Matched = false
			report.Tables[tableName] = tblReport
			continue
		}

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		actual := make(map[string]struct{}, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = struct{}{}
		}

		for _, col := range expectedColumns(model, namer) {
			if _, ok := actual[col]; !ok {
				tblReport.MissingColumns = append(tblReport.MissingColumns, col)
			}
		}
		if len(tblReport.MissingColumns) > 0 {
			tblReport.Status = "error"
			report.Matched = false
		}

		report.Tables[tableName] = tblReport
	}

	return report, nil
}

// expectedColumns derives column names from a model's gorm tags, falling
// back to the default naming strategy.
func expectedColumns(model any, namer schema.NamingStrategy) []string {
	t := reflect.TypeOf(model)
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := namer.ColumnName("", field.Name)
		tag := field.Tag.Get("gorm")
		for _, part := range splitTag(tag) {
			if len(part) > 7 && part[:7] == "column:" {
				name = part[7:]
			}
		}
		columns = append(columns, name)
	}
	return columns
}

func splitTag(tag string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(tag); i++ {
		if i == len(tag) || tag[i] == ';' {
			if i > start {
				parts = append(parts, tag[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
