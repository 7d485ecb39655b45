package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:inspector_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestGetTableColumns_SQLite(t *testing.T) {
	db := openSQLite(t)

	err := db.Exec(`CREATE TABLE cycle_counts (
		cycle_count_id INTEGER PRIMARY KEY,
		cycle_name VARCHAR(20),
		status VARCHAR(20)
	)`).Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "cycle_counts")
	require.NoError(t, err)

	fields := make([]string, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, c.Field)
	}
	assert.Contains(t, fields, "cycle_count_id")
	assert.Contains(t, fields, "cycle_name")
	assert.Contains(t, fields, "status")
}

func TestTableExists(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, db.Exec(`CREATE TABLE inventories (id INTEGER PRIMARY KEY)`).Error)

	assert.True(t, TableExists(db, "inventories"))
	assert.False(t, TableExists(db, "no_such_table"))
}

func TestGetTableColumns_MissingTable(t *testing.T) {
	db := openSQLite(t)

	columns, err := GetTableColumns(db, "missing")
	// PRAGMA table_info on a missing table returns zero rows, not an error.
	assert.NoError(t, err)
	assert.Empty(t, columns)
}
