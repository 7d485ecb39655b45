// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections based on
// the application's configuration, including connection pooling, I/O
// timeouts, and driver error translation (duplicate keys surface as
// gorm.ErrDuplicatedKey regardless of dialect).
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the
// integrity feature relies on to verify that the warehouse tables the cycle
// count engine writes to actually exist with the expected columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "cycle_counts")
package database
