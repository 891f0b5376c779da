// Package archive stores finished survey sessions in a DuckDB database so
// campaign results can be queried and served after the sheet rows are
// overwritten by later runs.
package archive

import (
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing archive databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("archive: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}
