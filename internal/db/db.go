package db

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
