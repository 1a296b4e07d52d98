package db

import (
	"database/sql"
	"fmt"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE runs (
		id          TEXT PRIMARY KEY,
		grammar     TEXT NOT NULL,
		input       BLOB NOT NULL,
		input_bits  INTEGER NOT NULL,
		consumed    INTEGER NOT NULL DEFAULT 0,
		ok          INTEGER NOT NULL,
		debug       TEXT NOT NULL DEFAULT '',
		error       TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE features (
		id      INTEGER PRIMARY KEY,
		run_id  TEXT NOT NULL REFERENCES runs(id),
		name    TEXT NOT NULL,
		depth   INTEGER NOT NULL,
		count   INTEGER NOT NULL
	)`,
	`CREATE TABLE mutants (
		id       INTEGER PRIMARY KEY,
		run_id   TEXT NOT NULL REFERENCES runs(id),
		ordinal  INTEGER NOT NULL,
		debug    TEXT NOT NULL,
		data     BLOB NOT NULL,
		bits     INTEGER NOT NULL
	)`,
	`CREATE INDEX features_run ON features(run_id)`,
	`CREATE INDEX mutants_run ON mutants(run_id, ordinal)`,
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
