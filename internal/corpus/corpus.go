// Package corpus keeps parse runs, their feature vectors and their fuzz
// mutants in SQLite for later inspection and replay.
package corpus

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/db"
)

var log = commonlog.GetLogger("bolts.corpus")

var ErrNotFound = errors.New("run not found")

// Run is one parse of an input against a named grammar.
type Run struct {
	ID        string
	Grammar   string
	Input     []byte
	InputBits int
	Consumed  int
	OK        bool
	Debug     string
	Error     string
	CreatedAt string
}

type Feature struct {
	Name  string
	Depth int
	Count int
}

type Mutant struct {
	Ordinal int
	Debug   string
	Data    []byte
	Bits    int
}

// Filter narrows ListRuns. Zero value lists everything.
type Filter struct {
	Grammar string
	Failed  bool
	OK      bool
}

type GrammarStats struct {
	Grammar  string
	Runs     int
	OK       int
	Failed   int
	Consumed int64
}

type Store struct {
	db *sql.DB
}

// Open opens the store at path, migrating it as needed.
func Open(path string) (*Store, error) {
	sqlDB, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: sqlDB}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRun describes the outcome of parsing input with a grammar.
func NewRun(grammar string, input []byte, result core.DataModel, parseErr error, consumed int) Run {
	r := Run{
		Grammar:   grammar,
		Input:     input,
		InputBits: len(input) * 8,
		Consumed:  consumed,
		OK:        parseErr == nil,
	}
	if parseErr != nil {
		r.Error = parseErr.Error()
	} else {
		r.Debug = result.Debug()
	}
	return r
}

// RecordRun stores r and returns its id, generating one when r.ID is empty.
func (s *Store) RecordRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	input := r.Input
	if input == nil {
		input = []byte{}
	}
	_, err := s.db.Exec(`INSERT INTO runs (id, grammar, input, input_bits, consumed, ok, debug, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Grammar, input, r.InputBits, r.Consumed, r.OK, r.Debug, r.Error)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	log.Debugf("recorded run %s for %s", r.ID, r.Grammar)
	return r.ID, nil
}

// UpdateOutcome replaces the stored result of a run.
func (s *Store) UpdateOutcome(r Run) error {
	res, err := s.db.Exec(`UPDATE runs SET consumed = ?, ok = ?, debug = ?, error = ? WHERE id = ?`,
		r.Consumed, r.OK, r.Debug, r.Error, r.ID)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting updated runs for %s: %w", r.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("updating run %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// RecordFeatures stores every non-zero count of fv against runID.
func (s *Store) RecordFeatures(runID string, fv *core.FeatureVector) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning feature insert: %w", err)
	}
	for _, name := range fv.Names() {
		for depth, count := range fv.Get(name) {
			if count == 0 {
				continue
			}
			if _, err := tx.Exec(`INSERT INTO features (run_id, name, depth, count) VALUES (?, ?, ?, ?)`, runID, name, depth, count); err != nil {
				tx.Rollback()
				return fmt.Errorf("inserting feature %s: %w", name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing features: %w", err)
	}
	return nil
}

// RecordMutants serializes and stores mutants in order.
func (s *Store) RecordMutants(runID string, mutants []core.DataModel) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning mutant insert: %w", err)
	}
	for i, m := range mutants {
		data, bits := core.SerializeBytes(m)
		if _, err := tx.Exec(`INSERT INTO mutants (run_id, ordinal, debug, data, bits) VALUES (?, ?, ?, ?, ?)`, runID, i, m.Debug(), data, bits); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting mutant %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mutants: %w", err)
	}
	return nil
}

const runColumns = `id, grammar, input, input_bits, consumed, ok, debug, error, created_at`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Grammar, &r.Input, &r.InputBits, &r.Consumed, &r.OK, &r.Debug, &r.Error, &r.CreatedAt)
	return r, err
}

// ListRuns returns runs oldest first.
func (s *Store) ListRuns(f Filter) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1 = 1`
	var args []any
	if f.Grammar != "" {
		query += ` AND grammar = ?`
		args = append(args, f.Grammar)
	}
	if f.Failed && !f.OK {
		query += ` AND ok = 0`
	}
	if f.OK && !f.Failed {
		query += ` AND ok = 1`
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun finds a run by id or by a unique id prefix.
func (s *Store) GetRun(id string) (Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return Run{}, fmt.Errorf("querying run %s: %w", id, err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scanning run: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterating runs: %w", err)
	}
	switch {
	case id == "" || len(found) == 0:
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	case len(found) > 1:
		return Run{}, fmt.Errorf("run prefix %s is ambiguous", id)
	}
	return found[0], nil
}

// Features returns the stored histogram of a run ordered by name and depth.
func (s *Store) Features(runID string) ([]Feature, error) {
	rows, err := s.db.Query(`SELECT name, depth, count FROM features WHERE run_id = ? ORDER BY name, depth`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying features: %w", err)
	}
	defer rows.Close()

	var out []Feature
	for rows.Next() {
		var f Feature
		if err := rows.Scan(&f.Name, &f.Depth, &f.Count); err != nil {
			return nil, fmt.Errorf("scanning feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Mutants returns the stored mutants of a run in ordinal order.
func (s *Store) Mutants(runID string) ([]Mutant, error) {
	rows, err := s.db.Query(`SELECT ordinal, debug, data, bits FROM mutants WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying mutants: %w", err)
	}
	defer rows.Close()

	var out []Mutant
	for rows.Next() {
		var m Mutant
		if err := rows.Scan(&m.Ordinal, &m.Debug, &m.Data, &m.Bits); err != nil {
			return nil, fmt.Errorf("scanning mutant: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Stats summarizes runs per grammar, busiest first.
func (s *Store) Stats() ([]GrammarStats, error) {
	rows, err := s.db.Query(`
		SELECT grammar, COUNT(*), SUM(ok), COUNT(*) - SUM(ok), SUM(consumed)
		FROM runs
		GROUP BY grammar
		ORDER BY COUNT(*) DESC, grammar
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var out []GrammarStats
	for rows.Next() {
		var g GrammarStats
		if err := rows.Scan(&g.Grammar, &g.Runs, &g.OK, &g.Failed, &g.Consumed); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
