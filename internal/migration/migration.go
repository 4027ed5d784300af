// Package migration versions the kv schema of the SQL stores. Migration files
// are named NNN_name.sql and applied in order, each in its own transaction.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daychain/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

// Driver selects the SQL dialect used for the bookkeeping statements.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status compares the database with the embedded migrations.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

func (s Status) TooNew() bool   { return s.Current > s.Latest }
func (s Status) UpToDate() bool { return s.Current == s.Latest }

func (s Status) tooNewError() error {
	return fmt.Errorf("%w: version %d, supported %d; upgrade daychain", ErrSchemaTooNew, s.Current, s.Latest)
}

type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

// NewRunner reads migrations from the root of migrationFS. An empty driver
// means SQLite.
func NewRunner(db *sql.DB, migrationFS fs.FS, driver Driver) *Runner {
	if driver == "" {
		driver = DriverSQLite
	}
	return &Runner{db: db, fs: migrationFS, driver: driver}
}

func (r *Runner) setVersionSQL() string {
	if r.driver == DriverPostgres {
		return "INSERT INTO schema_version (version) VALUES ($1)"
	}
	return "INSERT INTO schema_version (version) VALUES (?)"
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *Runner) writeVersion(ex execer, version int) error {
	if _, err := ex.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if _, err := ex.Exec(r.setVersionSQL(), version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)")
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// Version returns the schema version recorded in the database, 0 when fresh.
func (r *Runner) Version() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}
	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(version int) error {
	if err := r.ensureVersionTable(); err != nil {
		return err
	}
	return r.writeVersion(r.db, version)
}

// parseName splits "001_kv.sql" into 1 and "kv".
func parseName(file string) (int, string, error) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename %s: expected NNN_name.sql", file)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in %s: %w", file, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in %s: version must be at least 1", file)
	}
	return version, name, nil
}

// Migrations returns the embedded migrations sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	files, err := fs.Glob(r.fs, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	out := make([]Migration, 0, len(files))
	seen := map[int]string{}
	for _, file := range files {
		version, name, err := parseName(path.Base(file))
		if err != nil {
			return nil, err
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, other, file)
		}
		seen[version] = file

		content, err := fs.ReadFile(r.fs, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Status reports the recorded version, the latest embedded one and what is
// left to apply.
func (r *Runner) Status() (Status, error) {
	current, err := r.Version()
	if err != nil {
		return Status{}, err
	}
	all, err := r.Migrations()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	for _, m := range all {
		st.Latest = m.Version
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails with ErrSchemaTooNew when the database is ahead of this build.
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	if st.TooNew() {
		return st.tooNewError()
	}
	return nil
}

// Apply runs the pending migrations and returns how many ran. A failed
// migration is rolled back and leaves the version where it was.
func (r *Runner) Apply() (int, error) {
	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	if st.TooNew() {
		return 0, st.tooNewError()
	}
	if len(st.Pending) == 0 {
		logger.Debug("Schema up to date", "version", st.Current)
		return 0, nil
	}

	logger.Info("Migrating schema", "from", st.Current, "to", st.Latest, "pending", len(st.Pending))
	start := time.Now()
	for i, m := range st.Pending {
		if err := r.apply(m); err != nil {
			return i, err
		}
		logger.Debug("Applied migration", "version", m.Version, "name", m.Name)
	}
	logger.Info("Schema migrated", "version", st.Latest, "took", time.Since(start))
	return len(st.Pending), nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: failed to begin transaction: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: failed to commit: %w", m.Version, err)
	}
	return nil
}
