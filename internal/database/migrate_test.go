package database

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
)

// memDB records the SQL it is asked to run and tracks the schema version the
// way the postgres driver's schema_migrations table would.
type memDB struct {
	mu       sync.Mutex
	version  int
	dirty    bool
	ran      []string
	lockErr  error
	closeErr error
}

func newMemDB() *memDB {
	return &memDB{version: migratedb.NilVersion}
}

func (d *memDB) Open(string) (migratedb.Driver, error) { return newMemDB(), nil }
func (d *memDB) Close() error                          { return d.closeErr }
func (d *memDB) Lock() error                           { return d.lockErr }
func (d *memDB) Unlock() error                         { return nil }
func (d *memDB) Drop() error                           { return nil }

func (d *memDB) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ran = append(d.ran, string(body))
	return nil
}

func (d *memDB) SetVersion(version int, dirty bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version, d.dirty = version, dirty
	return nil
}

func (d *memDB) Version() (int, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version, d.dirty, nil
}

func (d *memDB) lastRun() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.ran) == 0 {
		return ""
	}
	return d.ran[len(d.ran)-1]
}

type closeErrSource struct {
	source.Driver
	err error
}

func (s closeErrSource) Close() error { return s.err }

func schemaSource(t *testing.T) source.Driver {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	if err != nil {
		t.Fatalf("resolving migrations dir: %v", err)
	}
	src, err := (&file.File{}).Open("file://" + dir)
	if err != nil {
		t.Fatalf("opening migrations: %v", err)
	}
	return src
}

func newSchemaMigrator(t *testing.T, src source.Driver, db *memDB) *Migrator {
	t.Helper()
	m, err := migrate.NewWithInstance("file", src, "mem", db)
	if err != nil {
		t.Fatalf("unexpected migrate.NewWithInstance error: %v", err)
	}
	return &Migrator{m: m}
}

func TestMigrator_UpAppliesSchemaInOrder(t *testing.T) {
	db := newMemDB()
	m := newSchemaMigrator(t, schemaSource(t), db)

	if err := m.Up(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.ran) != 3 {
		t.Fatalf("expected 3 migrations, ran %d", len(db.ran))
	}
	for i, table := range []string{"users", "exercise_records", "friendships"} {
		if !strings.Contains(db.ran[i], "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("migration %d: expected %s table, got %q", i+1, table, db.ran[i])
		}
	}
	if !strings.Contains(db.ran[1], "CHECK (intensity BETWEEN 0 AND 10)") {
		t.Error("expected intensity range enforced by the schema")
	}

	version, dirty, err := m.Version()
	if err != nil || version != 3 || dirty {
		t.Fatalf("expected clean version 3, got %d dirty=%t err=%v", version, dirty, err)
	}

	if err := m.Up(); err != nil {
		t.Fatalf("expected current schema to be a no-op, got %v", err)
	}
	if len(db.ran) != 3 {
		t.Fatalf("expected no further migrations, ran %d", len(db.ran))
	}
}

func TestMigrator_StepsBackAndForward(t *testing.T) {
	db := newMemDB()
	m := newSchemaMigrator(t, schemaSource(t), db)

	if err := m.Steps(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version, _, _ := m.Version(); version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}

	if err := m.Steps(-1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version, _, _ := m.Version(); version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
	if !strings.Contains(db.lastRun(), "DROP TABLE IF EXISTS exercise_records") {
		t.Fatalf("expected exercise_records rollback, got %q", db.lastRun())
	}

	before := len(db.ran)
	if err := m.Steps(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.ran) != before {
		t.Fatal("expected zero steps to run nothing")
	}
}

func TestMigrator_StepsPastEnd(t *testing.T) {
	m := newSchemaMigrator(t, schemaSource(t), newMemDB())

	err := m.Steps(5)
	if err == nil || !strings.Contains(err.Error(), "migrating 5 steps") {
		t.Fatalf("expected wrapped short-limit error, got %v", err)
	}
	if version, _, _ := m.Version(); version != 3 {
		t.Fatalf("expected every available migration applied, got %d", version)
	}
}

func TestMigrator_DownDropsEverything(t *testing.T) {
	db := newMemDB()
	m := newSchemaMigrator(t, schemaSource(t), db)
	if err := m.Up(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Down(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastRun(), "DROP TABLE IF EXISTS users") {
		t.Fatalf("expected users dropped last, got %q", db.lastRun())
	}
	if _, _, err := m.Version(); !errors.Is(err, migrate.ErrNilVersion) {
		t.Fatalf("expected ErrNilVersion after full rollback, got %v", err)
	}

	if err := m.Down(); err != nil {
		t.Fatalf("expected empty schema rollback to be a no-op, got %v", err)
	}
}

func TestMigrator_FreshSchemaHasNilVersion(t *testing.T) {
	m := newSchemaMigrator(t, schemaSource(t), newMemDB())

	version, dirty, err := m.Version()
	if !errors.Is(err, migrate.ErrNilVersion) {
		t.Fatalf("expected ErrNilVersion, got %v", err)
	}
	if version != 0 || dirty {
		t.Fatalf("expected zero version and clean state, got %d dirty=%t", version, dirty)
	}
}

func TestMigrator_LockErrorsWrapped(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Migrator) error
		want string
	}{
		{"up", (*Migrator).Up, "running migrations"},
		{"down", (*Migrator).Down, "rolling back migrations"},
		{"steps", func(m *Migrator) error { return m.Steps(-1) }, "migrating -1 steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMemDB()
			db.version = 3
			db.lockErr = errors.New("lock failed")
			m := newSchemaMigrator(t, schemaSource(t), db)

			err := tt.run(m)
			if err == nil || !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "lock failed") {
				t.Fatalf("expected wrapped lock error, got %v", err)
			}
		})
	}
}

func TestMigrator_Close(t *testing.T) {
	srcErr := errors.New("source close failed")
	dbErr := errors.New("db close failed")

	db := newMemDB()
	db.closeErr = dbErr
	m := newSchemaMigrator(t, closeErrSource{Driver: schemaSource(t), err: srcErr}, db)
	if err := m.Close(); err != srcErr {
		t.Fatalf("expected source error to win, got %v", err)
	}

	db = newMemDB()
	db.closeErr = dbErr
	m = newSchemaMigrator(t, schemaSource(t), db)
	if err := m.Close(); err != dbErr {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestSchemaMigrationsArePaired(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	if err != nil {
		t.Fatalf("listing migrations: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("expected migrations")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if matches, _ := filepath.Glob(down); len(matches) != 1 {
			t.Errorf("%s has no matching down migration", filepath.Base(up))
		}
	}
}

var registerMemDBOnce sync.Once

func TestNewMigrator(t *testing.T) {
	if _, err := NewMigrator("not-a-dsn", "migrations"); err == nil || !strings.Contains(err.Error(), "creating migrator") {
		t.Fatalf("expected wrapped error for bad DSN, got %v", err)
	}

	registerMemDBOnce.Do(func() {
		migratedb.Register("fitrankmem", newMemDB())
	})
	m, err := NewMigrator("fitrankmem://schema", filepath.Join("..", "..", "migrations"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.Version(); !errors.Is(err, migrate.ErrNilVersion) {
		t.Fatalf("expected fresh schema, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
