package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStub replaces the pgxpool constructors for the duration of a test and
// records what NewPostgresDB asked of them.
type pgStub struct {
	config   *pgxpool.Config
	pool     *pgxpool.Pool
	deadline bool
	closed   int

	parseErr error
	newErr   error
	pingErr  error
}

func stubPostgres(t *testing.T) *pgStub {
	t.Helper()
	origParse, origNew, origPing, origClose := parsePGConfig, newPGPool, pingPGPool, closePGPool
	t.Cleanup(func() {
		parsePGConfig, newPGPool, pingPGPool, closePGPool = origParse, origNew, origPing, origClose
	})

	s := &pgStub{config: &pgxpool.Config{}, pool: &pgxpool.Pool{}}
	parsePGConfig = func(dsn string) (*pgxpool.Config, error) {
		if s.parseErr != nil {
			return nil, s.parseErr
		}
		return s.config, nil
	}
	newPGPool = func(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
		_, s.deadline = ctx.Deadline()
		if s.newErr != nil {
			return nil, s.newErr
		}
		return s.pool, nil
	}
	pingPGPool = func(ctx context.Context, pool *pgxpool.Pool) error { return s.pingErr }
	closePGPool = func(pool *pgxpool.Pool) { s.closed++ }
	return s
}

func TestNewPostgresDB_Errors(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*pgStub)
		wantPrefix string
		wantClosed int
	}{
		{"parse", func(s *pgStub) { s.parseErr = errors.New("bad dsn") }, "parsing database config", 0},
		{"new pool", func(s *pgStub) { s.newErr = errors.New("refused") }, "creating connection pool", 0},
		{"ping closes pool", func(s *pgStub) { s.pingErr = errors.New("timeout") }, "pinging database", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stubPostgres(t)
			tt.setup(s)

			_, err := NewPostgresDB("postgres://fitrank@localhost/fitrank", DefaultPoolOptions())
			if err == nil || !strings.HasPrefix(err.Error(), tt.wantPrefix) {
				t.Fatalf("expected %q error, got %v", tt.wantPrefix, err)
			}
			if s.closed != tt.wantClosed {
				t.Fatalf("expected %d pool closes, got %d", tt.wantClosed, s.closed)
			}
		})
	}
}

func TestNewPostgresDB_ServerPoolDefaults(t *testing.T) {
	s := stubPostgres(t)

	db, err := NewPostgresDB("dsn", DefaultPoolOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Pool != s.pool {
		t.Fatal("expected the constructed pool")
	}
	got := PoolOptions{
		MaxConns:          s.config.MaxConns,
		MinConns:          s.config.MinConns,
		MaxConnLifetime:   s.config.MaxConnLifetime,
		MaxConnIdleTime:   s.config.MaxConnIdleTime,
		HealthCheckPeriod: s.config.HealthCheckPeriod,
		ConnectTimeout:    DefaultPoolOptions().ConnectTimeout,
	}
	if got != DefaultPoolOptions() {
		t.Fatalf("expected default pool options applied, got %+v", got)
	}
}

func TestNewPostgresDB_CLIPool(t *testing.T) {
	s := stubPostgres(t)

	// The admin CLI runs with a small pool and no explicit connect timeout.
	opts := DefaultPoolOptions()
	opts.MaxConns, opts.MinConns, opts.ConnectTimeout = 4, 1, 0
	if _, err := NewPostgresDB("dsn", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.config.MaxConns != 4 || s.config.MinConns != 1 {
		t.Fatalf("expected pool 1..4, got %d..%d", s.config.MinConns, s.config.MaxConns)
	}
	if !s.deadline {
		t.Fatal("expected a connect deadline even without a configured timeout")
	}
}

func TestPostgresDB_HealthAndClose(t *testing.T) {
	s := stubPostgres(t)
	db := &PostgresDB{Pool: s.pool}

	if err := db.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
	s.pingErr = errors.New("connection reset")
	if err := db.Health(context.Background()); !errors.Is(err, s.pingErr) {
		t.Fatalf("expected ping error, got %v", err)
	}

	db.Close()
	(&PostgresDB{}).Close()
	if s.closed != 1 {
		t.Fatalf("expected one pool close, got %d", s.closed)
	}
}

func TestDefaultPoolOptions_Bounds(t *testing.T) {
	opts := DefaultPoolOptions()
	if opts.MinConns > opts.MaxConns {
		t.Fatalf("min conns %d exceeds max %d", opts.MinConns, opts.MaxConns)
	}
	if opts.ConnectTimeout <= 0 || opts.ConnectTimeout > time.Minute {
		t.Fatalf("unexpected connect timeout %v", opts.ConnectTimeout)
	}
}
