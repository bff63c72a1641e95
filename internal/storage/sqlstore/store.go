// Package sqlstore implements storage.Store on database/sql. It speaks two
// SQL dialects: SQLite (through modernc.org/sqlite or mattn/go-sqlite3) and
// PostgreSQL (through pgx).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/mcoot/gamestore/internal/storage"
)

// Driver names accepted by Open.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLite3 = "sqlite3" // mattn/go-sqlite3, needs cgo
	DriverPgx     = "pgx"
)

// Config controls how Open connects to the database.
type Config struct {
	Driver string
	DSN    string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

func (d dialect) migrationDir() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store is a SQL-backed implementation of storage.Store and
// storage.CatalogWriter.
type Store struct {
	db      *sql.DB
	dialect dialect
	driver  string
}

var (
	_ storage.Store         = (*Store)(nil)
	_ storage.CatalogWriter = (*Store)(nil)
)

// Open connects to the configured database, verifies it is reachable and
// applies pending migrations.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("sqlstore: dsn is required")
	}

	var (
		db  *sql.DB
		d   dialect
		err error
	)
	switch cfg.Driver {
	case DriverSQLite, DriverSQLite3:
		db, err = sql.Open(cfg.Driver, SQLiteDSN(cfg.Driver, dsn))
		if err != nil {
			return nil, fmt.Errorf("open %s db: %w", cfg.Driver, err)
		}
		d = dialectSQLite
	case DriverPgx:
		pgxCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*pgxCfg)
		d = dialectPostgres
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", cfg.Driver, err)
	}

	s := &Store{db: db, dialect: d, driver: cfg.Driver}
	if err := applyMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// SQLiteDSN appends the connection pragmas the store relies on (foreign keys,
// busy timeout, WAL) to a bare SQLite path. A DSN that already carries query
// parameters is returned unchanged.
func SQLiteDSN(driver, path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	if driver == DriverSQLite3 {
		return path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withConn runs fn on a connection taken from the pool. The connection goes
// back to the pool on every exit path.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

func (s *Store) q(query string) string {
	return s.dialect.rebind(query)
}
