package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/gamestore/internal/storage/sqlstore/migrations"
)

const migrationTable = "schema_migrations"

// applyMigrations executes the embedded migrations for d, each file at most
// once, recording applied files in schema_migrations.
func applyMigrations(ctx context.Context, db *sql.DB, d dialect) error {
	root := d.migrationDir()
	entries, err := fs.ReadDir(migrations.FS, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		name := path.Join(root, file)
		applied, err := isApplied(ctx, db, d, name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := applyMigration(ctx, db, d, name, extractUpMigration(string(content))); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, d dialect, name, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range splitStatements(upSQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil && !isAlreadyExists(err) {
			return err
		}
	}

	insert := d.rebind(`INSERT INTO ` + migrationTable + ` (name, applied_at) VALUES (?, ?)`)
	if _, err := tx.ExecContext(ctx, insert, name, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}

func isApplied(ctx context.Context, db *sql.DB, d dialect, name string) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, d.rebind(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`), name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// extractUpMigration returns the SQL in the "-- +migrate Up" section, or the
// whole file when it has no markers.
func extractUpMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(up):]
	if downIdx := strings.Index(rest, down); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// splitStatements breaks a migration into single statements. Migrations must
// not contain semicolons inside literals.
func splitStatements(sqlText string) []string {
	var stmts []string
	for _, part := range strings.Split(sqlText, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func isAlreadyExists(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
