package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DBPathEnv overrides the database location when set.
const DBPathEnv = "SKILLPLAN_DB_PATH"

// DefaultDBPath returns the default SkillPlan DB location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".skillplan", "skillplan.db"), nil
}

// ResolveDBPath picks the DB path: explicit override, then $SKILLPLAN_DB_PATH, then the default.
func ResolveDBPath(override string) (string, error) {
	if p := strings.TrimSpace(override); p != "" {
		return expandHome(p)
	}
	if p := strings.TrimSpace(os.Getenv(DBPathEnv)); p != "" {
		return expandHome(p)
	}
	return DefaultDBPath()
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(p, "~")), nil
}

// Open opens (and creates if missing) the SQLite database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite has a single writer; one connection avoids SQLITE_BUSY between tx and non-tx calls.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
