package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"chalk/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the schema version a fully migrated database
// reports through user_version.
var CurrentSchemaVersion = len(migrations)

// migrations holds one DDL batch per schema version, applied in order.
var migrations = []string{
	// v1: plans table. The unique week index is partial so a soft-deleted
	// plan frees its week number for reuse.
	`
	CREATE TABLE IF NOT EXISTS plans (
	  id         TEXT PRIMARY KEY,
	  week_num   INTEGER NOT NULL,
	  unit       TEXT NOT NULL,
	  title      TEXT,
	  plan_json  TEXT NOT NULL,
	  days_count INTEGER NOT NULL,
	  created_at INTEGER NOT NULL,
	  updated_at INTEGER NOT NULL,
	  deleted_at INTEGER
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_week_num
	ON plans(week_num)
	WHERE deleted_at IS NULL;

	CREATE INDEX IF NOT EXISTS idx_plans_updated
	ON plans(updated_at DESC)
	WHERE deleted_at IS NULL;

	CREATE INDEX IF NOT EXISTS idx_plans_unit
	ON plans(unit)
	WHERE deleted_at IS NULL;
	`,
}

// Init opens (creating if needed) the SQLite database at baseDir/chalk.db
// and brings the schema up to date. Tests pass t.TempDir() as baseDir;
// production passes ~/.chalk.
func Init(baseDir string) (*sql.DB, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "exports")} {
		if err := ensurePrivateDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection, not just the
	// first one.
	dbPath := filepath.Join(baseDir, "chalk.db")
	database, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, step := range []func(*sql.DB) error{verifyWALMode, migrate} {
		if err := step(database); err != nil {
			database.Close()
			return nil, err
		}
	}

	// The file exists only after the first statement ran.
	_ = os.Chmod(dbPath, 0600)

	return database, nil
}

func ensurePrivateDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	// MkdirAll leaves an existing dir's mode alone; chmod is best-effort.
	_ = os.Chmod(dir, 0700)
	return nil
}

// ConfigurePool applies pool limits from config. Zero values leave the
// driver defaults in place.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate walks the schema forward from the stored user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	for v := version; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migration %d failed: %w", v+1, err)
		}
		if err := SetUserVersion(db, v+1); err != nil {
			return err
		}
	}
	return nil
}

func verifyWALMode(db *sql.DB) error {
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if mode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", mode)
	}
	return nil
}

// GetUserVersion reads the user_version pragma.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("PRAGMA user_version;").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion writes the user_version pragma.
func SetUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
