package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add index for listing generations by time",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_generations_generated_at ON generations(generated_at DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_generations_generated_at;
		`,
	},
	{
		Version: 2,
		Name:    "Drop generation entries without an id",
		Up: `
			DELETE FROM generations WHERE id IS NULL OR id = '';
		`,
		Down: `
			-- Cannot restore deleted data
		`,
	},
}

// InitSchema creates all tables
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	-- The single previous-document slot; slot is always 1
	CREATE TABLE IF NOT EXISTS previous_document (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		id TEXT NOT NULL,
		version TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		document TEXT NOT NULL
	);

	-- Log of generation cycles
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		version TEXT NOT NULL,
		output_path TEXT,
		changed_lines INTEGER NOT NULL DEFAULT 0,
		total_lines INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
