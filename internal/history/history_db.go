package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gxrwes/CS2QuickSetup/internal/migrations"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// Fixed-width UTC timestamps sort correctly as text
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Manager persists the previous-document slot and the generation log in SQLite
type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to state database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

func (m *Manager) LoadPrevious() (types.PreviousDocument, error) {
	var doc types.PreviousDocument
	var generatedAt string

	err := m.db.QueryRow(`
		SELECT id, version, generated_at, document
		FROM previous_document
		WHERE slot = 1
	`).Scan(&doc.ID, &doc.Version, &generatedAt, &doc.Document)
	if errors.Is(err, sql.ErrNoRows) {
		return types.PreviousDocument{}, ErrNoPrevious
	}
	if err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to load previous document: %w", err)
	}

	doc.GeneratedAt, err = time.Parse(timestampLayout, generatedAt)
	if err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return doc, nil
}

func (m *Manager) StorePrevious(doc types.PreviousDocument) (types.PreviousDocument, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	_, err := m.db.Exec(`
		INSERT INTO previous_document (slot, id, version, generated_at, document)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			version = excluded.version,
			generated_at = excluded.generated_at,
			document = excluded.document
	`, doc.ID, doc.Version, doc.GeneratedAt.UTC().Format(timestampLayout), doc.Document)
	if err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to store previous document: %w", err)
	}

	return doc, nil
}

func (m *Manager) ClearPrevious() error {
	if _, err := m.db.Exec("DELETE FROM previous_document"); err != nil {
		return fmt.Errorf("failed to clear previous document: %w", err)
	}
	return nil
}

// Log records one generation cycle
func (m *Manager) Log(entry types.GenerationEntry) (types.GenerationEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.GeneratedAt.IsZero() {
		entry.GeneratedAt = time.Now()
	}

	_, err := m.db.Exec(`
		INSERT INTO generations (id, generated_at, version, output_path, changed_lines, total_lines)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.GeneratedAt.UTC().Format(timestampLayout), entry.Version, entry.OutputPath, entry.ChangedLines, entry.TotalLines)
	if err != nil {
		return types.GenerationEntry{}, fmt.Errorf("failed to log generation: %w", err)
	}

	return entry, nil
}

// List returns the most recent generations first; limit <= 0 returns all
func (m *Manager) List(limit int) ([]types.GenerationEntry, error) {
	query := `
		SELECT id, generated_at, version, COALESCE(output_path, ''), changed_lines, total_lines
		FROM generations
		ORDER BY generated_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var entries []types.GenerationEntry
	for rows.Next() {
		var entry types.GenerationEntry
		var generatedAt string
		if err := rows.Scan(&entry.ID, &generatedAt, &entry.Version, &entry.OutputPath, &entry.ChangedLines, &entry.TotalLines); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		entry.GeneratedAt, err = time.Parse(timestampLayout, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes the generation log and the previous document
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM generations"); err != nil {
		return fmt.Errorf("failed to clear generations: %w", err)
	}
	return m.ClearPrevious()
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM generations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get generation count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
