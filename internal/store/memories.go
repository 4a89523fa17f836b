package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iammorganparry/memomap/internal/models"
)

// ErrNotFound is returned when an operation targets an id that is not in the
// collection, for example after a marker for a deleted memory is clicked.
var ErrNotFound = errors.New("memory not found")

// memoryColumns is the canonical column list for all SELECT queries.
// Order must match scanOne/scanMany.
const memoryColumns = `id, title, description, date, mood, lat, lng, created_at`

// MemoryStore handles Memory CRUD operations on SQLite.
type MemoryStore struct {
	db *DB
}

func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Insert stores a new memory. The caller must set all fields including ID and CreatedAt.
func (s *MemoryStore) Insert(m *models.Memory) error {
	_, err := s.db.Exec(`
		INSERT INTO memories (id, title, description, date, mood, lat, lng, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Description, m.Date, string(m.Mood), m.Lat, m.Lng, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert memory: %w", err)
	}
	return nil
}

// GetByID fetches a single memory by ID. Returns (nil, nil) when absent.
func (s *MemoryStore) GetByID(id int64) (*models.Memory, error) {
	m, err := scanOne(s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM memories WHERE id = ?`, memoryColumns), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// Update replaces every mutable field of a memory. created_at is deliberately
// not in the SET list: it never changes after creation.
func (s *MemoryStore) Update(m *models.Memory) error {
	res, err := s.db.Exec(`
		UPDATE memories SET title = ?, description = ?, date = ?, mood = ?, lat = ?, lng = ?
		WHERE id = ?
	`, m.Title, m.Description, m.Date, string(m.Mood), m.Lat, m.Lng, m.ID)
	if err != nil {
		return fmt.Errorf("update memory: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("update memory %d: %w", m.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a memory by ID.
func (s *MemoryStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delete memory %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns the memories matching the filter, oldest first. Absent filter
// fields match everything; dates compare lexicographically since they are
// stored as ISO YYYY-MM-DD text.
func (s *MemoryStore) List(f models.Filter) ([]*models.Memory, error) {
	where := []string{"1=1"}
	args := []any{}

	if f.Mood != "" {
		where = append(where, "mood = ?")
		args = append(args, string(f.Mood))
	}
	if f.From != "" {
		where = append(where, "date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "date <= ?")
		args = append(args, f.To)
	}

	query := fmt.Sprintf(`SELECT %s FROM memories WHERE %s ORDER BY created_at, id`,
		memoryColumns, strings.Join(where, " AND "))
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()
	return scanMany(rows)
}

// Random returns one memory chosen uniformly at random, or (nil, nil) when
// the collection is empty.
func (s *MemoryStore) Random() (*models.Memory, error) {
	m, err := scanOne(s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM memories ORDER BY RANDOM() LIMIT 1`, memoryColumns)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// ExportAll returns the whole collection, oldest first.
func (s *MemoryStore) ExportAll() ([]*models.Memory, error) {
	return s.List(models.Filter{})
}

// ReplaceAll swaps the entire collection for the supplied records inside one
// transaction. On any failure the prior collection is retained.
func (s *MemoryStore) ReplaceAll(memories []*models.Memory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM memories`); err != nil {
		return fmt.Errorf("clear memories: %w", err)
	}
	for _, m := range memories {
		_, err := tx.Exec(`
			INSERT INTO memories (id, title, description, date, mood, lat, lng, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, m.ID, m.Title, m.Description, m.Date, string(m.Mood), m.Lat, m.Lng, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("import memory %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row rowScanner) (*models.Memory, error) {
	var m models.Memory
	var mood string
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Date, &mood, &m.Lat, &m.Lng, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Mood = models.Mood(mood)
	return &m, nil
}

func scanMany(rows *sql.Rows) ([]*models.Memory, error) {
	var memories []*models.Memory
	for rows.Next() {
		m, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}
