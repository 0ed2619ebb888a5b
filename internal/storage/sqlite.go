// Package storage provides SQLite-based persistence for seed search history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/search"
)

// Store manages the SQLite database connection for search history.
type Store struct {
	db *sql.DB
}

// SearchEntry represents one recorded seed search.
type SearchEntry struct {
	ID        int64
	Character heal.Character
	Target    []int32
	Min       uint32
	Max       uint32
	Limit     int
	Status    string // "found" or "not_found"
	Seed      uint32 // Zero unless Status is "found"
	Checked   uint64
	Position  uint32 // Generator position of the newest draw in the matched window
	CreatedAt time.Time
}

// Found reports whether the search matched a seed.
func (e SearchEntry) Found() bool {
	return e.Status == search.StatusFound.String()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			magic INTEGER NOT NULL,
			spell TEXT NOT NULL,
			serenity INTEGER NOT NULL DEFAULT 0,
			target TEXT NOT NULL,
			seed_min INTEGER NOT NULL,
			seed_max INTEGER NOT NULL,
			cycle_limit INTEGER NOT NULL,
			status TEXT NOT NULL,
			seed INTEGER,
			checked INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_searches_seed ON searches(seed);
		CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSearch records a finished search. Pending results are rejected since
// they carry no outcome.
// Implements search.ResultSaver.
func (s *Store) SaveSearch(req search.Request, res search.Result) error {
	_, err := s.InsertSearch(req, res)
	return err
}

// InsertSearch records a finished search and returns the ID of the
// inserted row.
func (s *Store) InsertSearch(req search.Request, res search.Result) (int64, error) {
	if res.Status == search.StatusPending {
		return 0, fmt.Errorf("storage: cannot save a search that has not run")
	}
	req = req.Normalize()

	var seed sql.NullInt64
	var position uint32
	if res.Found() {
		seed = sql.NullInt64{Int64: int64(res.Seed), Valid: true}
		if res.Window != nil {
			position = res.Window.Position()
		}
	}

	result, err := s.db.Exec(
		`INSERT INTO searches
		 (level, magic, spell, serenity, target, seed_min, seed_max, cycle_limit, status, seed, checked, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Character.Level,
		req.Character.Magic,
		req.Character.Spell.Name(),
		req.Character.Serenity,
		encodeTarget(req.Target),
		req.Min,
		req.Max,
		req.Limit,
		res.Status.String(),
		seed,
		int64(res.Checked),
		position,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Ensure Store implements ResultSaver
var _ search.ResultSaver = (*Store)(nil)

const selectSearch = `SELECT id, level, magic, spell, serenity, target, seed_min, seed_max,
		        cycle_limit, status, seed, checked, position, created_at
		 FROM searches`

// RecentSearches retrieves the most recent searches, newest first.
func (s *Store) RecentSearches(limit int) ([]SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectSearch+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query searches: %w", err)
	}
	return scanSearches(rows)
}

// SearchesBySeed retrieves every search that matched the given seed.
func (s *Store) SearchesBySeed(seed uint32) ([]SearchEntry, error) {
	rows, err := s.db.Query(selectSearch+`
		 WHERE seed = ?
		 ORDER BY created_at DESC, id DESC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query searches: %w", err)
	}
	return scanSearches(rows)
}

// SearchByID retrieves a single search. Returns nil if it does not exist.
func (s *Store) SearchByID(id int64) (*SearchEntry, error) {
	rows, err := s.db.Query(selectSearch+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query search: %w", err)
	}
	entries, err := scanSearches(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ClearSearches deletes the whole history.
func (s *Store) ClearSearches() error {
	_, err := s.db.Exec("DELETE FROM searches")
	if err != nil {
		return fmt.Errorf("storage: cannot clear searches: %w", err)
	}
	return nil
}

// HistoryStats contains aggregated statistics over the history.
type HistoryStats struct {
	Searches     int
	Found        int
	SeedsChecked int64
	LastSearch   time.Time
}

// Stats retrieves aggregated statistics for the history.
func (s *Store) Stats() (*HistoryStats, error) {
	stats := &HistoryStats{}
	var lastSearch any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'found' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(checked), 0),
		        MAX(created_at)
		 FROM searches`,
	).Scan(&stats.Searches, &stats.Found, &stats.SeedsChecked, &lastSearch)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastSearch = parseTime(lastSearch)

	return stats, nil
}

func scanSearches(rows *sql.Rows) ([]SearchEntry, error) {
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var (
			e         SearchEntry
			spell     string
			target    string
			seed      sql.NullInt64
			checked   int64
			createdAt any
		)
		if err := rows.Scan(
			&e.ID,
			&e.Character.Level,
			&e.Character.Magic,
			&spell,
			&e.Character.Serenity,
			&target,
			&e.Min,
			&e.Max,
			&e.Limit,
			&e.Status,
			&seed,
			&checked,
			&e.Position,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		e.Character.Spell = heal.SpellOrDefault(spell)
		e.Target = decodeTarget(target)
		if seed.Valid {
			e.Seed = uint32(seed.Int64)
		}
		e.Checked = uint64(checked)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// encodeTarget stores heals as a comma separated list.
func encodeTarget(target []int32) string {
	parts := make([]string, len(target))
	for i, v := range target {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, ",")
}

func decodeTarget(s string) []int32 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, int32(v))
	}
	return out
}
