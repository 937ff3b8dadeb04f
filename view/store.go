package view

import (
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Store is where the engine loads template sources from.
//
// Implementations must be thread-safe!
type Store interface {
	// Get returns the template with the given name, if it exists.
	Get(name string) (Template, bool, error)
	// Put stores the template, replacing one with the same name.
	Put(t Template) error
	// Purge removes the template with the given name.
	Purge(name string) error
	// Names returns the names of all stored templates, sorted.
	Names() ([]string, error)
}

// Template is a named template source.
// Modified is used for conditional responses and for reparsing.
type Template struct {
	Name     string
	Modified time.Time
	Source   string
}

type MemStore struct {
	mutex *sync.RWMutex
	db    map[string]Template
}

func NewMemStore() MemStore {
	return MemStore{
		mutex: &sync.RWMutex{},
		db:    make(map[string]Template),
	}
}

func (m MemStore) Get(name string) (Template, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	t, ok := m.db[name]
	return t, ok, nil
}

func (m MemStore) Put(t Template) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.db[t.Name] = t
	return nil
}

func (m MemStore) Purge(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.db, name)
	return nil
}

func (m MemStore) Names() ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.db))
	for name := range m.db {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore opens a store with the given filename as the db.
// If file name is empty, a shared in-memory db is opened.
func NewSQLiteStore(filename string) (SQLiteStore, error) {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return SQLiteStore{}, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS templates (
		name TEXT PRIMARY KEY,
		modified INTEGER,
		source TEXT
	)`)
	if err != nil {
		db.Close()
		return SQLiteStore{}, err
	}
	return SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

func (s SQLiteStore) Get(name string) (Template, bool, error) {
	t := Template{Name: name}
	var modified int64
	err := s.db.QueryRow("SELECT modified, source FROM templates WHERE name = ?", name).Scan(&modified, &t.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return t, false, nil
	}
	if err != nil {
		return t, false, err
	}
	t.Modified = time.Unix(0, modified)
	return t, true, nil
}

func (s SQLiteStore) Put(t Template) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("INSERT OR REPLACE INTO templates (name, modified, source) VALUES (?, ?, ?)",
		t.Name, t.Modified.UnixNano(), t.Source)
	return err
}

func (s SQLiteStore) Purge(name string) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM templates WHERE name = ?", name)
	return err
}

func (s SQLiteStore) Names() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM templates ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s SQLiteStore) Close() error {
	return s.db.Close()
}
