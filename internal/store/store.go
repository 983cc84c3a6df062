package store

import (
	"context"
	"os"
	"path/filepath"

	"funnel-cli/internal/model"
)

const (
	dbFileName     = "db.json"
	sqliteFileName = "index.sqlite"
)

type DB struct {
	Version       int    `json:"version"`
	CurrentUserID string `json:"currentUserId,omitempty"`

	Users      []model.User     `json:"users"`
	Companies  []model.Company  `json:"companies"`
	Contacts   []model.Contact  `json:"contacts"`
	Pipelines  []model.Pipeline `json:"pipelines"`
	Stages     []model.Stage    `json:"stages"`
	Deals      []model.Deal     `json:"deals"`
	Tasks      []model.Task     `json:"tasks"`
	Activities []model.Activity `json:"activities"`

	// Derived indexes for fast per-record lookups in the TUI. Not persisted.
	idxBuilt              bool                        `json:"-"`
	idxDealsByContact     map[string][]model.Deal     `json:"-"`
	idxActivitiesByEntity map[string][]model.Activity `json:"-"`
	idxTasksByContact     map[string][]model.Task     `json:"-"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .funnel directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".funnel")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".funnel"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// SQLite is the source of truth. LoadSQLite auto-imports a legacy db.json
	// once if the sqlite state is empty.
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	db.invalidateIndexes()
	return s.SaveSQLite(context.Background(), db)
}

func NewDB() *DB {
	return &DB{
		Version:    1,
		Users:      []model.User{},
		Companies:  []model.Company{},
		Contacts:   []model.Contact{},
		Pipelines:  []model.Pipeline{},
		Stages:     []model.Stage{},
		Deals:      []model.Deal{},
		Tasks:      []model.Task{},
		Activities: []model.Activity{},
	}
}

func (db *DB) invalidateIndexes() {
	db.idxBuilt = false
	db.idxDealsByContact = nil
	db.idxActivitiesByEntity = nil
	db.idxTasksByContact = nil
}

func (db *DB) ensureIndexes() {
	if db == nil || db.idxBuilt {
		return
	}
	db.idxDealsByContact = map[string][]model.Deal{}
	for _, d := range db.Deals {
		db.idxDealsByContact[d.ContactID] = append(db.idxDealsByContact[d.ContactID], d)
	}
	db.idxActivitiesByEntity = map[string][]model.Activity{}
	for _, a := range db.Activities {
		if a.ContactID != nil && *a.ContactID != "" {
			db.idxActivitiesByEntity[*a.ContactID] = append(db.idxActivitiesByEntity[*a.ContactID], a)
		}
		if a.DealID != nil && *a.DealID != "" {
			db.idxActivitiesByEntity[*a.DealID] = append(db.idxActivitiesByEntity[*a.DealID], a)
		}
	}
	db.idxTasksByContact = map[string][]model.Task{}
	for _, t := range db.Tasks {
		if t.ContactID != nil && *t.ContactID != "" {
			db.idxTasksByContact[*t.ContactID] = append(db.idxTasksByContact[*t.ContactID], t)
		}
	}
	db.idxBuilt = true
}
