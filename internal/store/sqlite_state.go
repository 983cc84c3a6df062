package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"funnel-cli/internal/model"

	_ "modernc.org/sqlite"
)

// LoadSQLite loads CRM state from .funnel/index.sqlite. If the sqlite state
// is empty but a legacy db.json exists, it imports db.json once and then
// loads from sqlite.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			legacy := NewDB()
			if err := json.Unmarshal(b, legacy); err != nil {
				return nil, fmt.Errorf("import db.json: %w", err)
			}
			if legacy.Version == 0 {
				legacy.Version = 1
			}
			if err := s.SaveSQLite(ctx, legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(st.Version)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "current_user_id", strings.TrimSpace(st.CurrentUserID)); err != nil {
		return err
	}

	// Replace-all strategy; the datasets are session-local and small.
	tables := []string{"users", "companies", "contacts", "pipelines", "stages", "deals", "tasks", "activities"}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, u := range st.Users {
		raw, _ := json.Marshal(u)
		if _, err := tx.ExecContext(ctx, `INSERT INTO users(id, json, updated_at_unixms) VALUES(?, ?, ?)`, u.ID, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, c := range st.Companies {
		raw, _ := json.Marshal(c)
		if _, err := tx.ExecContext(ctx, `INSERT INTO companies(id, name, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			c.ID, c.Name, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, c := range st.Contacts {
		raw, _ := json.Marshal(c)
		company := ""
		if c.CompanyID != nil {
			company = strings.TrimSpace(*c.CompanyID)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO contacts(id, company_id, status, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			c.ID, company, string(c.Status), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, p := range st.Pipelines {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO pipelines(id, json, updated_at_unixms) VALUES(?, ?, ?)`, p.ID, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, sg := range st.Stages {
		raw, _ := json.Marshal(sg)
		if _, err := tx.ExecContext(ctx, `INSERT INTO stages(id, pipeline_id, ord, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			sg.ID, sg.PipelineID, sg.Order, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, d := range st.Deals {
		raw, _ := json.Marshal(d)
		if _, err := tx.ExecContext(ctx, `INSERT INTO deals(id, contact_id, stage_id, status, close_date, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.ContactID, d.StageID, string(d.Status), strings.TrimSpace(d.CloseDate), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, t := range st.Tasks {
		raw, _ := json.Marshal(t)
		contact := ""
		if t.ContactID != nil {
			contact = strings.TrimSpace(*t.ContactID)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(id, contact_id, due_date, done, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			t.ID, contact, strings.TrimSpace(t.DueDate), boolToInt(t.Done), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, a := range st.Activities {
		raw, _ := json.Marshal(a)
		if _, err := tx.ExecContext(ctx, `INSERT INTO activities(id, user_id, kind, occurred_at_unixms, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			a.ID, a.UserID, string(a.Kind), a.OccurredAt.UTC().UnixMilli(), string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.SQLitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when the CLI and TUI touch the store together.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			status TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id);`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);`,
		`CREATE TABLE IF NOT EXISTS pipelines (
			id TEXT PRIMARY KEY,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stages (
			id TEXT PRIMARY KEY,
			pipeline_id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_stages_pipeline ON stages(pipeline_id);`,
		`CREATE TABLE IF NOT EXISTS deals (
			id TEXT PRIMARY KEY,
			contact_id TEXT NOT NULL,
			stage_id TEXT NOT NULL,
			status TEXT NOT NULL,
			close_date TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_deals_contact ON deals(contact_id);`,
		`CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage_id);`,
		`CREATE INDEX IF NOT EXISTS idx_deals_close ON deals(close_date);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			contact_id TEXT NOT NULL,
			due_date TEXT NOT NULL,
			done INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_contact ON tasks(contact_id);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			occurred_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id, occurred_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	qs := []string{
		`SELECT COUNT(1) FROM contacts`,
		`SELECT COUNT(1) FROM companies`,
		`SELECT COUNT(1) FROM users`,
	}
	for _, q := range qs {
		var n int
		if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			// Tables missing means empty state.
			return false, nil
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := NewDB()

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.CurrentUserID = readMeta("current_user_id")

	var err error
	if out.Users, err = readJSONRows[model.User](ctx, db, `SELECT json FROM users`); err != nil {
		return nil, err
	}
	if out.Companies, err = readJSONRows[model.Company](ctx, db, `SELECT json FROM companies`); err != nil {
		return nil, err
	}
	if out.Contacts, err = readJSONRows[model.Contact](ctx, db, `SELECT json FROM contacts`); err != nil {
		return nil, err
	}
	if out.Pipelines, err = readJSONRows[model.Pipeline](ctx, db, `SELECT json FROM pipelines`); err != nil {
		return nil, err
	}
	if out.Stages, err = readJSONRows[model.Stage](ctx, db, `SELECT json FROM stages`); err != nil {
		return nil, err
	}
	if out.Deals, err = readJSONRows[model.Deal](ctx, db, `SELECT json FROM deals`); err != nil {
		return nil, err
	}
	if out.Tasks, err = readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks`); err != nil {
		return nil, err
	}
	if out.Activities, err = readJSONRows[model.Activity](ctx, db, `SELECT json FROM activities`); err != nil {
		return nil, err
	}

	ensureNonNilSlices(out)
	return out, nil
}

func ensureNonNilSlices(db *DB) {
	if db.Users == nil {
		db.Users = []model.User{}
	}
	if db.Companies == nil {
		db.Companies = []model.Company{}
	}
	if db.Contacts == nil {
		db.Contacts = []model.Contact{}
	}
	if db.Pipelines == nil {
		db.Pipelines = []model.Pipeline{}
	}
	if db.Stages == nil {
		db.Stages = []model.Stage{}
	}
	if db.Deals == nil {
		db.Deals = []model.Deal{}
	}
	if db.Tasks == nil {
		db.Tasks = []model.Task{}
	}
	if db.Activities == nil {
		db.Activities = []model.Activity{}
	}
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
