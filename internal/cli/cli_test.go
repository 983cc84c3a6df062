package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--dir", dir}, args...))
	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, dir, args...)
	if err != nil {
		t.Fatalf("funnel %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func seededStoreDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".funnel")
	mustRun(t, dir, "init", "--seed")
	return dir
}

func TestInit_SeedCreatesStore(t *testing.T) {
	dir := seededStoreDir(t)

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		t.Fatalf("load after init: %v", err)
	}
	if len(db.Contacts) == 0 || len(db.Deals) == 0 {
		t.Fatalf("seeded store empty: %d contacts, %d deals", len(db.Contacts), len(db.Deals))
	}
}

func TestContacts_ListTableAndStatusFilter(t *testing.T) {
	dir := seededStoreDir(t)

	out := mustRun(t, dir, "contacts", "list", "--format", "table")
	if !strings.Contains(out, "Jane Doe") || !strings.Contains(out, "NAME") {
		t.Fatalf("table output missing expected rows:\n%s", out)
	}

	out = mustRun(t, dir, "contacts", "list", "--status", "lead")
	var contacts []model.Contact
	if err := json.Unmarshal([]byte(out), &contacts); err != nil {
		t.Fatalf("list is not valid JSON: %v\n%s", err, out)
	}
	if len(contacts) != 1 || contacts[0].Status != model.ContactStatusLead {
		t.Fatalf("status filter returned %+v", contacts)
	}
}

func TestContacts_AddThenShow(t *testing.T) {
	dir := seededStoreDir(t)

	out := mustRun(t, dir, "contacts", "add", "Ada", "Lovelace", "--email", "ada@example.com")
	id := strings.TrimSpace(out)
	if !strings.HasPrefix(id, "contact-") {
		t.Fatalf("add printed %q, want a contact id", out)
	}

	out = mustRun(t, dir, "contacts", "show", id)
	if !strings.Contains(out, "ada@example.com") {
		t.Fatalf("show missing new contact:\n%s", out)
	}
}

func TestDeals_AddMoveClose(t *testing.T) {
	dir := seededStoreDir(t)

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	contact := db.Contacts[0]
	lastStage := db.Stages[len(db.Stages)-1]

	out := mustRun(t, dir, "deals", "add", "Test deal",
		"--contact", contact.ID, "--amount", "1500.50", "--close", "2026-12")
	id := strings.TrimSpace(out)

	mustRun(t, dir, "deals", "move", id, lastStage.ID)
	mustRun(t, dir, "deals", "close", id, "--lost")

	db, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	d, ok := db.FindDeal(id)
	if !ok {
		t.Fatalf("deal %s not persisted", id)
	}
	if d.Amount != 150050 {
		t.Fatalf("amount = %d, want 150050", d.Amount)
	}
	if d.StageID != lastStage.ID {
		t.Fatalf("stage = %s, want %s", d.StageID, lastStage.ID)
	}
	if d.Status != model.DealStatusLost {
		t.Fatalf("status = %s, want lost", d.Status)
	}
}

func TestTasks_DoneAndListFilter(t *testing.T) {
	dir := seededStoreDir(t)

	out := mustRun(t, dir, "tasks", "add", "Call Ada", "--due", "2026-09-01")
	id := strings.TrimSpace(out)
	mustRun(t, dir, "tasks", "done", id)

	out = mustRun(t, dir, "tasks", "list")
	if strings.Contains(out, id) {
		t.Fatalf("done task still listed as open:\n%s", out)
	}
	out = mustRun(t, dir, "tasks", "list", "--all")
	if !strings.Contains(out, id) {
		t.Fatalf("done task missing from --all:\n%s", out)
	}
}

func TestActivities_LogRequiresTarget(t *testing.T) {
	dir := seededStoreDir(t)

	if _, err := runCmd(t, dir, "activities", "log", "orphan note"); err == nil {
		t.Fatal("expected an error for an activity with no contact or deal")
	}
}

func TestForecast_WeightedByStageProbability(t *testing.T) {
	dir := seededStoreDir(t)

	out := mustRun(t, dir, "forecast")
	var months []monthForecast
	if err := json.Unmarshal([]byte(out), &months); err != nil {
		t.Fatalf("forecast is not valid JSON: %v\n%s", err, out)
	}
	if len(months) == 0 {
		t.Fatal("seeded store should forecast at least one month")
	}
	for _, mf := range months {
		if mf.Weighted > mf.Value {
			t.Fatalf("weighted %d exceeds value %d for %s", mf.Weighted, mf.Value, mf.Month)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "48000", want: 4800000},
		{in: "1500.50", want: 150050},
		{in: "0.5", want: 50},
		{in: "abc", wantErr: true},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseAmount(%q) succeeded, want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmount(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
