package store

import (
	"sort"
	"strings"

	"funnel-cli/internal/model"
)

func (db *DB) FindUser(id string) (*model.User, bool) {
	for i := range db.Users {
		if db.Users[i].ID == id {
			return &db.Users[i], true
		}
	}
	return nil, false
}

func (db *DB) FindCompany(id string) (*model.Company, bool) {
	for i := range db.Companies {
		if db.Companies[i].ID == id {
			return &db.Companies[i], true
		}
	}
	return nil, false
}

func (db *DB) FindContact(id string) (*model.Contact, bool) {
	for i := range db.Contacts {
		if db.Contacts[i].ID == id {
			return &db.Contacts[i], true
		}
	}
	return nil, false
}

func (db *DB) FindPipeline(id string) (*model.Pipeline, bool) {
	for i := range db.Pipelines {
		if db.Pipelines[i].ID == id {
			return &db.Pipelines[i], true
		}
	}
	return nil, false
}

func (db *DB) FindStage(id string) (*model.Stage, bool) {
	for i := range db.Stages {
		if db.Stages[i].ID == id {
			return &db.Stages[i], true
		}
	}
	return nil, false
}

func (db *DB) FindDeal(id string) (*model.Deal, bool) {
	for i := range db.Deals {
		if db.Deals[i].ID == id {
			return &db.Deals[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func (db *DB) FindActivity(id string) (*model.Activity, bool) {
	for i := range db.Activities {
		if db.Activities[i].ID == id {
			return &db.Activities[i], true
		}
	}
	return nil, false
}

// ContactsByStatus returns contacts filtered to one status, name-sorted.
func (db *DB) ContactsByStatus(status model.ContactStatus) []model.Contact {
	var out []model.Contact
	for _, c := range db.Contacts {
		if c.Status == status {
			out = append(out, c)
		}
	}
	sortContacts(out)
	return out
}

func (db *DB) ContactsForCompany(companyID string) []model.Contact {
	var out []model.Contact
	for _, c := range db.Contacts {
		if c.CompanyID != nil && *c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	sortContacts(out)
	return out
}

func (db *DB) DealsForContact(contactID string) []model.Deal {
	db.ensureIndexes()
	return db.idxDealsByContact[contactID]
}

func (db *DB) DealsForCompany(companyID string) []model.Deal {
	var out []model.Deal
	for _, d := range db.Deals {
		if d.CompanyID != nil && *d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out
}

func (db *DB) DealsInStage(stageID string) []model.Deal {
	var out []model.Deal
	for _, d := range db.Deals {
		if d.StageID == stageID && d.Status == model.DealStatusOpen {
			out = append(out, d)
		}
	}
	return out
}

// DealsClosingIn returns open deals whose close date falls in month (YYYY-MM).
func (db *DB) DealsClosingIn(month string) []model.Deal {
	month = strings.TrimSpace(month)
	var out []model.Deal
	for _, d := range db.Deals {
		if d.Status == model.DealStatusOpen && d.CloseDate == month {
			out = append(out, d)
		}
	}
	return out
}

func (db *DB) TasksForContact(contactID string) []model.Task {
	db.ensureIndexes()
	return db.idxTasksByContact[contactID]
}

// ActivitiesForEntity returns activities attached to a contact or deal id,
// newest first.
func (db *DB) ActivitiesForEntity(entityID string) []model.Activity {
	db.ensureIndexes()
	out := append([]model.Activity(nil), db.idxActivitiesByEntity[entityID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

// ActivitiesForUser returns a user's activities, newest first, optionally
// bounded by from/to dates (YYYY-MM-DD, inclusive; empty means unbounded).
func (db *DB) ActivitiesForUser(userID, from, to string) []model.Activity {
	var out []model.Activity
	for _, a := range db.Activities {
		if a.UserID != userID {
			continue
		}
		day := a.OccurredAt.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

// StagesForPipeline returns the pipeline's stages in board order.
func (db *DB) StagesForPipeline(pipelineID string) []model.Stage {
	var out []model.Stage
	for _, st := range db.Stages {
		if st.PipelineID == pipelineID {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// OpenDealMonths returns the distinct close months (YYYY-MM) of open deals,
// ascending. Deals without a close date are skipped.
func (db *DB) OpenDealMonths() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range db.Deals {
		if d.Status != model.DealStatusOpen || strings.TrimSpace(d.CloseDate) == "" {
			continue
		}
		if !seen[d.CloseDate] {
			seen[d.CloseDate] = true
			out = append(out, d.CloseDate)
		}
	}
	sort.Strings(out)
	return out
}

func sortContacts(cs []model.Contact) {
	sort.SliceStable(cs, func(i, j int) bool {
		a := strings.ToLower(cs[i].LastName + " " + cs[i].FirstName)
		b := strings.ToLower(cs[j].LastName + " " + cs[j].FirstName)
		return a < b
	})
}
