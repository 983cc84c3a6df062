package store

import (
	"time"

	"funnel-cli/internal/model"
)

func strp(s string) *string { return &s }

// Seed fills db with a small demo dataset so the TUI is explorable right
// after `funnel init`. No-op if the db already has contacts.
func (s Store) Seed(db *DB) {
	if len(db.Contacts) > 0 {
		return
	}

	now := time.Now().UTC()
	month := func(offset int) string { return now.AddDate(0, offset, 0).Format("2006-01") }

	user := model.User{ID: s.NextID(db, "user"), Name: "Sam Rivera", Email: "sam@funnel.local"}
	db.Users = append(db.Users, user)
	db.CurrentUserID = user.ID

	acme := model.Company{ID: s.NextID(db, "company"), Name: "Acme Corp", Domain: "acme.example", Industry: "Manufacturing", CreatedAt: now}
	globex := model.Company{ID: s.NextID(db, "company"), Name: "Globex", Domain: "globex.example", Industry: "Logistics", CreatedAt: now}
	db.Companies = append(db.Companies, acme, globex)

	jane := model.Contact{
		ID: s.NextID(db, "contact"), FirstName: "Jane", LastName: "Doe",
		Email: "jane.doe@acme.example", CompanyID: strp(acme.ID),
		Status: model.ContactStatusCustomer, OwnerID: user.ID,
		Notes:     "Prefers email. Renewal owner on the Acme account.\n\n- Signed original deal in Q1\n- Interested in the analytics add-on",
		CreatedAt: now, UpdatedAt: now,
	}
	omar := model.Contact{
		ID: s.NextID(db, "contact"), FirstName: "Omar", LastName: "Haddad",
		Email: "omar@globex.example", CompanyID: strp(globex.ID),
		Status: model.ContactStatusLead, OwnerID: user.ID,
		CreatedAt: now, UpdatedAt: now,
	}
	priya := model.Contact{
		ID: s.NextID(db, "contact"), FirstName: "Priya", LastName: "Nair",
		Email: "priya@acme.example", CompanyID: strp(acme.ID),
		Status: model.ContactStatusActive, OwnerID: user.ID,
		CreatedAt: now, UpdatedAt: now,
	}
	db.Contacts = append(db.Contacts, jane, omar, priya)

	pipe := model.Pipeline{ID: s.NextID(db, "pipe"), Name: "Sales"}
	db.Pipelines = append(db.Pipelines, pipe)
	stages := []model.Stage{
		{ID: s.NextID(db, "stage"), PipelineID: pipe.ID, Name: "Qualified", Order: 0, Probability: 20},
		{ID: s.NextID(db, "stage"), PipelineID: pipe.ID, Name: "Proposal", Order: 1, Probability: 50},
		{ID: s.NextID(db, "stage"), PipelineID: pipe.ID, Name: "Negotiation", Order: 2, Probability: 75},
	}
	db.Stages = append(db.Stages, stages...)

	db.Deals = append(db.Deals,
		model.Deal{
			ID: s.NextID(db, "deal"), Title: "Acme renewal", Amount: 4800000, Currency: "USD",
			ContactID: jane.ID, CompanyID: strp(acme.ID), PipelineID: pipe.ID, StageID: stages[2].ID,
			CloseDate: month(1), Status: model.DealStatusOpen, OwnerID: user.ID,
			Notes:     "Renewal plus the analytics add-on. Procurement wants net-60.",
			CreatedAt: now, UpdatedAt: now,
		},
		model.Deal{
			ID: s.NextID(db, "deal"), Title: "Globex pilot", Amount: 1200000, Currency: "USD",
			ContactID: omar.ID, CompanyID: strp(globex.ID), PipelineID: pipe.ID, StageID: stages[0].ID,
			CloseDate: month(2), Status: model.DealStatusOpen, OwnerID: user.ID,
			CreatedAt: now, UpdatedAt: now,
		},
		model.Deal{
			ID: s.NextID(db, "deal"), Title: "Acme expansion", Amount: 2400000, Currency: "USD",
			ContactID: priya.ID, CompanyID: strp(acme.ID), PipelineID: pipe.ID, StageID: stages[1].ID,
			CloseDate: month(1), Status: model.DealStatusOpen, OwnerID: user.ID,
			CreatedAt: now, UpdatedAt: now,
		},
	)

	db.Tasks = append(db.Tasks,
		model.Task{ID: s.NextID(db, "task"), Title: "Send renewal quote", ContactID: strp(jane.ID), DealID: strp(db.Deals[0].ID), DueDate: now.AddDate(0, 0, 3).Format("2006-01-02"), OwnerID: user.ID, CreatedAt: now},
		model.Task{ID: s.NextID(db, "task"), Title: "Qualify Globex requirements", ContactID: strp(omar.ID), DueDate: now.AddDate(0, 0, 7).Format("2006-01-02"), OwnerID: user.ID, CreatedAt: now},
	)

	db.Activities = append(db.Activities,
		model.Activity{
			ID: s.NextID(db, "act"), Kind: model.ActivityCall, Summary: "Renewal kickoff call",
			Body:      "Walked through the renewal scope.\n\n**Next step:** send quote by Friday.",
			ContactID: strp(jane.ID), DealID: strp(db.Deals[0].ID), UserID: user.ID,
			OccurredAt: now.AddDate(0, 0, -2),
		},
		model.Activity{
			ID: s.NextID(db, "act"), Kind: model.ActivityEmail, Summary: "Intro email to Globex",
			ContactID: strp(omar.ID), UserID: user.ID,
			OccurredAt: now.AddDate(0, 0, -1),
		},
		model.Activity{
			ID: s.NextID(db, "act"), Kind: model.ActivityNote, Summary: "Expansion sizing notes",
			Body:      "Priya's team needs ~40 extra seats.",
			ContactID: strp(priya.ID), DealID: strp(db.Deals[2].ID), UserID: user.ID,
			OccurredAt: now,
		},
	)

	db.invalidateIndexes()
}
