package tui

import (
	"fmt"
	"strings"

	"funnel-cli/internal/drilldown"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

// Entity layer builders. Each fetches its own data from the store at mount
// time; the stack never sees those reads. Payload fields arrive read-only.

func fmtMoney(amount int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	whole := amount / 100
	return fmt.Sprintf("%s %s", currency, groupThousands(whole))
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func kv(label, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return styleMuted().Render(label+": ") + value
}

func contactLabel(c model.Contact) string {
	return fmt.Sprintf("%s  %s", c.FullName(), styleMuted().Render(string(c.Status)))
}

func pushContact(c model.Contact) *drilldown.Item {
	return &drilldown.Item{Type: drilldown.TagContactDetail, Title: c.FullName(), ContactID: c.ID}
}

func pushCompany(co model.Company) *drilldown.Item {
	return &drilldown.Item{Type: drilldown.TagCompanyDetail, Title: co.Name, CompanyID: co.ID}
}

func pushDeal(d model.Deal) *drilldown.Item {
	return &drilldown.Item{Type: drilldown.TagDealDetail, Title: d.Title, DealID: d.ID}
}

func pushTask(t model.Task) *drilldown.Item {
	return &drilldown.Item{Type: drilldown.TagTaskDetail, Title: t.Title, TaskID: t.ID}
}

func pushActivity(a model.Activity) *drilldown.Item {
	return &drilldown.Item{Type: drilldown.TagActivityDetail, Title: a.Summary, ActivityID: a.ID}
}

func contactsListLayer(db *store.DB, filters map[string]string) layerContent {
	var contacts []model.Contact
	if status := filters["status"]; status != "" {
		contacts = db.ContactsByStatus(model.ContactStatus(status))
	} else {
		contacts = append([]model.Contact(nil), db.Contacts...)
	}

	lc := layerContent{}
	if status := filters["status"]; status != "" {
		lc.body = append(lc.body, kv("Filter", "status = "+status), "")
	}
	if len(contacts) == 0 {
		lc.body = append(lc.body, styleMuted().Render("No contacts."))
		return lc
	}
	for _, c := range contacts {
		lc.rows = append(lc.rows, layerRow{label: contactLabel(c), push: pushContact(c)})
	}
	return lc
}

func contactDetailLayer(db *store.DB, contactID string, width int) layerContent {
	c, ok := db.FindContact(contactID)
	if !ok {
		return layerContent{notice: "Contact: not found"}
	}

	lc := layerContent{}
	lc.body = append(lc.body,
		kv("Email", c.Email),
		kv("Phone", c.Phone),
		kv("Status", string(c.Status)),
	)
	if u, ok := db.FindUser(c.OwnerID); ok {
		lc.body = append(lc.body, kv("Owner", u.Name))
	}
	if md := renderMarkdown(c.Notes, width); md != "" {
		lc.body = append(lc.body, "", md)
	}
	lc.body = append(lc.body, "")

	if c.CompanyID != nil {
		if co, ok := db.FindCompany(*c.CompanyID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Company: " + co.Name, push: pushCompany(*co)})
		}
	}
	for _, d := range db.DealsForContact(c.ID) {
		lc.rows = append(lc.rows, layerRow{
			label: fmt.Sprintf("Deal: %s  %s", d.Title, styleMuted().Render(fmtMoney(d.Amount, d.Currency))),
			push:  pushDeal(d),
		})
	}
	for _, t := range db.TasksForContact(c.ID) {
		state := "open"
		if t.Done {
			state = "done"
		}
		lc.rows = append(lc.rows, layerRow{
			label: fmt.Sprintf("Task: %s  %s", t.Title, styleMuted().Render(state)),
			push:  pushTask(t),
		})
	}
	for _, a := range db.ActivitiesForEntity(c.ID) {
		lc.rows = append(lc.rows, layerRow{
			label: fmt.Sprintf("%s: %s", a.Kind, a.Summary),
			push:  pushActivity(a),
		})
	}
	return lc
}

func companiesListLayer(db *store.DB) layerContent {
	lc := layerContent{}
	if len(db.Companies) == 0 {
		lc.body = append(lc.body, styleMuted().Render("No companies."))
		return lc
	}
	for _, co := range db.Companies {
		label := co.Name
		if co.Industry != "" {
			label += "  " + styleMuted().Render(co.Industry)
		}
		lc.rows = append(lc.rows, layerRow{label: label, push: pushCompany(co)})
	}
	return lc
}

func companyDetailLayer(db *store.DB, companyID string, width int) layerContent {
	co, ok := db.FindCompany(companyID)
	if !ok {
		return layerContent{notice: "Company: not found"}
	}

	lc := layerContent{}
	lc.body = append(lc.body,
		kv("Domain", co.Domain),
		kv("Industry", co.Industry),
	)
	if md := renderMarkdown(co.Notes, width); md != "" {
		lc.body = append(lc.body, "", md)
	}
	lc.body = append(lc.body, "")

	for _, c := range db.ContactsForCompany(co.ID) {
		lc.rows = append(lc.rows, layerRow{label: "Contact: " + contactLabel(c), push: pushContact(c)})
	}
	for _, d := range db.DealsForCompany(co.ID) {
		lc.rows = append(lc.rows, layerRow{
			label: fmt.Sprintf("Deal: %s  %s", d.Title, styleMuted().Render(fmtMoney(d.Amount, d.Currency))),
			push:  pushDeal(d),
		})
	}
	return lc
}

func dealsListLayer(db *store.DB, filters map[string]string) layerContent {
	lc := layerContent{}
	for _, d := range db.Deals {
		if st := filters["status"]; st != "" && string(d.Status) != st {
			continue
		}
		label := fmt.Sprintf("%s  %s  %s", d.Title, fmtMoney(d.Amount, d.Currency), styleMuted().Render(string(d.Status)))
		lc.rows = append(lc.rows, layerRow{label: label, push: pushDeal(d)})
	}
	if len(lc.rows) == 0 {
		lc.body = append(lc.body, styleMuted().Render("No deals."))
	}
	return lc
}

func dealDetailLayer(db *store.DB, dealID string, width int) layerContent {
	d, ok := db.FindDeal(dealID)
	if !ok {
		return layerContent{notice: "Deal: not found"}
	}

	lc := layerContent{}
	lc.body = append(lc.body,
		kv("Amount", fmtMoney(d.Amount, d.Currency)),
		kv("Status", string(d.Status)),
	)
	stage, hasStage := db.FindStage(d.StageID)
	if hasStage {
		lc.body = append(lc.body, kv("Stage", fmt.Sprintf("%s (%d%%)", stage.Name, stage.Probability)))
	}
	lc.body = append(lc.body, kv("Close", d.CloseDate))
	if md := renderMarkdown(d.Notes, width); md != "" {
		lc.body = append(lc.body, "", md)
	}
	lc.body = append(lc.body, "")

	if c, ok := db.FindContact(d.ContactID); ok {
		lc.rows = append(lc.rows, layerRow{label: "Contact: " + c.FullName(), push: pushContact(*c)})
	}
	if d.CompanyID != nil {
		if co, ok := db.FindCompany(*d.CompanyID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Company: " + co.Name, push: pushCompany(*co)})
		}
	}
	if hasStage {
		lc.rows = append(lc.rows, layerRow{
			label: "Stage board: " + stage.Name,
			push: &drilldown.Item{
				Type:       drilldown.TagPipelineStage,
				Title:      stage.Name,
				StageID:    stage.ID,
				StageName:  stage.Name,
				PipelineID: stage.PipelineID,
			},
		})
	}
	if d.CloseDate != "" {
		lc.rows = append(lc.rows, layerRow{
			label: "Forecast: " + d.CloseDate,
			push: &drilldown.Item{
				Type:       drilldown.TagForecastMonth,
				Title:      "Forecast " + d.CloseDate,
				Month:      d.CloseDate,
				MonthLabel: d.CloseDate,
			},
		})
	}
	for _, a := range db.ActivitiesForEntity(d.ID) {
		lc.rows = append(lc.rows, layerRow{
			label: fmt.Sprintf("%s: %s", a.Kind, a.Summary),
			push:  pushActivity(a),
		})
	}
	return lc
}

func tasksListLayer(db *store.DB) layerContent {
	lc := layerContent{}
	for _, t := range db.Tasks {
		state := "open"
		if t.Done {
			state = "done"
		}
		label := fmt.Sprintf("%s  %s", t.Title, styleMuted().Render(state))
		if t.DueDate != "" {
			label += styleMuted().Render("  due " + t.DueDate)
		}
		lc.rows = append(lc.rows, layerRow{label: label, push: pushTask(t)})
	}
	if len(lc.rows) == 0 {
		lc.body = append(lc.body, styleMuted().Render("No tasks."))
	}
	return lc
}

func taskDetailLayer(db *store.DB, taskID string, width int) layerContent {
	t, ok := db.FindTask(taskID)
	if !ok {
		return layerContent{notice: "Task: not found"}
	}

	lc := layerContent{}
	state := "open"
	if t.Done {
		state = "done"
	}
	lc.body = append(lc.body,
		kv("State", state),
		kv("Due", t.DueDate),
	)
	if md := renderMarkdown(t.Notes, width); md != "" {
		lc.body = append(lc.body, "", md)
	}
	lc.body = append(lc.body, "")

	if t.ContactID != nil {
		if c, ok := db.FindContact(*t.ContactID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Contact: " + c.FullName(), push: pushContact(*c)})
		}
	}
	if t.DealID != nil {
		if d, ok := db.FindDeal(*t.DealID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Deal: " + d.Title, push: pushDeal(*d)})
		}
	}
	return lc
}

func activitiesListLayer(db *store.DB) layerContent {
	lc := layerContent{}
	for _, a := range db.Activities {
		label := fmt.Sprintf("%s  %s  %s", a.OccurredAt.Format("2006-01-02"), a.Kind, a.Summary)
		lc.rows = append(lc.rows, layerRow{label: label, push: pushActivity(a)})
	}
	if len(lc.rows) == 0 {
		lc.body = append(lc.body, styleMuted().Render("No activities."))
	}
	return lc
}

func activityDetailLayer(db *store.DB, activityID string, width int) layerContent {
	a, ok := db.FindActivity(activityID)
	if !ok {
		return layerContent{notice: "Activity: not found"}
	}

	lc := layerContent{}
	lc.body = append(lc.body,
		kv("Kind", string(a.Kind)),
		kv("When", a.OccurredAt.Format("2006-01-02 15:04")),
	)
	if md := renderMarkdown(a.Body, width); md != "" {
		lc.body = append(lc.body, "", md)
	}
	lc.body = append(lc.body, "")

	if a.ContactID != nil {
		if c, ok := db.FindContact(*a.ContactID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Contact: " + c.FullName(), push: pushContact(*c)})
		}
	}
	if a.DealID != nil {
		if d, ok := db.FindDeal(*a.DealID); ok {
			lc.rows = append(lc.rows, layerRow{label: "Deal: " + d.Title, push: pushDeal(*d)})
		}
	}
	if u, ok := db.FindUser(a.UserID); ok {
		lc.rows = append(lc.rows, layerRow{
			label: "All activity by " + u.Name,
			push: &drilldown.Item{
				Type:     drilldown.TagUserActivity,
				Title:    u.Name + "'s activity",
				UserID:   u.ID,
				UserName: u.Name,
			},
		})
	}
	return lc
}

func userActivityLayer(db *store.DB, userID, userName, from, to string) layerContent {
	if userName == "" {
		if u, ok := db.FindUser(userID); ok {
			userName = u.Name
		}
	}

	lc := layerContent{}
	acts := db.ActivitiesForUser(userID, from, to)
	window := "all time"
	if from != "" || to != "" {
		window = strings.TrimSpace(from + " .. " + to)
	}
	lc.body = append(lc.body,
		kv("User", userName),
		kv("Window", window),
		kv("Activities", fmt.Sprintf("%d", len(acts))),
		"",
	)
	for _, a := range acts {
		label := fmt.Sprintf("%s  %s  %s", a.OccurredAt.Format("2006-01-02"), a.Kind, a.Summary)
		lc.rows = append(lc.rows, layerRow{label: label, push: pushActivity(a)})
	}
	return lc
}

func pipelineStageLayer(db *store.DB, stageID string) layerContent {
	stage, ok := db.FindStage(stageID)
	if !ok {
		return layerContent{notice: "Stage: not found"}
	}

	deals := db.DealsInStage(stage.ID)
	var total int64
	for _, d := range deals {
		total += d.Amount
	}

	lc := layerContent{}
	pipeName := ""
	if p, ok := db.FindPipeline(stage.PipelineID); ok {
		pipeName = p.Name
	}
	lc.body = append(lc.body,
		kv("Pipeline", pipeName),
		kv("Win probability", fmt.Sprintf("%d%%", stage.Probability)),
		kv("Open deals", fmt.Sprintf("%d", len(deals))),
		kv("Stage value", fmtMoney(total, "")),
		"",
	)
	for _, d := range deals {
		label := fmt.Sprintf("%s  %s", d.Title, styleMuted().Render(fmtMoney(d.Amount, d.Currency)))
		lc.rows = append(lc.rows, layerRow{label: label, push: pushDeal(d)})
	}
	return lc
}

func forecastMonthLayer(db *store.DB, month, monthLabel string) layerContent {
	if monthLabel == "" {
		monthLabel = month
	}
	deals := db.DealsClosingIn(month)

	var total, weighted int64
	for _, d := range deals {
		total += d.Amount
		if st, ok := db.FindStage(d.StageID); ok {
			weighted += d.Amount * int64(st.Probability) / 100
		}
	}

	lc := layerContent{}
	lc.body = append(lc.body,
		kv("Month", monthLabel),
		kv("Open deals", fmt.Sprintf("%d", len(deals))),
		kv("Pipeline value", fmtMoney(total, "")),
		kv("Weighted", fmtMoney(weighted, "")),
		"",
	)
	for _, d := range deals {
		label := fmt.Sprintf("%s  %s", d.Title, styleMuted().Render(fmtMoney(d.Amount, d.Currency)))
		lc.rows = append(lc.rows, layerRow{label: label, push: pushDeal(d)})
	}
	return lc
}
