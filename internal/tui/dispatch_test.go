package tui

import (
	"strings"
	"testing"

	"funnel-cli/internal/drilldown"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func seededDB(t *testing.T) *store.DB {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	db := store.NewDB()
	s.Seed(db)
	return db
}

// itemForTag builds a pushable item with a valid payload for every known tag,
// drawn from the seeded dataset.
func itemForTag(t *testing.T, db *store.DB, tag drilldown.Tag) drilldown.Item {
	t.Helper()
	it := drilldown.Item{Type: tag, Title: string(tag)}
	switch tag {
	case drilldown.TagContactDetail:
		it.ContactID = db.Contacts[0].ID
	case drilldown.TagContactsByStatus:
		it.Status = string(model.ContactStatusLead)
	case drilldown.TagCompanyDetail:
		it.CompanyID = db.Companies[0].ID
	case drilldown.TagDealDetail:
		it.DealID = db.Deals[0].ID
	case drilldown.TagTaskDetail:
		it.TaskID = db.Tasks[0].ID
	case drilldown.TagActivityDetail:
		it.ActivityID = db.Activities[0].ID
	case drilldown.TagUserActivity:
		it.UserID = db.Users[0].ID
		it.UserName = db.Users[0].Name
	case drilldown.TagPipelineStage:
		it.StageID = db.Stages[0].ID
		it.StageName = db.Stages[0].Name
		it.PipelineID = db.Stages[0].PipelineID
	case drilldown.TagForecastMonth:
		months := db.OpenDealMonths()
		if len(months) == 0 {
			t.Fatal("seed produced no open deal months")
		}
		it.Month = months[0]
		it.MonthLabel = months[0]
	}
	return it
}

func contentText(lc layerContent) string {
	var b strings.Builder
	b.WriteString(lc.notice)
	for _, ln := range lc.body {
		b.WriteString(ln)
		b.WriteString("\n")
	}
	for _, r := range lc.rows {
		b.WriteString(r.label)
		b.WriteString("\n")
	}
	return b.String()
}

func TestBuildLayerContent_TotalOverKnownTags(t *testing.T) {
	db := seededDB(t)

	for _, tag := range drilldown.Tags() {
		it := itemForTag(t, db, tag)
		lc := buildLayerContent(db, it, 60)
		text := contentText(lc)
		if strings.Contains(text, "Unknown drill-down type") {
			t.Fatalf("tag %s fell through to the placeholder", tag)
		}
		if strings.TrimSpace(stripANSIEscapes(text)) == "" {
			t.Fatalf("tag %s produced empty content", tag)
		}
	}
}

func TestBuildLayerContent_UnknownTagPlaceholder(t *testing.T) {
	db := seededDB(t)

	lc := buildLayerContent(db, drilldown.Item{Type: "campaign-detail", Title: "Campaign"}, 60)
	if len(lc.body) == 0 || lc.body[0] != "Unknown drill-down type" {
		t.Fatalf("expected placeholder body, got %+v", lc.body)
	}
	if len(lc.rows) != 0 {
		t.Fatalf("placeholder must not offer navigation, got %d rows", len(lc.rows))
	}
}

func TestBuildLayerContent_MissingRecordNotice(t *testing.T) {
	db := seededDB(t)

	lc := buildLayerContent(db, drilldown.Item{Type: drilldown.TagContactDetail, ContactID: "contact-gone"}, 60)
	if lc.notice != "Contact: not found" {
		t.Fatalf("notice = %q", lc.notice)
	}
}

func TestFiltersFor_SynthesizesFromPayload(t *testing.T) {
	f := filtersFor(drilldown.Item{Type: drilldown.TagContactsByStatus, Status: "lead"})
	if f["status"] != "lead" {
		t.Fatalf("status filter = %q", f["status"])
	}

	f = filtersFor(drilldown.Item{
		Type:     drilldown.TagUserActivity,
		UserID:   "user-1",
		DateFrom: "2026-01-01",
		DateTo:   "2026-01-31",
	})
	if f["user"] != "user-1" || f["from"] != "2026-01-01" || f["to"] != "2026-01-31" {
		t.Fatalf("user activity filters = %v", f)
	}

	explicit := map[string]string{"status": "customer"}
	f = filtersFor(drilldown.Item{Type: drilldown.TagContactsList, Filters: explicit})
	if f["status"] != "customer" {
		t.Fatalf("explicit filters must pass through, got %v", f)
	}
}

func TestContactsListLayer_StatusFilter(t *testing.T) {
	db := seededDB(t)

	lc := contactsListLayer(db, map[string]string{"status": "lead"})
	if len(lc.rows) != 1 {
		t.Fatalf("expected 1 lead, got %d rows", len(lc.rows))
	}
	if !strings.Contains(lc.rows[0].label, "Omar Haddad") {
		t.Fatalf("unexpected lead row %q", lc.rows[0].label)
	}

	all := contactsListLayer(db, nil)
	if len(all.rows) != len(db.Contacts) {
		t.Fatalf("unfiltered list has %d rows, want %d", len(all.rows), len(db.Contacts))
	}
}

func TestDetailLayers_OfferDrillDownRows(t *testing.T) {
	db := seededDB(t)

	// Contact detail of a contact with a company and deals must let the user
	// drill into both.
	jane, ok := db.FindContact(db.Deals[0].ContactID)
	if !ok {
		t.Fatal("seed deal has no contact")
	}
	lc := contactDetailLayer(db, jane.ID, 60)
	var sawCompany, sawDeal bool
	for _, r := range lc.rows {
		if r.push == nil {
			continue
		}
		switch r.push.Type {
		case drilldown.TagCompanyDetail:
			sawCompany = true
		case drilldown.TagDealDetail:
			sawDeal = true
		}
	}
	if !sawCompany || !sawDeal {
		t.Fatalf("contact detail rows missing drill-downs: company=%v deal=%v", sawCompany, sawDeal)
	}

	// Deal detail must link back to its contact plus stage and forecast views.
	dlc := dealDetailLayer(db, db.Deals[0].ID, 60)
	var sawContact, sawStage, sawForecast bool
	for _, r := range dlc.rows {
		if r.push == nil {
			continue
		}
		switch r.push.Type {
		case drilldown.TagContactDetail:
			sawContact = true
		case drilldown.TagPipelineStage:
			sawStage = true
		case drilldown.TagForecastMonth:
			sawForecast = true
		}
	}
	if !sawContact || !sawStage || !sawForecast {
		t.Fatalf("deal detail rows missing drill-downs: contact=%v stage=%v forecast=%v",
			sawContact, sawStage, sawForecast)
	}
}

func TestForecastMonthLayer_WeightedTotal(t *testing.T) {
	db := seededDB(t)
	months := db.OpenDealMonths()

	lc := forecastMonthLayer(db, months[0], "")
	text := contentText(lc)
	if !strings.Contains(text, "Weighted") {
		t.Fatalf("forecast layer missing weighted total: %q", text)
	}
	if len(lc.rows) != len(db.DealsClosingIn(months[0])) {
		t.Fatalf("forecast rows = %d, want %d", len(lc.rows), len(db.DealsClosingIn(months[0])))
	}
}

func TestFmtMoney(t *testing.T) {
	cases := []struct {
		cents    int64
		currency string
		want     string
	}{
		{4800000, "USD", "USD 48,000"},
		{150000, "", "USD 1,500"},
		{-250000, "EUR", "EUR -2,500"},
		{9900, "USD", "USD 99"},
	}
	for _, c := range cases {
		if got := fmtMoney(c.cents, c.currency); got != c.want {
			t.Errorf("fmtMoney(%d, %q) = %q, want %q", c.cents, c.currency, got, c.want)
		}
	}
}
