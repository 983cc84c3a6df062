// Package drilldown holds the navigation stack behind the TUI's layered
// record overlays: push a related record on top, walk back via breadcrumbs.
// It is pure state management and has no rendering or terminal dependencies.
package drilldown

// Tag identifies which view renders a stack item. The set is closed: adding a
// drill-down target means adding a tag here and a branch in the TUI dispatcher
// together.
type Tag string

const (
	TagContactsList     Tag = "contacts-list"
	TagContactDetail    Tag = "contact-detail"
	TagContactsByStatus Tag = "contacts-by-status"
	TagCompaniesList    Tag = "companies-list"
	TagCompanyDetail    Tag = "company-detail"
	TagDealsList        Tag = "deals-list"
	TagDealDetail       Tag = "deal-detail"
	TagTasksList        Tag = "tasks-list"
	TagTaskDetail       Tag = "task-detail"
	TagActivitiesList   Tag = "activities-list"
	TagActivityDetail   Tag = "activity-detail"
	TagUserActivity     Tag = "user-activity"
	TagPipelineStage    Tag = "pipeline-stage"
	TagForecastMonth    Tag = "forecast-month"
)

// Tags lists every known tag. Used by tests to assert dispatcher coverage.
func Tags() []Tag {
	return []Tag{
		TagContactsList,
		TagContactDetail,
		TagContactsByStatus,
		TagCompaniesList,
		TagCompanyDetail,
		TagDealsList,
		TagDealDetail,
		TagTasksList,
		TagTaskDetail,
		TagActivitiesList,
		TagActivityDetail,
		TagUserActivity,
		TagPipelineStage,
		TagForecastMonth,
	}
}

// KnownTag reports whether t is in the closed tag set.
func KnownTag(t Tag) bool {
	switch t {
	case TagContactsList, TagContactDetail, TagContactsByStatus,
		TagCompaniesList, TagCompanyDetail,
		TagDealsList, TagDealDetail,
		TagTasksList, TagTaskDetail,
		TagActivitiesList, TagActivityDetail,
		TagUserActivity, TagPipelineStage, TagForecastMonth:
		return true
	}
	return false
}

// Item is one entry on the navigation stack. ID is assigned by Push and is
// unique for the lifetime of the session (never reused, including after a
// pop). Title is used verbatim as the breadcrumb label. The payload fields
// relevant to Type are set at push time and never mutated afterwards; opening
// a changed view is a new push, not an edit.
type Item struct {
	ID    string
	Type  Tag
	Title string

	// Detail payloads.
	ContactID  string
	CompanyID  string
	DealID     string
	TaskID     string
	ActivityID string

	// Pipeline stage payload.
	StageID    string
	StageName  string
	PipelineID string

	// Forecast month payload (Month is YYYY-MM).
	Month      string
	MonthLabel string

	// User activity payload. DateFrom/DateTo are optional YYYY-MM-DD bounds.
	UserID   string
	UserName string
	DateFrom string
	DateTo   string

	// Status scopes contacts-by-status.
	Status string

	// Filters scopes list views. List tags without an explicit Filters map get
	// one synthesized by the dispatcher (e.g. contacts-by-status => status).
	Filters map[string]string
}
