package tui

import (
	"funnel-cli/internal/drilldown"
	"funnel-cli/internal/store"
)

// layerRow is one navigable row inside a layer: selecting it and pressing
// enter pushes row.push onto the stack. Rows with a nil push are display-only.
type layerRow struct {
	label string
	push  *drilldown.Item
}

// layerContent is what the dispatcher produces for one layer: already-styled
// body lines followed by navigable rows. notice carries a data problem local
// to this layer ("Contact: not found"); it never touches the stack.
type layerContent struct {
	body   []string
	rows   []layerRow
	notice string
}

// filtersFor returns the filter set a list layer renders under. List items
// pushed without an explicit Filters map get one synthesized from their
// scoping payload, so list views have a single input shape.
func filtersFor(it drilldown.Item) map[string]string {
	if it.Filters != nil {
		return it.Filters
	}
	switch it.Type {
	case drilldown.TagContactsByStatus:
		return map[string]string{"status": it.Status}
	case drilldown.TagUserActivity:
		f := map[string]string{"user": it.UserID}
		if it.DateFrom != "" {
			f["from"] = it.DateFrom
		}
		if it.DateTo != "" {
			f["to"] = it.DateTo
		}
		return f
	}
	return nil
}

// buildLayerContent is the content dispatcher: a total function over the
// closed tag set. Each branch extracts exactly the payload fields its view
// needs. The default branch renders a fixed placeholder for values outside
// the known set; it must never be reachable from any push in this repo and
// exists as the union's only recovery path.
func buildLayerContent(db *store.DB, it drilldown.Item, width int) layerContent {
	switch it.Type {
	case drilldown.TagContactsList:
		return contactsListLayer(db, filtersFor(it))
	case drilldown.TagContactsByStatus:
		return contactsListLayer(db, filtersFor(it))
	case drilldown.TagContactDetail:
		return contactDetailLayer(db, it.ContactID, width)
	case drilldown.TagCompaniesList:
		return companiesListLayer(db)
	case drilldown.TagCompanyDetail:
		return companyDetailLayer(db, it.CompanyID, width)
	case drilldown.TagDealsList:
		return dealsListLayer(db, filtersFor(it))
	case drilldown.TagDealDetail:
		return dealDetailLayer(db, it.DealID, width)
	case drilldown.TagTasksList:
		return tasksListLayer(db)
	case drilldown.TagTaskDetail:
		return taskDetailLayer(db, it.TaskID, width)
	case drilldown.TagActivitiesList:
		return activitiesListLayer(db)
	case drilldown.TagActivityDetail:
		return activityDetailLayer(db, it.ActivityID, width)
	case drilldown.TagUserActivity:
		return userActivityLayer(db, it.UserID, it.UserName, it.DateFrom, it.DateTo)
	case drilldown.TagPipelineStage:
		return pipelineStageLayer(db, it.StageID)
	case drilldown.TagForecastMonth:
		return forecastMonthLayer(db, it.Month, it.MonthLabel)
	default:
		return layerContent{
			body: []string{
				"Unknown drill-down type",
				"",
				styleMuted().Render("This view cannot be rendered (" + string(it.Type) + ")."),
			},
		}
	}
}
