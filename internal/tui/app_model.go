package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"funnel-cli/internal/drilldown"
	"funnel-cli/internal/store"
)

// Base-screen tabs. Drill-down layers open on top of whichever tab is active.
const (
	tabContacts = iota
	tabCompanies
	tabDeals
	tabTasks
	tabActivities
	tabCount
)

var tabTitles = [tabCount]string{"Contacts", "Companies", "Deals", "Tasks", "Activities"}

// entityItem adapts a record to the bubbles list. id/prefix let enter resolve
// which drill-down item to push without re-deriving the record.
type entityItem struct {
	id    string
	title string
	desc  string
	push  drilldown.Item
}

func (e entityItem) Title() string       { return e.title }
func (e entityItem) Description() string { return e.desc }
func (e entityItem) FilterValue() string { return e.title }

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB

	width  int
	height int
	// seenWindowSize gates the first real render; before the first
	// WindowSizeMsg every width-dependent computation would be garbage.
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	activeTab int
	lists     [tabCount]list.Model

	stack  *drilldown.Stack
	layers map[string]*layerView

	minibufferText string
	minibufferSeq  int

	lastSQLiteMod time.Time

	debugLog *os.File
}

type resizeDoneMsg struct{ seq int }
type minibufferClearMsg struct{ seq int }
type reloadTickMsg struct{}

func newAppModel(s store.Store, db *store.DB) appModel {
	m := appModel{
		store:  s,
		dir:    s.Dir,
		db:     db,
		stack:  drilldown.New(),
		layers: map[string]*layerView{},
	}
	if path := os.Getenv("FUNNEL_TUI_DEBUG_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			m.debugLog = f
		}
	}
	if st, err := os.Stat(s.SQLitePath()); err == nil {
		m.lastSQLiteMod = st.ModTime()
	}
	for i := range m.lists {
		m.lists[i] = newList(tabTitles[i])
	}
	m.rebuildLists()
	return m
}

func (m *appModel) debugLogf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	fmt.Fprintf(m.debugLog, time.Now().Format("15:04:05.000 ")+format+"\n", args...)
}

// newList builds a list with the chrome we don't use switched off. Filtering
// stays available; pagination and the built-in help line are redundant with
// the footer.
func newList(title string) list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(colorAccent).
		BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(colorMuted).
		BorderForeground(colorAccent)

	l := list.New(nil, d, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Background(colorHeaderBg).
		Foreground(colorSurfaceFg).
		Padding(0, 1)
	return l
}

// rebuildLists refreshes every tab's items from the in-memory db. Called on
// load and after an external change to the store file is picked up.
func (m *appModel) rebuildLists() {
	var contacts []list.Item
	for _, c := range m.db.Contacts {
		desc := string(c.Status)
		if c.CompanyID != nil {
			if co, ok := m.db.FindCompany(*c.CompanyID); ok {
				desc += " · " + co.Name
			}
		}
		contacts = append(contacts, entityItem{
			id: c.ID, title: c.FullName(), desc: desc,
			push: drilldown.Item{Type: drilldown.TagContactDetail, Title: c.FullName(), ContactID: c.ID},
		})
	}
	m.lists[tabContacts].SetItems(contacts)

	var companies []list.Item
	for _, co := range m.db.Companies {
		companies = append(companies, entityItem{
			id: co.ID, title: co.Name, desc: co.Industry,
			push: drilldown.Item{Type: drilldown.TagCompanyDetail, Title: co.Name, CompanyID: co.ID},
		})
	}
	m.lists[tabCompanies].SetItems(companies)

	var deals []list.Item
	for _, d := range m.db.Deals {
		deals = append(deals, entityItem{
			id: d.ID, title: d.Title, desc: fmtMoney(d.Amount, d.Currency) + " · " + string(d.Status),
			push: drilldown.Item{Type: drilldown.TagDealDetail, Title: d.Title, DealID: d.ID},
		})
	}
	m.lists[tabDeals].SetItems(deals)

	var tasks []list.Item
	for _, t := range m.db.Tasks {
		desc := "open"
		if t.Done {
			desc = "done"
		}
		if t.DueDate != "" {
			desc += " · due " + t.DueDate
		}
		tasks = append(tasks, entityItem{
			id: t.ID, title: t.Title, desc: desc,
			push: drilldown.Item{Type: drilldown.TagTaskDetail, Title: t.Title, TaskID: t.ID},
		})
	}
	m.lists[tabTasks].SetItems(tasks)

	var acts []list.Item
	for _, a := range m.db.Activities {
		acts = append(acts, entityItem{
			id: a.ID, title: a.Summary, desc: a.OccurredAt.Format("2006-01-02") + " · " + string(a.Kind),
			push: drilldown.Item{Type: drilldown.TagActivityDetail, Title: a.Summary, ActivityID: a.ID},
		})
	}
	m.lists[tabActivities].SetItems(acts)
}

func (m *appModel) resizeLists() {
	h := m.height - 4 // header + footer
	if h < 1 {
		h = 1
	}
	for i := range m.lists {
		m.lists[i].SetSize(m.width, h)
	}
}

// buildContent is the dispatcher hook layer mounting goes through.
func (m *appModel) buildContent(it drilldown.Item) layerContent {
	return buildLayerContent(m.db, it, modalBodyWidth(m.width)-4)
}

// pushItem pushes onto the stack and mounts the new layer's view.
func (m *appModel) pushItem(it drilldown.Item) {
	id := m.stack.Push(it)
	m.debugLogf("push %s id=%s", it.Type, id)
	syncLayerViews(m.layers, m.stack, m.buildContent)
}

func (m *appModel) setMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(reloadTick(), tea.WindowSize())
}

func reloadTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}
