package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"funnel-cli/internal/drilldown"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		firstSize := !m.seenWindowSize
		m.seenWindowSize = true
		m.resizeLists()
		if firstSize {
			return m, nil
		}
		// Debounce: suppress the expensive layer compositing while the
		// terminal is mid-drag.
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
			return resizeDoneMsg{seq: seq}
		})

	case resizeDoneMsg:
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case reloadTickMsg:
		return m.handleReloadTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleReloadTick picks up external changes to the store file (another
// funnel process, a sync job). Mounted layers are rebuilt against the new
// data; cursors are kept where they still fit.
func (m appModel) handleReloadTick() (tea.Model, tea.Cmd) {
	st, err := os.Stat(m.store.SQLitePath())
	if err != nil || !st.ModTime().After(m.lastSQLiteMod) {
		return m, reloadTick()
	}
	m.lastSQLiteMod = st.ModTime()

	db, err := m.store.Load()
	if err != nil {
		m.debugLogf("reload failed: %v", err)
		return m, tea.Batch(reloadTick(), m.setMinibuffer("reload failed: "+err.Error()))
	}
	m.db = db
	m.rebuildLists()

	for _, it := range m.stack.Items() {
		if lv, ok := m.layers[it.ID]; ok {
			lv.content = m.buildContent(it)
			if lv.idx >= len(lv.content.rows) {
				lv.idx = len(lv.content.rows) - 1
			}
			if lv.idx < 0 {
				lv.idx = 0
			}
		}
	}
	m.debugLogf("reloaded store from %s", m.store.SQLitePath())
	return m, reloadTick()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.stack.Len() > 0 {
		return m.handleLayerKey(msg)
	}
	return m.handleBaseKey(msg)
}

// handleLayerKey routes keys while drill-down layers are open. Only the
// topmost layer receives them; covered layers stay mounted but inert.
func (m appModel) handleLayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top, ok := m.stack.Top()
	if !ok {
		return m, nil
	}
	lv := m.layers[top.ID]
	if lv == nil {
		// Mount was missed somehow; rebuild rather than crash.
		syncLayerViews(m.layers, m.stack, m.buildContent)
		lv = m.layers[top.ID]
	}

	switch msg.String() {
	case "esc", "backspace":
		m.stack.Pop()
		syncLayerViews(m.layers, m.stack, m.buildContent)
		return m, nil

	case "ctrl+g":
		// Backdrop dismiss: the whole stack goes at once.
		m.stack.Clear()
		syncLayerViews(m.layers, m.stack, m.buildContent)
		return m, nil

	case "up", "k":
		lv.moveUp()
		return m, nil

	case "down", "j":
		lv.moveDown()
		return m, nil

	case "enter":
		if push := lv.selectedPush(); push != nil {
			m.pushItem(*push)
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Breadcrumb jump: truncate to the crumb's own layer.
		i := int(msg.String()[0] - '1')
		items := m.stack.Items()
		if i < len(items) {
			m.stack.PopTo(items[i].ID)
			syncLayerViews(m.layers, m.stack, m.buildContent)
		}
		return m, nil
	}

	return m, nil
}

func (m appModel) handleBaseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter prompt is open, keys belong to the list.
	if m.lists[m.activeTab].FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.lists[m.activeTab], cmd = m.lists[m.activeTab].Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil

	case "shift+tab":
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		return m, nil

	case "enter":
		if it, ok := m.lists[m.activeTab].SelectedItem().(entityItem); ok {
			m.pushItem(it.push)
		}
		return m, nil

	case "l":
		m.pushItem(m.listItemForTab(m.activeTab))
		return m, nil

	case "u":
		if u, ok := m.db.FindUser(m.db.CurrentUserID); ok {
			m.pushItem(drilldown.Item{
				Type:     drilldown.TagUserActivity,
				Title:    u.Name + "'s activity",
				UserID:   u.ID,
				UserName: u.Name,
			})
			return m, nil
		}
		return m, m.setMinibuffer("no current user")

	case "s":
		if st := m.firstStage(); st != nil {
			m.pushItem(*st)
			return m, nil
		}
		return m, m.setMinibuffer("no pipeline stages")

	case "f":
		months := m.db.OpenDealMonths()
		if len(months) > 0 {
			m.pushItem(drilldown.Item{
				Type:       drilldown.TagForecastMonth,
				Title:      "Forecast " + months[0],
				Month:      months[0],
				MonthLabel: months[0],
			})
			return m, nil
		}
		return m, m.setMinibuffer("no open deals with a close month")
	}

	var cmd tea.Cmd
	m.lists[m.activeTab], cmd = m.lists[m.activeTab].Update(msg)
	return m, cmd
}

func (m *appModel) listItemForTab(tab int) drilldown.Item {
	switch tab {
	case tabCompanies:
		return drilldown.Item{Type: drilldown.TagCompaniesList, Title: "Companies"}
	case tabDeals:
		return drilldown.Item{Type: drilldown.TagDealsList, Title: "Deals"}
	case tabTasks:
		return drilldown.Item{Type: drilldown.TagTasksList, Title: "Tasks"}
	case tabActivities:
		return drilldown.Item{Type: drilldown.TagActivitiesList, Title: "Activities"}
	default:
		return drilldown.Item{Type: drilldown.TagContactsList, Title: "Contacts"}
	}
}

func (m *appModel) firstStage() *drilldown.Item {
	for _, p := range m.db.Pipelines {
		stages := m.db.StagesForPipeline(p.ID)
		if len(stages) == 0 {
			continue
		}
		st := stages[0]
		return &drilldown.Item{
			Type:       drilldown.TagPipelineStage,
			Title:      st.Name,
			StageID:    st.ID,
			StageName:  st.Name,
			PipelineID: st.PipelineID,
		}
	}
	return nil
}
