package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"funnel-cli/internal/drilldown"
	"funnel-cli/internal/store"
)

func newTestApp(t *testing.T) appModel {
	t.Helper()
	pinDarkANSI256(t)

	s := store.Store{Dir: t.TempDir()}
	db := store.NewDB()
	s.Seed(db)

	m := newAppModel(s, db)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return next.(appModel)
}

func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(appModel)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestApp_EnterDrillsIntoSelectedContact(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stack.Len() != 1 {
		t.Fatalf("stack len = %d after enter", m.stack.Len())
	}
	top, _ := m.stack.Top()
	if top.Type != drilldown.TagContactDetail {
		t.Fatalf("top type = %s", top.Type)
	}
	if _, ok := m.layers[top.ID]; !ok {
		t.Fatal("no layer view mounted for pushed item")
	}
}

func TestApp_EnterOnRowPushesDeeper_EscPops(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // contact detail
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // first row (company)
	if m.stack.Len() != 2 {
		t.Fatalf("stack len = %d after drilling a row", m.stack.Len())
	}
	top, _ := m.stack.Top()
	if top.Type != drilldown.TagCompanyDetail {
		t.Fatalf("second layer type = %s", top.Type)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.stack.Len() != 1 {
		t.Fatalf("stack len = %d after esc", m.stack.Len())
	}
	top, _ = m.stack.Top()
	if top.Type != drilldown.TagContactDetail {
		t.Fatalf("esc revealed %s", top.Type)
	}
}

func TestApp_CoveredLayerStaysMountedAndInert(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	bottom, _ := m.stack.Top()
	bottomView := m.layers[bottom.ID]
	bottomView.idx = 1 // move the cursor, then cover the layer

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stack.Len() != 2 {
		t.Fatalf("stack len = %d", m.stack.Len())
	}

	// Keys go to the topmost layer only.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.layers[bottom.ID]; got != bottomView {
		t.Fatal("covered layer view was remounted")
	}
	if bottomView.idx != 1 {
		t.Fatalf("covered layer cursor moved to %d", bottomView.idx)
	}

	// Popping back reveals the same view instance, cursor intact.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.layers[bottom.ID]; got != bottomView || got.idx != 1 {
		t.Fatal("revealed layer lost its state")
	}
}

func TestApp_DigitJumpsToBreadcrumbLayer(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first, _ := m.stack.Top()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stack.Len() != 3 {
		t.Fatalf("stack len = %d, want 3", m.stack.Len())
	}

	m = press(t, m, keyRune('1'))
	if m.stack.Len() != 1 {
		t.Fatalf("stack len = %d after jump, want 1", m.stack.Len())
	}
	top, _ := m.stack.Top()
	if top.ID != first.ID {
		t.Fatal("jump did not land on the first layer")
	}
	if len(m.layers) != 1 {
		t.Fatalf("%d layer views survive a jump, want 1", len(m.layers))
	}
}

func TestApp_CtrlGClearsAllLayers(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	if m.stack.Len() != 0 {
		t.Fatalf("stack len = %d after ctrl+g", m.stack.Len())
	}
	if len(m.layers) != 0 {
		t.Fatalf("%d layer views survive clear", len(m.layers))
	}
}

func TestApp_AggregateViewKeys(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, keyRune('u'))
	top, _ := m.stack.Top()
	if top.Type != drilldown.TagUserActivity {
		t.Fatalf("'u' pushed %s", top.Type)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	m = press(t, m, keyRune('s'))
	top, _ = m.stack.Top()
	if top.Type != drilldown.TagPipelineStage {
		t.Fatalf("'s' pushed %s", top.Type)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	m = press(t, m, keyRune('f'))
	top, _ = m.stack.Top()
	if top.Type != drilldown.TagForecastMonth {
		t.Fatalf("'f' pushed %s", top.Type)
	}
}

func TestApp_ViewCompositesLayerOverDimmedBase(t *testing.T) {
	m := newTestApp(t)

	base := m.View()
	if !strings.Contains(stripANSIEscapes(base), "funnel") {
		t.Fatal("base view missing header")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	out := stripANSIEscapes(m.View())
	top, _ := m.stack.Top()
	if !strings.Contains(out, top.Title) {
		t.Fatalf("layered view missing layer title %q", top.Title)
	}

	// The view is a clean rectangle regardless of layer content.
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 32 {
		t.Fatalf("view height = %d, want 32", len(lines))
	}
}

func TestRenderBreadcrumbBar_JumpKeysAndCurrent(t *testing.T) {
	pinDarkANSI256(t)

	trail := []drilldown.Item{
		{ID: "a", Title: "Contacts"},
		{ID: "b", Title: "Jane Doe"},
		{ID: "c", Title: "Acme renewal"},
	}
	out := stripANSIEscapes(renderBreadcrumbBar(trail, 80))

	if !strings.Contains(out, "1 Contacts") || !strings.Contains(out, "2 Jane Doe") {
		t.Fatalf("ancestor crumbs missing jump keys: %q", out)
	}
	if !strings.Contains(out, "Acme renewal") {
		t.Fatalf("current crumb missing: %q", out)
	}
	if strings.Contains(out, "3 Acme renewal") {
		t.Fatalf("current crumb must not be actionable: %q", out)
	}
}

func TestRenderBreadcrumbBar_EmptyTrail(t *testing.T) {
	if out := renderBreadcrumbBar(nil, 40); out != "" {
		t.Fatalf("empty trail rendered %q", out)
	}
}
