// Package tui implements the interactive drill-down interface: a tabbed base
// screen with a stack of modal layers composited on top. Navigation state
// lives in internal/drilldown; this package only renders it and routes keys.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"funnel-cli/internal/store"
)

// Run loads the store and blocks in the bubbletea event loop until quit.
func Run(s store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()

	db, err := s.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	m := newAppModel(s, db)
	defer func() {
		if m.debugLog != nil {
			m.debugLog.Close()
		}
	}()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
