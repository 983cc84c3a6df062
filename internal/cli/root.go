// Package cli wires the funnel command tree. Commands are thin: they load the
// store, call into internal/store, and print via internal/format.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"funnel-cli/internal/store"
	"funnel-cli/internal/tui"
)

// App carries the flags shared by every command.
type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// NewRootCmd builds the funnel command tree. A bare invocation opens the TUI.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "funnel",
		Short: "Local-first CRM: contacts, deals, tasks, and a drill-down TUI",
		Long: "funnel keeps a small CRM in a .funnel directory next to your work.\n" +
			"Run it bare to open the interactive drill-down interface, or use the\n" +
			"subcommands for scriptable access.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return err
			}
			return tui.Run(s)
		},
	}

	defaultDir := envOr("FUNNEL_DIR", "")
	root.PersistentFlags().StringVar(&app.Dir, "dir", defaultDir,
		"store directory (default: nearest .funnel, else ./.funnel)")
	root.PersistentFlags().StringVarP(&app.Format, "format", "f",
		envOr("FUNNEL_FORMAT", "json"), "output format: json|table")
	root.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty",
		envBool("FUNNEL_PRETTY", false), "indent JSON output")

	root.AddCommand(
		newInitCmd(app),
		newContactsCmd(app),
		newCompaniesCmd(app),
		newDealsCmd(app),
		newTasksCmd(app),
		newActivitiesCmd(app),
		newPipelinesCmd(app),
		newForecastCmd(app),
	)
	return root
}

// openStore resolves the store directory without touching the filesystem
// beyond discovery. Commands that read or write call Load/mutate themselves.
func (a *App) openStore() (store.Store, error) {
	dir := a.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

func (a *App) load() (store.Store, *store.DB, error) {
	s, err := a.openStore()
	if err != nil {
		return store.Store{}, nil, err
	}
	db, err := s.Load()
	if err != nil {
		return store.Store{}, nil, fmt.Errorf("load store: %w", err)
	}
	return s, db, nil
}

// mutate runs fn against a loaded db and saves the result.
func (a *App) mutate(fn func(s store.Store, db *store.DB) error) error {
	s, db, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(s, db); err != nil {
		return err
	}
	return s.Save(db)
}

func fmtAmount(cents int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}
