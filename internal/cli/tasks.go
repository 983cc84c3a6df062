package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List, add, and complete tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(app),
		newTasksShowCmd(app),
		newTasksAddCmd(app),
		newTasksDoneCmd(app),
	)
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return fmt.Errorf("task not found: %s", args[0])
			}
			return format.Write(cmd.OutOrStdout(), t, "json", app.PrettyJSON)
		},
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			var tasks []model.Task
			for _, t := range db.Tasks {
				if !all && t.Done {
					continue
				}
				tasks = append(tasks, t)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"ID", "TITLE", "DUE", "DONE"}}
				for _, tk := range tasks {
					done := ""
					if tk.Done {
						done = "x"
					}
					t.Rows = append(t.Rows, []string{tk.ID, tk.Title, tk.DueDate, done})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), tasks, app.Format, app.PrettyJSON)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		contactID string
		dealID    string
		due       string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				if due != "" {
					if _, err := time.Parse("2006-01-02", due); err != nil {
						return fmt.Errorf("invalid due date (want YYYY-MM-DD): %s", due)
					}
				}
				t := model.Task{
					ID:        s.NextID(db, "task"),
					Title:     args[0],
					Notes:     notes,
					DueDate:   due,
					OwnerID:   db.CurrentUserID,
					CreatedAt: time.Now().UTC(),
				}
				if contactID != "" {
					if _, ok := db.FindContact(contactID); !ok {
						return fmt.Errorf("contact not found: %s", contactID)
					}
					t.ContactID = &contactID
				}
				if dealID != "" {
					if _, ok := db.FindDeal(dealID); !ok {
						return fmt.Errorf("deal not found: %s", dealID)
					}
					t.DealID = &dealID
				}
				db.Tasks = append(db.Tasks, t)
				fmt.Fprintln(cmd.OutOrStdout(), t.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&contactID, "contact", "", "contact id")
	cmd.Flags().StringVar(&dealID, "deal", "", "deal id")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form markdown notes")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				for i := range db.Tasks {
					if db.Tasks[i].ID != args[0] {
						continue
					}
					db.Tasks[i].Done = true
					return nil
				}
				return fmt.Errorf("task not found: %s", args[0])
			})
		},
	}
}
