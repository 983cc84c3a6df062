package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func newContactsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "List, show, and add contacts",
	}
	cmd.AddCommand(
		newContactsListCmd(app),
		newContactsShowCmd(app),
		newContactsAddCmd(app),
	)
	return cmd
}

func newContactsListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			contacts := db.Contacts
			if status != "" {
				contacts = db.ContactsByStatus(model.ContactStatus(status))
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"ID", "NAME", "STATUS", "EMAIL"}}
				for _, c := range contacts {
					t.Rows = append(t.Rows, []string{c.ID, c.FullName(), string(c.Status), c.Email})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), contacts, app.Format, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: lead|active|customer|churned")
	return cmd
}

func newContactsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contact with its deals, tasks, and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			c, ok := db.FindContact(args[0])
			if !ok {
				return fmt.Errorf("contact not found: %s", args[0])
			}

			out := struct {
				Contact    model.Contact    `json:"contact"`
				Deals      []model.Deal     `json:"deals"`
				Tasks      []model.Task     `json:"tasks"`
				Activities []model.Activity `json:"activities"`
			}{
				Contact:    *c,
				Deals:      db.DealsForContact(c.ID),
				Tasks:      db.TasksForContact(c.ID),
				Activities: db.ActivitiesForEntity(c.ID),
			}
			return format.Write(cmd.OutOrStdout(), out, "json", app.PrettyJSON)
		},
	}
}

func newContactsAddCmd(app *App) *cobra.Command {
	var (
		email     string
		phone     string
		companyID string
		status    string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add <first> <last>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				if status != "" && !validContactStatus(status) {
					return fmt.Errorf("invalid status: %s", status)
				}
				now := time.Now().UTC()
				c := model.Contact{
					ID:        s.NextID(db, "contact"),
					FirstName: args[0],
					LastName:  args[1],
					Email:     email,
					Phone:     phone,
					Status:    model.ContactStatusLead,
					OwnerID:   db.CurrentUserID,
					Notes:     notes,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if status != "" {
					c.Status = model.ContactStatus(status)
				}
				if companyID != "" {
					if _, ok := db.FindCompany(companyID); !ok {
						return fmt.Errorf("company not found: %s", companyID)
					}
					c.CompanyID = &companyID
				}
				db.Contacts = append(db.Contacts, c)
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&status, "status", "", "lead|active|customer|churned (default lead)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form markdown notes")
	return cmd
}

func validContactStatus(s string) bool {
	switch model.ContactStatus(s) {
	case model.ContactStatusLead, model.ContactStatusActive,
		model.ContactStatusCustomer, model.ContactStatusChurned:
		return true
	}
	return false
}
