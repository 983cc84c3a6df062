package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func newCompaniesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "List, show, and add companies",
	}
	cmd.AddCommand(
		newCompaniesListCmd(app),
		newCompaniesShowCmd(app),
		newCompaniesAddCmd(app),
	)
	return cmd
}

func newCompaniesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			if app.Format == "table" {
				t := format.Table{Header: []string{"ID", "NAME", "INDUSTRY", "DOMAIN"}}
				for _, co := range db.Companies {
					t.Rows = append(t.Rows, []string{co.ID, co.Name, co.Industry, co.Domain})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), db.Companies, app.Format, app.PrettyJSON)
		},
	}
}

func newCompaniesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one company with its contacts and deals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			co, ok := db.FindCompany(args[0])
			if !ok {
				return fmt.Errorf("company not found: %s", args[0])
			}

			out := struct {
				Company  model.Company   `json:"company"`
				Contacts []model.Contact `json:"contacts"`
				Deals    []model.Deal    `json:"deals"`
			}{
				Company:  *co,
				Contacts: db.ContactsForCompany(co.ID),
				Deals:    db.DealsForCompany(co.ID),
			}
			return format.Write(cmd.OutOrStdout(), out, "json", app.PrettyJSON)
		},
	}
}

func newCompaniesAddCmd(app *App) *cobra.Command {
	var (
		domain   string
		industry string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				co := model.Company{
					ID:        s.NextID(db, "company"),
					Name:      args[0],
					Domain:    domain,
					Industry:  industry,
					Notes:     notes,
					CreatedAt: time.Now().UTC(),
				}
				db.Companies = append(db.Companies, co)
				fmt.Fprintln(cmd.OutOrStdout(), co.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "primary web domain")
	cmd.Flags().StringVar(&industry, "industry", "", "industry label")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form markdown notes")
	return cmd
}
