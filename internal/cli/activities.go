package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "List and log activities",
	}
	cmd.AddCommand(
		newActivitiesListCmd(app),
		newActivitiesShowCmd(app),
		newActivitiesLogCmd(app),
	)
	return cmd
}

func newActivitiesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			a, ok := db.FindActivity(args[0])
			if !ok {
				return fmt.Errorf("activity not found: %s", args[0])
			}
			return format.Write(cmd.OutOrStdout(), a, "json", app.PrettyJSON)
		},
	}
}

func newActivitiesListCmd(app *App) *cobra.Command {
	var (
		entityID string
		userID   string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			var acts []model.Activity
			switch {
			case entityID != "":
				acts = db.ActivitiesForEntity(entityID)
			case userID != "":
				acts = db.ActivitiesForUser(userID, from, to)
			default:
				for _, a := range db.Activities {
					day := a.OccurredAt.Format("2006-01-02")
					if from != "" && day < from {
						continue
					}
					if to != "" && day > to {
						continue
					}
					acts = append(acts, a)
				}
				sort.SliceStable(acts, func(i, j int) bool {
					return acts[i].OccurredAt.After(acts[j].OccurredAt)
				})
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"ID", "WHEN", "KIND", "SUMMARY"}}
				for _, a := range acts {
					t.Rows = append(t.Rows, []string{
						a.ID, a.OccurredAt.Format("2006-01-02 15:04"), string(a.Kind), a.Summary,
					})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), acts, app.Format, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&entityID, "for", "", "contact or deal id")
	cmd.Flags().StringVar(&userID, "user", "", "filter by user id")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD, inclusive)")
	return cmd
}

func newActivitiesLogCmd(app *App) *cobra.Command {
	var (
		kind      string
		contactID string
		dealID    string
		body      string
	)

	cmd := &cobra.Command{
		Use:     "log <summary>",
		Aliases: []string{"add"},
		Short:   "Log an activity against a contact or deal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				if !validActivityKind(kind) {
					return fmt.Errorf("invalid kind: %s (want call|email|meeting|note)", kind)
				}
				a := model.Activity{
					ID:         s.NextID(db, "act"),
					Kind:       model.ActivityKind(kind),
					Summary:    args[0],
					Body:       body,
					UserID:     db.CurrentUserID,
					OccurredAt: time.Now().UTC(),
				}
				if contactID != "" {
					if _, ok := db.FindContact(contactID); !ok {
						return fmt.Errorf("contact not found: %s", contactID)
					}
					a.ContactID = &contactID
				}
				if dealID != "" {
					if _, ok := db.FindDeal(dealID); !ok {
						return fmt.Errorf("deal not found: %s", dealID)
					}
					a.DealID = &dealID
				}
				if a.ContactID == nil && a.DealID == nil {
					return fmt.Errorf("activity needs --contact or --deal")
				}
				db.Activities = append(db.Activities, a)
				fmt.Fprintln(cmd.OutOrStdout(), a.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "note", "call|email|meeting|note")
	cmd.Flags().StringVar(&contactID, "contact", "", "contact id")
	cmd.Flags().StringVar(&dealID, "deal", "", "deal id")
	cmd.Flags().StringVar(&body, "body", "", "free-form markdown body")
	return cmd
}

func validActivityKind(k string) bool {
	switch model.ActivityKind(k) {
	case model.ActivityCall, model.ActivityEmail, model.ActivityMeeting, model.ActivityNote:
		return true
	}
	return false
}
