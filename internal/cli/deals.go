package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
	"funnel-cli/internal/store"
)

func newDealsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deals",
		Aliases: []string{"deal"},
		Short:   "List, show, add, and move deals",
	}
	cmd.AddCommand(
		newDealsListCmd(app),
		newDealsShowCmd(app),
		newDealsAddCmd(app),
		newDealsMoveCmd(app),
		newDealsCloseCmd(app),
	)
	return cmd
}

func newDealsListCmd(app *App) *cobra.Command {
	var (
		status  string
		stageID string
		month   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			var deals []model.Deal
			for _, d := range db.Deals {
				if status != "" && string(d.Status) != status {
					continue
				}
				if stageID != "" && d.StageID != stageID {
					continue
				}
				if month != "" && d.CloseDate != month {
					continue
				}
				deals = append(deals, d)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"ID", "TITLE", "AMOUNT", "STAGE", "STATUS", "CLOSE"}}
				for _, d := range deals {
					stage := d.StageID
					if st, ok := db.FindStage(d.StageID); ok {
						stage = st.Name
					}
					t.Rows = append(t.Rows, []string{
						d.ID, d.Title, fmtAmount(d.Amount, d.Currency), stage, string(d.Status), d.CloseDate,
					})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), deals, app.Format, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: open|won|lost")
	cmd.Flags().StringVar(&stageID, "stage", "", "filter by stage id")
	cmd.Flags().StringVar(&month, "month", "", "filter by close month (YYYY-MM)")
	return cmd
}

func newDealsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one deal with its activity history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			d, ok := db.FindDeal(args[0])
			if !ok {
				return fmt.Errorf("deal not found: %s", args[0])
			}

			out := struct {
				Deal       model.Deal       `json:"deal"`
				Stage      *model.Stage     `json:"stage,omitempty"`
				Activities []model.Activity `json:"activities"`
			}{Deal: *d, Activities: db.ActivitiesForEntity(d.ID)}
			if st, ok := db.FindStage(d.StageID); ok {
				out.Stage = st
			}
			return format.Write(cmd.OutOrStdout(), out, "json", app.PrettyJSON)
		},
	}
}

// parseAmount accepts "48000" or "48000.50" in major units and returns cents.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", s)
	}
	cents := major * 100
	if hasFrac {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount: %s", s)
		}
		if cents < 0 {
			cents -= f
		} else {
			cents += f
		}
	}
	return cents, nil
}

func newDealsAddCmd(app *App) *cobra.Command {
	var (
		amount    string
		currency  string
		contactID string
		stageID   string
		closeDate string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				cents, err := parseAmount(amount)
				if err != nil {
					return err
				}
				c, ok := db.FindContact(contactID)
				if !ok {
					return fmt.Errorf("contact not found: %s", contactID)
				}
				st, ok := db.FindStage(stageID)
				if !ok {
					// Default to the first stage of the first pipeline.
					if len(db.Pipelines) == 0 {
						return fmt.Errorf("no pipeline configured; run funnel init --seed")
					}
					stages := db.StagesForPipeline(db.Pipelines[0].ID)
					if len(stages) == 0 {
						return fmt.Errorf("pipeline %s has no stages", db.Pipelines[0].ID)
					}
					st = &stages[0]
				}

				now := time.Now().UTC()
				d := model.Deal{
					ID:         s.NextID(db, "deal"),
					Title:      args[0],
					Amount:     cents,
					Currency:   currency,
					ContactID:  c.ID,
					CompanyID:  c.CompanyID,
					PipelineID: st.PipelineID,
					StageID:    st.ID,
					CloseDate:  closeDate,
					Status:     model.DealStatusOpen,
					OwnerID:    db.CurrentUserID,
					Notes:      notes,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				db.Deals = append(db.Deals, d)
				fmt.Fprintln(cmd.OutOrStdout(), d.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "0", "deal value in major units, e.g. 48000 or 48000.50")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO currency code")
	cmd.Flags().StringVar(&contactID, "contact", "", "contact id (required)")
	cmd.Flags().StringVar(&stageID, "stage", "", "stage id (default: first stage)")
	cmd.Flags().StringVar(&closeDate, "close", "", "expected close month (YYYY-MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form markdown notes")
	cmd.MarkFlagRequired("contact")
	return cmd
}

func newDealsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <stage-id>",
		Short: "Move a deal to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				st, ok := db.FindStage(args[1])
				if !ok {
					return fmt.Errorf("stage not found: %s", args[1])
				}
				for i := range db.Deals {
					if db.Deals[i].ID != args[0] {
						continue
					}
					db.Deals[i].StageID = st.ID
					db.Deals[i].PipelineID = st.PipelineID
					db.Deals[i].UpdatedAt = time.Now().UTC()
					return nil
				}
				return fmt.Errorf("deal not found: %s", args[0])
			})
		},
	}
}

func newDealsCloseCmd(app *App) *cobra.Command {
	var lost bool

	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close a deal as won (or lost)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(func(s store.Store, db *store.DB) error {
				for i := range db.Deals {
					if db.Deals[i].ID != args[0] {
						continue
					}
					db.Deals[i].Status = model.DealStatusWon
					if lost {
						db.Deals[i].Status = model.DealStatusLost
					}
					db.Deals[i].UpdatedAt = time.Now().UTC()
					return nil
				}
				return fmt.Errorf("deal not found: %s", args[0])
			})
		},
	}

	cmd.Flags().BoolVar(&lost, "lost", false, "close as lost instead of won")
	return cmd
}
