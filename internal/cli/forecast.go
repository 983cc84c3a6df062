package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
)

type monthForecast struct {
	Month    string       `json:"month"`
	Deals    []model.Deal `json:"deals"`
	Value    int64        `json:"value"`
	Weighted int64        `json:"weighted"`
}

func newForecastCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast [month]",
		Short: "Forecast open deals by close month, weighted by stage probability",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			months := db.OpenDealMonths()
			if len(args) == 1 {
				months = []string{args[0]}
			}

			var out []monthForecast
			for _, month := range months {
				mf := monthForecast{Month: month, Deals: db.DealsClosingIn(month)}
				for _, d := range mf.Deals {
					mf.Value += d.Amount
					if st, ok := db.FindStage(d.StageID); ok {
						mf.Weighted += d.Amount * int64(st.Probability) / 100
					}
				}
				out = append(out, mf)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"MONTH", "DEALS", "VALUE", "WEIGHTED"}}
				for _, mf := range out {
					t.Rows = append(t.Rows, []string{
						mf.Month,
						fmt.Sprintf("%d", len(mf.Deals)),
						fmtAmount(mf.Value, ""),
						fmtAmount(mf.Weighted, ""),
					})
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), out, app.Format, app.PrettyJSON)
		},
	}
}
