package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"funnel-cli/internal/format"
	"funnel-cli/internal/model"
)

func newPipelinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline"},
		Short:   "Inspect pipelines and their stages",
	}
	cmd.AddCommand(newPipelinesListCmd(app))
	return cmd
}

type stageSummary struct {
	Stage     model.Stage `json:"stage"`
	OpenDeals int         `json:"openDeals"`
	Value     int64       `json:"value"`
}

type pipelineSummary struct {
	Pipeline model.Pipeline `json:"pipeline"`
	Stages   []stageSummary `json:"stages"`
}

func newPipelinesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipelines with per-stage open deal counts and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}

			var out []pipelineSummary
			for _, p := range db.Pipelines {
				ps := pipelineSummary{Pipeline: p}
				for _, st := range db.StagesForPipeline(p.ID) {
					deals := db.DealsInStage(st.ID)
					var value int64
					for _, d := range deals {
						value += d.Amount
					}
					ps.Stages = append(ps.Stages, stageSummary{
						Stage: st, OpenDeals: len(deals), Value: value,
					})
				}
				out = append(out, ps)
			}

			if app.Format == "table" {
				t := format.Table{Header: []string{"PIPELINE", "STAGE", "PROB", "DEALS", "VALUE"}}
				for _, ps := range out {
					for _, ss := range ps.Stages {
						t.Rows = append(t.Rows, []string{
							ps.Pipeline.Name,
							ss.Stage.Name,
							fmt.Sprintf("%d%%", ss.Stage.Probability),
							fmt.Sprintf("%d", ss.OpenDeals),
							fmtAmount(ss.Value, ""),
						})
					}
				}
				return format.Write(cmd.OutOrStdout(), t, app.Format, app.PrettyJSON)
			}
			return format.Write(cmd.OutOrStdout(), out, app.Format, app.PrettyJSON)
		},
	}
}
