package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .funnel store in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return err
			}
			if err := s.Ensure(); err != nil {
				return err
			}
			db, err := s.Load()
			if err != nil {
				return err
			}
			if seed {
				s.Seed(db)
			}
			if err := s.Save(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", s.Dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed the store with example data")
	return cmd
}
