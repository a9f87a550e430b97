package root

import (
	"github.com/spf13/cobra"

	"skillplan/internal/tui"
)

func newBoardCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive week board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, cmd.OutOrStdout())
		},
	}
}
