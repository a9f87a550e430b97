package root

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skillplan/internal/ui"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check-ins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			checkins, err := svc.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(checkins) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No check-ins yet."))
				return nil
			}

			skills, err := svc.Skills(ctx)
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(skills))
			for _, s := range skills {
				names[s.ID] = s.Name
			}

			fmt.Fprintln(out, ui.Heading(ui.IconHistory, "History"))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tSKILL\tOUTCOME\tMINUTES\tTASK")
			for _, c := range checkins {
				name, ok := names[c.SkillID]
				if !ok {
					name = fmt.Sprintf("#%d (removed)", c.SkillID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t#%d\n",
					c.RecordedAt.Local().Format("2006-01-02 15:04"), name, c.Outcome, ui.Minutes(c.Minutes), c.TaskID)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of check-ins to show (0 = all)")
	return cmd
}
