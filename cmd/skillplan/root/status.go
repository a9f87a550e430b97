package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillplan/internal/engine"
	"skillplan/internal/ui"
)

func newStatusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show profile, skills, debt and this week's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			o, err := svc.Overview(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPlan, "SkillPlan Status"))
			if o.Profile == nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No profile yet. Create one with 'skillplan profile set'."))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Profile", fmt.Sprintf("%s, %s on weekdays", o.Profile.Name, ui.Minutes(o.Profile.WeekdayMinutes))))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconSkill+" Skills"))
			for _, p := range engine.Priorities {
				fmt.Fprintf(out, "- %s %d %s\n", ui.PriorityText(int(p), fmt.Sprintf("%-10s", p.String())), o.ByPriority[p], ui.Muted.Render("("+p.Cadence()+")"))
			}
			if o.NeverPracticed > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d never practiced", o.NeverPracticed)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Debt"))
			fmt.Fprintln(out, ui.LabelValue("Total", ui.Minutes(o.TotalDebt)))
			core := ui.Minutes(o.CoreDebt)
			if o.CoreDebt >= engine.MaxCoreDebt {
				core = ui.Bad.Render(core + " (capped)")
			}
			fmt.Fprintln(out, ui.LabelValue("Core", core))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconClock+" Today"))
			fmt.Fprintf(out, "- %s %d  %s %d  %s %d\n",
				ui.Muted.Render("pending"), o.TodayPending,
				ui.Good.Render("done"), o.TodayDone,
				ui.Warn.Render("skipped"), o.TodaySkipped)
			fmt.Fprintln(out, ui.LabelValue("Left this week", fmt.Sprintf("%d sessions, %s", o.UpcomingTasks, ui.Minutes(o.UpcomingMinutes))))
			return nil
		},
	}
}
