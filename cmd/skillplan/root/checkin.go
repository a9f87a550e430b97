package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skillplan/internal/engine"
	"skillplan/internal/ui"
)

func newCheckinCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Show today's sessions, or record one as done or skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			agenda, err := svc.TodayAgenda(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Today "+svc.Today().Format("Mon 2006-01-02")))
			if len(agenda) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing left to check in today."))
				return nil
			}
			for _, t := range agenda {
				fmt.Fprintf(out, "  #%-4d %s %-18s %6s\n", t.ID, ui.KindIcon(t.Kind), t.SkillName, ui.Minutes(t.DurationMinutes))
			}
			fmt.Fprintln(out, ui.Muted.Render("Record with 'skillplan checkin done <id>' or 'skillplan checkin skip <id>'."))
			return nil
		},
	}
	cmd.AddCommand(
		newCheckinOutcomeCmd(g, engine.OutcomeDone, "Mark one of today's sessions as done"),
		newCheckinOutcomeCmd(g, engine.OutcomeSkip, "Skip one of today's sessions (its minutes become debt)"),
	)
	return cmd
}

func newCheckinOutcomeCmd(g *globals, outcome engine.Outcome, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(outcome) + " <task_id>",
		Short: short,
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CheckIn(ctx, id, outcome)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outcome {
			case engine.OutcomeDone:
				fmt.Fprintf(out, "%s #%d %s %s\n", ui.Good.Render(ui.IconDone+" Done"), res.TaskID, res.SkillName,
					ui.Muted.Render("(+"+ui.Minutes(res.Minutes)+")"))
			default:
				fmt.Fprintf(out, "%s #%d %s %s\n", ui.Warn.Render(ui.IconSkip+" Skipped"), res.TaskID, res.SkillName,
					ui.Muted.Render("(+"+ui.Minutes(res.Minutes)+" debt)"))
			}
			if res.SkillExists {
				fmt.Fprintln(out, ui.LabelValue("Debt", fmt.Sprintf("%s → %s", ui.Minutes(res.DebtBefore), ui.Minutes(res.DebtAfter))))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("The skill was removed; only the session was updated."))
			}
			return nil
		},
	}
}
