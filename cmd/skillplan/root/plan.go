package root

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skillplan/internal/engine"
	"skillplan/internal/storage"
	"skillplan/internal/ui"
)

func newPlanCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate or show the 7-day practice plan",
	}
	cmd.AddCommand(newPlanGenerateCmd(g), newPlanShowCmd(g))
	return cmd
}

func newPlanGenerateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Rebuild the plan from today for the next 7 days",
		Long: `Rebuild the plan from today for the next 7 days.

Unfinished sessions from today on are replaced. Completed and past sessions are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GeneratePlan(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Empty {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No skills to plan. Add one with 'skillplan skill add <name>'."))
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconPlan+" Planned"),
				fmt.Sprintf("%d sessions, %s over %d days", len(res.Tasks), ui.Minutes(res.TotalMinutes()), engine.PlanHorizonDays))
			if res.Purged > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Replaced %d unfinished sessions.", res.Purged)))
			}
			if res.CoreDebtStart > 0 {
				fmt.Fprintln(out, ui.LabelValue("Core debt", fmt.Sprintf("%s → %s", ui.Minutes(res.CoreDebtStart), ui.Minutes(res.CoreDebtEnd))))
			}
			fmt.Fprintln(out, "")
			for _, d := range res.Days {
				if d.Skipped {
					fmt.Fprintf(out, "%s %s\n", ui.H2.Render(dayTitle(d.Date)), ui.Muted.Render("(weekend off)"))
					continue
				}
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(dayTitle(d.Date)), ui.Muted.Render(fmt.Sprintf(
					"core %d / builder %d / maintainer %d / dabbler %d",
					d.Buckets.Core, d.Buckets.Builder, d.Buckets.Maintainer, d.Buckets.Dabbler)))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render("Run 'skillplan plan show' for the sessions."))
			return nil
		},
	}
}

func newPlanShowCmd(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show planned sessions from today on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			days, err := svc.UpcomingPlan(ctx)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), format, days)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

type planDayView struct {
	Date    string         `json:"date" yaml:"date"`
	Weekday string         `json:"weekday" yaml:"weekday"`
	Minutes int            `json:"minutes" yaml:"minutes"`
	Tasks   []planTaskView `json:"tasks" yaml:"tasks"`
}

type planTaskView struct {
	ID        int64  `json:"id" yaml:"id"`
	SkillID   int64  `json:"skill_id" yaml:"skill_id"`
	Skill     string `json:"skill" yaml:"skill"`
	Minutes   int    `json:"minutes" yaml:"minutes"`
	Kind      string `json:"kind" yaml:"kind"`
	Completed bool   `json:"completed" yaml:"completed"`
	Skipped   bool   `json:"skipped" yaml:"skipped"`
}

func planViews(days []engine.PlanDay) []planDayView {
	out := make([]planDayView, 0, len(days))
	for _, d := range days {
		v := planDayView{
			Date:    storage.FormatDate(d.Date),
			Weekday: d.Date.Weekday().String(),
			Minutes: d.TotalMinutes(),
			Tasks:   make([]planTaskView, 0, len(d.Tasks)),
		}
		for _, t := range d.Tasks {
			v.Tasks = append(v.Tasks, planTaskView{
				ID:        t.ID,
				SkillID:   t.SkillID,
				Skill:     t.SkillName,
				Minutes:   t.DurationMinutes,
				Kind:      t.Kind,
				Completed: t.IsCompleted,
				Skipped:   t.IsSkipped,
			})
		}
		out = append(out, v)
	}
	return out
}

func writePlan(w io.Writer, format string, days []engine.PlanDay) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(planViews(days))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(planViews(days)); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(days) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No sessions planned. Run 'skillplan plan generate'."))
		return nil
	}
	for _, d := range days {
		fmt.Fprintf(w, "%s %s\n", ui.H2.Render(dayTitle(d.Date)), ui.Muted.Render(ui.Minutes(d.TotalMinutes())))
		for _, t := range d.Tasks {
			fmt.Fprintf(w, "  #%-4d %s %-18s %6s  %s\n", t.ID, ui.KindIcon(t.Kind), t.SkillName, ui.Minutes(t.DurationMinutes), ui.TaskState(t.IsCompleted, t.IsSkipped))
		}
	}
	return nil
}

func dayTitle(d time.Time) string {
	return d.Format("Mon 2006-01-02")
}
