package root

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skillplan/internal/engine"
	"skillplan/internal/ui"
)

func newSkillCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "skill",
		Aliases: []string{"skills"},
		Short:   "Manage the skills you practice",
	}
	cmd.AddCommand(
		newSkillAddCmd(g),
		newSkillListCmd(g),
		newSkillEditCmd(g),
		newSkillRemoveCmd(g),
	)
	return cmd
}

func priorityHelp() string {
	s := "Priority: "
	for i, p := range engine.Priorities {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d/%s (%s)", int(p), p.String(), p.Cadence())
	}
	return s
}

func newSkillAddCmd(g *globals) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.AddSkill(ctx, engine.AddSkillInput{Name: args[0], Priority: p})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"), s.ID, s.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, %s)", p.String(), p.Cadence())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "core", priorityHelp())
	return cmd
}

func newSkillListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List skills by urgency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			skills, err := svc.Skills(ctx)
			if err != nil {
				return err
			}
			if len(skills) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No skills yet. Add one with 'skillplan skill add <name>'."))
				return nil
			}

			recency := engine.Recency(skills)
			ranked := engine.RankSkills(skills, recency, svc.Now())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRIORITY\tLAST PRACTICED\tINVESTED\tDEBT\tURGENCY")
			for _, r := range ranked {
				s := r.Skill
				last := "never"
				if s.LastPracticed != nil {
					last = s.LastPracticed.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.1f\n",
					s.ID, s.Name, engine.Priority(s.Priority).String(), last,
					ui.Minutes(s.MinutesInvested), ui.Minutes(s.MinutesDebt), r.Score)
			}
			return tw.Flush()
		},
	}
}

func newSkillEditCmd(g *globals) *cobra.Command {
	var (
		name     string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or re-prioritize a skill",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			var in engine.EditSkillInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("priority") {
				p, err := engine.ParsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = &p
			}
			if in.Name == nil && in.Priority == nil {
				return errors.New("nothing to change: pass --name and/or --priority")
			}

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.EditSkill(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconDone+" Updated"), s.ID, s.Name,
				ui.Muted.Render("("+engine.Priority(s.Priority).String()+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", priorityHelp())
	return cmd
}

func newSkillRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a skill (its planned and past sessions are kept)",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.RemoveSkill(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Removed skill"), id)
			return nil
		},
	}
}

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}
