package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"skillplan/internal/engine"
	"skillplan/internal/storage"
	"skillplan/internal/ui"
)

func newProfileCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set your available practice time",
	}
	cmd.AddCommand(newProfileShowCmd(g), newProfileSetCmd(g))
	return cmd
}

func newProfileShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" No profile yet. Create one with 'skillplan profile set'."))
				return nil
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newProfileSetCmd(g *globals) *cobra.Command {
	var in engine.ProfileInput

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the profile",
		Long: `Create or update the profile.

On update, flags you leave out keep their stored value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			existing, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			if existing != nil {
				mergeProfileFlags(cmd, &in, existing)
			}

			p, created, err := svc.SaveProfile(ctx, in)
			if err != nil {
				return err
			}
			verb := "Updated"
			if created {
				verb = "Created"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+verb+" profile"))
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Your name")
	f.IntVar(&in.Age, "age", 0, "Your age")
	f.IntVar(&in.WeekdayMinutes, "weekday-minutes", 0, "Practice minutes available on a weekday")
	f.IntVar(&in.WeekendMinutes, "weekend-minutes", 0, "Practice minutes available on a weekend day")
	f.BoolVar(&in.HolidaysAvailable, "holidays", false, "Available on holidays")
	f.BoolVar(&in.WeekendsAvailable, "weekends", false, "Plan sessions on weekends")
	return cmd
}

// mergeProfileFlags fills every flag the user did not pass from the stored profile.
func mergeProfileFlags(cmd *cobra.Command, in *engine.ProfileInput, p *storage.Profile) {
	f := cmd.Flags()
	if !f.Changed("name") {
		in.Name = p.Name
	}
	if !f.Changed("age") {
		in.Age = p.Age
	}
	if !f.Changed("weekday-minutes") {
		in.WeekdayMinutes = p.WeekdayMinutes
	}
	if !f.Changed("weekend-minutes") {
		in.WeekendMinutes = p.WeekendMinutes
	}
	if !f.Changed("holidays") {
		in.HolidaysAvailable = p.HolidaysAvailable
	}
	if !f.Changed("weekends") {
		in.WeekendsAvailable = p.WeekendsAvailable
	}
}

func printProfile(w io.Writer, p *storage.Profile) {
	fmt.Fprintln(w, ui.Heading(ui.IconInfo, "Profile"))
	fmt.Fprintln(w, ui.LabelValue("Name", p.Name))
	fmt.Fprintln(w, ui.LabelValue("Age", p.Age))
	fmt.Fprintln(w, ui.LabelValue("Weekdays", ui.Minutes(p.WeekdayMinutes)))
	weekends := ui.Muted.Render("off")
	if p.WeekendsAvailable {
		weekends = ui.Minutes(p.WeekendMinutes)
	}
	fmt.Fprintln(w, ui.LabelValue("Weekends", weekends))
	fmt.Fprintln(w, ui.LabelValue("Holidays", yesNo(p.HolidaysAvailable)))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
