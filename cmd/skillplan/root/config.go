package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillplan/internal/config"
	"skillplan/internal/ui"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the config file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write a default config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path := configPath(g)
				if err := config.WriteDefault(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Wrote"), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(g.configPath)
				if err != nil {
					return err
				}
				if g.dbPath != "" {
					cfg.DBPath = g.dbPath
				}
				resolved, err := dbPath(g, cfg)
				if err != nil {
					return err
				}
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Muted.Render("# "+configPath(g)))
				fmt.Fprint(out, string(data))
				fmt.Fprintln(out, ui.Muted.Render("# database: "+resolved))
				return nil
			},
		},
	)
	return cmd
}

func configPath(g *globals) string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.DefaultPath()
}
