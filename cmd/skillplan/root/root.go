package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillplan/internal/ui"
)

const Version = "0.1.0"

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	dbPath     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "skillplan",
		Short:         "SkillPlan: a weekly practice planner for the skills you are learning",
		Long:          "SkillPlan splits your free time across your skills by priority and builds a rolling 7-day practice plan.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default ~/.skillplan/config.yaml)")
	pf.StringVar(&g.dbPath, "db", "", "SQLite database path (overrides config and $SKILLPLAN_DB_PATH)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		newProfileCmd(g),
		newSkillCmd(g),
		newPlanCmd(g),
		newCheckinCmd(g),
		newHistoryCmd(g),
		newStatusCmd(g),
		newBoardCmd(g),
		newConfigCmd(g),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
