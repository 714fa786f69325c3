package main

import (
	"github.com/spf13/cobra"
)

// cli carries the lazily built app between cobra hooks and commands.
type cli struct {
	configPath string
	app        *app
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "campaign",
		Short: "Campaign keeper for tabletop role-playing sessions",
		Long: `campaign tracks player characters, their session resources, and
initiative order for encounters. State is persisted in the configured store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "configs/dev.yaml", "path to configuration file")

	root.AddCommand(
		newCharactersCmd(c),
		newEncounterCmd(c),
		newCatalogCmd(c),
	)
	return root
}
