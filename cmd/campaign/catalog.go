package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the read-only reference catalogs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "conditions",
			Short: "List catalogued conditions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tLEVELS")
				for _, d := range c.app.conditions.All() {
					fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Name, d.Levels)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "races",
			Short: "List playable races",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSPEED\tTRAITS")
				for _, r := range c.app.rules.Races() {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.Name, r.Speed, strings.Join(r.Traits, ", "))
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "classes",
			Short: "List playable classes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tHIT DIE\tCASTER")
				for _, cl := range c.app.rules.Classes() {
					fmt.Fprintf(w, "%s\t%s\td%d\t%s\n", cl.ID, cl.Name, cl.HitDie, cl.SpellcastingAbility)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "items",
			Short: "List gear",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tKIND\tWEIGHT")
				for _, d := range c.app.items.AllItems() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%g\n", d.ID, d.Name, d.Kind, d.Weight)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "npcs",
			Short: "List NPC templates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tLEVEL\tHP\tAC\tINIT")
				for _, t := range c.app.npcs.All() {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%+d\n", t.ID, t.Name, t.Level, t.MaxHP, t.AC, t.InitiativeModifier())
				}
				return w.Flush()
			},
		},
	)
	return cmd
}
