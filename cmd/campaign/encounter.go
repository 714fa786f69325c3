package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/campaign/internal/game/combat"
)

func newEncounterCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encounter",
		Short: "Run initiative encounters",
	}
	cmd.AddCommand(newEncounterDemoCmd(c))
	return cmd
}

func newEncounterDemoCmd(c *cli) *cobra.Command {
	var (
		npcID string
		count int
		keep  bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Roll initiative for every character plus NPCs and play one round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m := c.app.manager
			out := cmd.OutOrStdout()

			roll, err := c.app.initiativeRoll()
			if err != nil {
				return err
			}
			encID, err := m.CreateEncounter(ctx, "demo")
			if err != nil {
				return err
			}
			var ids []string
			for _, ch := range m.Characters() {
				ids = append(ids, ch.ID)
			}
			if _, err := m.AddCharacters(ctx, encID, ids...); err != nil {
				return err
			}
			if npcID != "" && count > 0 {
				if _, err := m.AddNPCs(ctx, encID, npcID, count); err != nil {
					return err
				}
			}

			err = m.Encounter(ctx, encID, func(enc *combat.Encounter) error {
				if err := enc.Start(combat.RollMissing, roll); err != nil {
					return err
				}
				printOrder(out, enc)
				for i := 0; i < enc.Len(); i++ {
					cur, _ := enc.Current()
					fmt.Fprintf(out, "round %d: %s acts\n", enc.Round(), cur.Name)
					if err := enc.NextTurn(); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "now round %d\n", enc.Round())
				return nil
			})
			if err != nil {
				return err
			}
			if keep {
				fmt.Fprintf(out, "encounter %s saved\n", encID)
				return nil
			}
			return m.EndEncounter(ctx, encID)
		},
	}
	f := cmd.Flags()
	f.StringVar(&npcID, "npc", "goblin", "NPC template to add")
	f.IntVar(&count, "count", 2, "number of NPCs to add")
	f.BoolVar(&keep, "keep", false, "keep the encounter in the store afterwards")
	return cmd
}

func printOrder(out io.Writer, enc *combat.Encounter) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tKIND\tINIT\tHP\tAC")
	for i, cb := range enc.Combatants() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d/%d\t%d\n", i+1, cb.Name, cb.Kind, cb.Initiative, cb.CurrentHP, cb.MaxHP, cb.AC)
	}
	_ = w.Flush()
}
