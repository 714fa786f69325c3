package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/history"
	"github.com/cory-johannsen/campaign/internal/game/inventory"
	"github.com/cory-johannsen/campaign/internal/game/stats"
)

func newCharactersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"pc"},
		Short:   "Manage player characters",
	}
	cmd.AddCommand(
		newCharactersListCmd(c),
		newCharactersShowCmd(c),
		newCharactersNewCmd(c),
		newCharactersDeleteCmd(c),
		newCharactersRestCmd(c),
		newCharactersHPCmd(c, "damage", "Apply damage to a character"),
		newCharactersHPCmd(c, "heal", "Heal a character"),
		newCharactersConditionCmd(c),
		newCharactersGiveCmd(c),
		newCharactersEquipCmd(c),
	)
	return cmd
}

func newCharactersListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCLASS\tLEVEL\tHP\tAC")
			for _, ch := range c.app.manager.Characters() {
				hp := ch.Resources.HitPoints
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%d\n",
					ch.ID, ch.Name, ch.Class, ch.Level, hp.Current, hp.Maximum, ch.ArmorClass())
			}
			return w.Flush()
		},
	}
}

func newCharactersShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a character sheet with derived statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.app.manager.Character(args[0])
			if err != nil {
				return err
			}
			printSheet(cmd.OutOrStdout(), ch)
			return nil
		},
	}
}

func printSheet(out io.Writer, ch *character.Character) {
	fmt.Fprintf(out, "%s (%s)\n", ch.Name, ch.ID)
	fmt.Fprintf(out, "  %s %s, level %d\n", ch.Race, ch.Class, ch.Level)
	for _, a := range stats.Abilities() {
		fmt.Fprintf(out, "  %s %2d (%+d)  save %+d\n",
			a.Abbrev(), ch.Abilities.Get(a), ch.Abilities.Modifier(a), ch.SavingThrow(a))
	}
	res := ch.Resources
	fmt.Fprintf(out, "  HP %d/%d", res.HitPoints.Current, res.HitPoints.Maximum)
	if res.HitPoints.Temporary > 0 {
		fmt.Fprintf(out, " (+%d temp)", res.HitPoints.Temporary)
	}
	fmt.Fprintf(out, "  AC %d  initiative %+d  proficiency %+d\n",
		ch.ArmorClass(), ch.InitiativeModifier(), ch.ProficiencyBonus())
	fmt.Fprintf(out, "  passive perception %d  load %s\n", ch.PassivePerception(), ch.Encumbrance())
	if dc, ok := ch.SpellSaveDC(); ok {
		atk, _ := ch.SpellAttackBonus()
		fmt.Fprintf(out, "  spell save DC %d  spell attack %+d\n", dc, atk)
	}
	for i, slot := range res.SpellSlots {
		if slot.Max > 0 {
			fmt.Fprintf(out, "  level %d slots %d/%d\n", i+1, slot.Max-slot.Used, slot.Max)
		}
	}
	for _, f := range res.FeatureCharges {
		fmt.Fprintf(out, "  %s %d/%d (%s)\n", f.Name, f.Current, f.Maximum, f.RechargeOn)
	}
	if ds := res.DeathSaves; ds.Successes > 0 || ds.Failures > 0 {
		fmt.Fprintf(out, "  death saves %d success / %d failure\n", ds.Successes, ds.Failures)
	}
	if tags := res.Conditions.Tags(); len(tags) > 0 {
		fmt.Fprintf(out, "  conditions: %s\n", strings.Join(tags, ", "))
	}
}

func newCharactersNewCmd(c *cli) *cobra.Command {
	var (
		race, class string
		hitDie      int
		level       int
		roll        bool
	)
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a character",
		Long: `Create a character at full resources from the race and class catalogs.
Ability scores default to 10 unless --roll is given, which rolls 4d6 keep
highest 3 for each ability.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scores stats.AbilityScores
			if roll {
				rolled, err := character.RollAbilityScores(c.app.roller)
				if err != nil {
					return err
				}
				scores = rolled
			}
			spec, err := c.app.rules.Spec(strings.Join(args, " "), race, class, level, scores)
			if err != nil {
				return err
			}
			if hitDie > 0 {
				spec.Class.HitDie = hitDie
			}
			ch, err := c.app.manager.CreateCharacter(cmd.Context(), spec)
			if err != nil {
				return err
			}
			printSheet(cmd.OutOrStdout(), ch)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&race, "race", "", "race id from the catalog")
	f.StringVar(&class, "class", "", "class id from the catalog")
	f.IntVar(&hitDie, "hit-die", 0, "override the class hit die")
	f.IntVar(&level, "level", 1, "starting level")
	f.BoolVar(&roll, "roll", false, "roll ability scores")
	return cmd
}

func newCharactersDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.manager.DeleteCharacter(cmd.Context(), args[0])
		},
	}
}

func newCharactersRestCmd(c *cli) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "rest <id>",
		Short: "Take a short rest, or a long rest with --long",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.app.manager.Session(cmd.Context(), args[0], func(l *character.Ledger) bool {
				if long {
					return l.LongRest()
				}
				return l.ShortRest()
			})
			if err != nil {
				return err
			}
			printSheet(cmd.OutOrStdout(), ch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "take a long rest")
	return cmd
}

func newCharactersHPCmd(c *cli, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[1])
			}
			ch, err := c.app.manager.Session(cmd.Context(), args[0], func(l *character.Ledger) bool {
				if use == "damage" {
					return l.ApplyDamage(amount)
				}
				return l.ApplyHealing(amount)
			})
			if err != nil {
				return err
			}
			hp := ch.Resources.HitPoints
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d HP\n", ch.Name, hp.Current, hp.Maximum)
			return nil
		},
	}
}

func newCharactersConditionCmd(c *cli) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "condition <id> <tag>",
		Short: "Add a condition, or remove it with --remove",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.app.manager.SetCondition(cmd.Context(), args[0], args[1], !remove)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ch.Name, strings.Join(ch.Resources.Conditions.Tags(), ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the condition instead")
	return cmd
}

func (c *cli) item(id string) (*inventory.ItemDef, error) {
	d, ok := c.app.items.Item(id)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	return d, nil
}

func newCharactersGiveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "give <id> <item> [quantity]",
		Short: "Add catalog items to a character's equipment",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.item(args[1])
			if err != nil {
				return err
			}
			qty := 1
			if len(args) == 3 {
				if qty, err = strconv.Atoi(args[2]); err != nil {
					return fmt.Errorf("quantity %q is not a number", args[2])
				}
			}
			ch, err := c.app.manager.Edit(cmd.Context(), args[0], history.AddItem(d.Item(qty)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s carries %.1f lb (%s)\n", ch.Name, ch.CarriedWeight(), ch.Encumbrance())
			return nil
		},
	}
}

func newCharactersEquipCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "equip <id> <armor>",
		Short: "Wear catalog armor or take up a shield",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.item(args[1])
			if err != nil {
				return err
			}
			current, err := c.app.manager.Character(args[0])
			if err != nil {
				return err
			}
			armor, err := d.Equip(current.Armor)
			if err != nil {
				return err
			}
			ch, err := c.app.manager.Edit(cmd.Context(), args[0], history.SetArmor(armor))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: AC %d\n", ch.Name, ch.ArmorClass())
			return nil
		},
	}
}
