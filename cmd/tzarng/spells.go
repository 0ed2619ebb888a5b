package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/heal"
)

var spellsCmd = &cobra.Command{
	Use:   "spells",
	Short: "List spells and heal ranges",
	Long: `Shows the heal spells with their power and the smallest and largest
heal each one can produce for the configured character.`,
	Run: runSpells,
}

func runSpells(cmd *cobra.Command, args []string) {
	character := settings.Character.Character()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Character: level %d, magic %d, serenity %v\n",
		character.Level, character.Magic, character.Serenity)
	fmt.Fprintln(out)

	// Print header
	fmt.Fprintf(out, "  %-7s  %5s  %7s  %6s  %6s\n", "Spell", "Power", "Modulus", "Min", "Max")
	fmt.Fprintf(out, "  %-7s  %5s  %7s  %6s  %6s\n", "-----", "-----", "-------", "---", "---")

	for _, s := range heal.Spells() {
		c := character
		c.Spell = s
		mod := c.Modulus()

		marker := " "
		if s == character.Spell {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-7s  %5d  %7d  %6d  %6d\n",
			marker, s.Name(), s.Power(), mod, c.Cast(0), c.Cast(mod-1))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "* selected spell. Change it with --spell.")
}
