// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibconv/internal/mapping"
	"github.com/pdiddy/bibconv/pkg/types"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings [--from FORMAT]",
	Short: "Show the active field-mapping tables",
	Long: `Mappings prints the field-mapping tables the converter would use, in
rule priority order. Without --from, tables for all supported formats are
shown. With --mappings, the tables come from that directory instead of the
built-in defaults, which is the quickest way to check an edited table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		formats := types.Formats
		if from != "" {
			f := types.Format(from)
			if !f.Valid() {
				return fmt.Errorf("unknown source format %q (one of: %s)", from, formatList())
			}
			formats = []types.Format{f}
		}

		dir, _ := cmd.Flags().GetString("mappings")
		if dir == "" {
			dir = viper.GetString("mappings_dir")
		}
		for i, format := range formats {
			table, err := mapping.Load(dir, format)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Println()
			}
			printTable(table)
		}
		return nil
	},
}

// printTable renders one mapping table as aligned columns on stdout.
func printTable(t *mapping.Table) {
	fmt.Printf("%s (%d rules)\n", t.Format, len(t.Rules))

	rows := [][]string{{"SOURCE", "FIELD", "TRANSFORM", "ARG"}}
	for _, r := range t.Rules {
		transform := r.Transform
		if transform == "" {
			transform = "identity"
		}
		rows = append(rows, []string{r.Source, string(r.Field), transform, r.Arg})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			b.WriteString("  ")
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(os.Stdout, strings.TrimRight(b.String(), " "))
	}
}

func init() {
	mappingsCmd.Flags().String("from", "", "show only this format's table")
	mappingsCmd.Flags().String("mappings", "", "directory of mapping tables overriding the built-in ones")

	rootCmd.AddCommand(mappingsCmd)
}
