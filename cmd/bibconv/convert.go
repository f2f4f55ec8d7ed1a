// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibconv/internal/convert"
	"github.com/pdiddy/bibconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert --from FORMAT [flags] INPUT",
	Short: "Convert one export file to a bibliography file",
	Long: `Convert reads a vendor export file and writes a bibliography file.
The source format must be named explicitly; the output encoding defaults
to BibTeX.

Examples:

  bibconv convert --from ris pubmed.ris -o refs.bib
  bibconv convert --from scopus-csv scopus.csv.gz --to csl-yaml -o refs.yaml
  bibconv convert --from ieee-csv export.csv --to jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		format := types.Format(from)
		if !format.Valid() {
			return fmt.Errorf("unknown source format %q (one of: %s)", from, formatList())
		}

		cfg := types.DefaultConvertConfig()
		cfg.MappingsDir, _ = cmd.Flags().GetString("mappings")
		if cfg.MappingsDir == "" {
			cfg.MappingsDir = viper.GetString("mappings_dir")
		}
		to, _ := cmd.Flags().GetString("to")
		if to == "" {
			to = viper.GetString("target")
		}
		if to != "" {
			cfg.Target = types.Target(to)
		}
		if !cfg.Target.Valid() {
			return fmt.Errorf("unknown target format %q", cfg.Target)
		}

		log := newLogger()
		runner, err := convert.New(cfg, format, log)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		res, err := runner.RunFile(args[0], out)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, res.Summary())
		return nil
	},
}

func formatList() string {
	s := ""
	for i, f := range types.Formats {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}

func init() {
	convertCmd.Flags().String("from", "", "source format: "+formatList())
	convertCmd.Flags().String("to", "", "target format: bibtex, csl-yaml, or jsonl (default bibtex)")
	convertCmd.Flags().String("mappings", "", "directory of mapping tables overriding the built-in ones")
	convertCmd.Flags().StringP("output", "o", "-", "output path (- for stdout)")
	_ = convertCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(convertCmd)
}
