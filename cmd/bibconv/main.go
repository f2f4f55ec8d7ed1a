// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibconv CLI.
var rootCmd = &cobra.Command{
	Use:   "bibconv",
	Short: "Convert bibliographic export files to standard bibliography formats",
	Long: `bibconv converts vendor bibliographic exports (PubMed RIS, Scopus CSV,
IEEE Xplore CSV) into standard bibliography files. Field mappings are
declarative per-format YAML tables; tables for the three supported formats
are built into the binary and can be overridden with --mappings.

Records that cannot be converted (malformed rows, entries without a title)
are reported on stderr and skipped; the rest of the file still converts.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibconv.yaml or ~/.config/bibconv/config.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-record diagnostics")
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibconv"))
		}
	}

	viper.SetEnvPrefix("BIBCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the diagnostics logger. Quiet mode keeps fatal problems
// visible but drops the per-record warnings.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if viper.GetBool("quiet") {
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
