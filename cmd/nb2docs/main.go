// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nb2docs CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nb2docs/internal/pages"
	"github.com/pdiddy/nb2docs/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the nb2docs CLI.
var rootCmd = &cobra.Command{
	Use:   "nb2docs",
	Short: "Convert notebooks into docs page documents",
	Long: `nb2docs converts .ipynb notebooks into the JSON body accepted by the docs
page update endpoint (PUT /api/docs/pages/:id): a title, a breadcrumb, and a
flat list of h2, ul, p and code blocks.

Converted documents can also be kept in a local page store for review and
export with the pages subcommands.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nb2docs.yaml or ~/.config/nb2docs/nb2docs.yaml)")
	rootCmd.PersistentFlags().String("db", "", "page store database (default "+pages.DefaultDBPath+")")
	_ = viper.BindPFlag("pages.db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nb2docs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nb2docs"))
		}
	}

	viper.SetDefault("convert.format", string(types.OutputJSON))
	viper.SetDefault("pages.db_path", pages.DefaultDBPath)

	viper.SetEnvPrefix("NB2DOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pagesConfig returns the page store settings from flags, config and env.
func pagesConfig() types.PagesConfig {
	return types.PagesConfig{DBPath: viper.GetString("pages.db_path")}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
