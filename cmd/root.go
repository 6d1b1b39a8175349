// Package cmd implements the command-line surface: cobra commands
// wired directly onto internal/engine and internal/query, with no
// core logic of its own.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "depgraph",
	Short: "Multi-language source-code dependency graph analyzer",
	Long: `depgraph builds a typed dependency graph over a multi-language
source tree and answers structural questions against it: what a symbol
depends on, what depends on it, its class hierarchy, and cross-project
coupling.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("project", cmd.Flags().Lookup("project")) //nolint:errcheck
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("DEPGRAPH")
	viper.AutomaticEnv()
	rootCmd.PersistentFlags().Int("parallelism", 0, "Max concurrent file analyses (0 = default)")
	viper.BindPFlag("parallelism", rootCmd.PersistentFlags().Lookup("parallelism")) //nolint:errcheck
}
