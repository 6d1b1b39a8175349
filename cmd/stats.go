package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codepathfinder/depgraph/internal/edgekind"
	"github.com/codepathfinder/depgraph/internal/infer"
	"github.com/codepathfinder/depgraph/internal/query"
	"github.com/codepathfinder/depgraph/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print whole-graph node/edge counts by kind",
	RunE: func(cmd *cobra.Command, _ []string) error {
		storePath := cmd.Flag("store").Value.String()

		s, err := store.Open(storePath)
		if err != nil {
			return fmt.Errorf("opening store %s: %w", storePath, err)
		}
		defer s.Close() //nolint:errcheck

		eng := infer.New(s, edgekind.Default(), 0, 0)
		surface := query.New(s, eng, edgekind.Default())

		stats, err := surface.Statistics()
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Println(bold("Nodes by kind:"))
		for kind, count := range stats.NodesByKind {
			fmt.Printf("  %-20s %d\n", kind, count)
		}
		fmt.Println(bold("Edges by kind:"))
		for kind, count := range stats.EdgesByKind {
			fmt.Printf("  %-20s %d\n", kind, count)
		}
		fmt.Printf("%s %d transitive, %d inheritable edge kinds registered\n", bold("Vocabulary:"), stats.Transitive, stats.Inheritable)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("store", ".depgraph.db", "Graph store file path")
}
