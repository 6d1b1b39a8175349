package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codepathfinder/depgraph/internal/edgekind"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/infer"
	"github.com/codepathfinder/depgraph/internal/query"
	"github.com/codepathfinder/depgraph/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a named query against an analyzed project's graph store",
	Long: `One of: address <RDF-address>, kind <node-kind>,
outgoing <RDF-address> [edge-kind], incoming <RDF-address> [edge-kind],
transitive <RDF-address> <edge-kind> <maxPathLength>,
hierarchical <RDF-address> <edge-kind> <maxDepth>,
cross-namespace <a> <b>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath := cmd.Flag("store").Value.String()
		output := cmd.Flag("output").Value.String()

		s, err := store.Open(storePath)
		if err != nil {
			return fmt.Errorf("opening store %s: %w", storePath, err)
		}
		defer s.Close() //nolint:errcheck

		eng := infer.New(s, edgekind.Default(), 0, 0)
		surface := query.New(s, eng, edgekind.Default())

		result, err := runNamedQuery(surface, args)
		if err != nil {
			return err
		}
		return renderResult(result, output)
	},
}

func runNamedQuery(surface *query.Surface, args []string) (any, error) {
	op := args[0]
	rest := args[1:]

	switch op {
	case "address":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: query address <RDF-address>")
		}
		return surface.FindByRDFAddress(rest[0])
	case "kind":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: query kind <node-kind>")
		}
		return surface.FindByKind(graphmodel.NodeKind(rest[0]))
	case "outgoing":
		if len(rest) < 1 {
			return nil, fmt.Errorf("usage: query outgoing <RDF-address> [edge-kind]")
		}
		kind := graphmodel.EdgeKind("")
		if len(rest) > 1 {
			kind = graphmodel.EdgeKind(rest[1])
		}
		return surface.Outgoing(rest[0], kind)
	case "incoming":
		if len(rest) < 1 {
			return nil, fmt.Errorf("usage: query incoming <RDF-address> [edge-kind]")
		}
		kind := graphmodel.EdgeKind("")
		if len(rest) > 1 {
			kind = graphmodel.EdgeKind(rest[1])
		}
		return surface.Incoming(rest[0], kind)
	case "transitive":
		if len(rest) != 3 {
			return nil, fmt.Errorf("usage: query transitive <RDF-address> <edge-kind> <maxPathLength>")
		}
		maxLen, err := parseIntArg(rest[2])
		if err != nil {
			return nil, err
		}
		return surface.Transitive(rest[0], graphmodel.EdgeKind(rest[1]), maxLen)
	case "hierarchical":
		if len(rest) != 3 {
			return nil, fmt.Errorf("usage: query hierarchical <RDF-address> <edge-kind> <maxDepth>")
		}
		maxDepth, err := parseIntArg(rest[2])
		if err != nil {
			return nil, err
		}
		return surface.Hierarchical(rest[0], graphmodel.EdgeKind(rest[1]), maxDepth)
	case "cross-namespace":
		if len(rest) != 2 {
			return nil, fmt.Errorf("usage: query cross-namespace <a> <b>")
		}
		return surface.CrossNamespace(rest[0], rest[1])
	default:
		return nil, fmt.Errorf("unknown query operation %q", op)
	}
}

func parseIntArg(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("expected integer, got %q", s)
	}
	return n, nil
}

func renderResult(result any, output string) error {
	if output == "json" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(cyan(string(out)))
	return nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("store", ".depgraph.db", "Graph store file path")
	queryCmd.Flags().StringP("output", "o", "table", "Output format: table or json")
}
