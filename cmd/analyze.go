package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codepathfinder/depgraph/internal/engine"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Walk a project and build its dependency graph",
	RunE: func(cmd *cobra.Command, _ []string) error {
		project := cmd.Flag("project").Value.String()
		storePath := cmd.Flag("store").Value.String()
		output := cmd.Flag("output").Value.String()
		sarifPath := cmd.Flag("sarif").Value.String()
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		if project == "" {
			return fmt.Errorf("--project is required")
		}

		paths, err := discoverSourceFiles(project)
		if err != nil {
			return fmt.Errorf("walking %s: %w", project, err)
		}
		fmt.Printf("Discovered %d source files under %s\n", len(paths), project)

		s, err := store.Open(storePath)
		if err != nil {
			return fmt.Errorf("opening store %s: %w", storePath, err)
		}
		defer s.Close() //nolint:errcheck

		eng := engine.New()
		cfg := engine.Config{Project: filepath.Base(project)}

		start := time.Now()
		results := eng.AnalyzeBatch(context.Background(), paths, cfg, parallelism)

		var nodeCount, edgeCount, parseErrs, extractErrs, interpErrs int
		for _, r := range results {
			if err := s.ReplaceFile(r.Path, r.Nodes, r.Edges); err != nil {
				fmt.Fprintf(os.Stderr, "warning: writing %s: %v (file's writes rolled back)\n", r.Path, err)
				continue
			}
			nodeCount += len(r.Nodes)
			edgeCount += len(r.Edges)
			parseErrs += len(r.ParseErrors)
			extractErrs += len(r.ExtractorErrors)
			interpErrs += len(r.InterpreterErrors)
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		if output != "sarif" {
			fmt.Printf("%s %d nodes, %d edges written to %s in %s\n", green("done:"), nodeCount, edgeCount, storePath, time.Since(start).Round(time.Millisecond))
			if parseErrs+extractErrs+interpErrs > 0 {
				fmt.Printf("%s %d parse errors, %d extractor errors, %d interpreter errors (non-fatal)\n",
					yellow("warnings:"), parseErrs, extractErrs, interpErrs)
			}
		}

		if output == "sarif" || sarifPath != "" {
			dest := os.Stdout
			if sarifPath != "" {
				f, err := os.Create(sarifPath)
				if err != nil {
					return fmt.Errorf("creating SARIF output %s: %w", sarifPath, err)
				}
				defer f.Close() //nolint:errcheck
				dest = f
			}
			if err := writeSARIF(dest, results); err != nil {
				return fmt.Errorf("writing SARIF output: %w", err)
			}
		}
		return nil
	},
}

// discoverSourceFiles walks root for files the language registry can
// recognize by extension, skipping hidden directories and .depgraph's
// own store files.
func discoverSourceFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && (name[0] == '.' || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if lang.DetectLanguage(path, nil) == lang.Unknown {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out, err
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("project", "p", "", "Project directory to analyze (required)")
	analyzeCmd.Flags().String("store", ".depgraph.db", "Graph store file path")
	analyzeCmd.Flags().StringP("output", "o", "text", "Output format: text or sarif")
	analyzeCmd.Flags().String("sarif", "", "Write SARIF diagnostics to this file in addition to --output")
}
