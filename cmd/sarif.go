package cmd

import (
	"encoding/json"
	"io"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/codepathfinder/depgraph/internal/engine"
)

// writeSARIF renders a batch's parse/extractor/interpreter diagnostics
// as a SARIF 2.1.0 log, the same report shape CI pipelines consume for
// code-scanning annotations.
func writeSARIF(w io.Writer, results []*engine.AnalysisResult) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("depgraph", "https://github.com/codepathfinder/depgraph")
	run.AddRule("parse-error").WithDescription("Parser failed to produce a usable syntax tree")
	run.AddRule("extractor-error").WithDescription("An extractor failed to process a parsed file")
	run.AddRule("interpreter-error").WithDescription("An interpreter failed to process extractor output")

	for _, r := range results {
		for _, pe := range r.ParseErrors {
			addSARIFResult(run, "parse-error", pe.Message, r.Path, pe.Line, pe.Column)
		}
		for _, ee := range r.ExtractorErrors {
			addSARIFResult(run, "extractor-error", ee.Extractor+": "+ee.Message, r.Path, 1, 1)
		}
		for _, ie := range r.InterpreterErrors {
			addSARIFResult(run, "interpreter-error", ie.Interpreter+": "+ie.Message, r.Path, 1, 1)
		}
	}

	report.AddRun(run)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func addSARIFResult(run *sarif.Run, ruleID, message, path string, line, column int) {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	region := sarif.NewRegion().WithStartLine(line).WithStartColumn(column)
	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().WithArtifactLocation(
			sarif.NewArtifactLocation().WithUri(path),
		).WithRegion(region),
	)
	result := run.CreateResultForRule(ruleID).WithMessage(sarif.NewTextMessage(message))
	result.AddLocation(location)
}
