// Package render provides the render command.
package render

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tmader/docweave/internal/data"
	"github.com/tmader/docweave/pkg/docweave"
)

type renderOptions struct {
	dataFile  string
	onMissing string
	noColor   bool
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <template.docx> <output.docx>",
		Short: "Render a template with data",
		Long:  `Render a DOCX template against a data file and write the result.`,
		Example: `  # Render with YAML data
  docweave render invoice.docx out.docx --data invoice.yaml

  # Fail the run on any unresolved placeholder
  docweave render invoice.docx out.docx --data invoice.json --missing fail`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runRender(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataFile, "data", "d", "", "YAML or JSON data file (required)")
	cmd.Flags().StringVar(&opts.onMissing, "missing", "leave", "missing-variable policy: leave, empty, fail")
	cmd.MarkFlagRequired("data")

	return cmd
}

func runRender(templatePath, outputPath string, opts *renderOptions) error {
	if opts.noColor {
		color.NoColor = true
	}

	behavior, err := parseMissingBehavior(opts.onMissing)
	if err != nil {
		return err
	}

	bindings, err := data.LoadFile(opts.dataFile)
	if err != nil {
		return err
	}

	tmpl, err := docweave.PrepareFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to prepare template: %w", err)
	}
	defer tmpl.Close()

	output, result, err := tmpl.Execute(bindings, docweave.Options{OnMissing: behavior})
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	printReport(result)

	if !result.IsSuccess {
		return fmt.Errorf("rendering failed with %d error(s)", len(result.Errors))
	}

	if err := os.WriteFile(outputPath, output.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "wrote %s\n", outputPath)
	return nil
}

func parseMissingBehavior(name string) (docweave.MissingVariableBehavior, error) {
	switch name {
	case "leave":
		return docweave.LeaveUnchanged, nil
	case "empty":
		return docweave.ReplaceWithEmpty, nil
	case "fail":
		return docweave.Fail, nil
	default:
		return 0, fmt.Errorf("unknown missing-variable policy %q (want leave, empty or fail)", name)
	}
}

func printReport(result *docweave.ProcessingResult) {
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Fprintf(os.Stderr, "replacements: %d\n", result.ReplacementCount)

	for _, path := range result.MissingVariables {
		yellow.Fprintf(os.Stderr, "missing: %s\n", path)
	}
	for _, err := range result.Errors {
		red.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
