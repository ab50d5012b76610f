// Package inspect provides the inspect command.
package inspect

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tmader/docweave/pkg/docweave"
)

type inspectOptions struct {
	showParts bool
	noColor   bool
}

// NewCmdInspect creates the inspect command.
func NewCmdInspect() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <template.docx>",
		Short: "List the directives a template contains",
		Long:  `Inspect a DOCX template and list every directive found in its body.`,
		Example: `  # Show the directives of a template
  docweave inspect invoice.docx

  # Also list the package parts
  docweave inspect invoice.docx --parts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runInspect(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.showParts, "parts", false, "list the package parts as well")

	return cmd
}

func runInspect(templatePath string, opts *inspectOptions) error {
	if opts.noColor {
		color.NoColor = true
	}

	reader, err := docweave.DocxReaderFromFile(templatePath)
	if err != nil {
		return err
	}

	if opts.showParts {
		for _, part := range reader.ListParts() {
			fmt.Println(part)
		}
		fmt.Println()
	}

	doc, err := reader.ParseDocx()
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)

	count := 0
	for _, text := range bodyParagraphTexts(doc) {
		directives, errs := docweave.MatchDirectives(text)
		for _, d := range directives {
			cyan.Printf("%-8s", d.Kind)
			fmt.Println(d.Raw(text))
			count++
		}
		for _, err := range errs {
			red.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	fmt.Printf("%d directive(s)\n", count)
	return nil
}

// bodyParagraphTexts collects the text of every paragraph of the body,
// including paragraphs inside table cells.
func bodyParagraphTexts(doc *docweave.Document) []string {
	var texts []string
	if doc.Body == nil {
		return texts
	}

	for _, elem := range doc.Body.Elements {
		switch el := elem.(type) {
		case *docweave.Paragraph:
			texts = append(texts, el.GetText())
		case *docweave.Table:
			for i := range el.Rows {
				for j := range el.Rows[i].Cells {
					for k := range el.Rows[i].Cells[j].Paragraphs {
						texts = append(texts, el.Rows[i].Cells[j].Paragraphs[k].GetText())
					}
				}
			}
		}
	}
	return texts
}
