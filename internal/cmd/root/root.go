// Package root provides the root command for the docweave CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/tmader/docweave/internal/cmd/inspect"
	"github.com/tmader/docweave/internal/cmd/render"
	"github.com/tmader/docweave/internal/version"
)

// NewCmdRoot creates the root command for docweave.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docweave",
		Short: "A template resolution engine for DOCX documents",
		Long: `docweave resolves placeholder templates inside DOCX documents.

Templates use {{path}} placeholders, {{#if path}}...{{/if}} conditional
regions and {{#each path}}...{{/each}} loop regions. Data comes from a
YAML or JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate("docweave version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(inspect.NewCmdInspect())

	return cmd
}
