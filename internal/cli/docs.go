// SPDX-License-Identifier: MPL-2.0

package cli

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed rules_guide.md
var rulesGuide string

// newDocsCommand creates the `childenv docs` command.
func newDocsCommand(app *App) *cobra.Command {
	var plain bool

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the rule string format guide",
		Long:  "Render the built-in guide to the rule string format and its propagation model.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(app, plain)
		},
	}

	docsCmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown without terminal rendering")

	return docsCmd
}

// runDocs renders the embedded guide with glamour, degrading to the raw
// markdown when rendering is unavailable.
func runDocs(app *App, plain bool) error {
	if plain {
		fmt.Fprint(app.stdout, rulesGuide)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		logger.Warn("failed to create markdown renderer", "error", err)
		fmt.Fprint(app.stdout, rulesGuide)
		return nil
	}

	rendered, err := renderer.Render(rulesGuide)
	if err != nil {
		logger.Warn("failed to render guide", "error", err)
		fmt.Fprint(app.stdout, rulesGuide)
		return nil
	}

	fmt.Fprint(app.stdout, rendered)
	return nil
}
