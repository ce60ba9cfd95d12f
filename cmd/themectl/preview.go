package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themestate/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Launch an interactive preview of the current theme",
	Long: `Launch a small terminal view rendered with the current theme.

Key bindings:
  t, space    Toggle theme (saved immediately)
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	return preview.Run(app.mounted())
}
