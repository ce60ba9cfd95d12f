package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themestate/internal/prefs"
	"github.com/jmylchreest/themestate/internal/theme"
)

var getOpts struct {
	quiet bool // Suppress output, return exit code only
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current theme",
	Long: `Print the current theme, "dark" or "light".

With --quiet nothing is printed and the exit code carries the answer:
0 for dark, 1 for light.`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light",
	Long: `Switch between dark and light and save the new theme.

If the preference file cannot be written the failure is logged and the new
theme still applies to this run only.`,
	Args: cobra.NoArgs,
	RunE: runToggle,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current theme and where it came from",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	getCmd.Flags().BoolVarP(&getOpts.quiet, "quiet", "q", false,
		"Suppress output, return exit code only (0=dark, 1=light)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(statusCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	h := app.mounted()

	if !getOpts.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), h.Mode())
	}

	// Exit code: 0=dark, 1=light
	if !h.IsDarkMode() {
		os.Exit(1)
	}
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	h := app.mounted()
	dark := h.Toggle()
	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme.ModeOf(dark))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	h := app.mounted()
	printStatus(cmd.OutOrStdout(), app, h.Resolution())
	return nil
}

// printStatus writes the human readable status block.
func printStatus(w io.Writer, a *App, res theme.Resolution) {
	fmt.Fprintf(w, "Theme: %s\n", a.Holder.Mode())
	fmt.Fprintf(w, "  Resolved from: %s\n", res.Source)

	switch s := a.Store.(type) {
	case *prefs.File:
		fmt.Fprintf(w, "  Preference file: %s (%s)\n", s.Path(), s.Format())
		if e, ok, err := s.Entry(theme.StorageKey); err == nil && ok {
			fmt.Fprintf(w, "  Saved value: %s\n", e.Value)
			fmt.Fprintf(w, "  Last change: %s\n", humanize.Time(e.Updated()))
			if e.Revision != "" {
				fmt.Fprintf(w, "  Revision: %s\n", e.Revision)
			}
		}
	case prefs.Disabled:
		fmt.Fprintln(w, "  Preference file: disabled")
	}

	failures := a.Failures.Reports()
	if len(failures) > 0 {
		last := failures[len(failures)-1]
		fmt.Fprintf(w, "  Storage failures: %d (last %s: %v)\n", len(failures), last.Op, last.Err)
	}
}
