package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show what each system preference source reports",
	Long: `Ask every configured system preference source for its answer.

The sources are asked in the configured order; the first definite answer is
the one used when no theme has been saved.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w := cmd.OutOrStdout()
	for _, r := range app.Probe.Explain(ctx) {
		if r.Err != nil {
			fmt.Fprintf(w, "%-10s error: %v\n", r.Source, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", r.Source, r.Scheme)
	}

	scheme, from := app.Probe.Detect(ctx)
	if from == "" {
		fmt.Fprintf(w, "System preference: %s (no source answered)\n", scheme)
		return nil
	}
	fmt.Fprintf(w, "System preference: %s (from %s)\n", scheme, from)
	return nil
}
