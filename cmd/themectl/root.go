// Package main provides the CLI entrypoint for themectl.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themestate/internal/config"
	"github.com/jmylchreest/themestate/internal/prefs"
	"github.com/jmylchreest/themestate/internal/probe"
	"github.com/jmylchreest/themestate/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		stateFile  string
		ephemeral  bool
	}
	logger *slog.Logger

	// app is built once per invocation and handed to the subcommands.
	app *App
)

// App is everything a subcommand needs, constructed at the root.
type App struct {
	Store    theme.PreferenceStore
	Probe    *probe.Chain
	Holder   *theme.Holder
	Failures *theme.Recorder
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themectl",
	Short: "Persisted dark/light theme preference",
	Long: `themectl reads and toggles the persisted dark/light theme preference.

On start the preference is resolved from the preference file or, when nothing
has been saved yet, from the system color-scheme preference (environment
override, XDG desktop portal, terminal background). Toggling saves the new
value for the next run.

Running themectl without a subcommand shows the current status.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		app, err = newApp(cfg)
		if err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themestate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stateFile, "state-file", "",
		"Path to preference file (default: ~/.local/share/themestate/preferences.json)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.ephemeral, "ephemeral", false,
		"Do not read or write the preference file")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newApp wires the store, probe chain and holder from the configuration.
func newApp(cfg *config.Config) (*App, error) {
	var store theme.PreferenceStore
	switch {
	case globalOpts.ephemeral:
		store = prefs.Disabled{}
	case globalOpts.stateFile != "":
		store = prefs.NewFile(globalOpts.stateFile)
	default:
		store = prefs.NewFile(cfg.StatePath())
	}

	sources := make([]probe.Source, 0, len(cfg.Probe.Sources))
	for _, name := range cfg.Probe.Sources {
		src, err := probe.New(name, cfg.Probe.EnvVar, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build probe: %w", err)
		}
		sources = append(sources, src)
	}
	chain := probe.NewChain(logger, cfg.ProbeTimeout(), sources...)

	failures := theme.NewRecorder()
	holder := theme.NewHolder(store, chain,
		theme.WithLogger(logger),
		theme.WithDiagnostics(failures),
	)

	return &App{
		Store:    store,
		Probe:    chain,
		Holder:   holder,
		Failures: failures,
	}, nil
}

// mounted returns the holder after resolving the persisted or system preference.
func (a *App) mounted() *theme.Holder {
	a.Holder.Mount()
	return a.Holder
}
