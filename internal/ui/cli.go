package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/config"
	"github.com/rvalencia/moodplan/internal/llm"
	"github.com/rvalencia/moodplan/internal/planner"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store   planner.Store
	planner *planner.Planner
	config  *config.Config
	root    *cobra.Command
	noColor bool
}

// NewApp creates a new CLI application. coach may be nil when no LLM provider
// is configured; chat then falls back to built-in coaching.
func NewApp(store planner.Store, coach llm.Client, cfg *config.Config) *App {
	a := &App{
		store:   store,
		planner: planner.New(store, coach, cfg),
		config:  cfg,
	}

	a.root = &cobra.Command{
		Use:   "moodplan",
		Short: "A mood-aware task planner",
		Long: `Moodplan is a CLI task planner that listens to how you feel.

Tell it what's on your plate in plain language: it extracts tasks,
finds collision-free slots on your calendar, and adjusts priorities
to match your mood.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.chatCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.skipCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.moodCmd())
	a.root.AddCommand(a.eventCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.statsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("moodplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.store.Close()
}
