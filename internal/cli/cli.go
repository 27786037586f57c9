// Package cli implements the preso command-line interface.
//
// The root command presents a markdown deck; "recent" lists previously
// opened decks with the position reached in each. Logging uses
// charmbracelet/log; because the presentation owns the terminal, log output
// goes to the file named by --log-file, or is discarded.
package cli

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kiyori/preso/internal/app"
	"github.com/kiyori/preso/internal/config"
	"github.com/kiyori/preso/internal/history"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion sets the build information shown by --version, typically
// injected via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the preso CLI and returns an error if any command fails.
func Execute() error {
	var (
		verbose    bool
		logFile    string
		configPath string
		theme      string
		noMenu     bool
		noReveal   bool
	)

	root := &cobra.Command{
		Use:          "preso <deck.md>",
		Short:        "Present a markdown file as slides in the terminal",
		Long:         "preso splits a markdown file on --- separators and presents the pieces as slides, with keyboard and mouse navigation, a slide menu, and a bookmark that survives restarts.",
		Args:         cobra.ExactArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if theme != "" {
				cfg.Theme = theme
			}
			if noMenu {
				cfg.Menu = false
			}
			if noReveal {
				cfg.Reveal = false
			}

			logger, closeLog, err := openLogger(logFile, verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			return app.Run(args[0], cfg, logger)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("preso %s (%s)\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	root.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/preso/config.toml)")
	root.Flags().StringVar(&theme, "theme", "", "glamour style name, overrides config and frontmatter")
	root.Flags().BoolVar(&noMenu, "no-menu", false, "disable the slide menu")
	root.Flags().BoolVar(&noReveal, "no-reveal", false, "disable the slide entry animation")

	root.AddCommand(newRecentCmd())

	return root.Execute()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = defaultPath
	}
	return config.Load(path)
}

func openLogger(logFile string, verbose bool) (*charmlog.Logger, func(), error) {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	if logFile == "" {
		return newLogger(io.Discard, level), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), func() { _ = f.Close() }, nil
}

func newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently presented decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Default()
			if err != nil {
				return err
			}
			entries, err := store.Load()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no decks presented yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d/%d\t%s\n",
					e.OpenedAt.Local().Format("2006-01-02 15:04"), e.Index+1, e.Total, e.Path)
			}
			return nil
		},
	}
}
