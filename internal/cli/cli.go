// Package cli implements the apiscope command-line interface.
//
// apiscope reads the files exported by an API-monitoring backend and makes
// them readable in a terminal. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - tree: Render a JSON payload as a collapsible tree (text, JSON, DOT, SVG, PDF, PNG)
//   - routes: Group a project's discovered routes by first path segment
//   - status: Summarise the APIs and projects of a monitoring snapshot
//   - browse: Explore a snapshot or payload interactively
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and library events reach the log through
// observability hooks installed before each command runs.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apiscope/pkg/buildinfo"
	"github.com/matzehuels/apiscope/pkg/config"
	"github.com/matzehuels/apiscope/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "apiscope"

	// stdinArg is the file argument that reads standard input.
	stdinArg = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before each command runs. Flags override it.
	Config *config.Config

	logOut  io.Writer
	verbose bool
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.New(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "apiscope makes API monitoring data readable in the terminal",
		Long: `apiscope reads the payloads and route lists exported by an API-monitoring backend
and renders them as collapsible trees, grouped route listings and status tables.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.prepare,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.treeCommand())
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// prepare loads the configuration, applies the log level and installs the
// logging hooks. It runs before every subcommand.
func (c *CLI) prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	hooks := &logHooks{logger: c.Logger}
	observability.SetViewHooks(hooks)
	observability.SetWatchHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if cfg.File != "" {
		c.Logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// inputArg returns the file argument, defaulting to stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinArg
	}
	return args[0]
}
