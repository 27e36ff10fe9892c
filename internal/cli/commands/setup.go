package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnanki/internal/cli/config"
	"github.com/leapstack-labs/pgnanki/internal/cli/output"
	"github.com/leapstack-labs/pgnanki/internal/engine"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the dependencies for cmd from the loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewEngine creates a conversion engine. Verbose traces go to standard output
// except in JSON mode, where they would corrupt the document.
func (c *CommandContext) NewEngine() *engine.Engine {
	trace := c.Renderer.Writer()
	if c.Renderer.EffectiveMode() == output.ModeJSON {
		trace = c.Renderer.ErrWriter()
	}
	return engine.New(engine.Options{
		Logger: c.Logger,
		Trace:  trace,
	})
}

// getConfig returns the loaded configuration, or the defaults when commands
// run outside the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Defaults()
}
