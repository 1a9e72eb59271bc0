package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/exportreadme/internal/config"
	"git.home.luguber.info/inful/exportreadme/internal/version"
)

// Global context passed to subcommands.
type Global struct {
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ${default_config}, optional)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Export ExportCmd `cmd:"" default:"withargs" help:"Rewrite relative links in a document and write the result"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once. Export replaces the logger
// again once the configuration is known.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ConfigPath returns the explicit --config value or the default file name.
func (c *CLI) ConfigPath() string {
	if c.Config != "" {
		return c.Config
	}
	return config.DefaultPath
}

// LoadConfig loads the configuration. The default file is optional; a file named with
// --config must exist.
func (c *CLI) LoadConfig() (*config.Config, error) {
	if c.Config == "" {
		return config.LoadOptional(config.DefaultPath)
	}
	return config.Load(c.Config)
}

// NewParser builds the kong parser for cli.
func NewParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("exportreadme"),
		kong.Description("Prefix relative links in a README so it can be published from a docs directory."),
		kong.UsageOnError(),
		kong.Vars{
			"version":        version.String(),
			"default_config": config.DefaultPath,
		},
	}
	return kong.New(cli, append(base, opts...)...)
}
