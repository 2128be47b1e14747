package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/debtlens/debtlens/internal/output"
	"github.com/debtlens/debtlens/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "debtlens",
		Usage:   "Lexical technical-debt profiler",
		Version: version,
		Description: `Debtlens profiles source text for technical debt using lexical
heuristics: approximate cyclomatic complexity, line duplication, and a
catalog of code smells, combined into a single debt ratio.

No parser is built; any brace-delimited language gets a best-effort profile.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"DEBTLENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			serveCommand(),
			mcpCommand(),
			initCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config: explicit path, else standard locations,
// else defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// buildLogger returns a development logger under --verbose, a nop logger
// otherwise; library diagnostics stay silent unless asked for.
func buildLogger(c *cli.Context) *zap.Logger {
	if c.Bool("verbose") {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// newFormatter builds the output formatter from global flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(c.String("format")),
		c.String("output"),
		!c.Bool("no-color"),
	)
}
