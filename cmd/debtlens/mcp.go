package main

import (
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/debtlens/debtlens/internal/mcpserver"
	"github.com/debtlens/debtlens/pkg/analyzer"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "Run as an MCP server over stdio",
		Action: runMCP,
	}
}

func runMCP(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := buildLogger(c)
	defer logger.Sync() //nolint:errcheck

	engine := analyzer.New(cfg, analyzer.WithLogger(logger))

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.NewServer(engine, version).Run(ctx)
}
