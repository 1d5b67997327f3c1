package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/secagent/server"
	"github.com/m-mizutani/secagent/session"
	"github.com/urfave/cli/v3"
)

func mcpCommand() *cli.Command {
	var f agentFlags

	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the agent as an MCP tool provider over stdio",
		// stdout carries the MCP stream, so only errors are logged by default.
		Flags: f.flags("error"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, llmClient, err := f.setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLLM(logger, llmClient)

			providers, err := f.cfg.Providers()
			if err != nil {
				return err
			}

			s := server.New(llmClient,
				func() server.Router { return session.New(providers) },
				server.WithLogger(logger),
				server.WithAgentOptions(f.agentOptions(logger, "mcp")...),
			)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving MCP over stdio", "providers", len(providers))
			return s.Serve(ctx, os.Stdin, os.Stdout)
		},
	}
}
