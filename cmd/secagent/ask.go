package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent"
	"github.com/m-mizutani/secagent/session"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var f agentFlags

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask the agent a question from the terminal",
		ArgsUsage: "<question>",
		Flags:     f.flags("info"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			question := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required")
			}

			logger, llmClient, err := f.setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLLM(logger, llmClient)
			ctx = ctxlog.With(ctx, logger)

			providers, err := f.cfg.Providers()
			if err != nil {
				return err
			}

			manager := session.New(providers)
			manager.Connect(ctx)
			defer func() {
				if err := manager.Close(); err != nil {
					logger.Warn("failed to close providers", "error", err)
				}
			}()

			agent := secagent.New(llmClient, manager, f.agentOptions(logger, "ask")...)
			answer := agent.Run(ctx, question)

			fmt.Fprintf(cmd.Root().Writer, "\nAnswer:\n%s\n", answer)
			return nil
		},
	}
}
