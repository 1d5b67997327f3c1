package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/secagent/config"
	"github.com/urfave/cli/v3"
)

func main() {
	envFile := os.Getenv("SECAGENT_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "secagent",
		Usage:  "Security analysis agent backed by MCP tool providers",
		Writer: os.Stdout,
		Commands: []*cli.Command{
			askCommand(),
			mcpCommand(),
		},
	}
}
