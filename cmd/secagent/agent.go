package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/secagent"
	"github.com/m-mizutani/secagent/config"
	"github.com/m-mizutani/secagent/trace"
	"github.com/urfave/cli/v3"
)

// agentFlags are shared by every command that runs the agent.
type agentFlags struct {
	cfg       config.Config
	logLevel  string
	loopLimit int
	traceDir  string
}

func (f *agentFlags) flags(defaultLevel string) []cli.Flag {
	return append(f.cfg.Flags(),
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       defaultLevel,
			Sources:     cli.EnvVars("SECAGENT_LOG_LEVEL"),
			Destination: &f.logLevel,
		},
		&cli.StringFlag{
			Name:        "trace-dir",
			Usage:       "Directory to save a JSON trace of every run",
			Sources:     cli.EnvVars("SECAGENT_TRACE_DIR"),
			Destination: &f.traceDir,
		},
		&cli.IntFlag{
			Name:    "loop-limit",
			Usage:   "Maximum number of model turns per question",
			Value:   secagent.DefaultLoopLimit,
			Sources: cli.EnvVars("SECAGENT_LOOP_LIMIT"),
		},
	)
}

// setup reads the parsed flags and builds the logger and model client.
func (f *agentFlags) setup(ctx context.Context, cmd *cli.Command, logOut io.Writer) (*slog.Logger, secagent.LLMClient, error) {
	f.loopLimit = int(cmd.Int("loop-limit"))

	logger, err := newLogger(logOut, f.logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config", "config", f.cfg)

	llmClient, err := f.cfg.NewLLMClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	return logger, llmClient, nil
}

func (f *agentFlags) agentOptions(logger *slog.Logger, command string) []secagent.Option {
	options := []secagent.Option{
		secagent.WithLogger(logger),
		secagent.WithLoopLimit(f.loopLimit),
		secagent.WithToolRequestHook(func(ctx context.Context, call secagent.ToolCall) error {
			logger.Info("tool request", "server", call.Server, "tool", call.Tool, "args", call.Arguments)
			return nil
		}),
	}

	if f.traceDir != "" {
		options = append(options, secagent.WithTrace(trace.New(
			trace.WithRepository(trace.NewFileRepository(f.traceDir)),
			trace.WithLabels(map[string]string{"command": command}),
		)))
	}

	return options
}

func closeLLM(logger *slog.Logger, client secagent.LLMClient) {
	if c, ok := client.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close LLM client", "error", err)
		}
	}
}
