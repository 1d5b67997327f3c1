package session

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
)

// ProviderConfig describes how to launch one tool provider as a child process.
type ProviderConfig struct {
	// Name identifies the provider. Tool calls are routed by this name.
	Name string `json:"-"`

	// Command is the executable to launch.
	Command string `json:"command"`

	// Args are passed to Command as-is.
	Args []string `json:"args"`

	// Env is overlaid on the parent process environment.
	Env map[string]string `json:"env"`
}

// Validate checks that the provider can be launched.
func (x ProviderConfig) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(ErrInvalidProvider, "name is required")
	}
	if x.Command == "" {
		return goerr.Wrap(ErrInvalidProvider, "command is required", goerr.V("provider", x.Name))
	}
	return nil
}

// envVars renders Env as KEY=VALUE pairs in key order.
func (x ProviderConfig) envVars() []string {
	keys := make([]string, 0, len(x.Env))
	for k := range x.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]string, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, k+"="+x.Env[k])
	}
	return vars
}
