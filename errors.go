package secagent

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrMalformedToolCall = errors.New("malformed tool call")
	ErrBudgetExceeded    = errors.New("loop limit exceeded")
	ErrInvalidArguments  = errors.New("tool arguments do not match input schema")
)

var (
	// ErrTagModelInvocation marks a failure of the model backend.
	ErrTagModelInvocation = goerr.NewTag("model_invocation")
)
