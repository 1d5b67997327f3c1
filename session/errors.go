package session

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrUnknownProvider is returned by CallTool when the provider has no live session.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidProvider is returned for a provider configuration that cannot be launched.
	ErrInvalidProvider = errors.New("invalid provider configuration")
)

var (
	// ErrTagConnection marks a failure to launch or handshake with a provider.
	ErrTagConnection = goerr.NewTag("connection")

	// ErrTagCatalogFetch marks a failure of a provider to return its tool catalog.
	ErrTagCatalogFetch = goerr.NewTag("catalog_fetch")

	// ErrTagToolInvocation marks a failure raised by a provider while running a tool.
	ErrTagToolInvocation = goerr.NewTag("tool_invocation")
)
