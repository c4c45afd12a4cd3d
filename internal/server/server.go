// Package server wires the MCP server: tool definitions on one side,
// the store and launcher on the other. No domain logic lives here;
// handlers validate inputs, translate them, and serialize results.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkootstra/things-mcp/internal/credential"
	"github.com/nkootstra/things-mcp/internal/launcher"
	"github.com/nkootstra/things-mcp/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered. resolveToken
// may be nil, in which case the credential package's resolver is used;
// tests inject their own.
func New(
	st store.Store,
	l *launcher.Launcher,
	resolveToken func() (string, error),
) *server.MCPServer {
	if resolveToken == nil {
		resolveToken = credential.Resolve
	}

	s := server.NewMCPServer(
		"things-mcp",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	h := &handlers{
		store:        st,
		launcher:     l,
		resolveToken: resolveToken,
	}
	registerReadTools(s, h)
	registerWriteTools(s, h)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client hangs up.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
