// Package mcp exposes the dashboard to MCP clients. The internal dashboard is
// shared across tool calls; client-token resolution builds a throwaway client
// view per call.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sellerconsulting/bitacora/internal/dashboard"
)

const serverInstructions = `Bitácora is a consulting project progress dashboard.
Use list_projects and select_project to pick a project, get_dashboard for the
current roadmap and session timeline, log_session_note to record a session,
set_phase to advance the roadmap, and issue_share_link to mint a read-only
client link. resolve_client_token shows what a client sees for a given token.`

// ClientDashboardFactory builds a fresh client-mode dashboard for one token
// resolution.
type ClientDashboardFactory func() *dashboard.Dashboard

// Config contains server configuration.
type Config struct {
	Internal  *dashboard.Dashboard
	NewClient ClientDashboardFactory
	Logger    *slog.Logger
}

// Server holds the tool handlers.
type Server struct {
	internal  *dashboard.Dashboard
	newClient ClientDashboardFactory
	logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "bitacora",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	srv := &Server{
		internal:  cfg.Internal,
		newClient: cfg.NewClient,
		logger:    logger,
	}
	srv.registerTools(server)

	return server
}
