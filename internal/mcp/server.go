// Package mcp exposes the dashboard to agents over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/domain/assistant"
	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/identity"
)

const serverInstructions = `atelier manages a freelancer's Clients → Projects → Tasks → Documents.

Core concepts:
- Client: who the work is for. Deleting a client removes its projects and everything under them.
- Project: a piece of client work with status, priority, budget, and deliverables.
- Task: a board card ordered by position inside its (project, status) column.
- Document: an uploaded file whose extracted text feeds the assistant.

Typical workflow:
1) Orient: list_clients / list_projects for the portfolio overview.
2) Drill in: get_project, then list_tasks / list_documents for detail.
3) Work the board: create_task adds to the end of a column; move_task places a card at an explicit column and position.
4) Ask: ask_assistant answers free-text questions grounded in the project's client, budget, and document text.
`

// Services contains the domain services the MCP tools call into.
type Services struct {
	Clients   *client.Service
	Projects  *project.Service
	Tasks     *task.Service
	Documents *document.Service
	Assistant *assistant.Service
}

// Config contains server configuration.
type Config struct {
	Services Services
	Verifier *identity.Verifier
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "atelier",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(authMiddleware(cfg.Verifier))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
