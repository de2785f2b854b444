// ABOUTME: MCP server setup for the hoplit training tracker.
// ABOUTME: Wraps the MCP server with storage, program content and the active user.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hoplit/internal/program"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/storage"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	program   *program.Program
	userID    string
	logger    *log.Logger
	now       func() time.Time
}

// NewServer creates a new MCP server acting for userID on repo.
func NewServer(repo storage.Repository, userID string, logger *log.Logger) (*Server, error) {
	prog, err := program.Default()
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "hoplit",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		program:   prog,
		userID:    userID,
		logger:    logger,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("serving MCP over stdio", "user", s.userID)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// summary aggregates the user's logs and reports skipped records.
func (s *Server) summary() (*progress.Summary, error) {
	sum, err := tracker.Summarize(s.repo, s.userID, s.now())
	if err != nil {
		return nil, err
	}
	for _, e := range sum.Excluded {
		s.logger.Warn("skipping log", "err", e)
	}
	return sum, nil
}
