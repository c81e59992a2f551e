// Package mcpserver exposes the reasoning system as Model Context Protocol
// tools, so that an MCP client (an IDE or another agent) can route tasks
// through thinkmode.
package mcpserver

import (
	"context"

	"github.com/m4xw311/thinkmode/reasoning"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the thinkmode tools registered:
// process_task, analyze_task, batch_process, get_statistics and
// reset_statistics.
func NewServer(sys *reasoning.System) *mcp.Server {
	svc := NewService(sys)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "thinkmode",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_task",
		Description: "Route a task to a reasoning mode (non_thinking, simplified or full_thinking) and run it against the configured LLM backend. Returns the decision, the response and the execution time.",
	}, svc.ProcessTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_task",
		Description: "Analyze a task and report its category, complexity score and the reasoning mode that would be chosen, without calling the backend.",
	}, svc.AnalyzeTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_process",
		Description: "Run several tasks concurrently. Results are returned in input order; failed tasks are listed separately.",
	}, svc.BatchProcess)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_statistics",
		Description: "Return run statistics: tasks processed, mode and category distribution with percentages, and average execution time.",
	}, svc.GetStatistics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_statistics",
		Description: "Clear the run statistics.",
	}, svc.ResetStatistics)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
