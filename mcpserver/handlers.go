package mcpserver

import (
	"context"
	"fmt"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/reasoning"
	"github.com/m4xw311/thinkmode/session"
	"github.com/m4xw311/thinkmode/task"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProcessTaskInput is the input for the process_task MCP tool.
type ProcessTaskInput struct {
	Text string `json:"text" jsonschema:"the task text"`
	ID   string `json:"id,omitempty" jsonschema:"task id (default: generated)"`
	Mode string `json:"mode,omitempty" jsonschema:"force a reasoning mode: non_thinking, simplified or full_thinking"`
}

// ProcessTaskOutput is the result of the process_task MCP tool.
type ProcessTaskOutput struct {
	Result task.Result `json:"result"`
}

// AnalyzeTaskInput is the input for the analyze_task MCP tool.
type AnalyzeTaskInput struct {
	Text string `json:"text" jsonschema:"the task text"`
}

// AnalyzeTaskOutput is the result of the analyze_task MCP tool.
type AnalyzeTaskOutput struct {
	Features task.Features `json:"features"`
	Decision task.Decision `json:"decision"`
}

// BatchProcessInput is the input for the batch_process MCP tool.
type BatchProcessInput struct {
	Tasks []task.Input `json:"tasks" jsonschema:"tasks to run; ids must be unique, missing ids become batch_task_<index>"`
}

// BatchFailure is one task that produced no result.
type BatchFailure struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

// BatchProcessOutput is the result of the batch_process MCP tool.
type BatchProcessOutput struct {
	Results  []task.Result  `json:"results"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

// GetStatisticsInput is the input for the get_statistics MCP tool.
type GetStatisticsInput struct{}

// GetStatisticsOutput is the result of the get_statistics MCP tool.
type GetStatisticsOutput struct {
	Report session.Report `json:"report"`
}

// ResetStatisticsInput is the input for the reset_statistics MCP tool.
type ResetStatisticsInput struct{}

// ResetStatisticsOutput is the result of the reset_statistics MCP tool.
type ResetStatisticsOutput struct {
	Cleared int `json:"cleared" jsonschema:"number of tasks the statistics covered before the reset"`
}

// Service holds the reasoning system used by MCP tool handlers.
type Service struct {
	sys *reasoning.System
}

// NewService creates a Service for sys.
func NewService(sys *reasoning.System) *Service {
	return &Service{sys: sys}
}

// ProcessTask routes and runs a single task.
func (s *Service) ProcessTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessTaskInput,
) (*mcp.CallToolResult, ProcessTaskOutput, error) {
	var opts []reasoning.TaskOption
	if input.Mode != "" {
		mode, err := task.ParseMode(input.Mode)
		if err != nil {
			return nil, ProcessTaskOutput{}, fmt.Errorf("invalid mode: %w", err)
		}
		opts = append(opts, reasoning.ForceMode(mode))
	}

	res, err := s.sys.ProcessTask(ctx, input.Text, input.ID, opts...)
	if err != nil {
		return nil, ProcessTaskOutput{}, err
	}
	return nil, ProcessTaskOutput{Result: res}, nil
}

// AnalyzeTask reports features and the chosen mode without executing.
func (s *Service) AnalyzeTask(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeTaskInput,
) (*mcp.CallToolResult, AnalyzeTaskOutput, error) {
	features, decision := s.sys.Decide(input.Text)
	return nil, AnalyzeTaskOutput{Features: features, Decision: decision}, nil
}

// BatchProcess runs a batch. Per-task failures are reported in the output;
// only input errors fail the call.
func (s *Service) BatchProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchProcessInput,
) (*mcp.CallToolResult, BatchProcessOutput, error) {
	results, err := s.sys.BatchProcess(ctx, input.Tasks)
	out := BatchProcessOutput{Results: results}
	if out.Results == nil {
		out.Results = []task.Result{}
	}

	var be *reasoning.BatchError
	switch {
	case err == nil:
	case errors.As(err, &be):
		for _, f := range be.Failures {
			out.Failures = append(out.Failures, BatchFailure{TaskID: f.TaskID, Error: f.Err.Error()})
		}
	default:
		return nil, BatchProcessOutput{}, err
	}
	return nil, out, nil
}

// GetStatistics returns the statistics report.
func (s *Service) GetStatistics(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatisticsInput,
) (*mcp.CallToolResult, GetStatisticsOutput, error) {
	return nil, GetStatisticsOutput{Report: session.NewReport(s.sys.Statistics())}, nil
}

// ResetStatistics clears the statistics.
func (s *Service) ResetStatistics(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ResetStatisticsInput,
) (*mcp.CallToolResult, ResetStatisticsOutput, error) {
	total := s.sys.Statistics().TotalTasks
	s.sys.Reset()
	return nil, ResetStatisticsOutput{Cleared: total}, nil
}
