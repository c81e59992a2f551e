// Package llm provides the backends that answer a prompt in a given
// reasoning mode: hosted providers (Anthropic, OpenAI, DeepSeek, Gemini,
// Bedrock) and a deterministic simulated backend used when no credential is
// configured.
package llm

import (
	"context"
	"net"
	"net/http"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/task"
)

// Request is one completion request: the mode-specific prompt plus the
// generation profile for that mode.
type Request struct {
	Prompt      string
	Mode        task.Mode
	Model       string
	MaxTokens   int64
	Temperature *float64
}

// Backend answers prompts. Implementations must be safe for concurrent use
// and must honour ctx cancellation. Failures are returned as execution
// errors with a Timeout, Transport, Auth or Malformed reason.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

func (f BackendFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// classify maps a provider failure onto the execution error taxonomy.
// status is the HTTP status reported by the provider SDK, or 0 if unknown.
func classify(provider string, status int, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsExecution(err) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Execution(errors.ReasonTimeout, err, "%s request timed out", provider)
	case errors.As(err, &netErr) && netErr.Timeout():
		return errors.Execution(errors.ReasonTimeout, err, "%s request timed out", provider)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.Execution(errors.ReasonAuth, err, "%s rejected the credential", provider)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return errors.Execution(errors.ReasonTimeout, err, "%s request timed out", provider)
	}
	return errors.Execution(errors.ReasonTransport, err, "%s request failed", provider)
}

func malformed(provider, format string, a ...interface{}) error {
	return errors.Execution(errors.ReasonMalformed, nil, provider+": "+format, a...)
}
