package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/task"
)

// SimulatedBackend answers every prompt with a canned, mode-shaped
// response. It never fails unless its context is done.
type SimulatedBackend struct {
	// Latency, when positive, delays each response.
	Latency time.Duration
}

// NewSimulatedBackend returns a SimulatedBackend with no latency.
func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{}
}

func (s *SimulatedBackend) Complete(ctx context.Context, req Request) (string, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctxError(ProviderSimulated, ctx.Err())
		}
	} else if err := ctx.Err(); err != nil {
		return "", ctxError(ProviderSimulated, err)
	}
	return SimulatedResponse(req.Mode), nil
}

// SimulatedResponse is the canned answer for mode.
func SimulatedResponse(mode task.Mode) string {
	const answer = "[simulated answer]"
	switch mode {
	case task.NonThinking:
		return fmt.Sprintf("Direct answer: %s", answer)
	case task.Simplified:
		return fmt.Sprintf("Brief reasoning:\n1. Identify the problem\n2. Key step\n3. Conclusion: %s", answer)
	case task.FullThinking:
		return fmt.Sprintf("Full reasoning:\n1. Problem analysis: ...\n2. Approach: ...\n3. Detailed steps: ...\n4. Verification: ...\n5. Final answer: %s", answer)
	default:
		return answer
	}
}

// ctxError keeps context.Canceled reachable while reporting deadlines as
// timeouts.
func ctxError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Execution(errors.ReasonTimeout, err, "%s request timed out", provider)
	}
	return errors.Execution(errors.ReasonTransport, err, "%s request canceled", provider)
}
