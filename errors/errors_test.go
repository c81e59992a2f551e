package errors

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncludesCaller(t *testing.T) {
	err := New("bad value %d", 7)
	assert.Contains(t, err.Error(), "errors_test.go:")
	assert.True(t, strings.HasSuffix(err.Error(), "bad value 7"))
}

func TestWrapf(t *testing.T) {
	assert.Nil(t, Wrapf(nil, "ignored"))

	base := fmt.Errorf("boom")
	err := Wrapf(base, "loading %s", "x")
	require.Error(t, err)
	assert.True(t, Is(err, base))
	assert.Contains(t, err.Error(), "loading x: boom")
}

func TestKinds(t *testing.T) {
	in := Input(ErrDuplicateTaskID, "task %q appears twice", "a")
	assert.True(t, IsInput(in))
	assert.True(t, Is(in, ErrDuplicateTaskID))
	assert.Equal(t, `input error: task "a" appears twice: duplicate task id`, in.Error())

	cfg := Configuration("simplified_min is not numeric")
	assert.True(t, IsConfiguration(cfg))
	assert.False(t, IsInput(cfg))

	ex := Execution(ReasonTimeout, context.DeadlineExceeded, "backend call")
	assert.True(t, IsExecution(ex))
	assert.Equal(t, ReasonTimeout, ReasonOf(ex))
	assert.True(t, Is(ex, context.DeadlineExceeded))
	assert.Equal(t, "execution error (timeout): backend call: context deadline exceeded", ex.Error())
}

func TestKindOfWrapped(t *testing.T) {
	err := Wrapf(Execution(ReasonAuth, nil, "rejected"), "task t1")
	assert.Equal(t, KindExecution, KindOf(err))
	assert.Equal(t, ReasonAuth, ReasonOf(err))

	assert.Equal(t, Kind(""), KindOf(fmt.Errorf("plain")))
	assert.Equal(t, Reason(""), ReasonOf(nil))
}
