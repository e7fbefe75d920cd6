package graceful

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloserShutsDownAllTargets(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cc := new(Closer)

	var calls int32
	shut := ShutdownFunc(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})
	cc.Register("one", shut, time.Second)
	cc.Register("two", shut, time.Second)

	cc.Close(logger)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	cc.Close(logger)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCloserIgnoresLateRegistration(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cc := new(Closer)
	cc.Close(logger)

	called := false
	cc.Register("late", ShutdownFunc(func(context.Context) error {
		called = true
		return nil
	}), time.Second)
	cc.Close(logger)
	assert.False(t, called)
}

func TestCloserLogsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cc := new(Closer)
	cc.Register("broken", ShutdownFunc(func(context.Context) error {
		return context.DeadlineExceeded
	}), time.Second)

	cc.Close(logger)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "broken", entry.Data["target"])
}

func TestShutdownContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, shut := ShutdownContext(context.Background(), logger)
	shut()
	shut()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}
