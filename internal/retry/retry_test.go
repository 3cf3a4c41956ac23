package retry

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// scriptedAdapter is a minimal engine.Adapter stub whose Start fails with
// PortInUse a fixed number of times before succeeding, so StartWithRetry's
// reallocation loop can be exercised without a real engine binary.
type scriptedAdapter struct {
	engine.Adapter
	failures int
	calls    int
}

func (s *scriptedAdapter) Start(ctx context.Context, cfg model.Config, progress engine.ProgressSink) (engine.StartResult, error) {
	s.calls++
	if s.calls <= s.failures {
		return engine.StartResult{}, spinerr.New(spinerr.PortInUse, "port in use")
	}
	return engine.StartResult{Port: cfg.Port}, nil
}

func occupyPort(t *testing.T) (int, func()) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	return l.Addr().(*net.TCPAddr).Port, func() { l.Close() }
}

func TestStartWithRetrySucceedsAfterReallocation(t *testing.T) {
	occupied, release := occupyPort(t)
	defer release()

	adapter := &scriptedAdapter{failures: 1}
	cfg := model.Config{Port: occupied}

	var changedFrom, changedTo int
	persisted := 0

	result := StartWithRetry(context.Background(), adapter, cfg, nil, Options{
		OnPortChange: func(oldPort, newPort int) { changedFrom, changedTo = oldPort, newPort },
		PersistPort:  func(newPort int) error { persisted = newPort; return nil },
	})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.RetriesUsed)
	assert.Equal(t, occupied, changedFrom)
	assert.NotEqual(t, occupied, changedTo)
	assert.Equal(t, changedTo, persisted)
	assert.Equal(t, changedTo, result.FinalPort)
}

func TestStartWithRetryGivesUpAfterMaxRetries(t *testing.T) {
	adapter := &scriptedAdapter{failures: 99}
	cfg := model.Config{Port: 5432}

	result := StartWithRetry(context.Background(), adapter, cfg, nil, Options{MaxRetries: 2})

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.RetriesUsed)
	assert.True(t, spinerr.Is(result.Err, spinerr.PortInUse))
}

func TestStartWithRetryDoesNotRetryOtherErrors(t *testing.T) {
	adapter := &failingAdapter{err: errors.New("boom")}
	cfg := model.Config{Port: 5432}

	result := StartWithRetry(context.Background(), adapter, cfg, nil, Options{})

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.RetriesUsed)
	assert.Error(t, result.Err)
}

type failingAdapter struct {
	engine.Adapter
	err error
}

func (f *failingAdapter) Start(ctx context.Context, cfg model.Config, progress engine.ProgressSink) (engine.StartResult, error) {
	return engine.StartResult{}, f.err
}
