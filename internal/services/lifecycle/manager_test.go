package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"postgres", "scheduler", "http_server"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http_server", "scheduler", "postgres"}, order)

	// hooks are consumed by the first shutdown
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Len(t, order, 3)
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	errLedger := errors.New("ledger close failed")
	var ran bool
	m.Register("postgres", func(context.Context) error { ran = true; return nil })
	m.Register("ledger", func(context.Context) error { return errLedger })

	err := m.Shutdown(context.Background())

	assert.ErrorIs(t, err, errLedger)
	assert.True(t, ran, "later hooks still run after a failure")
}

func TestManager_ShutdownAppliesTimeout(t *testing.T) {
	m := New(20*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_ListenStopsWithContext(t *testing.T) {
	m := New(time.Second, nil)
	ctx, stop := context.WithCancel(context.Background())
	cancelled := make(chan struct{})

	m.Listen(ctx, func() { close(cancelled) })
	stop()

	select {
	case <-cancelled:
		t.Fatal("cancel must only fire on a signal")
	case <-time.After(20 * time.Millisecond):
	}
}
