package taskqueue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestQueue_DrainRunsInOrder(t *testing.T) {
	q := New(8, zap.NewNop())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, q.Post(func() { order = append(order, i) }))
	}
	assert.Equal(t, 3, q.Pending())
	assert.Empty(t, order, "tasks must not run inline")

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Drain())
}

func TestQueue_DrainRunsTasksPostedByTasks(t *testing.T) {
	q := New(8, zap.NewNop())

	var ran []string
	q.Post(func() {
		ran = append(ran, "first")
		q.Post(func() { ran = append(ran, "second") })
	})

	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestQueue_Full(t *testing.T) {
	q := New(1, zap.NewNop())
	assert.True(t, q.Post(func() {}))
	assert.False(t, q.Post(func() {}))
}

func TestQueue_CloseDiscardsPending(t *testing.T) {
	q := New(8, zap.NewNop())

	ran := false
	q.Post(func() { ran = true })
	q.Close()
	q.Close()

	assert.Equal(t, 0, q.Drain())
	assert.False(t, ran)
	assert.False(t, q.Post(func() {}))
}

func TestQueue_Run(t *testing.T) {
	q := New(8, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- q.Run(ctx) }()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		require.True(t, q.Post(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	q.Close()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestQueue_RunStopsOnContext(t *testing.T) {
	q := New(8, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- q.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestQueue_PanickingTaskDoesNotStopQueue(t *testing.T) {
	q := New(8, zap.NewNop())

	ran := false
	q.Post(func() { panic("boom") })
	q.Post(func() { ran = true })

	assert.Equal(t, 2, q.Drain())
	assert.True(t, ran)
}
