package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopClosesQueueOnShutdown(t *testing.T) {
	queue := NewTickQueue()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewLoop(queue, time.Millisecond).Run(ctx)
	}()

	require.NoError(t, queue.Enqueue(func() {}))
	cancel()
	<-done
	assert.ErrorIs(t, queue.Enqueue(func() {}), ErrUnavailable)
}

func TestSerialQueueRunsInOrder(t *testing.T) {
	queue := NewSerialQueue(4)
	defer queue.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		n := i
		wg.Add(1)
		require.NoError(t, queue.Enqueue(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}))
	}
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestSerialQueueClose(t *testing.T) {
	queue := NewSerialQueue(1)
	queue.Close()
	queue.Close()
	assert.ErrorIs(t, queue.Enqueue(func() {}), ErrUnavailable)
}
