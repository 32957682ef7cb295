package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderCoalesces(t *testing.T) {
	l := NewLoader()
	var calls int32
	release := make(chan struct{})

	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	const n = 5
	var wg sync.WaitGroup
	results := make([]interface{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := l.Do(context.Background(), "k", fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "value", v)
	}
}

func TestLoaderError(t *testing.T) {
	l := NewLoader()
	boom := errors.New("boom")
	_, _, err := l.Do(context.Background(), "k", func(context.Context) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestLoaderContextCancelled(t *testing.T) {
	l := NewLoader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := l.Do(ctx, "k", func(context.Context) (interface{}, error) {
		return "never", nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
