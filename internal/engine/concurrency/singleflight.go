package concurrency

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

const shardCount = 16

// Loader coalesces concurrent calls that share a key so that only one of
// them runs fn. Keys are spread over shards to keep group maps small.
type Loader struct {
	shards [shardCount]*singleflight.Group
}

func NewLoader() *Loader {
	l := &Loader{}
	for i := 0; i < shardCount; i++ {
		l.shards[i] = &singleflight.Group{}
	}
	return l
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller. A cancelled ctx returns early without
// cancelling the shared call.
func (l *Loader) Do(
	ctx context.Context,
	key string,
	fn func(context.Context) (interface{}, error),
) (interface{}, bool, error) {
	shard := l.getShard(key)

	resCh := shard.DoChan(key, func() (interface{}, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return fn(ctx)
	})

	select {
	case res := <-resCh:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val, res.Shared, nil

	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (l *Loader) Forget(key string) {
	l.getShard(key).Forget(key)
}

func (l *Loader) getShard(key string) *singleflight.Group {
	return l.shards[xxhash.Sum64String(key)%shardCount]
}
