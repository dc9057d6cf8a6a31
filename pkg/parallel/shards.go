package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrShardPanic wraps a panic raised inside a shard function
var ErrShardPanic = errors.New("shard panicked")

// Range is the half-open interval [Start, End) of a work list
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range
func (r Range) Len() int {
	return r.End - r.Start
}

// Chunks splits length items into at most parts contiguous ranges of nearly
// equal size. Empty input yields no ranges.
func Chunks(length, parts int) []Range {
	if length <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > length {
		parts = length
	}

	// Computed without length+parts so huge inputs cannot overflow
	chunkSize := length / parts
	if length%parts != 0 {
		chunkSize++
	}

	ranges := make([]Range, 0, parts)
	for start := 0; start < length; {
		n := min(chunkSize, length-start)
		ranges = append(ranges, Range{Start: start, End: start + n})
		start += n
	}
	return ranges
}

// ForEachShard splits length items across the pool and calls fn once per
// shard with its index and range. Each shard owns its index, so fn can write
// into a per-shard buffer without locking. The first error (or recovered
// panic) is returned after every submitted shard finishes; ctx cancellation
// stops shards that have not started yet.
func ForEachShard(ctx context.Context, pool *WorkerPool, length int, fn func(ctx context.Context, shard int, r Range) error) error {
	ranges := Chunks(length, pool.Workers())
	if len(ranges) == 0 {
		return ctx.Err()
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	record := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for i, r := range ranges {
		wg.Add(1)
		submitted := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					record(fmt.Errorf("%w: shard %d: %v", ErrShardPanic, i, p))
				}
			}()
			if err := ctx.Err(); err != nil {
				record(err)
				return
			}
			if err := fn(ctx, i, r); err != nil {
				record(err)
			}
		})
		if !submitted {
			wg.Done()
			record(errors.New("worker pool closed"))
			break
		}
	}

	wg.Wait()
	return firstErr
}
