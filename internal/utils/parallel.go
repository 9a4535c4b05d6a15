package utils

import (
	"context"
	"runtime"
)

type indexed[R any] struct {
	index int
	value R
	err   error
}

// ParallelMap applies fn to every item on at most workers goroutines
// (0 means GOMAXPROCS) and returns the results in input order. The first
// error or a cancelled ctx stops the remaining work and is returned alone.
func ParallelMap[T, R any](ctx context.Context, items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(items))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan indexed[R])
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				v, err := fn(items[i])
				select {
				case results <- indexed[R]{index: i, value: v, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make([]R, len(items))
	for range items {
		select {
		case r := <-results:
			if r.err != nil {
				return nil, r.err
			}
			out[r.index] = r.value
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}
