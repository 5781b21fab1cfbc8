// Package pool runs a function over a slice of items with a bounded number of goroutines.
package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// WorkerFunc processes one item.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// ItemError records which item a worker failed on.
type ItemError[T any] struct {
	Index int
	Item  T
	Err   error
}

func (e *ItemError[T]) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError[T]) Unwrap() error { return e.Err }

type options struct {
	onDone func(done int)
}

// Option configures Run.
type Option func(*options)

// WithProgress calls fn after each finished item with the number of items finished so far.
// fn may be called from several goroutines, one call at a time.
func WithProgress(fn func(done int)) Option {
	return func(o *options) {
		o.onDone = fn
	}
}

type task[T any] struct {
	index int
	item  T
}

// Run processes items with numWorkers goroutines (at least one) and returns an *ItemError
// for every failed item, in no particular order. Items not yet started when ctx is
// cancelled are skipped.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T], opts ...Option) []error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var (
		wg       sync.WaitGroup
		done     atomic.Int64
		progress sync.Mutex
	)
	taskChan := make(chan task[T], numWorkers)
	errChan := make(chan error, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				if ctx.Err() != nil {
					return
				}
				if err := workerFunc(ctx, t.item); err != nil {
					errChan <- &ItemError[T]{Index: t.index, Item: t.item, Err: err}
				}
				n := done.Add(1)
				if o.onDone != nil {
					progress.Lock()
					o.onDone(int(n))
					progress.Unlock()
				}
			}
		}()
	}

OUT:
	for i, item := range items {
		select {
		case taskChan <- task[T]{index: i, item: item}:
		case <-ctx.Done():
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return allErrors
}
