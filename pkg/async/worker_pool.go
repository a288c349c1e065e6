package async

import (
	"context"
	"sync"
	"sync/atomic"
)

type Iteratee[T any] func(ctx context.Context, item T) error

// WorkerPool drains ch with up to concurrency goroutines. The first error
// stops intake; already started items are waited for before returning.
func WorkerPool[T any](ctx context.Context, concurrency int, ch <-chan T, fn Iteratee[T]) error {
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	aErr := atomic.Pointer[error]{}

	for m := range ch {
		if err := aErr.Load(); err != nil {
			break
		}

		semaphore <- struct{}{}
		wg.Add(1)

		go func(m T) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if err := fn(ctx, m); err != nil {
				aErr.Store(&err)
			}
		}(m)
	}

	wg.Wait()

	if err := aErr.Load(); err != nil {
		return *err
	}
	return nil
}
