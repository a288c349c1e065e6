package async

import (
	"context"
	"sync/atomic"
)

// JobHandle owns one background task and the context it runs under. Stop
// cancels the context, so in-flight requests bound to it abort instead of
// finishing after their owner is gone.
type JobHandle[T any] struct {
	cancel func()
	done   chan Result[T]
	err    atomic.Pointer[error]
}

func Job[T any](ctx context.Context, job func(ctx context.Context) (T, error)) *JobHandle[T] {
	ctx, cancel := context.WithCancel(ctx)
	handle := JobHandle[T]{
		cancel: cancel,
		done:   make(chan Result[T], 1),
	}

	go func() {
		defer cancel()

		res, err := job(ctx)

		handle.err.Store(&err)
		handle.done <- NewResult(res, err)
	}()

	return &handle
}

func (j *JobHandle[T]) Stop() {
	j.cancel()
}

func (j *JobHandle[T]) Wait() (T, error) {
	return (<-j.done).Unpack()
}

func (j *JobHandle[T]) Error() error {
	err := j.err.Load()
	if err == nil {
		return nil
	}
	return *err
}
