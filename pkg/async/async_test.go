package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"threadline/pkg/async"
)

func TestJobWait(t *testing.T) {
	t.Parallel()

	handle := async.Job(t.Context(), func(_ context.Context) (int, error) {
		return 42, nil
	})

	got, err := handle.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Fatalf("got %d", got)
	}
}

func TestJobStopCancelsContext(t *testing.T) {
	t.Parallel()

	handle := async.Job(t.Context(), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	handle.Stop()

	_, err := handle.Wait()
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !errors.Is(handle.Error(), context.Canceled) {
		t.Fatalf("expected stored error, got %v", handle.Error())
	}
}

func TestWorkerPoolProcessesEverything(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 10)
	for i := 0; i < 10; i++ {
		ch <- i
	}
	close(ch)

	var sum atomic.Int64
	err := async.WorkerPool(t.Context(), 3, ch, func(_ context.Context, i int) error {
		sum.Add(int64(i))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Load() != 45 {
		t.Fatalf("got %d", sum.Load())
	}
}

func TestWorkerPoolReturnsFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	ch := make(chan int, 5)
	for i := 0; i < 5; i++ {
		ch <- i
	}
	close(ch)

	err := async.WorkerPool(t.Context(), 1, ch, func(_ context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestWorkerPoolHonorsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 8)
	for i := 0; i < 8; i++ {
		ch <- i
	}
	close(ch)

	var current, peak atomic.Int64
	err := async.WorkerPool(t.Context(), 2, ch, func(_ context.Context, _ int) error {
		now := current.Add(1)
		defer current.Add(-1)

		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if peak.Load() > 2 {
		t.Fatalf("concurrency peaked at %d", peak.Load())
	}
}
