package smoketest

import (
	"context"
	"sync"
	"sync/atomic"
)

// forEach runs fn for every email on a pool of workers and returns how many
// calls reported success and failure. Emails not dispatched before ctx is
// done count as neither.
func forEach(ctx context.Context, workers int, emails []string, fn func(context.Context, string) bool) (ok, failed int) {
	if workers > len(emails) {
		workers = len(emails)
	}

	var succeeded, rejected atomic.Int64
	jobs := make(chan string, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range jobs {
				if ctx.Err() != nil {
					return
				}
				if fn(ctx, email) {
					succeeded.Add(1)
				} else {
					rejected.Add(1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, email := range emails {
			select {
			case <-ctx.Done():
				return
			case jobs <- email:
			}
		}
	}()

	wg.Wait()
	return int(succeeded.Load()), int(rejected.Load())
}
