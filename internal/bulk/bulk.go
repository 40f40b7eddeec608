// Package bulk runs an operation across many items with a bounded
// worker pool. The enrich command uses it to fan out lookups.
package bulk

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// Operation represents a bulk operation configuration
type Operation struct {
	Jobs            int
	ContinueOnError bool
}

// Result represents the result of a bulk operation
type Result struct {
	TotalItems int
	Succeeded  int
	Failed     int
	Errors     []ItemError
}

// ItemError represents an error for a specific item
type ItemError struct {
	Item  string
	Error error
}

// ItemFunc is the function to execute for each item
type ItemFunc func(ctx context.Context, item string) error

// Execute runs fn for every item. Workers stop draining the queue
// when the context is cancelled, or after the first error unless
// ContinueOnError is set; items already in flight always finish.
func (op *Operation) Execute(ctx context.Context, items []string, fn ItemFunc) *Result {
	result := &Result{
		TotalItems: len(items),
	}

	if len(items) == 0 {
		return result
	}

	jobs := op.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(items) {
		jobs = len(items)
	}

	workQueue := make(chan string, len(items))
	for _, item := range items {
		workQueue <- item
	}
	close(workQueue)

	var (
		succeeded int32
		failed    int32
		errorsMux sync.Mutex
		stopped   int32
	)

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for item := range workQueue {
				if atomic.LoadInt32(&stopped) == 1 || ctx.Err() != nil {
					return
				}

				if err := fn(ctx, item); err != nil {
					atomic.AddInt32(&failed, 1)
					errorsMux.Lock()
					result.Errors = append(result.Errors, ItemError{
						Item:  item,
						Error: err,
					})
					errorsMux.Unlock()

					if !op.ContinueOnError {
						atomic.StoreInt32(&stopped, 1)
					}
				} else {
					atomic.AddInt32(&succeeded, 1)
				}
			}
		}()
	}

	wg.Wait()

	result.Succeeded = int(succeeded)
	result.Failed = int(failed)
	return result
}

// ExitCode returns the appropriate exit code for the result
func (r *Result) ExitCode() int {
	if r.Failed == 0 {
		return 0 // All succeeded
	}
	if r.Succeeded > 0 {
		return 5 // Partial success
	}
	return 1 // All failed
}

// PrintSummary prints a human-readable summary of the result
func (r *Result) PrintSummary(w io.Writer) {
	switch {
	case r.Failed == 0:
		fmt.Fprintf(w, "%d/%d succeeded\n", r.Succeeded, r.TotalItems)
	case r.Succeeded == 0:
		fmt.Fprintf(w, "all %d failed\n", r.TotalItems)
	default:
		fmt.Fprintf(w, "partial: %d succeeded, %d failed (of %d)\n",
			r.Succeeded, r.Failed, r.TotalItems)
	}

	shown := r.Errors
	if len(shown) > 10 {
		fmt.Fprintf(w, "showing first 10 errors (of %d):\n", len(shown))
		shown = shown[:10]
	}
	for _, e := range shown {
		fmt.Fprintf(w, "  %s: %v\n", e.Item, e.Error)
	}
}
