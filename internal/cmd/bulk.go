package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency bounds parallel API calls during bulk operations.
const DefaultConcurrency = 5

// BulkResult records the outcome for one resource in a bulk operation.
type BulkResult struct {
	ID      int64 `json:"id"`
	Success bool  `json:"success"`
	Error   error `json:"-"`
	Data    any   `json:"data,omitempty"`
}

// runBulkOperation runs operation for each ID with bounded concurrency.
// Individual failures are collected, not fatal. Cancellation stops
// scheduling new work; completed results are still returned.
func runBulkOperation[T any](
	ctx context.Context,
	ids []int64,
	concurrency int64,
	progress bool,
	errOut io.Writer,
	operation func(ctx context.Context, id int64) (T, error),
) []BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if errOut == nil {
		errOut = io.Discard
	}

	sem := semaphore.NewWeighted(concurrency)
	var mu sync.Mutex
	results := make([]BulkResult, 0, len(ids))
	total := len(ids)
	var done int64

	g, ctx := errgroup.WithContext(ctx)

	for _, id := range ids {
		id := id

		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			if ctx.Err() != nil {
				return nil
			}

			data, err := operation(ctx, id)

			result := BulkResult{ID: id, Success: err == nil, Error: err}
			if err == nil {
				result.Data = data
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			if progress && total > 0 {
				current := atomic.AddInt64(&done, 1)
				mu.Lock()
				_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d", current, total)
				mu.Unlock()
			}

			return nil
		})
	}

	_ = g.Wait()

	if progress && total > 0 {
		mu.Lock()
		_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d\n", atomic.LoadInt64(&done), total)
		mu.Unlock()
	}

	return results
}

// countResults tallies successes and failures.
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}

// reportBulkResults prints a summary and returns an error if anything failed.
func reportBulkResults(cmd *cobra.Command, verb string, results []BulkResult) error {
	success, failure := countResults(results)

	if isJSON() {
		type failureEntry struct {
			ID    int64  `json:"id"`
			Error string `json:"error"`
		}
		failures := make([]failureEntry, 0, failure)
		for _, r := range results {
			if !r.Success {
				failures = append(failures, failureEntry{ID: r.ID, Error: r.Error.Error()})
			}
		}
		payload := map[string]any{
			"succeeded": success,
			"failed":    failure,
		}
		if len(failures) > 0 {
			payload["failures"] = failures
		}
		if err := printJSON(cmd, payload); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d %s, %d failed\n", success, verb, failure)
		for _, r := range results {
			if !r.Success {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %d: %v\n", r.ID, r.Error)
			}
		}
	}

	if failure > 0 {
		return &handledError{
			err:      fmt.Errorf("%d of %d operations failed", failure, len(results)),
			exitCode: exitGeneric,
		}
	}
	return nil
}
