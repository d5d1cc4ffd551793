// Package batch partitions ordered collections into bounded chunks
// and runs element-wise transformations either sequentially or on a
// bounded worker pool, preserving input order in the output either
// way.
package batch

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrChunkSize is returned when a partition is requested with a
// non-positive chunk size.
var ErrChunkSize = errors.New("batch: chunk size must be positive")

// Partition splits items into ceil(len/chunkSize) groups of at most
// chunkSize elements. Relative order is preserved within and across
// groups; only the last group may be short. The groups alias the
// input slice.
func Partition[T any](items []T, chunkSize int) ([][]T, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrChunkSize, chunkSize)
	}
	chunks := make([][]T, 0, (len(items)+chunkSize-1)/chunkSize)
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks, nil
}

// Strategy names the execution path chosen for a bulk operation.
type Strategy int

const (
	Sequential Strategy = iota
	Concurrent
)

func (s Strategy) String() string {
	if s == Concurrent {
		return "concurrent"
	}
	return "sequential"
}

// SelectExecution picks the strategy for a collection of size n:
// collections at or above threshold run concurrently, smaller ones on
// the caller's goroutine. Thresholds are tuning constants owned by
// the caller.
func SelectExecution(n, threshold int) Strategy {
	if threshold > 0 && n >= threshold {
		return Concurrent
	}
	return Sequential
}

// MapOrdered applies fn to every item and returns the results in
// input order. Collections at or above threshold fan out over at most
// GOMAXPROCS workers; each worker writes into its own index slot, so
// ordering never depends on completion order. On error the first
// failure is returned and the partial results are discarded.
func MapOrdered[T, R any](items []T, threshold int, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if SelectExecution(len(items), threshold) == Sequential {
		for i, item := range items {
			r, err := fn(item)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
