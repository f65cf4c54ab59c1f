// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Limits bounds the resources spent on a single image.
type Limits struct {
	// MaxRasterBytes is the largest inflated raster (rows plus filter bytes)
	// that alpha separation will hold in memory (0 = no limit).
	// Separation keeps about twice this amount alive at its peak.
	MaxRasterBytes int64
}

// DefaultLimits returns sensible default limits
func DefaultLimits() Limits {
	return Limits{
		MaxRasterBytes: 256 * 1024 * 1024, // 256MB, e.g. 8192x8192 RGBA
	}
}

// BatchOptions configures batch processing behavior
type BatchOptions struct {
	// Number of concurrent workers (0 = NumCPU, capped at 4)
	Workers int

	// Context for cancellation; images not yet started when it is done
	// report ErrContextCancelled
	Context context.Context

	// Limits applied to every image. If nil, uses DefaultLimits()
	Limits *Limits
}

// BatchResult is the outcome for one input of a batch.
type BatchResult struct {
	Index    int
	Image    *Image
	Embedded *Embedded // nil for DecodeBatch
	Error    error
}

func (opts *BatchOptions) setDefaults(n int) {
	if opts.Workers <= 0 {
		workers := runtime.NumCPU()
		if workers > 4 {
			workers = 4
		}
		opts.Workers = workers
	}
	if opts.Workers > n {
		opts.Workers = n
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Limits == nil {
		lim := DefaultLimits()
		opts.Limits = &lim
	}
}

// DecodeBatch parses every input concurrently. Results are in input order.
func DecodeBatch(inputs [][]byte, opts BatchOptions) []BatchResult {
	return runBatch(inputs, opts, func(i int, data []byte, lim Limits) BatchResult {
		img, err := Parse(data)
		return BatchResult{Index: i, Image: img, Error: err}
	})
}

// EmbedBatch parses and embeds every input concurrently into doc, which must
// be safe for concurrent use (MemoryDocument is). Results are in input order
// and a failed image does not stop the others. Images rejected as malformed,
// unsupported or too large leave no objects behind; a PutStream error may
// leave the palette or soft mask already written for that image.
func EmbedBatch(doc Document, inputs [][]byte, opts BatchOptions) []BatchResult {
	return runBatch(inputs, opts, func(i int, data []byte, lim Limits) BatchResult {
		img, err := Parse(data)
		if err != nil {
			return BatchResult{Index: i, Error: err}
		}
		emb, err := EmbedWithLimits(doc, img, lim)
		return BatchResult{Index: i, Image: img, Embedded: emb, Error: err}
	})
}

func runBatch(inputs [][]byte, opts BatchOptions, work func(int, []byte, Limits) BatchResult) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}
	opts.setDefaults(len(inputs))

	jobs := make(chan int, opts.Workers*2)
	go func() {
		defer close(jobs)
		for i := range inputs {
			jobs <- i
		}
	}()

	// Each worker writes only the slots of the indices it receives.
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := opts.Context.Err(); err != nil {
					results[i] = BatchResult{Index: i, Error: wrapError("batch", fmt.Errorf("%w: %v", ErrContextCancelled, err))}
					continue
				}
				results[i] = work(i, inputs[i], *opts.Limits)
			}
		}()
	}
	wg.Wait()
	return results
}
