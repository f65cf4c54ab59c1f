// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"math/bits"
	"sync"
)

// SizedBytePool is a size-bucketed pool of byte slices for de-interleaved
// rasters. Buckets grow by a factor of four from 4KB to 16MB; larger
// requests are allocated directly and never pooled.
type SizedBytePool struct {
	pools [7]*sync.Pool
	sizes [7]int
}

// Global pool for the color and alpha planes of SeparateAlpha.
var rasterPool = NewSizedBytePool()

// NewSizedBytePool creates a pool with 7 size buckets.
func NewSizedBytePool() *SizedBytePool {
	sp := &SizedBytePool{}
	for i := range sp.pools {
		size := 4096 << (2 * i)
		sp.sizes[i] = size
		sp.pools[i] = &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		}
	}
	return sp
}

// Get returns a slice of length size. Its contents are not cleared.
func (sp *SizedBytePool) Get(size int) []byte {
	idx := sp.getBucketIndex(size)
	if idx >= len(sp.pools) {
		return make([]byte, size)
	}
	buf := *sp.pools[idx].Get().(*[]byte)
	return buf[:size]
}

// Put returns buf to its bucket. Slices that did not come from Get are dropped.
func (sp *SizedBytePool) Put(buf []byte) {
	if buf == nil {
		return
	}
	idx := sp.getBucketIndex(cap(buf))
	if idx < len(sp.pools) && cap(buf) == sp.sizes[idx] {
		buf = buf[:cap(buf)]
		sp.pools[idx].Put(&buf)
	}
}

// getBucketIndex returns the smallest bucket holding size bytes, or
// len(sp.pools) if none does.
func (sp *SizedBytePool) getBucketIndex(size int) int {
	if size <= sp.sizes[0] {
		return 0
	}
	if size > sp.sizes[len(sp.sizes)-1] {
		return len(sp.pools)
	}
	// sizes[i] = 2^(12+2i)
	return (bits.Len(uint(size-1)) - 12 + 1) / 2
}
