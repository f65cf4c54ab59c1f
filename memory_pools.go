// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ===================== zlib Writer Pool =====================
// zlib writers carry large hash tables; reusing them keeps alpha separation
// from allocating two fresh compressors per image.

var zlibWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := zlib.NewWriterLevel(io.Discard, zlib.DefaultCompression)
		return w
	},
}

// deflate zlib-compresses data into a new slice.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/4 + 64)

	w := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inflate decompresses a zlib stream, reading at most limit bytes of output
// (limit <= 0 means unbounded). The stream need not be terminated properly:
// PNG encoders sometimes omit the trailing checksum, and only the raster bytes matter.
func inflate(data []byte, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var rd io.Reader = zr
	if limit > 0 {
		rd = io.LimitReader(zr, limit)
	}
	buf := getBuffer()
	defer putBuffer(buf)
	if _, err := buf.ReadFrom(rd); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// ===================== Byte Buffer Pool =====================

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// getBuffer gets an empty buffer from the pool
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool. Very large buffers are dropped
// so one huge image does not pin its raster in memory.
func putBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > 16<<20 {
		return
	}
	bufferPool.Put(buf)
}
