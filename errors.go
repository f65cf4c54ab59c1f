// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"errors"
	"fmt"
)

// PNGError represents an error that occurred while decoding or embedding a PNG image.
// It includes contextual information about where the error occurred.
type PNGError struct {
	Op    string // Operation that failed (e.g., "parse", "separate alpha", "embed")
	Chunk string // Chunk tag being processed ("" if not chunk-specific)
	Err   error  // Underlying error
}

func (e *PNGError) Error() string {
	if e.Chunk != "" {
		return fmt.Sprintf("png: %s in %s chunk: %v", e.Op, e.Chunk, e.Err)
	}
	return fmt.Sprintf("png: %s: %v", e.Op, e.Err)
}

func (e *PNGError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	// ErrFormat indicates the chunk stream is truncated or the pixel data is corrupt
	ErrFormat = errors.New("malformed PNG data")

	// ErrUnsupportedFormat indicates a PNG variant that cannot be embedded
	// (non-zero compression/filter/interlace method or an unusable color layout)
	ErrUnsupportedFormat = errors.New("unsupported PNG format")

	// ErrImageTooLarge indicates the decompressed raster exceeds the configured limit
	ErrImageTooLarge = errors.New("PNG raster exceeds size limit")

	// ErrContextCancelled is returned when a batch is cancelled before an image is processed
	ErrContextCancelled = errors.New("png: context cancelled")
)

// wrapError wraps an error with operation context
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PNGError{Op: op, Err: err}
}

// wrapChunkError wraps an error with chunk-specific context
func wrapChunkError(op, chunk string, err error) error {
	if err == nil {
		return nil
	}
	return &PNGError{Op: op, Chunk: chunk, Err: err}
}

// formatErrorf returns an ErrFormat-wrapping error with extra detail.
func formatErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// unsupportedf returns an ErrUnsupportedFormat-wrapping error with extra detail.
func unsupportedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}
