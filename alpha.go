// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"encoding/binary"
	"fmt"
)

// useWideSplit selects the word-at-a-time de-interleave path for 8-bit samples.
var useWideSplit = hasWideLoads()

// SeparateAlpha splits the interleaved color and alpha samples of a
// GrayAlpha or RGBA image into two independently compressed streams.
//
// Data is inflated and defiltered, then rewritten as the compressed color
// samples without PNG predictors; Alpha receives the compressed alpha
// samples at 8 bits each (16-bit alpha keeps only its high byte).
// Images without an alpha channel, and images already separated, are left
// untouched.
func (img *Image) SeparateAlpha() error {
	return img.separateAlpha(0)
}

func (img *Image) separateAlpha(limit int64) error {
	if !img.HasAlpha() || img.separated {
		return nil
	}
	if err := img.checkMethods(); err != nil {
		return wrapError("separate alpha", err)
	}
	if img.BitDepth != 8 && img.BitDepth != 16 {
		return wrapError("separate alpha",
			unsupportedf("bit depth %d with color type %v", img.BitDepth, img.ColorType))
	}
	size, ok := img.rasterSize()
	if !ok {
		return wrapError("separate alpha",
			fmt.Errorf("%w: %dx%d raster overflows", ErrImageTooLarge, img.Width, img.Height))
	}
	if limit > 0 && size > limit {
		return wrapError("separate alpha",
			fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, size, limit))
	}

	raster, err := inflate(img.Data, size)
	if err != nil {
		return wrapChunkError("separate alpha", chunkIDAT, formatErrorf("inflate: %v", err))
	}
	width, height := int(img.Width), int(img.Height)
	sampleBytes := int(img.BitDepth) / 8
	if err := unfilter(raster, height, img.rowBytes(), img.BitsPerPixel()/8); err != nil {
		return wrapChunkError("separate alpha", chunkIDAT, err)
	}

	color, alpha := splitAlpha(raster, width, height, img.Channels(), sampleBytes)
	defer rasterPool.Put(color)
	defer rasterPool.Put(alpha)
	colorZ, err := deflate(color)
	if err != nil {
		return wrapError("separate alpha", err)
	}
	alphaZ, err := deflate(alpha)
	if err != nil {
		return wrapError("separate alpha", err)
	}

	debugf("separated %dx%d %v image: color %d bytes, alpha %d bytes",
		width, height, img.ColorType, len(colorZ), len(alphaZ))
	img.Data = colorZ
	img.Alpha = alphaZ
	img.separated = true
	return nil
}

// splitAlpha de-interleaves a defiltered raster (rows still prefixed by their
// filter byte) into packed color samples and 8-bit alpha samples.
// Both planes come from rasterPool and are fully overwritten.
func splitAlpha(raster []byte, width, height, channels, sampleBytes int) (color, alpha []byte) {
	pixel := (channels + 1) * sampleBytes
	stride := 1 + width*pixel
	colorRow := width * channels * sampleBytes

	color = rasterPool.Get(colorRow * height)
	alpha = rasterPool.Get(width * height)
	for y := 0; y < height; y++ {
		row := raster[y*stride+1 : (y+1)*stride]
		splitRow(color[y*colorRow:(y+1)*colorRow], alpha[y*width:(y+1)*width], row, channels, sampleBytes)
	}
	return color, alpha
}

func splitRow(color, alpha, row []byte, channels, sampleBytes int) {
	if sampleBytes == 1 && useWideSplit {
		splitRowWide8(color, alpha, row, channels)
		return
	}
	splitRowScalar(color, alpha, row, channels, sampleBytes)
}

// splitRowScalar handles one pixel at a time. For 16-bit samples the alpha
// value written is the sample's most significant byte.
func splitRowScalar(color, alpha, row []byte, channels, sampleBytes int) {
	pixel := (channels + 1) * sampleBytes
	colorLen := channels * sampleBytes
	ci := 0
	for x := range alpha {
		p := row[x*pixel : (x+1)*pixel]
		ci += copy(color[ci:], p[:colorLen])
		alpha[x] = p[colorLen]
	}
}

// splitRowWide8 handles 8-bit samples eight bytes at a time: two RGBA
// pixels or four GrayAlpha pixels per load. The tail goes through the scalar loop.
func splitRowWide8(color, alpha, row []byte, channels int) {
	n := len(alpha)
	x := 0
	switch channels {
	case 3:
		for ; x+2 <= n; x += 2 {
			v := binary.LittleEndian.Uint64(row[x*4:])
			c := color[x*3 : x*3+6]
			c[0] = byte(v)
			c[1] = byte(v >> 8)
			c[2] = byte(v >> 16)
			c[3] = byte(v >> 32)
			c[4] = byte(v >> 40)
			c[5] = byte(v >> 48)
			alpha[x] = byte(v >> 24)
			alpha[x+1] = byte(v >> 56)
		}
	case 1:
		for ; x+4 <= n; x += 4 {
			v := binary.LittleEndian.Uint64(row[x*2:])
			c := color[x : x+4]
			c[0] = byte(v)
			c[1] = byte(v >> 16)
			c[2] = byte(v >> 32)
			c[3] = byte(v >> 48)
			a := alpha[x : x+4]
			a[0] = byte(v >> 8)
			a[1] = byte(v >> 24)
			a[2] = byte(v >> 40)
			a[3] = byte(v >> 56)
		}
	}
	if x < n {
		splitRowScalar(color[x*channels:], alpha[x:], row[x*(channels+1):], channels, 1)
	}
}
