// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pngembed turns PNG files into image objects for a PDF document.
//
// # Overview
//
// A PNG file is a signature followed by a sequence of chunks. This package
// reads just enough of that chunk stream to recover what a PDF image XObject
// needs: the raster dimensions, the bit depth, the palette, the still
// compressed pixel data and any transparency information. Parse (or Decode)
// collects all of that into an Image.
//
// PDF readers understand zlib streams with PNG row predictors directly, so
// for most images the IDAT payload is copied into the document unchanged.
// Images with an alpha channel are the exception: PDF keeps opacity in a
// separate soft-mask image, so the interleaved samples are inflated,
// defiltered, split into a color stream and an 8-bit alpha stream, and
// recompressed. Embed performs those steps and writes the resulting objects
// through a Document, the small interface this package needs from the host
// PDF writer.
//
// Transparency is translated as follows:
//
//	GrayAlpha, RGBA      /SMask soft-mask image (8 bits per sample)
//	Gray or RGB + tRNS   /Mask color-key array
//	Indexed + tRNS       not translated
package pngembed

import (
	"log"
	"math"
	"strconv"
)

// DebugOn enables diagnostic logging of skipped chunks and embedding decisions.
var DebugOn = false

func debugf(format string, args ...interface{}) {
	if DebugOn {
		log.Printf("pngembed: "+format, args...)
	}
}

// ColorType is the PNG color type from the IHDR chunk.
type ColorType uint8

const (
	Gray      ColorType = 0
	RGB       ColorType = 2
	Indexed   ColorType = 3
	GrayAlpha ColorType = 4
	RGBA      ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Gray:
		return "Gray"
	case RGB:
		return "RGB"
	case Indexed:
		return "Indexed"
	case GrayAlpha:
		return "GrayAlpha"
	case RGBA:
		return "RGBA"
	}
	return "ColorType(" + strconv.Itoa(int(c)) + ")"
}

// TransparencyKind tells which member of Transparency is populated.
type TransparencyKind int

const (
	NoTransparency TransparencyKind = iota
	IndexedAlphas
	GrayKey
	RGBKey
)

// Transparency holds the interpretation of a tRNS chunk.
// Only the field matching Kind is meaningful.
type Transparency struct {
	Kind TransparencyKind

	// Alphas holds one alpha value per palette entry. It is at least 256
	// entries long; entries with no data in the chunk are 255. Chunks that
	// supply more than 256 entries are kept whole.
	Alphas []byte

	// Key holds the transparent sample value(s): one for GrayKey, three for RGBKey.
	Key []uint16
}

// Image is the PNG descriptor accumulated from a single pass over the chunk stream.
type Image struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8

	// Palette is the concatenation of all PLTE payloads (RGB triples).
	Palette []byte

	// Data is the concatenation of all IDAT payloads. Until SeparateAlpha
	// runs it is zlib-compressed and PNG row filtered; afterwards it holds
	// the compressed, unfiltered color samples only.
	Data []byte

	// Transparency is nil unless a tRNS chunk was seen.
	Transparency *Transparency

	// Alpha is the compressed 8-bit alpha channel produced by SeparateAlpha.
	Alpha []byte

	separated bool
}

// Channels returns the number of color channels, not counting alpha.
func (img *Image) Channels() int {
	switch img.ColorType {
	case RGB, RGBA:
		return 3
	}
	return 1
}

// HasAlpha reports whether the color type interleaves an alpha sample with each pixel.
func (img *Image) HasAlpha() bool {
	return img.ColorType == GrayAlpha || img.ColorType == RGBA
}

// BitsPerPixel returns the number of bits per pixel in the PNG raster, alpha included.
func (img *Image) BitsPerPixel() int {
	n := img.Channels()
	if img.HasAlpha() {
		n++
	}
	return int(img.BitDepth) * n
}

// AlphaBitDepth is the depth of the soft mask. PDF viewers expect 8-bit soft
// masks, so it is 8 regardless of the source depth.
func (img *Image) AlphaBitDepth() int {
	return 8
}

// Separated reports whether SeparateAlpha has already rewritten Data.
func (img *Image) Separated() bool {
	return img.separated
}

// rowBytes is the length of one unfiltered scanline, without the filter-type byte.
// Only meaningful once rasterSize has reported a size that fits in an int.
func (img *Image) rowBytes() int {
	return int(img.rowBytes64())
}

func (img *Image) rowBytes64() int64 {
	return (int64(img.BitsPerPixel())*int64(img.Width) + 7) / 8
}

// rasterSize is the length of the inflated, still filtered IDAT stream.
// ok is false if that length does not fit in an int.
func (img *Image) rasterSize() (size int64, ok bool) {
	stride := 1 + img.rowBytes64()
	h := int64(img.Height)
	if h > 0 && stride > math.MaxInt/h {
		return 0, false
	}
	return h * stride, true
}
