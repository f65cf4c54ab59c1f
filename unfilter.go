// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import "fmt"

// PNG scanline filter types.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
)

// unfilter reverses PNG scanline filtering in place.
//
// raster holds height rows of 1+rowBytes bytes, each starting with its filter
// type. On return the rowBytes following each filter byte hold the
// reconstructed samples. bytesPerPixel is the filter distance: the number of
// bytes per complete pixel, rounded up to 1 for sub-byte depths.
func unfilter(raster []byte, height, rowBytes, bytesPerPixel int) error {
	stride := 1 + rowBytes
	// len(raster)/height < stride is len(raster) < height*stride without the overflow.
	if height > 0 && len(raster)/height < stride {
		return formatErrorf("not enough pixel data: have %d bytes for %d rows of %d", len(raster), height, stride)
	}

	zero := make([]byte, rowBytes)
	prev := zero
	for y := 0; y < height; y++ {
		row := raster[y*stride : (y+1)*stride]
		cur := row[1:]
		if err := unfilterRow(row[0], cur, prev, bytesPerPixel); err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
		prev = cur
	}
	return nil
}

// unfilterRow reconstructs one scanline. prev is the reconstructed previous
// scanline (all zero for the first row).
func unfilterRow(ft byte, cur, prev []byte, bpp int) error {
	switch ft {
	case ftNone:
		// No-op.

	case ftSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}

	case ftUp:
		for i := range cur {
			cur[i] += prev[i]
		}

	case ftAverage:
		// The first pixel has nothing to its left.
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prev[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += byte((int(cur[i-bpp]) + int(prev[i])) / 2)
		}

	case ftPaeth:
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += paethPredictor(0, prev[i], 0)
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += paethPredictor(cur[i-bpp], prev[i], prev[i-bpp])
		}

	default:
		return formatErrorf("bad filter type %d", ft)
	}
	return nil
}

// paethPredictor picks whichever of left (a), above (b) and upper-left (c)
// is closest to a+b-c, preferring a, then b.
func paethPredictor(a, b, c byte) byte {
	pa := absInt(int(b) - int(c))
	pb := absInt(int(a) - int(c))
	pc := absInt(int(a) + int(b) - 2*int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
