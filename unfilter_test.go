package pngembed

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestUnfilterAllFilterTypes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bpp := range []int{1, 2, 3, 4, 6, 8} {
		const width, height = 13, 11
		rowBytes := width * bpp
		rows := make([][]byte, height)
		for y := range rows {
			rows[y] = make([]byte, rowBytes)
			rng.Read(rows[y])
		}
		raster := filteredRaster(rows, bpp)
		if err := unfilter(raster, height, rowBytes, bpp); err != nil {
			t.Fatalf("bpp %d: unfilter: %v", bpp, err)
		}
		for y := 0; y < height; y++ {
			got := raster[y*(1+rowBytes)+1 : (y+1)*(1+rowBytes)]
			if !bytes.Equal(got, rows[y]) {
				t.Errorf("bpp %d row %d (filter %d): got %v, want %v", bpp, y, y%5, got, rows[y])
			}
		}
	}
}

func TestUnfilterSubByteRows(t *testing.T) {
	// A 1-bit image 10 pixels wide has 2-byte rows and a filter distance of 1.
	rows := [][]byte{{0xaa, 0xc0}, {0x55, 0x40}, {0xff, 0x80}, {0x0f, 0x00}, {0xf0, 0xc0}}
	raster := filteredRaster(rows, 1)
	if err := unfilter(raster, len(rows), 2, 1); err != nil {
		t.Fatalf("unfilter: %v", err)
	}
	for y, want := range rows {
		if got := raster[y*3+1 : y*3+3]; !bytes.Equal(got, want) {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
}

func TestUnfilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		raster []byte
		height int
	}{
		{"bad filter type", []byte{5, 1, 2}, 1},
		{"short raster", []byte{0, 1, 2, 0, 1}, 2},
		{"height overflows", []byte{0, 1, 2}, math.MaxInt / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := unfilter(tt.raster, tt.height, 2, 1)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("unfilter error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestPaethPredictor(t *testing.T) {
	tests := []struct {
		a, b, c, want byte
	}{
		{0, 0, 0, 0},
		{10, 20, 10, 20}, // p=20: closest to b
		{10, 20, 20, 10}, // p=10: closest to a
		{100, 50, 90, 50},
		{50, 100, 120, 50},
		{5, 5, 5, 5},
		{255, 0, 128, 128}, // p=127: closest to c
	}
	for _, tt := range tests {
		if got := paethPredictor(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paethPredictor(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}
