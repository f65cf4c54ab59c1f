// resolve_test.go - Tests for color space, mask and version resolution
package pngembed

import (
	"errors"
	"testing"
)

func TestMinVersion(t *testing.T) {
	tests := []struct {
		depth uint8
		ct    ColorType
		want  PDFVersion
	}{
		{16, RGB, PDFVersion{1, 5}},
		{16, RGBA, PDFVersion{1, 5}}, // depth wins over alpha
		{16, Gray, PDFVersion{1, 5}},
		{8, RGBA, PDFVersion{1, 4}},
		{8, GrayAlpha, PDFVersion{1, 4}},
		{8, RGB, PDFVersion{1, 2}},
		{8, Indexed, PDFVersion{1, 2}},
		{1, Gray, PDFVersion{1, 2}},
	}

	for _, tt := range tests {
		img := &Image{BitDepth: tt.depth, ColorType: tt.ct}
		if got := MinVersion(img); got != tt.want {
			t.Errorf("MinVersion(depth %d, %v) = %v, want %v", tt.depth, tt.ct, got, tt.want)
		}
	}
}

func TestPDFVersionOrdering(t *testing.T) {
	if PDF12.String() != "1.2" || PDF15.String() != "1.5" {
		t.Errorf("String() = %q, %q", PDF12.String(), PDF15.String())
	}
	if !PDF12.Less(PDF14) || !PDF14.Less(PDF15) || PDF15.Less(PDF14) || PDF14.Less(PDF14) {
		t.Errorf("Less does not order 1.2 < 1.4 < 1.5")
	}
	if !PDF15.Less(PDFVersion{2, 0}) {
		t.Errorf("1.5 should be less than 2.0")
	}
}

func TestCheckMethods(t *testing.T) {
	tests := []struct {
		comp, filter, interlace uint8
		ok                      bool
	}{
		{0, 0, 0, true},
		{1, 0, 0, false},
		{0, 1, 0, false},
		{0, 0, 1, false},
	}
	for _, tt := range tests {
		img := &Image{CompressionMethod: tt.comp, FilterMethod: tt.filter, InterlaceMethod: tt.interlace}
		err := img.checkMethods()
		if tt.ok && err != nil {
			t.Errorf("checkMethods(%d/%d/%d) = %v, want nil", tt.comp, tt.filter, tt.interlace, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("checkMethods(%d/%d/%d) = %v, want ErrUnsupportedFormat", tt.comp, tt.filter, tt.interlace, err)
		}
	}
}

func TestDeviceSpace(t *testing.T) {
	if cs, err := deviceSpace(1); err != nil || cs != "DeviceGray" {
		t.Errorf("deviceSpace(1) = %v, %v", cs, err)
	}
	if cs, err := deviceSpace(3); err != nil || cs != "DeviceRGB" {
		t.Errorf("deviceSpace(3) = %v, %v", cs, err)
	}
	for _, n := range []int{0, 2, 4} {
		if _, err := deviceSpace(n); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("deviceSpace(%d) error = %v, want ErrUnsupportedFormat", n, err)
		}
	}
}

func TestColorKeyMask(t *testing.T) {
	tests := []struct {
		name string
		img  *Image
		want string
	}{
		{"none", &Image{ColorType: RGB}, "null"},
		{"gray", &Image{ColorType: Gray, Transparency: &Transparency{Kind: GrayKey, Key: []uint16{7}}}, "[7 7]"},
		{"rgb", &Image{ColorType: RGB, Transparency: &Transparency{Kind: RGBKey, Key: []uint16{1, 0x100, 65535}}}, "[1 1 256 256 65535 65535]"},
		{"indexed", &Image{ColorType: Indexed, Transparency: &Transparency{Kind: IndexedAlphas, Alphas: make([]byte, 256)}}, "null"},
		{"gray key on rgb image", &Image{ColorType: RGB, Transparency: &Transparency{Kind: GrayKey, Key: []uint16{7}}}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := colorKeyMask(tt.img)
			var got string
			if mask == nil {
				got = Format(nil)
			} else {
				got = Format(mask)
			}
			if got != tt.want {
				t.Errorf("colorKeyMask = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPaletteHival(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{3, 0},
		{6, 1},
		{768, 255},
		{7, 1},
	}
	for _, tt := range tests {
		if got := paletteHival(make([]byte, tt.n)); got != tt.want {
			t.Errorf("paletteHival(%d bytes) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
