// resolve.go - color space, mask and PDF version requirements of a PNG image
package pngembed

import (
	"fmt"
)

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version string
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less reports whether v is an earlier version than w.
func (v PDFVersion) Less(w PDFVersion) bool {
	if v.Major != w.Major {
		return v.Major < w.Major
	}
	return v.Minor < w.Minor
}

var (
	// PDF12 is the baseline: FlateDecode with PNG predictors.
	PDF12 = PDFVersion{1, 2}
	// PDF14 adds soft masks (/SMask).
	PDF14 = PDFVersion{1, 4}
	// PDF15 adds 16 bits per component.
	PDF15 = PDFVersion{1, 5}
)

// MinVersion returns the earliest PDF version able to represent img.
func MinVersion(img *Image) PDFVersion {
	switch {
	case img.BitDepth > 8:
		return PDF15
	case img.HasAlpha():
		return PDF14
	default:
		return PDF12
	}
}

// checkMethods rejects PNG variants whose data cannot be passed through:
// only compression method 0 (zlib), filter method 0 (adaptive) and no
// interlacing are supported.
func (img *Image) checkMethods() error {
	if img.CompressionMethod != 0 {
		return unsupportedf("compression method %d", img.CompressionMethod)
	}
	if img.FilterMethod != 0 {
		return unsupportedf("filter method %d", img.FilterMethod)
	}
	if img.InterlaceMethod != 0 {
		return unsupportedf("interlace method %d", img.InterlaceMethod)
	}
	return nil
}

// deviceSpace maps a channel count onto a device color space.
func deviceSpace(channels int) (Name, error) {
	switch channels {
	case 1:
		return "DeviceGray", nil
	case 3:
		return "DeviceRGB", nil
	}
	return "", unsupportedf("%d color channels", channels)
}

// colorKeyMask builds the /Mask array for color-key transparency: each key
// sample is listed twice, as both minimum and maximum of its range.
// It returns nil when img has no color key.
func colorKeyMask(img *Image) Array {
	t := img.Transparency
	if t == nil || (t.Kind != GrayKey && t.Kind != RGBKey) {
		return nil
	}
	n := img.Channels()
	if len(t.Key) < n {
		return nil
	}
	mask := make(Array, 0, 2*n)
	for _, v := range t.Key[:n] {
		mask = append(mask, Integer(v), Integer(v))
	}
	return mask
}

// paletteHival is the highest index of an indexed color space over palette.
func paletteHival(palette []byte) int {
	return len(palette)/3 - 1
}
