package pngembed

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"
	"testing"
)

var testSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

type testChunk struct {
	typ  string
	data []byte
}

// buildPNG assembles a signature and the given chunks, with valid CRCs.
func buildPNG(chunks ...testChunk) []byte {
	var buf bytes.Buffer
	buf.Write(testSignature)
	for _, c := range chunks {
		writeChunk(&buf, c.typ, c.data)
	}
	return buf.Bytes()
}

func writeChunk(w io.Writer, typ string, data []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)
	w.Write(hdr[:])
	w.Write(data)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	w.Write(sum[:])
}

func ihdrChunk(width, height uint32, depth uint8, ct ColorType) testChunk {
	return ihdrChunkMethods(width, height, depth, ct, 0, 0, 0)
}

func ihdrChunkMethods(width, height uint32, depth uint8, ct ColorType, comp, filter, interlace uint8) testChunk {
	d := make([]byte, 13)
	binary.BigEndian.PutUint32(d[0:4], width)
	binary.BigEndian.PutUint32(d[4:8], height)
	d[8] = depth
	d[9] = byte(ct)
	d[10] = comp
	d[11] = filter
	d[12] = interlace
	return testChunk{"IHDR", d}
}

func iendChunk() testChunk {
	return testChunk{"IEND", nil}
}

// filterRow applies PNG filter ft to cur (given the unfiltered previous row)
// and returns the filtered bytes.
func filterRow(ft byte, cur, prev []byte, bpp int) []byte {
	out := make([]byte, len(cur))
	for i := range cur {
		var a, b, c byte
		if i >= bpp {
			a = cur[i-bpp]
			c = prev[i-bpp]
		}
		b = prev[i]
		switch ft {
		case ftNone:
			out[i] = cur[i]
		case ftSub:
			out[i] = cur[i] - a
		case ftUp:
			out[i] = cur[i] - b
		case ftAverage:
			out[i] = cur[i] - byte((int(a)+int(b))/2)
		case ftPaeth:
			out[i] = cur[i] - paethPredictor(a, b, c)
		}
	}
	return out
}

// filteredRaster filters rows, cycling through the five filter types, and
// returns the filtered stream with filter-type bytes.
func filteredRaster(rows [][]byte, bpp int) []byte {
	var buf bytes.Buffer
	prev := make([]byte, len(rows[0]))
	for y, row := range rows {
		ft := byte(y % 5)
		buf.WriteByte(ft)
		buf.Write(filterRow(ft, row, prev, bpp))
		prev = row
	}
	return buf.Bytes()
}

func zlibCompress(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

func zlibDecompress(t testing.TB, data []byte) []byte {
	t.Helper()
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("zlib reader: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("zlib read: %v", err)
	}
	return out
}

// alphaImage builds a non-interlaced GrayAlpha or RGBA image from unfiltered rows.
func alphaImage(t testing.TB, width, height uint32, depth uint8, ct ColorType, rows [][]byte) *Image {
	t.Helper()
	img := &Image{Width: width, Height: height, BitDepth: depth, ColorType: ct}
	img.Data = zlibCompress(t, filteredRaster(rows, img.BitsPerPixel()/8))
	return img
}
