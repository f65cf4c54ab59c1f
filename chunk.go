// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Chunk tags recognised by the reader.
const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkIDAT = "IDAT"
	chunkTRNS = "tRNS"
	chunkIEND = "IEND"
)

const (
	signatureLen = 8
	ihdrLen      = 13
)

// A chunk is one length-prefixed record of the PNG container.
// Each chunk starts with a uint32 length (big endian), then a 4 byte tag,
// then the data and finally a CRC32 of tag and data, which is not checked.
type chunk struct {
	Length uint32
	Type   string
	Data   []byte
}

// chunkReader walks the chunk stream of a PNG file.
type chunkReader struct {
	r   io.Reader
	buf [8]byte
}

// readSignature consumes the 8-byte PNG signature without checking it.
func (cr *chunkReader) readSignature() error {
	_, err := io.ReadFull(cr.r, cr.buf[:signatureLen])
	return err
}

// next reads the next chunk, including its (discarded) CRC trailer.
func (cr *chunkReader) next() (*chunk, error) {
	if _, err := io.ReadFull(cr.r, cr.buf[:8]); err != nil {
		return nil, err
	}
	c := &chunk{
		Length: binary.BigEndian.Uint32(cr.buf[0:4]),
		Type:   string(cr.buf[4:8]),
	}

	// Read through a LimitReader so that a bogus length in a short file
	// fails at EOF instead of allocating the declared size up front.
	data, err := io.ReadAll(io.LimitReader(cr.r, int64(c.Length)))
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) != c.Length {
		return nil, io.ErrUnexpectedEOF
	}
	c.Data = data

	if _, err := io.ReadFull(cr.r, cr.buf[:4]); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse reads the PNG chunk stream in data and returns the accumulated image descriptor.
// It returns an error wrapping ErrFormat if the data ends before the IEND chunk.
func Parse(data []byte) (*Image, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a PNG chunk stream from r until the IEND chunk and returns
// the accumulated image descriptor. Chunk order and CRCs are not checked,
// and the image is not validated for embedding; Embed does that.
func Decode(r io.Reader) (*Image, error) {
	cr := &chunkReader{r: r}
	if err := cr.readSignature(); err != nil {
		return nil, wrapError("parse", truncated(err, "missing signature"))
	}

	img := &Image{}
	for {
		c, err := cr.next()
		if err != nil {
			return nil, wrapError("parse", truncated(err, "missing IEND chunk"))
		}
		switch c.Type {
		case chunkIHDR:
			if err := img.parseIHDR(c); err != nil {
				return nil, wrapChunkError("parse", c.Type, err)
			}
		case chunkPLTE:
			img.Palette = append(img.Palette, c.Data...)
		case chunkIDAT:
			img.Data = append(img.Data, c.Data...)
		case chunkTRNS:
			img.parseTRNS(c)
		case chunkIEND:
			return img, nil
		default:
			debugf("skipping %q chunk (%d bytes)", c.Type, c.Length)
		}
	}
}

// truncated maps a short read onto ErrFormat and leaves other reader errors alone.
func truncated(err error, detail string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return formatErrorf("%s", detail)
	}
	return err
}

// parseIHDR fills the header fields.
// Layout: width (4), height (4), bit depth, color type, compression method,
// filter method, interlace method (1 byte each).
func (img *Image) parseIHDR(c *chunk) error {
	if len(c.Data) < ihdrLen {
		return formatErrorf("IHDR is %d bytes, want %d", len(c.Data), ihdrLen)
	}
	d := c.Data
	img.Width = binary.BigEndian.Uint32(d[0:4])
	img.Height = binary.BigEndian.Uint32(d[4:8])
	img.BitDepth = d[8]
	img.ColorType = ColorType(d[9])
	img.CompressionMethod = d[10]
	img.FilterMethod = d[11]
	img.InterlaceMethod = d[12]
	return nil
}

// parseTRNS interprets a tRNS payload according to the color type seen so far.
// A tRNS chunk ahead of IHDR is read as if the image were grayscale.
func (img *Image) parseTRNS(c *chunk) {
	switch img.ColorType {
	case Indexed:
		n := len(c.Data)
		if n < 256 {
			n = 256
		}
		alphas := make([]byte, n)
		for i := copy(alphas, c.Data); i < n; i++ {
			alphas[i] = 0xff
		}
		img.Transparency = &Transparency{Kind: IndexedAlphas, Alphas: alphas}
	case Gray:
		if len(c.Data) < 2 {
			debugf("ignoring %d-byte tRNS for gray image", len(c.Data))
			return
		}
		img.Transparency = &Transparency{
			Kind: GrayKey,
			Key:  []uint16{binary.BigEndian.Uint16(c.Data[0:2])},
		}
	case RGB:
		if len(c.Data) < 6 {
			debugf("ignoring %d-byte tRNS for RGB image", len(c.Data))
			return
		}
		img.Transparency = &Transparency{
			Kind: RGBKey,
			Key: []uint16{
				binary.BigEndian.Uint16(c.Data[0:2]),
				binary.BigEndian.Uint16(c.Data[2:4]),
				binary.BigEndian.Uint16(c.Data[4:6]),
			},
		}
	default:
		debugf("ignoring tRNS for color type %v", img.ColorType)
	}
}
