// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

// Embedded describes the objects Embed wrote to the document.
type Embedded struct {
	// Image is the primary image XObject.
	Image Reference

	// SMask is the soft-mask image, for images with an alpha channel.
	SMask *Reference

	// Palette is the stream holding the indexed color lookup table.
	Palette *Reference

	// Version is the earliest PDF version able to display the image.
	Version PDFVersion
}

// Embed writes img to doc as an image XObject, together with its palette
// and soft mask where needed, using DefaultLimits.
//
// Images with an alpha channel are separated first (see SeparateAlpha), which
// rewrites img.Data. Malformed, unsupported and oversized images are rejected
// before anything is written to doc. If doc.PutStream fails, the streams
// written before it (palette, soft mask) stay in doc.
func Embed(doc Document, img *Image) (*Embedded, error) {
	return EmbedWithLimits(doc, img, DefaultLimits())
}

// EmbedWithLimits is like Embed but rejects images whose inflated raster
// would exceed lim.MaxRasterBytes when alpha separation is needed.
func EmbedWithLimits(doc Document, img *Image, lim Limits) (*Embedded, error) {
	if err := img.checkMethods(); err != nil {
		return nil, wrapError("embed", err)
	}
	space, err := deviceSpace(img.Channels())
	if err != nil {
		return nil, wrapError("embed", err)
	}
	if img.HasAlpha() {
		if err := img.separateAlpha(lim.MaxRasterBytes); err != nil {
			return nil, err
		}
	}

	// Everything below only builds objects; nothing can be rejected any more.
	res := &Embedded{Version: MinVersion(img)}
	hdr := Dict{
		"Type":             Name("XObject"),
		"Subtype":          Name("Image"),
		"Width":            Integer(img.Width),
		"Height":           Integer(img.Height),
		"BitsPerComponent": Integer(img.BitDepth),
		"Length":           Integer(len(img.Data)),
		"Filter":           Name("FlateDecode"),
		"ColorSpace":       space,
	}
	if !img.separated {
		// The IDAT stream still carries PNG row filters.
		hdr["DecodeParms"] = Dict{
			"Predictor":        Integer(15),
			"Colors":           Integer(img.Channels()),
			"BitsPerComponent": Integer(img.BitDepth),
			"Columns":          Integer(img.Width),
		}
	}
	if mask := colorKeyMask(img); mask != nil {
		hdr["Mask"] = mask
	}
	if t := img.Transparency; t != nil && t.Kind == IndexedAlphas {
		debugf("palette transparency is not translated")
	}

	if len(img.Palette) > 0 {
		ref := doc.Alloc()
		pal := Dict{"Length": Integer(len(img.Palette))}
		if err := doc.PutStream(ref, pal, img.Palette); err != nil {
			return nil, wrapChunkError("embed", chunkPLTE, err)
		}
		res.Palette = &ref
		hdr["ColorSpace"] = Array{Name("Indexed"), Name("DeviceRGB"), Integer(paletteHival(img.Palette)), ref}
	}

	if img.HasAlpha() {
		ref := doc.Alloc()
		smask := Dict{
			"Type":             Name("XObject"),
			"Subtype":          Name("Image"),
			"Width":            Integer(img.Width),
			"Height":           Integer(img.Height),
			"ColorSpace":       Name("DeviceGray"),
			"BitsPerComponent": Integer(img.AlphaBitDepth()),
			"Decode":           Array{Integer(0), Integer(1)},
			"Length":           Integer(len(img.Alpha)),
			"Filter":           Name("FlateDecode"),
		}
		if err := doc.PutStream(ref, smask, img.Alpha); err != nil {
			return nil, wrapError("embed soft mask", err)
		}
		res.SMask = &ref
		hdr["SMask"] = ref
	}

	res.Image = doc.Alloc()
	if err := doc.PutStream(res.Image, hdr, img.Data); err != nil {
		return nil, wrapError("embed", err)
	}
	debugf("embedded %dx%d %v image as %v (PDF %v)", img.Width, img.Height, img.ColorType, res.Image, res.Version)
	return res, nil
}
