// Package tiffstack writes multi-page TIFF containers, one page per
// image plane. Pages are chained through the IFD next-pointer in the
// order supplied, which is how hyperstack-aware viewers recover the
// plane ordering, so callers must supply pages already ordered.
//
// The writer emits baseline little-endian TIFF: one strip per page,
// 8-bit grayscale or interleaved RGB, optionally Deflate-compressed
// (Adobe-style zlib streams).
package tiffstack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/draw"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression selects the strip encoding for every page.
type Compression int

const (
	Uncompressed Compression = iota
	Deflate
)

// Options configures Encode. A nil Options means Deflate compression,
// matching what downstream viewers expect from exported stacks.
type Options struct {
	Compression Compression
}

// TIFF constants used by the writer.
const (
	typeShort = 3
	typeLong  = 4

	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279

	compressionNone    = 1
	compressionDeflate = 8

	photometricGray = 1
	photometricRGB  = 2

	ifdEntries = 9
	ifdSize    = 2 + ifdEntries*12 + 4
)

// Encode writes pages as one multi-page TIFF. At least one page is
// required. Grayscale pages (*image.Gray) are written as single-sample
// strips; everything else is converted to interleaved 8-bit RGB.
func Encode(w io.Writer, pages []image.Image, opt *Options) error {
	if len(pages) == 0 {
		return errors.New("tiffstack: no pages")
	}
	compression := Deflate
	if opt != nil {
		compression = opt.Compression
	}

	var buf bytes.Buffer
	// Header: byte order, magic, placeholder for first IFD offset.
	buf.WriteString("II")
	writeUint16(&buf, 42)
	writeUint32(&buf, 0)

	ifdOffsets := make([]uint32, len(pages))
	for i, page := range pages {
		offset, err := writePage(&buf, page, compression)
		if err != nil {
			return err
		}
		ifdOffsets[i] = offset
	}

	// Patch the IFD chain: header points at the first IFD, each IFD
	// at the next, the last stays zero.
	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[4:], ifdOffsets[0])
	for i := 0; i < len(ifdOffsets)-1; i++ {
		next := ifdOffsets[i] + 2 + ifdEntries*12
		binary.LittleEndian.PutUint32(out[next:], ifdOffsets[i+1])
	}

	_, err := w.Write(out)
	return err
}

// writePage appends one page's strip data and IFD, returning the IFD
// offset within the buffer.
func writePage(buf *bytes.Buffer, page image.Image, compression Compression) (uint32, error) {
	bounds := page.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray, isGray := page.(*image.Gray)
	var raw []byte
	samples := 3
	if isGray {
		samples = 1
		raw = packGray(gray)
	} else {
		raw = packRGB(page)
	}

	strip := raw
	tag := uint32(compressionNone)
	if compression == Deflate {
		var comp bytes.Buffer
		zw := zlib.NewWriter(&comp)
		if _, err := zw.Write(raw); err != nil {
			return 0, err
		}
		if err := zw.Close(); err != nil {
			return 0, err
		}
		strip = comp.Bytes()
		tag = compressionDeflate
	}

	stripOffset := uint32(buf.Len())
	buf.Write(strip)
	if buf.Len()%2 == 1 {
		buf.WriteByte(0)
	}

	// BitsPerSample for RGB does not fit inline and needs an external
	// value block.
	var bpsOffset uint32
	if samples == 3 {
		bpsOffset = uint32(buf.Len())
		for i := 0; i < 3; i++ {
			writeUint16(buf, 8)
		}
	}

	photometric := uint32(photometricRGB)
	bpsCount, bpsValue := uint32(3), bpsOffset
	if samples == 1 {
		photometric = photometricGray
		bpsCount, bpsValue = 1, 8
	}

	ifdOffset := uint32(buf.Len())
	writeUint16(buf, ifdEntries)
	writeEntry(buf, tagImageWidth, typeLong, 1, uint32(width))
	writeEntry(buf, tagImageLength, typeLong, 1, uint32(height))
	writeEntry(buf, tagBitsPerSample, typeShort, bpsCount, bpsValue)
	writeEntry(buf, tagCompression, typeShort, 1, tag)
	writeEntry(buf, tagPhotometric, typeShort, 1, photometric)
	writeEntry(buf, tagStripOffsets, typeLong, 1, stripOffset)
	writeEntry(buf, tagSamplesPerPixel, typeShort, 1, uint32(samples))
	writeEntry(buf, tagRowsPerStrip, typeLong, 1, uint32(height))
	writeEntry(buf, tagStripByteCounts, typeLong, 1, uint32(len(strip)))
	writeUint32(buf, 0) // next IFD, patched by Encode

	return ifdOffset, nil
}

func packGray(img *image.Gray) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := make([]byte, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		out = append(out, row[:width]...)
	}
	return out
}

func packRGB(img image.Image) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	nb := nrgba.Bounds()
	out := make([]byte, 0, width*height*3)
	for y := nb.Min.Y; y < nb.Max.Y; y++ {
		row := nrgba.Pix[nrgba.PixOffset(nb.Min.X, y):]
		for x := 0; x < width*4; x += 4 {
			out = append(out, row[x], row[x+1], row[x+2])
		}
	}
	return out
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// writeEntry writes one 12-byte IFD entry. Short values are inlined
// left-justified in the value field per the TIFF spec.
func writeEntry(buf *bytes.Buffer, tag, typ uint16, count, value uint32) {
	writeUint16(buf, tag)
	writeUint16(buf, typ)
	writeUint32(buf, count)
	if typ == typeShort && count == 1 {
		writeUint16(buf, uint16(value))
		writeUint16(buf, 0)
		return
	}
	writeUint32(buf, value)
}
