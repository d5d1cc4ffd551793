package export

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality applies when the caller picks a lossy format;
// codec-level tuning is not part of the export surface.
const DefaultJPEGQuality = 80

type encoderFunc func(io.Writer, image.Image) error

// singlePlaneFormats maps lowercase format names to their encoder.
// Codec choice is delegated entirely to the named encoder; this table
// only routes.
var singlePlaneFormats = map[string]encoderFunc{
	"png":  png.Encode,
	"jpg":  encodeJPEG,
	"jpeg": encodeJPEG,
	"gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	"bmp":  bmp.Encode,
	"tif":  encodeTIFF,
	"tiff": encodeTIFF,
}

// stackFormats are the names selecting multi-plane packaging.
var stackFormats = map[string]bool{
	"imagej tiff": true,
	"imagej tif":  true,
	"hyperstack":  true,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// lookupFormat resolves a caller-supplied format name. The stack flag
// reports whether the name selects multi-plane packaging, in which
// case the encoder is nil.
func lookupFormat(format string) (enc encoderFunc, stack bool, err error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if stackFormats[name] {
		return nil, true, nil
	}
	if enc, ok := singlePlaneFormats[name]; ok {
		return enc, false, nil
	}
	return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
