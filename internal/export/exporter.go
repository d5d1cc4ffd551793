package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/tessellab/region-bridge/internal/regions"
	"github.com/tessellab/region-bridge/internal/tiffstack"
)

// Export rasterizes the requested region and encodes it in the named
// format. Stack format names package every channel/z/t plane of the
// volume that intersects the rectangle into one multi-page container;
// any other recognized name encodes the single composite plane at
// (request.Z, request.T).
//
// Failed pixel reads propagate without retries; a backing source with
// flaky storage owns its own retry policy.
func Export(src Source, req Request, format string) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	enc, stack, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	if stack {
		return exportStack(src, req)
	}

	plane := regions.Plane{C: -1, Z: req.Z, T: req.T}
	img, err := src.ReadRegion(plane, req.Downsample, req.X, req.Y, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("export %s %s: %w", src.Name(), req, err)
	}
	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, fmt.Errorf("export %s: encode %s: %w", src.Name(), format, err)
	}
	return buf.Bytes(), nil
}

// ExportFull exports the image's whole extent on the default plane.
func ExportFull(src Source, downsample float64, format string) ([]byte, error) {
	return Export(src, FullRequest(src, downsample), format)
}

// exportStack reads one page per plane and packages them into a
// multi-page TIFF. Pages are ordered with the channel varying
// fastest, then z, then t. This is the hyperstack order viewers expect, so
// reordering here would silently scramble their axes.
func exportStack(src Source, req Request) ([]byte, error) {
	pages := make([]image.Image, 0, src.Channels()*src.ZSlices()*src.Timepoints())
	for t := 0; t < src.Timepoints(); t++ {
		for z := 0; z < src.ZSlices(); z++ {
			for c := 0; c < src.Channels(); c++ {
				plane := regions.PlaneWithChannel(c, z, t)
				page, err := src.ReadRegion(plane, req.Downsample, req.X, req.Y, req.Width, req.Height)
				if err != nil {
					return nil, fmt.Errorf("export %s %s %s: %w", src.Name(), req, plane, err)
				}
				pages = append(pages, page)
			}
		}
	}
	var buf bytes.Buffer
	if err := tiffstack.Encode(&buf, pages, nil); err != nil {
		return nil, fmt.Errorf("export %s: stack: %w", src.Name(), err)
	}
	return buf.Bytes(), nil
}

// Base64 wraps a payload for text-safe transports: standard alphabet,
// no line breaks, no trailing newline.
func Base64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ExportBase64 is Export with the payload base64-wrapped.
func ExportBase64(src Source, req Request, format string) (string, error) {
	data, err := Export(src, req, format)
	if err != nil {
		return "", err
	}
	return Base64(data), nil
}

// ExportFullBase64 is ExportFull with the payload base64-wrapped.
func ExportFullBase64(src Source, downsample float64, format string) (string, error) {
	data, err := ExportFull(src, downsample, format)
	if err != nil {
		return "", err
	}
	return Base64(data), nil
}
