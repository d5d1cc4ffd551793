package export

import (
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tessellab/region-bridge/internal/regions"
)

// HSL is a hue/saturation/lightness triple in degrees and percent.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Stats summarizes the pixels of an exported region.
type Stats struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MeanHex       string  `json:"mean_hex"`
	MeanR         uint8   `json:"mean_r"`
	MeanG         uint8   `json:"mean_g"`
	MeanB         uint8   `json:"mean_b"`
	MeanHSL       HSL     `json:"mean_hsl"`
	MeanIntensity float64 `json:"mean_intensity"`
}

// RegionStats reads the requested region on the composite plane and
// reports its mean color.
func RegionStats(src Source, req Request) (*Stats, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	plane := regions.Plane{C: -1, Z: req.Z, T: req.T}
	img, err := src.ReadRegion(plane, req.Downsample, req.X, req.Y, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("stats %s %s: %w", src.Name(), req, err)
	}
	return imageStats(img), nil
}

func imageStats(img image.Image) *Stats {
	bounds := img.Bounds()
	var sumR, sumG, sumB float64
	n := float64(bounds.Dx() * bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += float64(r) / 65535
			sumG += float64(g) / 65535
			sumB += float64(b) / 65535
		}
	}
	mean := colorful.Color{R: sumR / n, G: sumG / n, B: sumB / n}
	h, s, l := mean.Hsl()
	return &Stats{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		MeanHex:       mean.Hex(),
		MeanR:         uint8(mean.R*255 + 0.5),
		MeanG:         uint8(mean.G*255 + 0.5),
		MeanB:         uint8(mean.B*255 + 0.5),
		MeanHSL:       HSL{H: int(h + 0.5), S: int(s*100 + 0.5), L: int(l*100 + 0.5)},
		MeanIntensity: (sumR + sumG + sumB) / (3 * n) * 255,
	}
}
