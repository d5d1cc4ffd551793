package export

import "fmt"

// Request describes a rectangular pixel region of an image in level-0
// coordinates. Width and height are pre-downsampling: the exported
// raster is roughly Width/Downsample by Height/Downsample pixels.
//
// Z and T select the slice and timepoint for single-plane exports;
// the channel is chosen by the export path (composite for standard
// formats, every channel for stack formats).
type Request struct {
	Path       string  `json:"path"`
	Downsample float64 `json:"downsample"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Z          int     `json:"z"`
	T          int     `json:"t"`
}

// FullRequest covers the source's whole extent at the given
// downsample, on the default plane.
func FullRequest(src Source, downsample float64) Request {
	return Request{
		Path:       src.Name(),
		Downsample: downsample,
		Width:      src.Width(),
		Height:     src.Height(),
	}
}

// Validate checks the request's invariants. Requests may extend past
// the image bounds (the source clamps) but must have positive area
// and downsample and non-negative origin.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d region", ErrInvalidRegion, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: negative origin (%d,%d)", ErrInvalidRegion, r.X, r.Y)
	}
	if r.Downsample <= 0 {
		return fmt.Errorf("%w: downsample %g", ErrInvalidRegion, r.Downsample)
	}
	return nil
}

func (r Request) String() string {
	return fmt.Sprintf("[%d,%d %dx%d] z=%d t=%d ds=%g", r.X, r.Y, r.Width, r.Height, r.Z, r.T, r.Downsample)
}
