package regions

import "fmt"

// Plane identifies one 2D slice of a multi-dimensional image by its
// channel, z-depth and timepoint indices.
//
// A channel of -1 means "no specific channel"; for an RGB-backed
// image this selects the full composite rather than a single band.
// Planes are immutable values; compare them with ==.
type Plane struct {
	C int `json:"c"`
	Z int `json:"z"`
	T int `json:"t"`
}

// DefaultPlane returns the plane used when a producer omits plane
// information: no specific channel, first z-slice, first timepoint.
func DefaultPlane() Plane {
	return Plane{C: -1, Z: 0, T: 0}
}

// PlaneWithChannel builds a plane from explicit indices.
func PlaneWithChannel(c, z, t int) Plane {
	return Plane{C: c, Z: z, T: t}
}

func (p Plane) String() string {
	return fmt.Sprintf("plane(c=%d, z=%d, t=%d)", p.C, p.Z, p.T)
}
