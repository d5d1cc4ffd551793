package regions

import "fmt"

// Shape is the closed set of geometry kinds the exchange format
// understands. Codecs dispatch on this tag rather than on concrete
// types, so adding a shape means extending this set deliberately.
type Shape string

const (
	Rectangle Shape = "Rectangle"
	Ellipse   Shape = "Ellipse"
	Polygon   Shape = "Polygon"
	Line      Shape = "LineString"
	Points    Shape = "MultiPoint"
)

// Point is a 2D vertex in level-0 pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ROI is a region of interest: one tagged geometric shape fixed to a
// single image plane.
//
// Which fields are meaningful depends on Kind:
//   - Rectangle, Ellipse: X, Y, Width, Height (bounding box)
//   - Polygon: Vertices (outer ring) and optional Holes
//   - Line, Points: Vertices
//
// An ROI belongs to exactly one Object and is not shared.
type ROI struct {
	Kind     Shape
	Plane    Plane
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Vertices []Point
	Holes    [][]Point
}

// NewRectangle builds a rectangular ROI on the given plane.
func NewRectangle(x, y, w, h float64, plane Plane) *ROI {
	return &ROI{Kind: Rectangle, Plane: plane, X: x, Y: y, Width: w, Height: h}
}

// NewEllipse builds an elliptical ROI from its bounding box.
func NewEllipse(x, y, w, h float64, plane Plane) *ROI {
	return &ROI{Kind: Ellipse, Plane: plane, X: x, Y: y, Width: w, Height: h}
}

// NewPolygon builds a polygonal ROI from an outer ring and optional holes.
func NewPolygon(ring []Point, holes [][]Point, plane Plane) *ROI {
	r := &ROI{Kind: Polygon, Plane: plane, Vertices: ring, Holes: holes}
	r.computeBounds(ring)
	return r
}

// NewLine builds a polyline ROI.
func NewLine(vertices []Point, plane Plane) *ROI {
	r := &ROI{Kind: Line, Plane: plane, Vertices: vertices}
	r.computeBounds(vertices)
	return r
}

// NewPoints builds a point-set ROI.
func NewPoints(vertices []Point, plane Plane) *ROI {
	r := &ROI{Kind: Points, Plane: plane, Vertices: vertices}
	r.computeBounds(vertices)
	return r
}

func (r *ROI) computeBounds(pts []Point) {
	if len(pts) == 0 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	r.X, r.Y = minX, minY
	r.Width, r.Height = maxX-minX, maxY-minY
}

// Equal reports whether two ROIs have the same shape, plane and
// coordinates.
func (r *ROI) Equal(o *ROI) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Kind != o.Kind || r.Plane != o.Plane {
		return false
	}
	if r.X != o.X || r.Y != o.Y || r.Width != o.Width || r.Height != o.Height {
		return false
	}
	if !pointsEqual(r.Vertices, o.Vertices) || len(r.Holes) != len(o.Holes) {
		return false
	}
	for i := range r.Holes {
		if !pointsEqual(r.Holes[i], o.Holes[i]) {
			return false
		}
	}
	return true
}

func pointsEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *ROI) String() string {
	return fmt.Sprintf("%s [%.1f, %.1f, %.1f, %.1f] %s", r.Kind, r.X, r.Y, r.Width, r.Height, r.Plane)
}
