package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tessellab/region-bridge/internal/regions"
)

// Wire structs for the exchange format. Rectangle and Ellipse are
// extended geometry types carrying a single closed ring in
// "coordinates", so plain GeoJSON consumers that ignore the tag can
// still read them as polygons.

type featureJSON struct {
	Type       string          `json:"type"`
	ID         string          `json:"id,omitempty"`
	Geometry   *geometryJSON   `json:"geometry,omitempty"`
	Properties *propertiesJSON `json:"properties,omitempty"`
	Plane      json.RawMessage `json:"plane,omitempty"`
}

type geometryJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Plane       json.RawMessage `json:"plane,omitempty"`
}

type propertiesJSON struct {
	Classification *classificationJSON `json:"classification,omitempty"`
	Measurements   map[string]float64  `json:"measurements,omitempty"`
}

// classificationJSON accepts both the object form {"name": "Tumor"}
// and a bare string "Tumor".
type classificationJSON struct {
	Name string `json:"name"`
}

func (c *classificationJSON) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}
	type plain classificationJSON
	return json.Unmarshal(data, (*plain)(c))
}

func decodeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrDecode, err)
}

// --- geometry <-> ROI ---

type pair [2]float64

func toPairs(pts []regions.Point) []pair {
	out := make([]pair, len(pts))
	for i, p := range pts {
		out[i] = pair{p.X, p.Y}
	}
	return out
}

func fromPairs(pairs []pair) []regions.Point {
	out := make([]regions.Point, len(pairs))
	for i, p := range pairs {
		out[i] = regions.Point{X: p[0], Y: p[1]}
	}
	return out
}

// boundsRing is the closed ring for rectangle-like shapes, wound
// clockwise from the top-left corner.
func boundsRing(r *regions.ROI) []pair {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	return []pair{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func (c Codec) roiToGeometry(r *regions.ROI, withPlane bool) (*geometryJSON, error) {
	var coords interface{}
	switch r.Kind {
	case regions.Rectangle, regions.Ellipse:
		coords = [][]pair{boundsRing(r)}
	case regions.Polygon:
		rings := make([][]pair, 0, 1+len(r.Holes))
		rings = append(rings, closeRing(toPairs(r.Vertices)))
		for _, hole := range r.Holes {
			rings = append(rings, closeRing(toPairs(hole)))
		}
		coords = rings
	case regions.Line, regions.Points:
		coords = toPairs(r.Vertices)
	default:
		return nil, fmt.Errorf("geojson: unsupported shape %q", r.Kind)
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	g := &geometryJSON{Type: string(r.Kind), Coordinates: raw}
	if withPlane && c.PlaneAware {
		g.Plane = EncodePlane(r.Plane)
	}
	return g, nil
}

// closeRing appends the first vertex if the ring is not already
// closed, as GeoJSON linear rings require.
func closeRing(ring []pair) []pair {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// openRing drops a trailing duplicate of the first vertex.
func openRing(ring []pair) []pair {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

func (c Codec) geometryToROI(g *geometryJSON, plane regions.Plane) (*regions.ROI, error) {
	switch regions.Shape(g.Type) {
	case regions.Rectangle, regions.Ellipse:
		var rings [][]pair
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, decodeErr(err)
		}
		if len(rings) == 0 || len(rings[0]) == 0 {
			return nil, fmt.Errorf("%w: %s with no coordinates", ErrDecode, g.Type)
		}
		x0, y0, x1, y1 := ringBounds(rings[0])
		if regions.Shape(g.Type) == regions.Ellipse {
			return regions.NewEllipse(x0, y0, x1-x0, y1-y0, plane), nil
		}
		return regions.NewRectangle(x0, y0, x1-x0, y1-y0, plane), nil
	case regions.Polygon:
		var rings [][]pair
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, decodeErr(err)
		}
		if len(rings) == 0 {
			return nil, fmt.Errorf("%w: polygon with no rings", ErrDecode)
		}
		holes := make([][]regions.Point, 0, len(rings)-1)
		for _, hole := range rings[1:] {
			holes = append(holes, fromPairs(openRing(hole)))
		}
		if len(holes) == 0 {
			holes = nil
		}
		return regions.NewPolygon(fromPairs(openRing(rings[0])), holes, plane), nil
	case regions.Line:
		var pts []pair
		if err := json.Unmarshal(g.Coordinates, &pts); err != nil {
			return nil, decodeErr(err)
		}
		return regions.NewLine(fromPairs(pts), plane), nil
	case regions.Points:
		var pts []pair
		if err := json.Unmarshal(g.Coordinates, &pts); err != nil {
			return nil, decodeErr(err)
		}
		return regions.NewPoints(fromPairs(pts), plane), nil
	default:
		return nil, fmt.Errorf("%w: unsupported geometry type %q", ErrDecode, g.Type)
	}
}

func ringBounds(ring []pair) (minX, minY, maxX, maxY float64) {
	minX, minY = ring[0][0], ring[0][1]
	maxX, maxY = minX, minY
	for _, p := range ring[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return minX, minY, maxX, maxY
}

// --- object <-> feature ---

func (c Codec) objectToFeature(o *regions.Object) (*featureJSON, error) {
	geom, err := c.roiToGeometry(o.ROI, false)
	if err != nil {
		return nil, err
	}
	f := &featureJSON{
		Type:     "Feature",
		ID:       o.ID.String(),
		Geometry: geom,
	}
	if c.PlaneAware {
		f.Plane = EncodePlane(o.ROI.Plane)
	}
	props := &propertiesJSON{}
	if o.Classification != "" {
		props.Classification = &classificationJSON{Name: o.Classification}
	}
	if len(o.Measurements) > 0 {
		props.Measurements = o.Measurements
	}
	f.Properties = props
	return f, nil
}

func (c Codec) featureToObject(f *featureJSON) (*regions.Object, error) {
	plane := regions.DefaultPlane()
	if c.PlaneAware {
		var raw json.RawMessage
		if len(f.Plane) > 0 {
			raw = f.Plane
		} else if f.Geometry != nil && len(f.Geometry.Plane) > 0 {
			raw = f.Geometry.Plane
		}
		if len(raw) > 0 {
			var err error
			if plane, err = DecodePlane(raw); err != nil {
				return nil, err
			}
		}
	}
	if f.Geometry == nil {
		return nil, fmt.Errorf("%w: feature without geometry", ErrDecode)
	}
	roi, err := c.geometryToROI(f.Geometry, plane)
	if err != nil {
		return nil, err
	}
	obj := regions.NewObject(roi)
	if id, err := uuid.Parse(f.ID); err == nil {
		obj.ID = id
	}
	if f.Properties != nil {
		if f.Properties.Classification != nil {
			obj.Classification = f.Properties.Classification.Name
		}
		for name, value := range f.Properties.Measurements {
			obj.Measurements[name] = value
		}
	}
	return obj, nil
}
