package geojson

import (
	"encoding/json"

	"github.com/tessellab/region-bridge/internal/batch"
	"github.com/tessellab/region-bridge/internal/regions"
)

// DecodeObjects reads objects from GeoJSON text. Four input shapes
// are accepted: a JSON array (each element decoded recursively, order
// preserved), a FeatureCollection object (its "features" member
// decoded), an empty object (empty result), and a single Feature or
// bare geometry object. Any other JSON value decodes to an empty
// sequence rather than an error, so heterogeneous producer output
// never aborts a whole batch. Broken JSON syntax fails with ErrDecode.
func (c Codec) DecodeObjects(data []byte) ([]*regions.Object, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeErr(err)
	}
	return c.decodeElement(raw)
}

// DecodeValue is DecodeObjects for an already-parsed JSON value, for
// callers that hold raw elements from a larger document.
func (c Codec) DecodeValue(raw json.RawMessage) ([]*regions.Object, error) {
	return c.decodeElement(raw)
}

func (c Codec) decodeElement(raw json.RawMessage) ([]*regions.Object, error) {
	switch firstByte(raw) {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return nil, decodeErr(err)
		}
		nested, err := batch.MapOrdered(elements, decodeThreshold, c.decodeElement)
		if err != nil {
			return nil, err
		}
		return flatten(nested), nil
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			return nil, decodeErr(err)
		}
		if len(members) == 0 {
			return nil, nil
		}
		if features, ok := members["features"]; ok {
			return c.decodeElement(features)
		}
		obj, err := c.decodeFeature(raw)
		if err != nil {
			return nil, err
		}
		return []*regions.Object{obj}, nil
	default:
		// Strings, numbers, booleans and nulls are producer noise.
		return nil, nil
	}
}

// decodeFeature decodes a single Feature or bare geometry object,
// stripping explicit nulls first when the codec is null-tolerant.
func (c Codec) decodeFeature(raw json.RawMessage) (*regions.Object, error) {
	if c.NullTolerant {
		var err error
		raw, err = sanitizeRaw(raw)
		if err != nil {
			return nil, err
		}
	}
	var f featureJSON
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, decodeErr(err)
	}
	if f.Geometry == nil {
		// A bare geometry object: the shape tag sits at top level.
		var g geometryJSON
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, decodeErr(err)
		}
		plane := regions.DefaultPlane()
		if c.PlaneAware && len(g.Plane) > 0 {
			var err error
			if plane, err = DecodePlane(g.Plane); err != nil {
				return nil, err
			}
		}
		roi, err := c.geometryToROI(&g, plane)
		if err != nil {
			return nil, err
		}
		return regions.NewObject(roi), nil
	}
	return c.featureToObject(&f)
}

// DecodeROIs reads bare geometry from GeoJSON text, symmetric to
// DecodeObjects but discarding identity, classification and
// measurements.
func (c Codec) DecodeROIs(data []byte) ([]*regions.ROI, error) {
	objects, err := c.DecodeObjects(data)
	if err != nil {
		return nil, err
	}
	rois := make([]*regions.ROI, len(objects))
	for i, o := range objects {
		rois[i] = o.ROI
	}
	return rois, nil
}

// sanitizeRaw round-trips raw through a generic tree with nulls
// stripped, so the typed decode never sees an explicit null.
func sanitizeRaw(raw json.RawMessage) (json.RawMessage, error) {
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, decodeErr(err)
	}
	StripNulls(tree)
	clean, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	return clean, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func flatten(groups [][]*regions.Object) []*regions.Object {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]*regions.Object, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
