package geojson

import (
	"encoding/json"

	"github.com/tessellab/region-bridge/internal/regions"
)

// planeJSON is the compact wire form of a plane. Pointer fields
// distinguish "absent" from zero on decode: an omitted member falls
// back to the default plane's value for that axis, which is -1 for
// the channel.
type planeJSON struct {
	C *int `json:"c"`
	Z *int `json:"z"`
	T *int `json:"t"`
}

func (pj *planeJSON) toPlane() regions.Plane {
	p := regions.DefaultPlane()
	if pj == nil {
		return p
	}
	if pj.C != nil {
		p.C = *pj.C
	}
	if pj.Z != nil {
		p.Z = *pj.Z
	}
	if pj.T != nil {
		p.T = *pj.T
	}
	return p
}

// EncodePlane renders a plane as its compact {"c","z","t"} object.
// All three members are always present. Planes are not natively
// representable in the exchange format, so this adapter is the only
// path a plane takes across the boundary and must round-trip exactly.
func EncodePlane(p regions.Plane) json.RawMessage {
	c, z, t := p.C, p.Z, p.T
	raw, _ := json.Marshal(&planeJSON{C: &c, Z: &z, T: &t})
	return raw
}

// DecodePlane reads a plane triple that may arrive bare
// ({"c":0,"z":1}, any subset of members) or wrapped in an enclosing
// "plane" member. Missing members fall back to the default plane's
// value for that axis; unknown extra members are ignored.
func DecodePlane(raw json.RawMessage) (regions.Plane, error) {
	var pj planeJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return regions.DefaultPlane(), decodeErr(err)
	}
	if pj.C == nil && pj.Z == nil && pj.T == nil {
		var wrapped struct {
			Plane *planeJSON `json:"plane"`
		}
		if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Plane != nil {
			return wrapped.Plane.toPlane(), nil
		}
	}
	return pj.toPlane(), nil
}
