// Package geojson converts region objects to and from a GeoJSON-based
// exchange format.
//
// # Format
//
// A single object is a Feature:
//
//	{"type": "Feature",
//	 "id": "a3f1...",
//	 "geometry": {"type": "Polygon", "coordinates": [...]},
//	 "properties": {"classification": {"name": "Tumor"},
//	                "measurements": {"Area": 42.0}},
//	 "plane": {"c": 0, "z": 1, "t": 0}}
//
// Many objects wrap as {"type": "FeatureCollection", "features":
// [...]}. The decoder additionally accepts bare JSON arrays, bare
// geometry objects (with an optional embedded "plane"), and the empty
// object {}, which decodes to an empty sequence.
//
// # Leniency
//
// Decoding is deliberately lenient about structure: explicit nulls
// are stripped before struct decoding, missing plane members fall
// back to the default plane, classification may be a string or an
// object, and unexpected top-level value types degrade to empty
// results. Only malformed JSON syntax and uninterpretable geometry
// fail, with an error matching ErrDecode.
//
// # Concurrency
//
// Bulk operations above fixed size thresholds fan out over a bounded
// worker pool; results are gathered by index, so output order always
// matches input order.
package geojson
