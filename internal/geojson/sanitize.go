package geojson

// StripNulls removes every member whose value is an explicit null
// from a parsed JSON object tree, recursing into nested objects. It
// does not descend into array elements; callers that need per-element
// sanitizing apply it when each element is decoded. The operation is
// idempotent and mutates the tree in place.
//
// Some producers, including older exports from the host application,
// write "field": null for absent optional data, which stricter
// decoders reject. Stripping is kept as permanent input robustness
// rather than a workaround for any particular producer version.
func StripNulls(obj map[string]interface{}) {
	for key, value := range obj {
		if value == nil {
			delete(obj, key)
			continue
		}
		if nested, ok := value.(map[string]interface{}); ok {
			StripNulls(nested)
		}
	}
}
