package geojson

import "errors"

// ErrDecode wraps malformed GeoJSON input. Structurally odd but
// syntactically valid JSON never produces it; only broken syntax or
// geometry that cannot be interpreted does.
var ErrDecode = errors.New("geojson: decode failed")

// Codec is an immutable configuration for GeoJSON conversion. The
// zero value is a strict codec; most callers want Default. There is
// deliberately no process-wide mutable instance: behavior is fixed
// by the value passed in.
type Codec struct {
	// NullTolerant strips explicit nulls from feature objects before
	// decoding instead of rejecting them. Producers (including older
	// exports from the host application) emit "field": null for
	// absent data, so this stays on in Default.
	NullTolerant bool

	// PlaneAware round-trips plane triples through their compact
	// {"c","z","t"} representation. When off, decoded geometry sits
	// on the default plane.
	PlaneAware bool

	// Pretty indents encoded output.
	Pretty bool
}

// Default is the codec used at the transport boundary: tolerant of
// nulls, plane-aware, compact output.
var Default = Codec{NullTolerant: true, PlaneAware: true}

// Parallelism thresholds for the bulk paths. Collections below the
// threshold convert on the caller's goroutine.
const (
	decodeThreshold      = 10
	chunkEncodeThreshold = 4
	featureListThreshold = 100
)
