package export

import "errors"

// ErrUnsupportedFormat is returned when a caller-supplied format name
// matches no registered encoder. Matching is case-insensitive.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// ErrInvalidRegion is returned for requests with a zero-area
// rectangle, negative coordinates, or a non-positive downsample.
var ErrInvalidRegion = errors.New("export: invalid region request")
