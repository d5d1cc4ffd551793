// Package regions defines the data model shared by the GeoJSON codec
// and the region image exporter: image planes, tagged geometric ROIs,
// and the classified, measured objects that carry them.
//
// # Coordinate System
//
// All coordinates are level-0 pixel coordinates of the backing image:
// (0,0) at the top-left corner, X increasing rightward, Y increasing
// downward. Downsampling applies only when pixels are read, never to
// the stored geometry.
//
// # Planes
//
// A Plane selects one 2D slice of a channel/z/time image volume. The
// default plane (-1, 0, 0) means "no specific channel, first slice,
// first timepoint" and is applied wherever a producer omitted plane
// information.
package regions
