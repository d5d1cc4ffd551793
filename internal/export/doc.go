// Package export rasterizes rectangular regions of multi-dimensional
// images into encoded byte payloads.
//
// A Source provides pixels plane by plane; Export routes a region
// request to either a standard single-plane encoder (png, jpg, gif,
// bmp, tiff) or the multi-plane hyperstack packaging ("imagej tiff",
// "imagej tif", "hyperstack"), selected case-insensitively by name.
// Stack payloads contain every channel/z/t plane of the requested
// rectangle, channel varying fastest.
//
// Exports are stateless and uncached: each call reads fresh pixels
// and hands the payload to the caller. Callers exporting many regions
// should parallelize at the call site.
package export
