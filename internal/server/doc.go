// Package server exposes the GeoJSON codec and region exporter to an
// external process over MCP-style JSON-RPC 2.0 on stdio.
//
// # Protocol
//
// One JSON-RPC request per stdin line, one response per stdout line.
// Supported methods: initialize, tools/list, tools/call, ping.
//
// # Tools
//
// Object exchange:
//   - geojson_import: decode GeoJSON into the object store
//   - geojson_export: encode the store as one or many FeatureCollections
//   - object_ids, measurement_names, measurement_values: store accessors
//
// Image export:
//   - image_open, image_info: open and cache an image file
//   - export_region: encoded region payload, base64-wrapped
//   - region_stats: mean color of a region
//
// # State
//
// The server holds two pieces of state for the lifetime of the
// process: the region object store filled by geojson_import, and the
// decoded image cache filled by image_open. Tool execution errors
// surface as JSON-RPC errors with code -32000.
package server
