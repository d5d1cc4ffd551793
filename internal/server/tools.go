package server

// Tool represents a tool definition advertised to clients.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionArgSchema is the shared schema for tools that take a pixel
// region request.
func regionArgSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	properties := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Path of an opened image file",
		},
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge in level-0 pixels (default 0)",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge in level-0 pixels (default 0)",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Region width in level-0 pixels",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Region height in level-0 pixels",
		},
		"downsample": map[string]interface{}{
			"type":        "number",
			"description": "Scale divisor applied when reading pixels. Default 1.0",
			"default":     1.0,
		},
		"z": map[string]interface{}{
			"type":        "integer",
			"description": "Z slice (default 0)",
		},
		"t": map[string]interface{}{
			"type":        "integer",
			"description": "Timepoint (default 0)",
		},
	}
	for k, v := range extra {
		properties[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "version",
			Description: "Report the server version.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Object Exchange
		{
			Name:        "geojson_import",
			Description: "Decode GeoJSON (FeatureCollection, Feature array, single Feature or bare geometry) into region objects and add them to the store.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"geojson": map[string]interface{}{
						"type":        "string",
						"description": "GeoJSON text to decode",
					},
					"replace": map[string]interface{}{
						"type":        "boolean",
						"description": "Replace the store instead of appending. Default false",
					},
				},
				"required": []string{"geojson"},
			},
		},
		{
			Name:        "geojson_export",
			Description: "Encode the stored region objects as one FeatureCollection document, or as multiple chunked documents when chunk_size is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"chunk_size": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum features per document. 0 means a single document",
					},
				},
			},
		},
		{
			Name:        "object_ids",
			Description: "List the stored objects' identifiers in store order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "measurement_names",
			Description: "List the distinct measurement names across the stored objects.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "measurement_values",
			Description: "Return one value per stored object for a named measurement; null where an object lacks it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Measurement name",
					},
				},
				"required": []string{"name"},
			},
		},

		// Image Export
		{
			Name:        "image_open",
			Description: "Open an image file and report its extent and plane counts. The decoded image stays cached for later exports.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Report an image's extent and plane counts, opening and caching it if needed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "export_region",
			Description: "Rasterize a rectangular region into an encoded payload, returned base64-wrapped. " +
				"Formats: png, jpg, jpeg, gif, bmp, tif, tiff for a single plane; " +
				"'imagej tiff', 'imagej tif' or 'hyperstack' for a multi-page stack of every plane.",
			InputSchema: regionArgSchema(map[string]interface{}{
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Export format name (case-insensitive). Default png",
				},
				"full": map[string]interface{}{
					"type":        "boolean",
					"description": "Export the full image extent, ignoring x/y/width/height",
				},
			}, "path"),
		},
		{
			Name:        "region_stats",
			Description: "Report the mean color (hex, RGB, HSL) and intensity of a region.",
			InputSchema: regionArgSchema(nil, "path", "width", "height"),
		},
	}
}
