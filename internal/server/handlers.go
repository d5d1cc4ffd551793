package server

import (
	"encoding/json"
	"fmt"

	"github.com/tessellab/region-bridge/internal/export"
	"github.com/tessellab/region-bridge/internal/regions"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "geojson_import").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the
// specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "version":
		return map[string]string{"version": s.version}, nil

	// Object exchange
	case "geojson_import":
		return s.handleGeoJSONImport(args)
	case "geojson_export":
		return s.handleGeoJSONExport(args)
	case "object_ids":
		return s.handleObjectIDs()
	case "measurement_names":
		return s.handleMeasurementNames()
	case "measurement_values":
		return s.handleMeasurementValues(args)

	// Image export
	case "image_open":
		return s.handleImageOpen(args)
	case "image_info":
		return s.handleImageOpen(args)
	case "export_region":
		return s.handleExportRegion(args)
	case "region_stats":
		return s.handleRegionStats(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Object Exchange Handlers ===

type geoJSONImportArgs struct {
	GeoJSON string `json:"geojson"`
	Replace bool   `json:"replace"`
}

func (s *Server) handleGeoJSONImport(args json.RawMessage) (interface{}, error) {
	var a geoJSONImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	objects, err := s.codec.DecodeObjects([]byte(a.GeoJSON))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if a.Replace {
		s.objects = objects
	} else {
		s.objects = append(s.objects, objects...)
	}
	total := len(s.objects)
	s.mu.Unlock()

	return map[string]interface{}{
		"imported": len(objects),
		"total":    total,
		"ids":      regions.ObjectIDs(objects),
	}, nil
}

type geoJSONExportArgs struct {
	ChunkSize int `json:"chunk_size"`
}

func (s *Server) handleGeoJSONExport(args json.RawMessage) (interface{}, error) {
	var a geoJSONExportArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	objects := s.snapshot()
	if a.ChunkSize > 0 {
		chunks, err := s.codec.EncodeCollectionChunks(objects, a.ChunkSize)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"chunks": chunks}, nil
	}
	doc, err := s.codec.EncodeCollection(objects)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"geojson": doc}, nil
}

func (s *Server) handleObjectIDs() (interface{}, error) {
	return map[string]interface{}{"ids": regions.ObjectIDs(s.snapshot())}, nil
}

func (s *Server) handleMeasurementNames() (interface{}, error) {
	return map[string]interface{}{"names": regions.MeasurementNames(s.snapshot())}, nil
}

type measurementValuesArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleMeasurementValues(args json.RawMessage) (interface{}, error) {
	var a measurementValuesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// NaN has no JSON form, so missing measurements export as null.
	objects := s.snapshot()
	values := make([]*float64, len(objects))
	for i, o := range objects {
		if v, ok := o.Measurements[a.Name]; ok {
			v := v
			values[i] = &v
		}
	}
	return map[string]interface{}{"values": values}, nil
}

func (s *Server) snapshot() []*regions.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*regions.Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// === Image Export Handlers ===

type imageOpenArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageOpen(args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"path":       src.Name(),
		"width":      src.Width(),
		"height":     src.Height(),
		"channels":   src.Channels(),
		"z_slices":   src.ZSlices(),
		"timepoints": src.Timepoints(),
	}, nil
}

type exportRegionArgs struct {
	export.Request
	Format string `json:"format"`
	Full   bool   `json:"full"`
}

func (s *Server) handleExportRegion(args json.RawMessage) (interface{}, error) {
	var a exportRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Downsample == 0 {
		a.Downsample = 1.0
	}
	if a.Format == "" {
		a.Format = "png"
	}
	src, err := s.cache.Open(a.Path)
	if err != nil {
		return nil, err
	}
	req := a.Request
	if a.Full {
		req = export.FullRequest(src, a.Downsample)
	}
	payload, err := export.ExportBase64(src, req, a.Format)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"format":       a.Format,
		"image_base64": payload,
	}, nil
}

type regionStatsArgs struct {
	export.Request
}

func (s *Server) handleRegionStats(args json.RawMessage) (interface{}, error) {
	var a regionStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Downsample == 0 {
		a.Downsample = 1.0
	}
	src, err := s.cache.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return export.RegionStats(src, a.Request)
}
